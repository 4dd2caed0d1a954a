package pagewire

import (
	"fmt"
	"regexp"

	"github.com/andybalholm/cascadia"
)

const (
	// DefaultHeaderSelector matches the page header handed to the chrome
	// initializer.
	DefaultHeaderSelector = ".global-header"

	// DefaultMainSelector matches the root whose direct children are
	// Sections.
	DefaultMainSelector = "main"

	// DefaultFooterSelector matches the root containing the component
	// container.
	DefaultFooterSelector = ".global-footer"

	// DefaultContainerSelector matches the component container inside
	// the footer.
	DefaultContainerSelector = ".component-container"

	// DefaultSectionClass is the marker class every Section carries.
	// Identifiers are written as a modifier of it, like
	// site-section--user.
	DefaultSectionClass = "site-section"
)

// Config describes where in a document the Dispatcher looks for things. The
// zero value is not usable; start from DefaultConfig.
type Config struct {
	HeaderSelector    string `mapstructure:"header_selector"`
	MainSelector      string `mapstructure:"main_selector"`
	FooterSelector    string `mapstructure:"footer_selector"`
	ContainerSelector string `mapstructure:"container_selector"`
	SectionClass      string `mapstructure:"section_class"`
}

// DefaultConfig returns the Config matching the markup the site renders.
func DefaultConfig() Config {
	return Config{
		HeaderSelector:    DefaultHeaderSelector,
		MainSelector:      DefaultMainSelector,
		FooterSelector:    DefaultFooterSelector,
		ContainerSelector: DefaultContainerSelector,
		SectionClass:      DefaultSectionClass,
	}
}

// Validate checks that every selector compiles and that the section class is
// a single class name: ASCII letters, digits, hyphens, and underscores, not
// starting with a digit.
func (c Config) Validate() error {
	_, err := c.compile()
	return err
}

// selectors holds a Config compiled for use against a document.
type selectors struct {
	header    cascadia.Selector
	main      cascadia.Selector
	footer    cascadia.Selector
	container cascadia.Selector
	section   cascadia.Selector

	// sectionClass is the marker class identifiers are parsed from.
	sectionClass string
}

// sectionClassPattern is a CSS identifier made of ASCII characters, so
// prefixing it with a dot selects exactly one class.
var sectionClassPattern = regexp.MustCompile(`^-?[_A-Za-z][_A-Za-z0-9-]*$`)

func (c Config) compile() (selectors, error) {
	var res selectors
	if !sectionClassPattern.MatchString(c.SectionClass) {
		return res, fmt.Errorf("section class %q: %w", c.SectionClass, ErrInvalidSelector)
	}
	for _, item := range []struct {
		name string
		sel  string
		dst  *cascadia.Selector
	}{
		{name: "header", sel: c.HeaderSelector, dst: &res.header},
		{name: "main", sel: c.MainSelector, dst: &res.main},
		{name: "footer", sel: c.FooterSelector, dst: &res.footer},
		{name: "container", sel: c.ContainerSelector, dst: &res.container},
		{name: "section", sel: "." + c.SectionClass, dst: &res.section},
	} {
		compiled, err := cascadia.Compile(item.sel)
		if err != nil {
			return res, fmt.Errorf("%s selector %q: %w: %w", item.name, item.sel, ErrInvalidSelector, err)
		}
		*item.dst = compiled
	}
	res.sectionClass = c.SectionClass
	return res, nil
}
