package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"impractical.co/pagewire"
)

// settings are the options shared by every subcommand, after flags, the
// environment, and the config file have been merged.
type settings struct {
	pagewire.Config `mapstructure:",squash"`

	LoggedIn bool     `mapstructure:"logged_in"`
	Verbose  bool     `mapstructure:"verbose"`
	Handle   []string `mapstructure:"handle"`
}

type app struct {
	v        *viper.Viper
	cfgFile  string
	settings settings
}

func newRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "pagewire",
		Short: "Check rendered pages against the section and component markup contract",
		Long: `pagewire parses rendered HTML pages and runs the section dispatcher over
them, reporting sections whose markers can't be parsed, sections with no
handler, and the component templates found in the footer.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadSettings()
		},
	}

	defaults := pagewire.DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./pagewire.yaml if present)")
	flags.String("header-selector", defaults.HeaderSelector, "selector for the page header")
	flags.String("main-selector", defaults.MainSelector, "selector for the element containing sections")
	flags.String("footer-selector", defaults.FooterSelector, "selector for the page footer")
	flags.String("container-selector", defaults.ContainerSelector, "selector for the component container inside the footer")
	flags.String("section-class", defaults.SectionClass, "marker class every section carries")
	flags.Bool("logged-in", false, "treat the visitor as logged in")
	flags.BoolP("verbose", "v", false, "log every section, not just problems")
	flags.StringArray("handle", identifierStrings(knownIdentifiers), "section identifier to treat as handled (repeatable)")

	for key, flag := range map[string]string{
		"header_selector":    "header-selector",
		"main_selector":      "main-selector",
		"footer_selector":    "footer-selector",
		"container_selector": "container-selector",
		"section_class":      "section-class",
		"logged_in":          "logged-in",
		"verbose":            "verbose",
		"handle":             "handle",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newCheckCmd(a), newComponentsCmd(a), newRenderCmd(a))
	return root
}

var knownIdentifiers = []pagewire.Identifier{
	pagewire.IdentifierUser,
	pagewire.IdentifierRegister,
	pagewire.IdentifierPost,
	pagewire.IdentifierImporter,
	pagewire.IdentifierImporterStatus,
	pagewire.IdentifierBans,
}

func identifierStrings(ids []pagewire.Identifier) []string {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		res = append(res, string(id))
	}
	return res
}

func (a *app) loadSettings() error {
	a.v.SetEnvPrefix("PAGEWIRE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("pagewire")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named config file has to exist
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("error reading config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.settings); err != nil {
		return fmt.Errorf("error decoding config: %w", err)
	}
	if err := a.settings.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (a *app) context(cmd *cobra.Command) context.Context {
	level := slog.LevelWarn
	if a.settings.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return pagewire.LoggingContext(cmd.Context(), log)
}

// dispatcher builds a Dispatcher whose handlers are all built by newHandler,
// one for each identifier in the --handle list.
func (a *app) dispatcher(newHandler func(pagewire.Identifier) pagewire.Handler) (*pagewire.Dispatcher, error) {
	handlers := pagewire.NewHandlers()
	for _, raw := range a.settings.Handle {
		id := pagewire.Identifier(raw)
		if err := handlers.Register(id, newHandler(id)); err != nil {
			return nil, fmt.Errorf("--handle %q: %w", raw, err)
		}
	}
	return pagewire.NewDispatcher(handlers, pagewire.WithConfig(a.settings.Config))
}

// ignoreSection builds handlers that accept their section and do nothing,
// which is all checking a page needs.
func ignoreSection(pagewire.Identifier) pagewire.Handler {
	return pagewire.HandlerFunc(func(context.Context, pagewire.Section) {})
}

func openPage(path string) (*os.File, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	return f, nil
}
