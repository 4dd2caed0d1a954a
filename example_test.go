package pagewire_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"impractical.co/pagewire"
)

const examplePage = `<!doctype html>
<html lang="en">
	<head><title>Example</title></head>
	<body>
		<header class="global-header"></header>
		<main>
			<section class="site-section site-section--user" id="profile"></section>
			<section class="site-section site-section--post"></section>
			<section class="site-section site-section--bans"></section>
		</main>
		<footer class="global-footer">
			<div class="component-container" id="components"><span class="loading-icon">Loading...</span><div class="card"><h2 class="card__title"></h2></div></div>
		</footer>
	</body>
</html>`

func ExampleDispatcher_InitSections() {
	// usually the context comes from the request, but here we're building it from scratch and adding a logger
	ctx := pagewire.LoggingContext(context.Background(), slog.Default())

	handlers := pagewire.NewHandlers()
	_ = handlers.RegisterFunc(pagewire.IdentifierUser, func(ctx context.Context, section pagewire.Section) {
		fmt.Println("user section at", section.Index)
		card, err := section.Components.Create(ctx, "card")
		if err != nil {
			return
		}
		section.Node.AppendChild(card)
	})
	_ = handlers.RegisterFunc(pagewire.IdentifierPost, func(_ context.Context, section pagewire.Section) {
		fmt.Println("post section at", section.Index)
	})

	dispatcher, err := pagewire.NewDispatcher(handlers, pagewire.WithChrome(func(_ context.Context, _ *html.Node, isLoggedIn bool) error {
		fmt.Println("chrome, logged in:", isLoggedIn)
		return nil
	}))
	if err != nil {
		panic(err)
	}
	doc, err := pagewire.ParseDocument(strings.NewReader(examplePage))
	if err != nil {
		panic(err)
	}
	if err := dispatcher.InitSections(ctx, doc, true); err != nil {
		panic(err)
	}
	fmt.Println(dispatcher.State())
	fmt.Println(dispatcher.Report().Count(pagewire.OutcomeUnhandled), "unhandled")

	profile := goquery.NewDocumentFromNode(doc).Find("#profile").Get(0)
	if err := html.Render(os.Stdout, profile); err != nil {
		panic(err)
	}

	//Output:
	// chrome, logged in: true
	// user section at 0
	// post section at 1
	// done
	// 1 unhandled
	// <section class="site-section site-section--user" id="profile"><div class="card"><h2 class="card__title"></h2></div></section>
}

func ExampleComponents_Create() {
	ctx := context.Background()
	doc, err := pagewire.ParseDocument(strings.NewReader(examplePage))
	if err != nil {
		panic(err)
	}

	components := pagewire.NewComponents()
	footer := goquery.NewDocumentFromNode(doc).Find(".global-footer").Get(0)
	if err := components.Init(ctx, footer); err != nil {
		panic(err)
	}
	fmt.Println(components.Keys())

	icon, err := components.Create(ctx, "loading-icon")
	if err != nil {
		panic(err)
	}
	if err := html.Render(os.Stdout, icon); err != nil {
		panic(err)
	}
	fmt.Println()

	_, err = components.Create(ctx, "missing")
	fmt.Println(errors.Is(err, pagewire.ErrComponentNotFound))

	//Output:
	// [card loading-icon]
	// <span class="loading-icon">Loading...</span>
	// true
}
