package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"delights/internal/views/components"
)

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// Layout wraps page content in the HTML document shell. A nil sidebar
// renders the bare, centred layout used by the authentication screens.
func Layout(title string, sidebar, content templ.Component, sidebarOpen bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := components.NewMarkup(ctx, w)
		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`).Text(title).Raw(`</title>`,
			`<script src="`, htmxScript, `"></script></head>`)
		m.Raw(`<body><div class="`, bodyWrapperClass(sidebarOpen), `">`)
		if sidebarOpen {
			m.Component(sidebar)
		}
		m.Raw(`<main id="content" class="`, mainClass(sidebarOpen), `">`).
			Component(content).
			Raw(`</main></div></body></html>`)
		return m.Err()
	})
}

func bodyWrapperClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "shell shell-with-sidebar"
	}
	return "shell shell-centered"
}

func mainClass(sidebarOpen bool) string {
	if sidebarOpen {
		return "content content-wide"
	}
	return "content content-narrow"
}
