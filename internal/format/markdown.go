package format

import "github.com/charmbracelet/glamour"

const markdownStyle = "dark"

func FormatMarkdown(text string) (string, error) {
	return glamour.Render(text, markdownStyle)
}

// FormatMarkdownWidth wraps the rendered markdown at width columns. A width of
// zero or less falls back to the glamour default.
func FormatMarkdownWidth(text string, width int) (string, error) {
	if width <= 0 {
		return FormatMarkdown(text)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(text)
}
