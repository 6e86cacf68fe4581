package render

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown renders a model reply with terminal markdown styling. The reply
// is normalized first; on any renderer failure the normalized text is
// returned as-is.
func Markdown(text string) string {
	text = NormalizeModelOutput(text)

	var opts []glamour.TermRendererOption
	if isTTY() {
		opts = []glamour.TermRendererOption{
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(0),
		}
	} else {
		opts = []glamour.TermRendererOption{
			glamour.WithStandardStyle("notty"),
			glamour.WithWordWrap(0),
		}
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return rendered
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
