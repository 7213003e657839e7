package output

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown content to the terminal using Glamour,
// auto-detecting the terminal background and wrapping to width. Pass 0 for
// Glamour's default width (80).
//
// When color is disabled (NO_COLOR set or non-TTY), Glamour still produces
// readable plain-text output.
func RenderMarkdown(w io.Writer, content string, width int) error {
	if content == "" {
		return nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
		glamour.WithEmoji(),
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, rendered)
	return err
}

var (
	waBold   = regexp.MustCompile(`\*([^*\n]+)\*`)
	waStrike = regexp.MustCompile(`~([^~\n]+)~`)
)

// MessageToMarkdown converts WhatsApp message markup to CommonMark so a
// digest can be previewed with RenderMarkdown. WhatsApp's *bold* and
// ~strike~ become **bold** and ~~strike~~; _italic_ and `mono` already
// match. Single newlines become hard line breaks.
func MessageToMarkdown(body string) string {
	md := waBold.ReplaceAllString(body, "**$1**")
	md = waStrike.ReplaceAllString(md, "~~$1~~")

	lines := strings.Split(md, "\n")
	for i := 0; i < len(lines)-1; i++ {
		if lines[i] != "" && lines[i+1] != "" {
			lines[i] += "  "
		}
	}
	return strings.Join(lines, "\n")
}

// RenderMessage previews a WhatsApp message body in the terminal.
func RenderMessage(w io.Writer, body string, width int) error {
	return RenderMarkdown(w, MessageToMarkdown(body), width)
}
