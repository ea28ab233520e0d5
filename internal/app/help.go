package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/marcus/chartfit/internal/styles"
)

// helpCache holds the rendered help for the last width it was built at.
type helpCache struct {
	width    int
	rendered string
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# chartfit\n\n")
	fmt.Fprintf(&b, "The chart follows the terminal width up to **%d** columns. ", m.cfg.Chart.MaxWidth)
	fmt.Fprintf(&b, "Resizes settle after %s before the chart is redrawn.\n\n", m.cfg.Chart.Debounce)
	b.WriteString("## Keys\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, k := range m.keys.short() {
		h := k.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("| `esc` | close help |\n")
	return b.String()
}

// renderHelp renders the help overlay, reusing the cached output when the
// width has not changed.
func (m Model) renderHelp(width int) string {
	if m.help.rendered != "" && m.help.width == width {
		return m.help.rendered
	}
	md := m.helpMarkdown()
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.CurrentMarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("help renderer", "err", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		m.logger.Warn("render help", "err", err)
		return md
	}
	m.help.width = width
	m.help.rendered = out
	return out
}
