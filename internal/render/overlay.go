package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces the region of view starting at (x, y) with the
// overlay lines. Escape sequences on either side of the overlay survive.
func spliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	width := 0
	for _, l := range overlay {
		if w := ansi.StringWidth(l); w > width {
			width = w
		}
	}
	for i, ol := range overlay {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(lines) {
			lines = append(lines, "")
		}
		line := lines[row]
		lineWidth := ansi.StringWidth(line)

		var b strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(line, x, "")
			b.WriteString(prefix)
			if pad := x - ansi.StringWidth(prefix); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(ol)
		if pad := width - ansi.StringWidth(ol); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString("\x1b[0m")
		if end := x + width; end < lineWidth {
			b.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// centerOverlay splices box into the middle of a width x height view.
func centerOverlay(view, box string, width, height int) string {
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	x, y := 0, 0
	if width > bw {
		x = (width - bw) / 2
	}
	if height > bh {
		y = (height - bh) / 2
	}
	return spliceOverlay(view, strings.Split(box, "\n"), x, y)
}
