// Package render projects the console state into styled terminal text. It
// holds no state of its own: every call is a function of the frame passed in.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"boxoffice/internal/dialog"
	"boxoffice/internal/notify"
	"boxoffice/internal/viewstate"
	"boxoffice/internal/workflow"
	"boxoffice/pkg/api"
)

const timeLayout = "Mon 02 Jan 2006 15:04"

// Selection is the operator's cursor.
type Selection struct {
	Event int
	Tier  int
	// FormFocus indexes the form's text fields, then its sponsor toggles.
	FormFocus int
	// DialogFocus indexes the info dialog's input fields.
	DialogFocus int
}

// Frame is everything one draw depends on.
type Frame struct {
	Snapshot   viewstate.Snapshot
	Form       *workflow.EventForm
	FormDialog *dialog.Dialog
	Info       *dialog.Dialog
	Backdrop   bool
	Notices    []notify.Item
	Selection  Selection
	// Prompt is an inline line editor shown under the events, such as the
	// booking quantity.
	Prompt string
	Help   string
	Width  int
	Height int
}

type Renderer struct {
	theme Theme
	st    styles
}

func New(theme Theme) *Renderer {
	return &Renderer{theme: theme, st: newStyles(theme)}
}

func (r *Renderer) View(f Frame) string {
	width := f.Width
	if width <= 0 {
		width = 100
	}

	sections := []string{
		r.st.title.Render("boxoffice") + r.st.faint.Render("  venue console"),
		r.Events(f.Snapshot, f.Selection, width),
		r.Sponsors(f.Snapshot.Sponsors, width),
	}
	if f.Prompt != "" {
		sections = append(sections, r.st.header.Render(f.Prompt))
	}
	if n := r.Notices(f.Notices); n != "" {
		sections = append(sections, n)
	}
	if f.Help != "" {
		sections = append(sections, r.st.faint.Render(f.Help))
	}
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	height := f.Height
	if height <= 0 {
		height = lipgloss.Height(view)
	}
	if f.Backdrop {
		view = r.st.faint.Render(ansi.Strip(view))
	}
	if f.Form != nil && f.FormDialog != nil {
		view = centerOverlay(view, r.Form(*f.Form, f.FormDialog, f.Snapshot.Sponsors, f.Selection.FormFocus), width, height)
	}
	if f.Info != nil {
		view = centerOverlay(view, r.Dialog(f.Info, f.Selection.DialogFocus), width, height)
	}
	return view
}

// Events renders the events panel. A load failure replaces the list with
// the error line.
func (r *Renderer) Events(snap viewstate.Snapshot, sel Selection, width int) string {
	var b strings.Builder
	b.WriteString(r.st.header.Render("Events"))
	b.WriteString("\n")

	switch {
	case snap.LoadError != "":
		b.WriteString(r.st.errorMsg.Render(snap.LoadError))
	case len(snap.Events) == 0:
		b.WriteString(r.st.faint.Render("No events yet. Press n to create one."))
	default:
		for i, ev := range snap.Events {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(r.event(ev, i == sel.Event, sel.Tier))
		}
	}
	return r.st.panel.Width(max(width-2, 20)).Render(b.String())
}

func (r *Renderer) event(ev api.Event, selected bool, tierCursor int) string {
	title := ev.Title
	if selected {
		title = r.st.selected.Render("▶ " + title)
	} else {
		title = r.st.header.Render("  " + title)
	}
	lines := []string{title}

	meta := []string{}
	if ev.Location != "" {
		meta = append(meta, ev.Location)
	}
	if !ev.StartTime.IsZero() {
		meta = append(meta, ev.StartTime.Local().Format(timeLayout)+" to "+ev.EndTime.Local().Format(timeLayout))
	}
	meta = append(meta, fmt.Sprintf("collected ₹%.2f", ev.TotalCollection))
	lines = append(lines, r.st.faint.Render("    "+strings.Join(meta, " | ")))
	if ev.Description != "" {
		lines = append(lines, r.st.normal.Render("    "+ev.Description))
	}

	for j, t := range ev.Tiers {
		lines = append(lines, r.tier(t, selected && j == tierCursor))
	}
	if len(ev.Sponsors) > 0 {
		names := make([]string, 0, len(ev.Sponsors))
		for _, s := range ev.Sponsors {
			names = append(names, s.Name)
		}
		lines = append(lines, r.st.faint.Render("    Sponsored by "+strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) tier(t api.Tier, selected bool) string {
	marker := "  "
	if selected {
		marker = "› "
	}
	line := fmt.Sprintf("    %s%-16s ₹%9.2f  %4d / %-4d available", marker, t.Name, t.Price, t.Available(), t.TotalSeats)
	switch {
	case t.SoldOut():
		return r.st.faint.Render(line) + " " + r.st.soldOut.Render("SOLD OUT")
	case selected:
		return r.st.selected.Render(line)
	}
	return r.st.normal.Render(line)
}

func (r *Renderer) Sponsors(sponsors []api.Sponsor, width int) string {
	var b strings.Builder
	b.WriteString(r.st.header.Render("Sponsors"))
	if len(sponsors) == 0 {
		b.WriteString("\n")
		b.WriteString(r.st.faint.Render("No sponsors yet. Press s to add one."))
	}
	for _, s := range sponsors {
		b.WriteString("\n")
		line := "• " + s.Name
		if s.Website != "" {
			line += r.st.faint.Render("  " + s.Website)
		}
		b.WriteString(line)
	}
	return r.st.panel.Width(max(width-2, 20)).Render(b.String())
}

// Notices renders visible notifications oldest first. Fading ones are dimmed.
func (r *Renderer) Notices(items []notify.Item) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		style := lipgloss.NewStyle().Foreground(r.theme.severityColor(string(it.Severity))).Bold(true)
		if it.Phase == notify.Fading {
			style = r.st.faint
		}
		lines = append(lines, style.Render(severityIcon(it.Severity)+" "+it.Message))
	}
	return strings.Join(lines, "\n")
}

func severityIcon(s notify.Severity) string {
	switch s {
	case notify.Success:
		return "✔"
	case notify.Error:
		return "✖"
	}
	return "ℹ"
}

// Dialog renders the info surface.
func (r *Renderer) Dialog(d *dialog.Dialog, focus int) string {
	req := d.Request()
	parts := []string{r.st.title.Render(req.Title)}

	switch req.Kind {
	case dialog.Loading:
		parts = append(parts, r.st.faint.Render(strings.Join(req.Body, "\n")))
	case dialog.Table:
		parts = append(parts, r.table(req.Columns, req.Rows))
	default:
		for _, line := range req.Body {
			parts = append(parts, r.st.normal.Render(line))
		}
	}

	for i, f := range req.Fields {
		parts = append(parts, r.input(f.Label, d.Value(f.Name), f.Placeholder, i == focus))
	}
	if msg := d.Message(); msg != "" {
		parts = append(parts, r.st.faint.Render(msg))
	}
	parts = append(parts, r.actions(req.Actions, d.Busy()))
	return r.st.modal.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (r *Renderer) input(label, value, placeholder string, focused bool) string {
	shown := value
	style := r.st.input
	if shown == "" {
		shown = r.st.faint.Render(placeholder)
	}
	if focused {
		style = r.st.focused
		shown += "▏"
	}
	return fmt.Sprintf("%-26s %s", label+":", style.Render(shown))
}

func (r *Renderer) actions(actions []dialog.Action, busy bool) string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		switch {
		case a.Role == dialog.Primary && busy:
			label := a.BusyLabel
			if label == "" {
				label = a.Label
			}
			out = append(out, r.st.disabled.Render(label))
		case a.Role == dialog.Primary:
			out = append(out, r.st.primary.Render(a.Label+" ⏎"))
		default:
			out = append(out, r.st.button.Render(a.Label+" esc"))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (r *Renderer) table(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) && lipgloss.Width(row[i]) > widths[i] {
				widths[i] = lipgloss.Width(row[i])
			}
		}
	}
	format := func(cells []string) string {
		out := make([]string, len(columns))
		for i := range columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			out[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.Join(out, "  ")
	}
	lines := []string{r.st.header.Render(format(columns))}
	for _, row := range rows {
		lines = append(lines, r.st.normal.Render(format(row)))
	}
	return strings.Join(lines, "\n")
}

// Form renders the create-event form surface.
func (r *Renderer) Form(form workflow.EventForm, d *dialog.Dialog, sponsors []api.Sponsor, focus int) string {
	req := d.Request()
	fields := form.Fields()
	parts := []string{r.st.title.Render(req.Title)}

	for i, f := range fields {
		if i == len(fields)-3*len(form.Tiers) {
			parts = append(parts, r.st.header.Render(fmt.Sprintf("Tiers (%d)", len(form.Tiers))))
		}
		parts = append(parts, r.input(f.Label, form.Get(f.Key), "", i == focus))
	}
	if len(form.Tiers) == 0 {
		parts = append(parts, r.st.header.Render("Tiers (0)"), r.st.faint.Render("ctrl+t adds a tier"))
	}

	parts = append(parts, r.st.header.Render("Sponsors"))
	if len(sponsors) == 0 {
		parts = append(parts, r.st.faint.Render("No sponsors available"))
	}
	for j, s := range sponsors {
		box := "[ ]"
		if form.HasSponsor(s.ID) {
			box = "[x]"
		}
		line := box + " " + s.Name
		if len(fields)+j == focus {
			line = r.st.selected.Render(line)
		}
		parts = append(parts, line)
	}

	parts = append(parts,
		r.st.faint.Render("tab next field · ctrl+t add tier · ctrl+x remove tier · ctrl+r randomize seats · ctrl+o toggle sponsor"),
		r.actions(req.Actions, d.Busy()),
	)
	return r.st.modal.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
