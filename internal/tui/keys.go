package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the console key bindings.
type KeyMap struct {
	// Navigation.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding // Previous tier of the selected event.
	Right key.Binding // Next tier of the selected event.

	// Workflows.
	NewEvent     key.Binding
	DeleteEvent  key.Binding
	Book         key.Binding
	ViewBookings key.Binding
	Verify       key.Binding
	AddSponsor   key.Binding
	Refresh      key.Binding

	// Dialogs.
	Dismiss   key.Binding
	Confirm   key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Create-event form.
	AddTier       key.Binding
	RemoveTier    key.Binding
	Randomize     key.Binding
	ToggleSponsor key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "prev event"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "next event"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev tier"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next tier"),
	),
	NewEvent: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new event"),
	),
	DeleteEvent: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Book: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "book"),
	),
	ViewBookings: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "bookings"),
	),
	Verify: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "verify"),
	),
	AddSponsor: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sponsor"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "prev field"),
	),
	AddTier: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "add tier"),
	),
	RemoveTier: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("C-x", "remove tier"),
	),
	Randomize: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "randomize seats"),
	),
	ToggleSponsor: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "toggle sponsor"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap for the main screen.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Left, k.Right,
		k.NewEvent, k.DeleteEvent, k.Book, k.ViewBookings,
		k.Verify, k.AddSponsor, k.Refresh, k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Dismiss, k.Confirm, k.NextField, k.PrevField},
		{k.AddTier, k.RemoveTier, k.Randomize, k.ToggleSponsor},
	}
}

// dialogHelp is the short help shown while a dialog has focus.
type dialogHelp struct {
	keys KeyMap
	form bool
}

func (h dialogHelp) ShortHelp() []key.Binding {
	out := []key.Binding{h.keys.Confirm, h.keys.Dismiss, h.keys.NextField}
	if h.form {
		out = append(out, h.keys.AddTier, h.keys.RemoveTier, h.keys.Randomize, h.keys.ToggleSponsor)
	}
	return out
}

func (h dialogHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
