// Package tui is the interactive venue console. It turns key presses into
// workflow calls, runs remote work as commands off the update loop, and
// redraws whenever the dialog stack, notification queue or view cache
// changes.
package tui

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"boxoffice/internal/dialog"
	"boxoffice/internal/notify"
	"boxoffice/internal/render"
	"boxoffice/internal/viewstate"
	"boxoffice/internal/workflow"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

// TickInterval drives redraws while notifications fade.
const TickInterval = 250 * time.Millisecond

const maxQtyDigits = 4

type tickMsg time.Time

// changedMsg reports a signal on one of the change channels. The listener is
// re-armed on the same channel.
type changedMsg struct {
	ch <-chan struct{}
}

// doneMsg carries the outcome of a workflow call run as a command.
type doneMsg struct {
	op  string
	err error
}

// Model is the bubbletea model for the console.
type Model struct {
	ctx      context.Context
	orch     *workflow.Orchestrator
	store    *viewstate.Store
	dialogs  *dialog.Stack
	notes    *notify.Queue
	renderer *render.Renderer
	log      *logger.Logger

	keys KeyMap
	help help.Model

	sel render.Selection
	// qty is the inline quantity editor opened by the book key.
	qty       string
	prompting bool

	width, height int
}

type Option func(*Model)

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

func WithRenderer(r *render.Renderer) Option {
	return func(m *Model) { m.renderer = r }
}

func WithLogger(l *logger.Logger) Option {
	return func(m *Model) { m.log = l }
}

func NewModel(ctx context.Context, orch *workflow.Orchestrator, store *viewstate.Store, dialogs *dialog.Stack, notes *notify.Queue, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		orch:     orch,
		store:    store,
		dialogs:  dialogs,
		notes:    notes,
		renderer: render.New(render.DefaultTheme),
		log:      logger.GetDefault(),
		keys:     DefaultKeyMap,
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the initial view and starts the redraw sources.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.run("load", m.orch.Load),
		tick(),
		listen(m.dialogs.Changed()),
		listen(m.notes.Changed()),
	)
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func listen(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{ch: ch}
	}
}

// run executes fn off the update loop and reports back with a doneMsg.
func (m Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case changedMsg:
		return m, listen(msg.ch)

	case doneMsg:
		m.report(msg)
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.prompting {
			return m.handlePromptKeys(msg)
		}
		if top := m.dialogs.Top(); top != nil {
			if top.Surface == dialog.Form {
				return m.handleFormKeys(msg)
			}
			return m.handleDialogKeys(msg, top)
		}
		return m.handleMainKeys(msg)
	}
	return m, nil
}

// report logs failures that the operator has not already been shown.
// Local validation and stale or duplicate submissions were either notified
// by the workflow or had no effect.
func (m Model) report(msg doneMsg) {
	if workflow.IsIgnorable(msg.err) || workflow.IsLocal(msg.err) {
		return
	}
	m.log.WithError(msg.err).Debug("Console operation failed", "operation", msg.op)
}

func (m Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.sel.Event > 0 {
			m.sel.Event--
			m.sel.Tier = 0
		}
	case key.Matches(msg, m.keys.Down):
		if m.sel.Event < len(snap.Events)-1 {
			m.sel.Event++
			m.sel.Tier = 0
		}
	case key.Matches(msg, m.keys.Left):
		if m.sel.Tier > 0 {
			m.sel.Tier--
		}
	case key.Matches(msg, m.keys.Right):
		if ev, ok := m.selectedEvent(snap); ok && m.sel.Tier < len(ev.Tiers)-1 {
			m.sel.Tier++
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run("refresh", m.orch.Refresh)
	case key.Matches(msg, m.keys.NewEvent):
		m.orch.OpenCreateEvent()
		m.sel.FormFocus = 0
	case key.Matches(msg, m.keys.Verify):
		m.orch.OpenVerify()
		m.sel.DialogFocus = 0
	case key.Matches(msg, m.keys.AddSponsor):
		m.orch.OpenAddSponsor()
		m.sel.DialogFocus = 0
	case key.Matches(msg, m.keys.DeleteEvent):
		if ev, ok := m.selectedEvent(snap); ok {
			_, _ = m.orch.RequestDelete(ev.ID)
		}
	case key.Matches(msg, m.keys.ViewBookings):
		ev, ok := m.selectedEvent(snap)
		if !ok {
			break
		}
		d, err := m.orch.OpenBookings(ev.ID)
		if err != nil {
			break
		}
		return m, m.run("bookings", func(ctx context.Context) error {
			return m.orch.LoadBookings(ctx, d)
		})
	case key.Matches(msg, m.keys.Book):
		if _, ok := m.selectedTier(snap); ok {
			m.prompting = true
			m.qty = ""
		}
	}
	return m, nil
}

// handlePromptKeys edits the booking quantity. Enter asks the workflow to
// open the phone dialog, which also fetches a price estimate.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.prompting = false
		m.qty = ""
	case key.Matches(msg, m.keys.Confirm):
		m.prompting = false
		snap := m.store.Snapshot()
		ev, ok := m.selectedEvent(snap)
		tier, tok := m.selectedTier(snap)
		if !ok || !tok {
			break
		}
		d, err := m.orch.RequestBooking(ev.ID, tier.ID, m.qty)
		m.qty = ""
		if err != nil {
			break
		}
		m.sel.DialogFocus = 0
		return m, m.run("quote", func(ctx context.Context) error {
			_, err := m.orch.QuotePrice(ctx, d)
			return err
		})
	case msg.Type == tea.KeyBackspace:
		m.qty = dropLastRune(m.qty)
	case msg.Type == tea.KeyRunes:
		if len(m.qty)+len(msg.Runes) <= maxQtyDigits {
			m.qty += string(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) handleDialogKeys(msg tea.KeyMsg, d *dialog.Dialog) (tea.Model, tea.Cmd) {
	fields := d.Request().Fields
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.orch.Dismiss(d.Surface)
		m.sel.DialogFocus = 0
	case key.Matches(msg, m.keys.Confirm):
		return m, m.run("submit", func(ctx context.Context) error {
			return m.orch.Submit(ctx, d)
		})
	case len(fields) == 0:
	case key.Matches(msg, m.keys.NextField):
		m.sel.DialogFocus = (m.sel.DialogFocus + 1) % len(fields)
	case key.Matches(msg, m.keys.PrevField):
		m.sel.DialogFocus = (m.sel.DialogFocus + len(fields) - 1) % len(fields)
	default:
		if m.sel.DialogFocus >= len(fields) {
			m.sel.DialogFocus = 0
		}
		name := fields[m.sel.DialogFocus].Name
		if v, ok := editText(d.Value(name), msg); ok {
			d.SetValue(name, v)
			m.dialogs.Touch()
		}
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, ok := m.orch.Form()
	if !ok {
		return m, nil
	}
	fields := form.Fields()
	sponsors := m.store.Sponsors()
	stops := len(fields) + len(sponsors)

	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.orch.Dismiss(dialog.Form)
		m.sel.FormFocus = 0
	case key.Matches(msg, m.keys.Confirm):
		return m, m.run("create-event", m.orch.SubmitCreateEvent)
	case key.Matches(msg, m.keys.NextField):
		m.sel.FormFocus = (m.sel.FormFocus + 1) % stops
	case key.Matches(msg, m.keys.PrevField):
		m.sel.FormFocus = (m.sel.FormFocus + stops - 1) % stops
	case key.Matches(msg, m.keys.AddTier):
		_ = m.orch.AddTier()
	case key.Matches(msg, m.keys.RemoveTier):
		if len(form.Tiers) == 0 {
			break
		}
		idx := len(form.Tiers) - 1
		if t := tierAt(m.sel.FormFocus, len(fields)-3*len(form.Tiers)); t >= 0 && t < len(form.Tiers) {
			idx = t
		}
		_ = m.orch.RemoveTier(idx)
		if m.sel.FormFocus >= stops-3 {
			m.sel.FormFocus = 0
		}
	case key.Matches(msg, m.keys.Randomize):
		_ = m.orch.RandomizeSeats()
	case key.Matches(msg, m.keys.ToggleSponsor), msg.Type == tea.KeySpace && m.sel.FormFocus >= len(fields):
		if i := m.sel.FormFocus - len(fields); i >= 0 && i < len(sponsors) {
			_ = m.orch.ToggleSponsor(sponsors[i].ID)
		}
	case m.sel.FormFocus < len(fields):
		k := fields[m.sel.FormFocus].Key
		if v, ok := editText(form.Get(k), msg); ok {
			_ = m.orch.EditForm(func(f *workflow.EventForm) { f.Set(k, v) })
		}
	}
	return m, nil
}

// tierAt maps a form focus index to the tier it edits, or -1.
func tierAt(focus, firstTierField int) int {
	if focus < firstTierField {
		return -1
	}
	return (focus - firstTierField) / 3
}

// editText applies a text-editing key to value.
func editText(value string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyBackspace:
		return dropLastRune(value), true
	case tea.KeySpace:
		return value + " ", true
	case tea.KeyRunes:
		return value + string(msg.Runes), true
	}
	return value, false
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func (m Model) selectedEvent(snap viewstate.Snapshot) (api.Event, bool) {
	if snap.LoadError != "" || m.sel.Event < 0 || m.sel.Event >= len(snap.Events) {
		return api.Event{}, false
	}
	return snap.Events[m.sel.Event], true
}

func (m Model) selectedTier(snap viewstate.Snapshot) (api.Tier, bool) {
	ev, ok := m.selectedEvent(snap)
	if !ok || m.sel.Tier < 0 || m.sel.Tier >= len(ev.Tiers) {
		return api.Tier{}, false
	}
	return ev.Tiers[m.sel.Tier], true
}

// clampSelection keeps the cursor on an existing row after the view changed.
func (m *Model) clampSelection() {
	events := m.store.Events()
	if m.sel.Event >= len(events) {
		m.sel.Event = max(len(events)-1, 0)
		m.sel.Tier = 0
	}
	if len(events) > 0 && m.sel.Tier >= len(events[m.sel.Event].Tiers) {
		m.sel.Tier = max(len(events[m.sel.Event].Tiers)-1, 0)
	}
}

func (m Model) View() string {
	snap := m.store.Snapshot()
	frame := render.Frame{
		Snapshot:   snap,
		FormDialog: m.dialogs.Current(dialog.Form),
		Info:       m.dialogs.Current(dialog.Info),
		Backdrop:   m.dialogs.BackdropVisible(),
		Notices:    m.notes.Items(),
		Selection:  m.sel,
		Width:      m.width,
		Height:     m.height,
	}
	if form, ok := m.orch.Form(); ok {
		frame.Form = &form
	}

	switch top := m.dialogs.Top(); {
	case m.prompting:
		frame.Prompt = m.promptLine(snap)
		frame.Help = m.help.View(dialogHelp{keys: m.keys})
	case top != nil:
		frame.Help = m.help.View(dialogHelp{keys: m.keys, form: top.Surface == dialog.Form})
	default:
		frame.Help = m.help.View(m.keys)
	}
	return m.renderer.View(frame)
}

func (m Model) promptLine(snap viewstate.Snapshot) string {
	tier, ok := m.selectedTier(snap)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Quantity for %s: %s▏", tier.Name, m.qty)
}
