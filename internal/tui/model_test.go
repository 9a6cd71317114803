package tui

import (
	"context"
	"io"
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/clock"
	"boxoffice/internal/dialog"
	"boxoffice/internal/gateway/gatewaytest"
	"boxoffice/internal/notify"
	"boxoffice/internal/viewstate"
	"boxoffice/internal/workflow"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

type fixture struct {
	gw      *gatewaytest.Mock
	store   *viewstate.Store
	dialogs *dialog.Stack
	notes   *notify.Queue
	model   Model
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		gw:      &gatewaytest.Mock{},
		store:   viewstate.NewStore(),
		dialogs: dialog.NewStack(),
		notes:   notify.NewQueue(clock.NewFake(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))),
	}
	log := logger.NewWithWriter(io.Discard, "error")
	orch := workflow.New(f.gw, f.store, f.dialogs, f.notes,
		workflow.WithRand(rand.New(rand.NewSource(1))),
		workflow.WithLogger(log),
		workflow.WithLocation(time.UTC),
	)
	f.store.Replace([]api.Event{
		{
			ID:    1,
			Title: "Jazz Night",
			Tiers: []api.Tier{
				{ID: 10, Name: "VIP", Price: 100, TotalSeats: 10},
				{ID: 11, Name: "General", Price: 40, TotalSeats: 90},
			},
		},
		{ID: 2, Title: "Opera Gala", Tiers: []api.Tier{{ID: 20, Name: "Stalls", Price: 80, TotalSeats: 50}}},
	}, []api.Sponsor{{ID: 3, Name: "Acme"}})
	f.model = NewModel(context.Background(), orch, f.store, f.dialogs, f.notes, WithLogger(log))
	t.Cleanup(func() { f.gw.AssertExpectations(t) })
	return f
}

// press feeds msg to the model and runs the returned command to completion,
// feeding its result back once.
func (f *fixture) press(msg tea.Msg) {
	updated, cmd := f.model.Update(msg)
	f.model = updated.(Model)
	if cmd == nil {
		return
	}
	if out := cmd(); out != nil {
		if _, ok := out.(doneMsg); ok {
			updated, _ = f.model.Update(out)
			f.model = updated.(Model)
		}
	}
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationClampsToView(t *testing.T) {
	f := newFixture(t)

	f.press(runes("j"))
	f.press(runes("j"))
	assert.Equal(t, 1, f.model.sel.Event)

	f.press(runes("k"))
	f.press(tea.KeyMsg{Type: tea.KeyRight})
	f.press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, f.model.sel.Event)
	assert.Equal(t, 1, f.model.sel.Tier)

	f.press(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, f.model.sel.Tier, "moving to another event resets the tier cursor")
}

func TestBookingPromptOpensPhoneDialogWithEstimate(t *testing.T) {
	f := newFixture(t)
	f.gw.On("ComputePrice", mock.Anything, api.PriceRequest{TierID: 11, Qty: 2}).
		Return(api.PriceQuote{BasePrice: 80, DynamicPrice: 92.5}, nil).Once()

	f.press(tea.KeyMsg{Type: tea.KeyRight})
	f.press(runes("b"))
	require.True(t, f.model.prompting)
	assert.Contains(t, ansi.Strip(f.model.View()), "Quantity for General")

	f.typeText("2")
	f.press(tea.KeyMsg{Type: tea.KeyEnter})

	d := f.dialogs.Current(dialog.Info)
	require.NotNil(t, d)
	target, ok := d.Payload().(workflow.BookingTarget)
	require.True(t, ok)
	assert.Equal(t, 2, target.Qty)
	assert.Equal(t, uint(11), target.TierID)
	assert.Equal(t, "Estimated total: ₹92.50", d.Message())
}

func TestBookingPromptRejectsBadQuantity(t *testing.T) {
	f := newFixture(t)

	f.press(runes("b"))
	f.typeText("0")
	f.press(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, f.model.prompting)
	assert.Nil(t, f.dialogs.Current(dialog.Info))
	items := f.notes.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Please enter a valid quantity.", items[0].Message)
}

func TestAddSponsorThroughDialog(t *testing.T) {
	f := newFixture(t)
	f.gw.On("CreateSponsor", mock.Anything, api.CreateSponsorRequest{Name: "Globex", Website: "globex.test"}).
		Return(api.Sponsor{ID: 4, Name: "Globex"}, nil).Once()
	f.gw.On("ListSponsors", mock.Anything).
		Return([]api.Sponsor{{ID: 3, Name: "Acme"}, {ID: 4, Name: "Globex"}}, nil).Once()

	f.press(runes("s"))
	require.True(t, f.dialogs.IsOpen(dialog.Info))
	f.typeText("Globex")
	f.press(tea.KeyMsg{Type: tea.KeyTab})
	f.typeText("globex.test")
	f.press(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, f.dialogs.IsOpen(dialog.Info))
	assert.Len(t, f.store.Sponsors(), 2)
	items := f.notes.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, workflow.SponsorAddedMessage, items[len(items)-1].Message)
}

func TestEscapeDismissesDialog(t *testing.T) {
	f := newFixture(t)

	f.press(runes("v"))
	require.True(t, f.dialogs.BackdropVisible())
	f.typeText("q")
	assert.Equal(t, "q", f.dialogs.Current(dialog.Info).Value(workflow.FieldTicketHash), "q is text while a dialog has focus")

	f.press(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.dialogs.IsOpen(dialog.Info))
	assert.False(t, f.dialogs.BackdropVisible())
}

func TestFormKeysEditDrafts(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"))
	require.True(t, f.dialogs.IsOpen(dialog.Form))
	f.typeText("Gala")
	f.press(tea.KeyMsg{Type: tea.KeyCtrlT})
	f.press(tea.KeyMsg{Type: tea.KeyCtrlT})

	form, ok := f.model.orch.Form()
	require.True(t, ok)
	assert.Equal(t, "Gala", form.Title)
	assert.Len(t, form.Tiers, 2)

	f.press(tea.KeyMsg{Type: tea.KeyCtrlX})
	form, _ = f.model.orch.Form()
	assert.Len(t, form.Tiers, 1)

	// Focus the sponsor row after the last tier field and toggle it.
	for range len(form.Fields()) {
		f.press(tea.KeyMsg{Type: tea.KeyTab})
	}
	f.press(tea.KeyMsg{Type: tea.KeyCtrlO})
	form, _ = f.model.orch.Form()
	assert.True(t, form.HasSponsor(3))

	f.press(tea.KeyMsg{Type: tea.KeyEsc})
	_, ok = f.model.orch.Form()
	assert.False(t, ok, "closing the form discards drafts")
}

func TestRandomizeWithoutTotalIsReported(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"))
	f.press(tea.KeyMsg{Type: tea.KeyCtrlT})
	f.press(tea.KeyMsg{Type: tea.KeyCtrlR})

	items := f.notes.Items()
	require.Len(t, items, 1)
	assert.Equal(t, notify.Error, items[0].Severity)
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	_, cmd := f.model.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsEventsAndHelp(t *testing.T) {
	f := newFixture(t)
	updated, _ := f.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	f.model = updated.(Model)

	out := ansi.Strip(f.model.View())
	assert.Contains(t, out, "Jazz Night")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "new event")
}
