package workflow

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/clock"
	"boxoffice/internal/dialog"
	"boxoffice/internal/gateway"
	"boxoffice/internal/gateway/gatewaytest"
	"boxoffice/internal/inventory"
	"boxoffice/internal/notify"
	"boxoffice/internal/viewstate"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

type harness struct {
	gw      *gatewaytest.Mock
	store   *viewstate.Store
	dialogs *dialog.Stack
	notes   *notify.Queue
	o       *Orchestrator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gw:      &gatewaytest.Mock{},
		store:   viewstate.NewStore(),
		dialogs: dialog.NewStack(),
		notes:   notify.NewQueue(clock.NewFake(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))),
	}
	h.o = New(h.gw, h.store, h.dialogs, h.notes,
		WithRand(rand.New(rand.NewSource(1))),
		WithLogger(logger.NewWithWriter(io.Discard, "error")),
		WithLocation(time.UTC),
		WithTimeout(time.Second),
	)
	h.store.Replace(sampleEvents(), sampleSponsors())
	t.Cleanup(func() { h.gw.AssertExpectations(t) })
	return h
}

func sampleEvents() []api.Event {
	return []api.Event{
		{
			ID:    1,
			Title: "Jazz Night",
			Tiers: []api.Tier{
				{ID: 10, Name: "VIP", Price: 100, TotalSeats: 10, SeatsSold: 10},
				{ID: 11, Name: "General", Price: 40, TotalSeats: 90, SeatsSold: 5},
			},
		},
		{ID: 2, Title: "Opera Gala", Tiers: []api.Tier{{ID: 20, Name: "Stalls", Price: 80, TotalSeats: 50}}},
	}
}

func sampleSponsors() []api.Sponsor {
	return []api.Sponsor{{ID: 3, Name: "Acme"}}
}

// expectRefresh registers one full reload returning events.
func (h *harness) expectRefresh(events []api.Event) {
	h.gw.On("ListEvents", mock.Anything).Return(events, nil).Once()
	h.gw.On("ListSponsors", mock.Anything).Return(sampleSponsors(), nil).Once()
}

func (h *harness) lastNote(t *testing.T) notify.Item {
	t.Helper()
	items := h.notes.Items()
	require.NotEmpty(t, items, "expected a notification")
	return items[len(items)-1]
}

var ctx = context.Background()

func TestLoadReplacesStore(t *testing.T) {
	h := newHarness(t)
	h.expectRefresh([]api.Event{{ID: 7, Title: "Comedy"}})
	before := h.store.Version()

	require.NoError(t, h.o.Load(ctx))
	snap := h.store.Snapshot()
	assert.Equal(t, before+1, snap.Version, "events and sponsors land in one write")
	require.Len(t, snap.Events, 1)
	assert.Equal(t, "Comedy", snap.Events[0].Title)
	assert.Empty(t, snap.LoadError)
}

func TestLoadFailureDegradesEventsPanel(t *testing.T) {
	h := newHarness(t)
	h.gw.On("ListEvents", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	h.gw.On("ListSponsors", mock.Anything).Return(sampleSponsors(), nil).Maybe()

	require.Error(t, h.o.Load(ctx))
	snap := h.store.Snapshot()
	assert.Equal(t, LoadFailedMessage, snap.LoadError)
	assert.Len(t, snap.Events, 2, "previous view is kept")
}

func fillValidForm(t *testing.T, o *Orchestrator) {
	t.Helper()
	require.NoError(t, o.EditForm(func(f *EventForm) {
		f.Title = "Rock Fest"
		f.Location = "Arena"
		f.Start = "2026-11-01 19:00"
		f.End = "2026-11-01 23:00"
		f.TotalSeats = "10"
		f.Tiers = []TierDraft{
			{Name: "VIP", Price: "150", Seats: "4"},
			{Name: "General", Price: "50", Seats: "6"},
		}
		f.SponsorIDs = []uint{3}
	}))
}

func TestCreateEventSeatSumMismatchNeverCallsRemote(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenCreateEvent()
	fillValidForm(t, h.o)
	require.NoError(t, h.o.EditForm(func(f *EventForm) { f.Tiers[1].Seats = "5" }))

	err := h.o.SubmitCreateEvent(ctx)
	assert.ErrorIs(t, err, inventory.ErrSeatSumMismatch)
	assert.True(t, IsLocal(err))
	assert.Equal(t, "The sum of seats in all tiers must equal the total seats for the event.", h.lastNote(t).Message)
	assert.Equal(t, notify.Error, h.lastNote(t).Severity)
	assert.True(t, h.dialogs.IsCurrent(d))
	assert.False(t, d.Busy())
	h.gw.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateEventInvalidDraftIsLocal(t *testing.T) {
	h := newHarness(t)
	h.o.OpenCreateEvent()
	fillValidForm(t, h.o)
	require.NoError(t, h.o.EditForm(func(f *EventForm) { f.Tiers[0].Price = "-1" }))

	err := h.o.SubmitCreateEvent(ctx)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Tier 1 has an invalid name, price or seat count.", h.lastNote(t).Message)
	h.gw.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateEventSuccess(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenCreateEvent()
	fillValidForm(t, h.o)

	h.gw.On("CreateEvent", mock.Anything, mock.MatchedBy(func(req api.CreateEventRequest) bool {
		return req.Title == "Rock Fest" &&
			req.TotalSeats == 10 &&
			len(req.Tiers) == 2 &&
			req.Tiers[0].TotalSeats == 4 &&
			req.StartTime.Equal(time.Date(2026, 11, 1, 19, 0, 0, 0, time.UTC)) &&
			len(req.SponsorIDs) == 1
	})).Return(api.Event{ID: 3, Title: "Rock Fest"}, nil).Once()
	h.expectRefresh(append(sampleEvents(), api.Event{ID: 3, Title: "Rock Fest"}))

	require.NoError(t, h.o.SubmitCreateEvent(ctx))
	assert.False(t, h.dialogs.IsCurrent(d))
	assert.False(t, h.dialogs.BackdropVisible())
	_, open := h.o.Form()
	assert.False(t, open, "drafts are discarded")
	assert.Len(t, h.store.Events(), 3)
	assert.Equal(t, EventCreatedMessage, h.lastNote(t).Message)
	assert.Equal(t, notify.Success, h.lastNote(t).Severity)
	assert.Equal(t, StateIdle, h.o.State(FlowCreateEvent))
}

func TestCreateEventRemoteFailureKeepsForm(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenCreateEvent()
	fillValidForm(t, h.o)
	h.gw.On("CreateEvent", mock.Anything, mock.Anything).
		Return(nil, &gateway.Error{Op: "create event", Status: 400, Message: "End time must be after start time"}).Once()

	err := h.o.SubmitCreateEvent(ctx)
	require.Error(t, err)
	assert.True(t, h.dialogs.IsCurrent(d))
	assert.False(t, d.Busy())
	form, open := h.o.Form()
	require.True(t, open)
	assert.Equal(t, "Rock Fest", form.Title)
	assert.Len(t, form.Tiers, 2)
	assert.Equal(t, "End time must be after start time", h.lastNote(t).Message)
	assert.Equal(t, StateAwaitingConfirmation, h.o.State(FlowCreateEvent))
	h.gw.AssertNotCalled(t, "ListEvents", mock.Anything)
}

func TestRandomizeSeatsSumsToTotal(t *testing.T) {
	h := newHarness(t)
	h.o.OpenCreateEvent()
	require.NoError(t, h.o.EditForm(func(f *EventForm) { f.TotalSeats = "10" }))
	require.NoError(t, h.o.AddTier())
	require.NoError(t, h.o.AddTier())
	require.NoError(t, h.o.EditForm(func(f *EventForm) {
		f.Tiers[0].Name = "VIP"
		f.Tiers[1].Name = "General"
	}))

	require.NoError(t, h.o.RandomizeSeats())
	form, _ := h.o.Form()
	require.Len(t, form.Tiers, 2)
	seats := make([]int, 0, 2)
	for _, tier := range form.Tiers {
		n, err := inventory.ParseTotal(tier.Seats)
		if err != nil {
			n = 0
		}
		seats = append(seats, n)
	}
	assert.NoError(t, inventory.CheckSeatSum(10, seats))
}

func TestRandomizeSeatsRefusals(t *testing.T) {
	h := newHarness(t)
	h.o.OpenCreateEvent()

	require.NoError(t, h.o.EditForm(func(f *EventForm) { f.TotalSeats = "10" }))
	assert.ErrorIs(t, h.o.RandomizeSeats(), inventory.ErrNothingToAllocate, "no tiers")

	require.NoError(t, h.o.AddTier())
	require.NoError(t, h.o.EditForm(func(f *EventForm) { f.TotalSeats = "many" }))
	assert.ErrorIs(t, h.o.RandomizeSeats(), inventory.ErrNothingToAllocate, "non-numeric total")
	assert.Equal(t, notify.Error, h.lastNote(t).Severity)

	require.NoError(t, h.o.EditForm(func(f *EventForm) { f.TotalSeats = "999999999" }))
	err := h.o.RandomizeSeats()
	assert.ErrorIs(t, err, inventory.ErrTooManySeats)
	assert.True(t, IsLocal(err))
	assert.Equal(t, inventory.ErrTooManySeats.Error(), h.lastNote(t).Message)
	form, _ := h.o.Form()
	assert.Empty(t, form.Tiers[0].Seats, "drafts untouched")
}

func TestRemoveTierAndToggleSponsor(t *testing.T) {
	h := newHarness(t)
	h.o.OpenCreateEvent()
	require.NoError(t, h.o.AddTier())
	require.NoError(t, h.o.AddTier())
	require.NoError(t, h.o.RemoveTier(0))
	require.NoError(t, h.o.ToggleSponsor(3))

	form, _ := h.o.Form()
	assert.Len(t, form.Tiers, 1)
	assert.Equal(t, "General Admission", form.Tiers[0].Name)
	assert.True(t, form.HasSponsor(3))

	require.NoError(t, h.o.ToggleSponsor(3))
	form, _ = h.o.Form()
	assert.False(t, form.HasSponsor(3))
}

func TestDismissFormDiscardsDrafts(t *testing.T) {
	h := newHarness(t)
	h.o.OpenCreateEvent()
	fillValidForm(t, h.o)
	h.o.Dismiss(dialog.Form)

	_, open := h.o.Form()
	assert.False(t, open)
	assert.ErrorIs(t, h.o.SubmitCreateEvent(ctx), ErrFormClosed)

	h.o.OpenCreateEvent()
	form, _ := h.o.Form()
	assert.Empty(t, form.Title)
}

func TestDeleteConfirmed(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestDelete(1)
	require.NoError(t, err)
	assert.Equal(t, dialog.Confirm, d.Kind())
	assert.Contains(t, d.Request().Body[0], "Jazz Night")

	h.gw.On("DeleteEvent", mock.Anything, uint(1)).Return(nil).Once()
	h.expectRefresh(sampleEvents()[1:])

	require.NoError(t, h.o.ConfirmDelete(ctx, d))
	_, found := h.store.Snapshot().Event(1)
	assert.False(t, found, "deleted event is gone from the next snapshot")
	assert.False(t, h.dialogs.IsOpen(dialog.Info))
	assert.Equal(t, EventDeletedMessage, h.lastNote(t).Message)
	assert.Equal(t, notify.Info, h.lastNote(t).Severity)
}

func TestDeleteDismissedMakesNoCall(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestDelete(1)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingConfirmation, h.o.State(FlowDeleteEvent))

	h.o.Dismiss(dialog.Info)
	assert.Equal(t, StateIdle, h.o.State(FlowDeleteEvent))
	assert.ErrorIs(t, h.o.ConfirmDelete(ctx, d), ErrStaleDialog)
	_, found := h.store.Snapshot().Event(1)
	assert.True(t, found)
	h.gw.AssertNotCalled(t, "DeleteEvent", mock.Anything, mock.Anything)
}

func TestDeleteFailureKeepsDialog(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestDelete(2)
	require.NoError(t, err)
	h.gw.On("DeleteEvent", mock.Anything, uint(2)).
		Return(&gateway.Error{Op: "delete event", Status: 404, Message: "Event not found"}).Once()

	require.Error(t, h.o.ConfirmDelete(ctx, d))
	assert.True(t, h.dialogs.IsCurrent(d))
	assert.False(t, d.Busy())
	assert.Equal(t, "Event not found", h.lastNote(t).Message)
}

func TestRequestDeleteUnknownEvent(t *testing.T) {
	h := newHarness(t)
	_, err := h.o.RequestDelete(99)
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.False(t, h.dialogs.IsOpen(dialog.Info))
}

func TestViewBookingsTable(t *testing.T) {
	h := newHarness(t)
	h.gw.On("ListBookings", mock.Anything, uint(1)).Return([]api.BookingDetail{
		{TicketHash: "h1", Qty: 2, UserPhone: "9876543210", TierName: "VIP"},
	}, nil).Once()

	require.NoError(t, h.o.ViewBookings(ctx, 1))
	d := h.dialogs.Current(dialog.Info)
	require.NotNil(t, d)
	req := d.Request()
	assert.Equal(t, dialog.Table, req.Kind)
	assert.Equal(t, []string{"Phone Number", "Tier", "Qty", "Ticket Hash"}, req.Columns)
	assert.Equal(t, [][]string{{"9876543210", "VIP", "2", "h1"}}, req.Rows)
}

func TestViewBookingsEmptyAndFailure(t *testing.T) {
	h := newHarness(t)
	h.gw.On("ListBookings", mock.Anything, uint(2)).Return([]api.BookingDetail{}, nil).Once()
	require.NoError(t, h.o.ViewBookings(ctx, 2))
	assert.Equal(t, []string{NoBookingsMessage}, h.dialogs.Current(dialog.Info).Request().Body)

	h.gw.On("ListBookings", mock.Anything, uint(1)).Return(nil, errors.New("boom")).Once()
	require.Error(t, h.o.ViewBookings(ctx, 1))
	d := h.dialogs.Current(dialog.Info)
	require.NotNil(t, d, "dialog stays open on failure")
	assert.Equal(t, []string{BookingsFailedMessage}, d.Request().Body)
}

func TestViewBookingsLoadingThenStaleResultDropped(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.OpenBookings(1)
	require.NoError(t, err)
	assert.Equal(t, dialog.Loading, d.Kind())

	h.gw.On("ListBookings", mock.Anything, uint(1)).
		Run(func(mock.Arguments) { h.o.Dismiss(dialog.Info) }).
		Return([]api.BookingDetail{{TicketHash: "h1", Qty: 1}}, nil).Once()

	assert.ErrorIs(t, h.o.LoadBookings(ctx, d), ErrStaleDialog)
	assert.False(t, h.dialogs.IsOpen(dialog.Info))
	assert.Equal(t, dialog.Loading, d.Kind(), "stale dialog is not updated")
}

func TestRequestBookingRejectsBadQuantity(t *testing.T) {
	h := newHarness(t)
	for _, qty := range []string{"0", "-2", "", "two"} {
		d, err := h.o.RequestBooking(1, 11, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity, qty)
		assert.Nil(t, d)
		assert.Equal(t, "Please enter a valid quantity.", h.lastNote(t).Message)
	}
	assert.False(t, h.dialogs.IsOpen(dialog.Info))
}

func TestRequestBookingUnknownTierIsReported(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestBooking(1, 20, "2")
	assert.ErrorIs(t, err, ErrUnknownTier)
	assert.True(t, IsLocal(err))
	assert.Nil(t, d)
	assert.Equal(t, notify.Error, h.lastNote(t).Severity)
	assert.Equal(t, "Please select a ticket tier.", h.lastNote(t).Message)
	assert.False(t, h.dialogs.IsOpen(dialog.Info))
}

func TestConfirmBookingRejectsBadPhone(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestBooking(1, 11, "2")
	require.NoError(t, err)

	for _, phone := range []string{"", "12345", "12345678ab", "123456789"} {
		d.SetValue(FieldPhone, phone)
		assert.ErrorIs(t, h.o.ConfirmBooking(ctx, d), ErrInvalidPhone, phone)
	}
	assert.Equal(t, "Please enter a valid 10-digit phone number.", h.lastNote(t).Message)
	assert.True(t, h.dialogs.IsCurrent(d))
	h.gw.AssertNotCalled(t, "BookTicket", mock.Anything, mock.Anything)
}

func TestBookingSoldOutTierStillCallsRemote(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestBooking(1, 10, "2")
	require.NoError(t, err)
	d.SetValue(FieldPhone, "9876543210")

	h.gw.On("BookTicket", mock.Anything, api.BookTicketRequest{
		UserPhone: "9876543210", EventID: 1, TierID: 10, Qty: 2,
	}).Return(nil, &gateway.Error{Op: "book ticket", Status: 400, Message: "Not enough tickets available in this tier"}).Once()

	require.Error(t, h.o.ConfirmBooking(ctx, d))
	assert.Equal(t, "Not enough tickets available in this tier", h.lastNote(t).Message)
	assert.True(t, h.dialogs.IsCurrent(d), "phone dialog stays open")
	assert.False(t, d.Busy(), "confirm is re-enabled")
	assert.Equal(t, "9876543210", d.Value(FieldPhone))
	assert.Equal(t, StateAwaitingConfirmation, h.o.State(FlowBookTicket))
}

func TestBookingSuccessShowsResultAndRefreshes(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestBooking(1, 11, "3")
	require.NoError(t, err)
	d.SetValue(FieldPhone, "9876543210")

	h.gw.On("BookTicket", mock.Anything, mock.Anything).
		Return(api.Booking{ID: 5, EventID: 1, TierID: 11, Qty: 3, PricePaid: 126.5, TicketHash: "deadbeef"}, nil).Once()
	refreshed := sampleEvents()
	refreshed[0].Tiers[1].SeatsSold = 8
	h.expectRefresh(refreshed)

	require.NoError(t, h.o.ConfirmBooking(ctx, d))
	assert.False(t, h.dialogs.IsCurrent(d))
	result := h.dialogs.Current(dialog.Info)
	require.NotNil(t, result)
	assert.Equal(t, dialog.ShowResult, result.Kind())
	assert.Contains(t, result.Request().Body, "deadbeef")
	assert.Contains(t, result.Request().Body, "Final Price: ₹126.50")
	assert.Equal(t, 8, h.store.Events()[0].Tiers[1].SeatsSold)
	assert.Equal(t, StateIdle, h.o.State(FlowBookTicket))
}

func TestSecondSubmitWhileInFlightIsIgnored(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestBooking(2, 20, "1")
	require.NoError(t, err)
	d.SetValue(FieldPhone, "9876543210")

	started := make(chan struct{})
	release := make(chan struct{})
	h.gw.On("BookTicket", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(api.Booking{ID: 1, TicketHash: "x"}, nil).Once()
	h.expectRefresh(sampleEvents())

	done := make(chan error, 1)
	go func() { done <- h.o.ConfirmBooking(ctx, d) }()
	<-started

	assert.True(t, d.Busy())
	assert.Equal(t, StateSubmitting, h.o.State(FlowBookTicket))
	assert.ErrorIs(t, h.o.ConfirmBooking(ctx, d), ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	h.gw.AssertNumberOfCalls(t, "BookTicket", 1)
}

func TestQuotePriceShowsEstimate(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestBooking(1, 11, "2")
	require.NoError(t, err)
	h.gw.On("ComputePrice", mock.Anything, api.PriceRequest{TierID: 11, Qty: 2}).
		Return(api.PriceQuote{DynamicPrice: 84.25, BasePrice: 80, Quantity: 2}, nil).Once()

	q, err := h.o.QuotePrice(ctx, d)
	require.NoError(t, err)
	assert.InDelta(t, 84.25, q.DynamicPrice, 0.001)
	assert.Equal(t, "Estimated total: ₹84.25", d.Message())
}

func TestVerifyNotFoundOpensNoResult(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenVerify()
	d.SetValue(FieldTicketHash, "abc123")
	h.gw.On("VerifyTicket", mock.Anything, "abc123").
		Return(nil, &gateway.Error{Op: "verify ticket", Status: 404, Message: "Ticket hash not found or invalid."}).Once()

	require.Error(t, h.o.SubmitVerify(ctx, d))
	note := h.lastNote(t)
	assert.Equal(t, notify.Error, note.Severity)
	assert.Equal(t, "Ticket hash not found or invalid.", note.Message)
	assert.Same(t, d, h.dialogs.Current(dialog.Info), "no result dialog is opened")
	assert.False(t, d.Busy())
}

func TestVerifyEmptyHash(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenVerify()
	d.SetValue(FieldTicketHash, "   ")
	assert.ErrorIs(t, h.o.SubmitVerify(ctx, d), ErrEmptyTicketHash)
	assert.Equal(t, "Please enter a ticket hash.", h.lastNote(t).Message)
	h.gw.AssertNotCalled(t, "VerifyTicket", mock.Anything, mock.Anything)
}

func TestVerifySuccess(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenVerify()
	d.SetValue(FieldTicketHash, " h1 ")
	h.gw.On("VerifyTicket", mock.Anything, "h1").Return(api.VerifiedBooking{
		Status: "Verified", EventTitle: "Jazz Night", UserPhone: "9876543210", Qty: 2, TicketHash: "h1",
	}, nil).Once()

	require.NoError(t, h.o.SubmitVerify(ctx, d))
	result := h.dialogs.Current(dialog.Info)
	require.NotNil(t, result)
	assert.NotSame(t, d, result)
	assert.Equal(t, dialog.ShowResult, result.Kind())
	assert.Equal(t, []string{"Event: Jazz Night", "Phone: 9876543210", "Tickets: 2", "Hash: h1"}, result.Request().Body)
}

func TestSponsorNameRequired(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenAddSponsor()
	d.SetValue(FieldSponsorWebsite, "https://acme.test")
	assert.ErrorIs(t, h.o.SubmitSponsor(ctx, d), ErrSponsorNameRequired)
	assert.Equal(t, "Sponsor name is required", h.lastNote(t).Message)
	h.gw.AssertNotCalled(t, "CreateSponsor", mock.Anything, mock.Anything)
}

func TestSponsorFailureReenablesAndReports(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenAddSponsor()
	d.SetValue(FieldSponsorName, "Acme")
	h.gw.On("CreateSponsor", mock.Anything, api.CreateSponsorRequest{Name: "Acme"}).
		Return(nil, &gateway.Error{Op: "create sponsor", Status: 409, Message: "Sponsor already exists"}).Once()

	require.Error(t, h.o.SubmitSponsor(ctx, d))
	assert.False(t, d.Busy(), "control is re-enabled")
	assert.True(t, h.dialogs.IsCurrent(d))
	assert.Equal(t, "Sponsor already exists", h.lastNote(t).Message)
	assert.Equal(t, notify.Error, h.lastNote(t).Severity)
}

func TestSponsorSuccessRefreshesSponsors(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenAddSponsor()
	d.SetValue(FieldSponsorName, "Globex")
	d.SetValue(FieldSponsorWebsite, "https://globex.test")
	h.gw.On("CreateSponsor", mock.Anything, api.CreateSponsorRequest{Name: "Globex", Website: "https://globex.test"}).
		Return(api.Sponsor{ID: 4, Name: "Globex"}, nil).Once()
	h.gw.On("ListSponsors", mock.Anything).
		Return(append(sampleSponsors(), api.Sponsor{ID: 4, Name: "Globex"}), nil).Once()

	require.NoError(t, h.o.SubmitSponsor(ctx, d))
	assert.False(t, h.dialogs.IsOpen(dialog.Info))
	assert.Len(t, h.store.Sponsors(), 2)
	assert.Equal(t, SponsorAddedMessage, h.lastNote(t).Message)
}

func TestOpeningAnotherFlowResetsPrevious(t *testing.T) {
	h := newHarness(t)
	first, err := h.o.RequestDelete(1)
	require.NoError(t, err)
	h.o.OpenVerify()

	assert.Equal(t, StateIdle, h.o.State(FlowDeleteEvent))
	assert.Equal(t, StateAwaitingConfirmation, h.o.State(FlowVerifyTicket))
	assert.ErrorIs(t, h.o.ConfirmDelete(ctx, first), ErrStaleDialog)
}

func TestSubmitRoutesByDialog(t *testing.T) {
	h := newHarness(t)
	d := h.o.OpenVerify()
	assert.ErrorIs(t, h.o.Submit(ctx, d), ErrEmptyTicketHash)

	wrong := h.o.OpenAddSponsor()
	assert.ErrorIs(t, h.o.ConfirmDelete(ctx, wrong), ErrWrongDialog)
}

func TestRefreshFailureAfterMutationIsReported(t *testing.T) {
	h := newHarness(t)
	d, err := h.o.RequestDelete(2)
	require.NoError(t, err)
	h.gw.On("DeleteEvent", mock.Anything, uint(2)).Return(nil).Once()
	h.gw.On("ListEvents", mock.Anything).Return(nil, errors.New("down")).Once()
	h.gw.On("ListSponsors", mock.Anything).Return(sampleSponsors(), nil).Maybe()

	require.NoError(t, h.o.ConfirmDelete(ctx, d))
	messages := []string{}
	for _, it := range h.notes.Items() {
		messages = append(messages, it.Message)
	}
	assert.Contains(t, messages, LoadFailedMessage)
	assert.Contains(t, messages, EventDeletedMessage)
	assert.Equal(t, LoadFailedMessage, h.store.LoadError())
}
