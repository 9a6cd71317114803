// Package workflow sequences the console's multi-step operations: open a
// dialog, validate input, call the remote service, refresh the cached view,
// and report the outcome. Each dialog's primary control carries at most one
// call at a time.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"boxoffice/internal/dialog"
	"boxoffice/internal/gateway"
	"boxoffice/internal/inventory"
	"boxoffice/internal/notify"
	"boxoffice/internal/viewstate"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

const (
	LoadFailedMessage     = "Could not load event data."
	EventCreatedMessage   = "Event created successfully!"
	EventDeletedMessage   = "Event deleted successfully."
	SponsorAddedMessage   = "Sponsor added!"
	NoBookingsMessage     = "No bookings found for this event yet."
	BookingsFailedMessage = "Failed to load bookings."
)

// Dialog field names.
const (
	FieldPhone          = "phone"
	FieldTicketHash     = "ticket_hash"
	FieldSponsorName    = "name"
	FieldSponsorWebsite = "website"
)

const DefaultTimeout = 15 * time.Second

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Dialog payloads. The payload type identifies the flow that opened a dialog.
type (
	DeleteTarget struct {
		EventID uint
		Title   string
	}
	BookingTarget struct {
		EventID    uint
		TierID     uint
		EventTitle string
		TierName   string
		Qty        int
	}
	BookingsView struct {
		EventID uint
		Title   string
	}
	VerifyInput  struct{}
	SponsorInput struct{}
	CreateForm   struct{}
	// Result marks a read-only outcome dialog that belongs to no flow.
	Result struct{}
)

func flowOf(d *dialog.Dialog) Flow {
	if d == nil {
		return ""
	}
	switch d.Payload().(type) {
	case DeleteTarget:
		return FlowDeleteEvent
	case BookingTarget:
		return FlowBookTicket
	case BookingsView:
		return FlowViewBookings
	case VerifyInput:
		return FlowVerifyTicket
	case SponsorInput:
		return FlowAddSponsor
	case CreateForm:
		return FlowCreateEvent
	}
	return ""
}

type Orchestrator struct {
	gw      gateway.Gateway
	store   *viewstate.Store
	dialogs *dialog.Stack
	notes   *notify.Queue
	log     *logger.Logger
	timeout time.Duration
	loc     *time.Location

	rngMu sync.Mutex
	rng   *rand.Rand

	flows *machines

	formMu     sync.Mutex
	form       *EventForm
	formDialog *dialog.Dialog
}

type Option func(*Orchestrator)

// WithTimeout bounds every remote call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithRand sets the random source used for seat allocation.
func WithRand(r *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = r }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithLocation sets the zone form times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *Orchestrator) { o.loc = loc }
}

func New(gw gateway.Gateway, store *viewstate.Store, dialogs *dialog.Stack, notes *notify.Queue, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gw:      gw,
		store:   store,
		dialogs: dialogs,
		notes:   notes,
		log:     logger.GetDefault(),
		timeout: DefaultTimeout,
		loc:     time.Local,
		flows:   newMachines(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// State reports where flow currently is.
func (o *Orchestrator) State(f Flow) State {
	return o.flows.get(f)
}

func (o *Orchestrator) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// Load fetches events and sponsors and replaces the cached view. A failure
// degrades the events panel to LoadFailedMessage and keeps the console usable.
func (o *Orchestrator) Load(ctx context.Context) error {
	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	var (
		events   []api.Event
		sponsors []api.Sponsor
	)
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() (err error) {
		events, err = o.gw.ListEvents(gctx)
		return err
	})
	g.Go(func() (err error) {
		sponsors, err = o.gw.ListSponsors(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		o.log.WithError(err).WarnContext(ctx, "Refresh failed")
		o.store.SetLoadError(LoadFailedMessage)
		return err
	}
	o.store.Replace(events, sponsors)
	return nil
}

// Refresh is Load triggered by the operator.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	return o.Load(ctx)
}

// refreshAfterMutation re-reads the view after a confirmed change. The change
// already happened, so a failure here is reported but not returned.
func (o *Orchestrator) refreshAfterMutation(ctx context.Context) {
	if err := o.Load(ctx); err != nil {
		o.notes.Error(LoadFailedMessage)
	}
}

func (o *Orchestrator) refreshSponsors(ctx context.Context) {
	cctx, cancel := o.callCtx(ctx)
	defer cancel()
	sponsors, err := o.gw.ListSponsors(cctx)
	if err != nil {
		o.log.WithError(err).WarnContext(ctx, "Sponsor refresh failed")
		o.notes.Error(LoadFailedMessage)
		return
	}
	o.store.ReplaceSponsors(sponsors)
}

// openInfo shows req in the info slot on behalf of flow. Whatever flow owned
// the slot before is returned to Idle.
func (o *Orchestrator) openInfo(f Flow, req dialog.Request) *dialog.Dialog {
	if prev := flowOf(o.dialogs.Current(dialog.Info)); prev != "" {
		o.flows.reset(prev)
	}
	d := o.dialogs.Open(dialog.Info, req)
	if f != "" {
		o.flows.reset(f)
		o.transition(f, StateAwaitingConfirmation)
	}
	return d
}

func (o *Orchestrator) transition(f Flow, to State) {
	if err := o.flows.move(f, to); err != nil {
		o.log.WithError(err).Debug("Workflow transition rejected")
	}
}

// Dismiss closes surface without touching remote state. Closing the form
// discards its drafts.
func (o *Orchestrator) Dismiss(surface dialog.Surface) {
	if f := flowOf(o.dialogs.Current(surface)); f != "" {
		o.flows.reset(f)
	}
	if surface == dialog.Form {
		o.formMu.Lock()
		o.form = nil
		o.formDialog = nil
		o.formMu.Unlock()
	}
	o.dialogs.Dismiss(surface)
}

// Submit routes the primary control of d to the flow that opened it.
func (o *Orchestrator) Submit(ctx context.Context, d *dialog.Dialog) error {
	switch flowOf(d) {
	case FlowCreateEvent:
		return o.SubmitCreateEvent(ctx)
	case FlowDeleteEvent:
		return o.ConfirmDelete(ctx, d)
	case FlowBookTicket:
		return o.ConfirmBooking(ctx, d)
	case FlowVerifyTicket:
		return o.SubmitVerify(ctx, d)
	case FlowAddSponsor:
		return o.SubmitSponsor(ctx, d)
	}
	// Bookings and result dialogs have no primary action; confirming closes them.
	if o.dialogs.IsCurrent(d) {
		o.Dismiss(d.Surface)
	}
	return nil
}

func payloadOf[T any](o *Orchestrator, d *dialog.Dialog) (T, error) {
	var zero T
	if !o.dialogs.IsCurrent(d) {
		return zero, ErrStaleDialog
	}
	p, ok := d.Payload().(T)
	if !ok {
		return zero, ErrWrongDialog
	}
	return p, nil
}

// begin disables d's primary control and marks the flow as submitting.
func (o *Orchestrator) begin(f Flow, d *dialog.Dialog) bool {
	if !d.TryBegin() {
		return false
	}
	o.transition(f, StateSubmitting)
	o.dialogs.Touch()
	return true
}

// fail re-enables d and leaves it open for a retry.
func (o *Orchestrator) fail(f Flow, d *dialog.Dialog, err error) {
	d.End()
	if o.dialogs.IsCurrent(d) {
		o.transition(f, StateAwaitingConfirmation)
	}
	o.dialogs.Touch()
	o.notes.Error(err.Error())
}

// succeed closes d if it is still showing.
func (o *Orchestrator) succeed(f Flow, d *dialog.Dialog) {
	if o.dialogs.IsCurrent(d) {
		o.transition(f, StateIdle)
	}
	o.dialogs.CloseDialog(d)
}

func (o *Orchestrator) allocate(total, tiers int) ([]int, error) {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return inventory.Allocate(total, tiers, o.rng)
}

// Create event

// OpenCreateEvent opens the form surface on an empty form.
func (o *Orchestrator) OpenCreateEvent() *dialog.Dialog {
	o.formMu.Lock()
	defer o.formMu.Unlock()
	o.form = &EventForm{}
	o.formDialog = o.dialogs.Open(dialog.Form, dialog.Request{
		Kind:  dialog.CollectInput,
		Title: "Create New Event",
		Actions: []dialog.Action{
			{Label: "Cancel", Role: dialog.Dismiss},
			{Label: "Create Event", Role: dialog.Primary, BusyLabel: "Creating..."},
		},
		Payload: CreateForm{},
	})
	o.flows.reset(FlowCreateEvent)
	o.transition(FlowCreateEvent, StateAwaitingConfirmation)
	return o.formDialog
}

// Form returns a copy of the open form.
func (o *Orchestrator) Form() (EventForm, bool) {
	o.formMu.Lock()
	defer o.formMu.Unlock()
	if o.form == nil {
		return EventForm{}, false
	}
	return o.form.clone(), true
}

// EditForm applies fn to the open form.
func (o *Orchestrator) EditForm(fn func(*EventForm)) error {
	o.formMu.Lock()
	if o.form == nil {
		o.formMu.Unlock()
		return ErrFormClosed
	}
	fn(o.form)
	o.formMu.Unlock()
	o.dialogs.Touch()
	return nil
}

func (o *Orchestrator) AddTier() error {
	return o.EditForm(func(f *EventForm) {
		f.Tiers = append(f.Tiers, TierDraft{Name: defaultTierName})
	})
}

func (o *Orchestrator) RemoveTier(i int) error {
	return o.EditForm(func(f *EventForm) {
		if i >= 0 && i < len(f.Tiers) {
			f.Tiers = append(f.Tiers[:i], f.Tiers[i+1:]...)
		}
	})
}

func (o *Orchestrator) ToggleSponsor(id uint) error {
	return o.EditForm(func(f *EventForm) { f.toggleSponsor(id) })
}

// RandomizeSeats fills every tier's seat count with a random split of the
// declared total. A blank or non-numeric total, or a form without tiers, is
// refused and reported.
func (o *Orchestrator) RandomizeSeats() error {
	o.formMu.Lock()
	if o.form == nil {
		o.formMu.Unlock()
		return ErrFormClosed
	}
	total, err := inventory.ParseTotal(o.form.TotalSeats)
	var bins []int
	if err == nil {
		bins, err = o.allocate(total, len(o.form.Tiers))
	}
	if err != nil {
		o.formMu.Unlock()
		o.notes.Error(err.Error())
		return err
	}
	for i, n := range bins {
		o.form.Tiers[i].Seats = strconv.Itoa(n)
	}
	o.formMu.Unlock()
	o.dialogs.Touch()
	return nil
}

// SubmitCreateEvent validates the form locally and creates the event. On a
// remote failure the form stays open and populated.
func (o *Orchestrator) SubmitCreateEvent(ctx context.Context) error {
	o.formMu.Lock()
	form, d := o.form, o.formDialog
	if form == nil || !o.dialogs.IsCurrent(d) {
		o.formMu.Unlock()
		return ErrFormClosed
	}
	if d.Busy() {
		o.formMu.Unlock()
		return ErrInFlight
	}
	req, err := form.build(o.loc)
	o.formMu.Unlock()
	if err != nil {
		o.notes.Error(err.Error())
		return err
	}

	if !o.begin(FlowCreateEvent, d) {
		return ErrInFlight
	}
	cctx, cancel := o.callCtx(ctx)
	event, err := o.gw.CreateEvent(cctx, req)
	cancel()
	if err != nil {
		o.fail(FlowCreateEvent, d, err)
		return err
	}
	o.log.LogEventCreated(ctx, event.ID, event.Title, len(event.Tiers))

	o.formMu.Lock()
	if o.formDialog == d {
		o.form = nil
		o.formDialog = nil
	}
	o.formMu.Unlock()
	o.succeed(FlowCreateEvent, d)

	o.refreshAfterMutation(ctx)
	o.notes.Success(EventCreatedMessage)
	return nil
}

// Delete event

func (o *Orchestrator) RequestDelete(eventID uint) (*dialog.Dialog, error) {
	ev, ok := o.store.Snapshot().Event(eventID)
	if !ok {
		return nil, ErrUnknownEvent
	}
	return o.openInfo(FlowDeleteEvent, dialog.Request{
		Kind:  dialog.Confirm,
		Title: "Confirm Deletion",
		Body: []string{
			fmt.Sprintf("Are you sure you want to delete the event %q? This action cannot be undone.", ev.Title),
		},
		Actions: []dialog.Action{
			{Label: "Cancel", Role: dialog.Dismiss},
			{Label: "Delete", Role: dialog.Primary, BusyLabel: "Deleting..."},
		},
		Payload: DeleteTarget{EventID: ev.ID, Title: ev.Title},
	}), nil
}

func (o *Orchestrator) ConfirmDelete(ctx context.Context, d *dialog.Dialog) error {
	target, err := payloadOf[DeleteTarget](o, d)
	if err != nil {
		return err
	}
	if !o.begin(FlowDeleteEvent, d) {
		return ErrInFlight
	}
	cctx, cancel := o.callCtx(ctx)
	err = o.gw.DeleteEvent(cctx, target.EventID)
	cancel()
	if err != nil {
		o.fail(FlowDeleteEvent, d, err)
		return err
	}
	o.log.LogEventDeleted(ctx, target.EventID)
	o.succeed(FlowDeleteEvent, d)
	o.refreshAfterMutation(ctx)
	o.notes.Info(EventDeletedMessage)
	return nil
}

// View bookings

// OpenBookings shows the bookings dialog in its loading state.
func (o *Orchestrator) OpenBookings(eventID uint) (*dialog.Dialog, error) {
	ev, ok := o.store.Snapshot().Event(eventID)
	if !ok {
		return nil, ErrUnknownEvent
	}
	return o.openInfo(FlowViewBookings, bookingsRequest(
		BookingsView{EventID: ev.ID, Title: ev.Title},
		dialog.Loading,
		"Loading bookings...",
	)), nil
}

func bookingsRequest(view BookingsView, kind dialog.Kind, body string) dialog.Request {
	req := dialog.Request{
		Kind:    kind,
		Title:   "Bookings for " + view.Title,
		Actions: []dialog.Action{{Label: "Close", Role: dialog.Dismiss}},
		Payload: view,
	}
	if body != "" {
		req.Body = []string{body}
	}
	return req
}

// LoadBookings fetches bookings into d. Results arriving after d was closed
// or replaced are dropped.
func (o *Orchestrator) LoadBookings(ctx context.Context, d *dialog.Dialog) error {
	view, err := payloadOf[BookingsView](o, d)
	if err != nil {
		return err
	}
	if !o.begin(FlowViewBookings, d) {
		return ErrInFlight
	}
	cctx, cancel := o.callCtx(ctx)
	bookings, err := o.gw.ListBookings(cctx, view.EventID)
	cancel()
	d.End()

	if !o.dialogs.IsCurrent(d) {
		return ErrStaleDialog
	}
	if err != nil {
		o.log.WithError(err).WarnContext(ctx, "Bookings fetch failed")
		o.transition(FlowViewBookings, StateAwaitingConfirmation)
		o.dialogs.Update(d, bookingsRequest(view, dialog.ShowResult, BookingsFailedMessage))
		return err
	}

	o.transition(FlowViewBookings, StateIdle)
	if len(bookings) == 0 {
		o.dialogs.Update(d, bookingsRequest(view, dialog.ShowResult, NoBookingsMessage))
		return nil
	}
	req := bookingsRequest(view, dialog.Table, "")
	req.Columns = []string{"Phone Number", "Tier", "Qty", "Ticket Hash"}
	for _, b := range bookings {
		req.Rows = append(req.Rows, []string{b.UserPhone, b.TierName, strconv.Itoa(b.Qty), b.TicketHash})
	}
	o.dialogs.Update(d, req)
	return nil
}

// ViewBookings opens the bookings dialog and fills it.
func (o *Orchestrator) ViewBookings(ctx context.Context, eventID uint) error {
	d, err := o.OpenBookings(eventID)
	if err != nil {
		return err
	}
	return o.LoadBookings(ctx, d)
}

// Book ticket

// RequestBooking checks the quantity and asks for the patron's phone.
// Availability is left to the remote service.
func (o *Orchestrator) RequestBooking(eventID, tierID uint, qtyInput string) (*dialog.Dialog, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(qtyInput))
	if err != nil || qty <= 0 {
		o.notes.Error(ErrInvalidQuantity.Error())
		return nil, ErrInvalidQuantity
	}
	ev, ok := o.store.Snapshot().Event(eventID)
	if !ok {
		return nil, ErrUnknownEvent
	}
	tier, ok := ev.Tier(tierID)
	if !ok {
		o.notes.Error(ErrUnknownTier.Error())
		return nil, ErrUnknownTier
	}
	return o.openInfo(FlowBookTicket, dialog.Request{
		Kind:  dialog.CollectInput,
		Title: "Enter Your Phone Number",
		Body: []string{
			fmt.Sprintf("%d x %s for %s", qty, tier.Name, ev.Title),
			"Please enter your 10-digit phone number to complete the booking.",
		},
		Fields: []dialog.Field{
			{Name: FieldPhone, Label: "Phone", Placeholder: "1234567890", MaxLen: 10},
		},
		Actions: []dialog.Action{
			{Label: "Cancel", Role: dialog.Dismiss},
			{Label: "Confirm Booking", Role: dialog.Primary, BusyLabel: "Booking..."},
		},
		Payload: BookingTarget{
			EventID:    ev.ID,
			TierID:     tier.ID,
			EventTitle: ev.Title,
			TierName:   tier.Name,
			Qty:        qty,
		},
	}), nil
}

// QuotePrice asks the service for the current price of the booking in d and
// shows it on the dialog as an estimate.
func (o *Orchestrator) QuotePrice(ctx context.Context, d *dialog.Dialog) (api.PriceQuote, error) {
	target, err := payloadOf[BookingTarget](o, d)
	if err != nil {
		return api.PriceQuote{}, err
	}
	cctx, cancel := o.callCtx(ctx)
	quote, err := o.gw.ComputePrice(cctx, api.PriceRequest{TierID: target.TierID, Qty: target.Qty})
	cancel()
	if !o.dialogs.IsCurrent(d) {
		return quote, ErrStaleDialog
	}
	if err != nil {
		d.SetMessage("Price estimate unavailable: " + err.Error())
	} else {
		d.SetMessage(fmt.Sprintf("Estimated total: ₹%.2f", quote.DynamicPrice))
	}
	o.dialogs.Touch()
	return quote, err
}

// ConfirmBooking validates the phone and books. On success the phone dialog
// is replaced by the ticket result; on failure it stays open for a retry.
func (o *Orchestrator) ConfirmBooking(ctx context.Context, d *dialog.Dialog) error {
	target, err := payloadOf[BookingTarget](o, d)
	if err != nil {
		return err
	}
	phone := d.TrimmedValue(FieldPhone)
	if !phonePattern.MatchString(phone) {
		o.notes.Error(ErrInvalidPhone.Error())
		return ErrInvalidPhone
	}
	if !o.begin(FlowBookTicket, d) {
		return ErrInFlight
	}
	cctx, cancel := o.callCtx(ctx)
	booking, err := o.gw.BookTicket(cctx, api.BookTicketRequest{
		UserPhone: phone,
		EventID:   target.EventID,
		TierID:    target.TierID,
		Qty:       target.Qty,
	})
	cancel()
	if err != nil {
		o.fail(FlowBookTicket, d, err)
		return err
	}
	o.log.LogBookingCreated(ctx, booking.ID, booking.EventID, booking.TierID, booking.Qty, booking.PricePaid)

	o.succeed(FlowBookTicket, d)
	o.openInfo("", dialog.Request{
		Kind:  dialog.ShowResult,
		Title: "Booking Successful!",
		Body: []string{
			"Your ticket is confirmed! Here is your unique ticket hash. Please save it for verification.",
			booking.TicketHash,
			fmt.Sprintf("Final Price: ₹%.2f", booking.PricePaid),
		},
		Actions: []dialog.Action{{Label: "Done", Role: dialog.Dismiss}},
		Payload: Result{},
	})
	o.refreshAfterMutation(ctx)
	return nil
}

// Verify ticket

func (o *Orchestrator) OpenVerify() *dialog.Dialog {
	return o.openInfo(FlowVerifyTicket, dialog.Request{
		Kind:   dialog.CollectInput,
		Title:  "Verify Ticket",
		Fields: []dialog.Field{{Name: FieldTicketHash, Label: "Ticket Hash", Placeholder: "Enter ticket hash"}},
		Actions: []dialog.Action{
			{Label: "Cancel", Role: dialog.Dismiss},
			{Label: "Verify", Role: dialog.Primary, BusyLabel: "Verifying..."},
		},
		Payload: VerifyInput{},
	})
}

// SubmitVerify looks up the hash typed into d. A failure, including an
// unknown hash, is reported and leaves d open.
func (o *Orchestrator) SubmitVerify(ctx context.Context, d *dialog.Dialog) error {
	if _, err := payloadOf[VerifyInput](o, d); err != nil {
		return err
	}
	hash := d.TrimmedValue(FieldTicketHash)
	if hash == "" {
		o.notes.Error(ErrEmptyTicketHash.Error())
		return ErrEmptyTicketHash
	}
	if !o.begin(FlowVerifyTicket, d) {
		return ErrInFlight
	}
	cctx, cancel := o.callCtx(ctx)
	v, err := o.gw.VerifyTicket(cctx, hash)
	cancel()
	if err != nil {
		o.fail(FlowVerifyTicket, d, err)
		return err
	}
	o.succeed(FlowVerifyTicket, d)
	o.openInfo("", dialog.Request{
		Kind:  dialog.ShowResult,
		Title: "Ticket Verified!",
		Body: []string{
			"Event: " + v.EventTitle,
			"Phone: " + v.UserPhone,
			"Tickets: " + strconv.Itoa(v.Qty),
			"Hash: " + v.TicketHash,
		},
		Actions: []dialog.Action{{Label: "Close", Role: dialog.Dismiss}},
		Payload: Result{},
	})
	return nil
}

// Add sponsor

func (o *Orchestrator) OpenAddSponsor() *dialog.Dialog {
	return o.openInfo(FlowAddSponsor, dialog.Request{
		Kind:  dialog.CollectInput,
		Title: "Add New Sponsor",
		Fields: []dialog.Field{
			{Name: FieldSponsorName, Label: "Sponsor Name", Placeholder: "Sponsor Name", MaxLen: 200},
			{Name: FieldSponsorWebsite, Label: "Website", Placeholder: "Website (optional)", MaxLen: 255},
		},
		Actions: []dialog.Action{
			{Label: "Cancel", Role: dialog.Dismiss},
			{Label: "Save Sponsor", Role: dialog.Primary, BusyLabel: "Saving..."},
		},
		Payload: SponsorInput{},
	})
}

// SubmitSponsor creates the sponsor typed into d. Failures are reported and
// the control is re-enabled, like every other flow.
func (o *Orchestrator) SubmitSponsor(ctx context.Context, d *dialog.Dialog) error {
	if _, err := payloadOf[SponsorInput](o, d); err != nil {
		return err
	}
	name := d.TrimmedValue(FieldSponsorName)
	if name == "" {
		o.notes.Error(ErrSponsorNameRequired.Error())
		return ErrSponsorNameRequired
	}
	if !o.begin(FlowAddSponsor, d) {
		return ErrInFlight
	}
	cctx, cancel := o.callCtx(ctx)
	sponsor, err := o.gw.CreateSponsor(cctx, api.CreateSponsorRequest{
		Name:    name,
		Website: d.TrimmedValue(FieldSponsorWebsite),
	})
	cancel()
	if err != nil {
		o.fail(FlowAddSponsor, d, err)
		return err
	}
	o.log.LogSponsorCreated(ctx, sponsor.ID, sponsor.Name)
	o.succeed(FlowAddSponsor, d)
	o.refreshSponsors(ctx)
	o.notes.Success(SponsorAddedMessage)
	return nil
}

// IsIgnorable reports errors the UI can drop silently because the operator
// has already been told or nothing happened.
func IsIgnorable(err error) bool {
	return err == nil ||
		errors.Is(err, ErrInFlight) ||
		errors.Is(err, ErrStaleDialog) ||
		errors.Is(err, context.Canceled)
}
