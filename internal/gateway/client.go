package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// Client speaks the service's JSON envelope over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient returns a client for the service rooted at baseURL, for example
// http://localhost:8080/api.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Gateway = (*Client)(nil)

func (c *Client) ListEvents(ctx context.Context) ([]api.Event, error) {
	var events []api.Event
	err := c.do(ctx, "list events", http.MethodGet, "/events", nil, &events)
	return events, err
}

func (c *Client) ListSponsors(ctx context.Context) ([]api.Sponsor, error) {
	var sponsors []api.Sponsor
	err := c.do(ctx, "list sponsors", http.MethodGet, "/sponsors", nil, &sponsors)
	return sponsors, err
}

func (c *Client) CreateEvent(ctx context.Context, req api.CreateEventRequest) (api.Event, error) {
	var event api.Event
	err := c.do(ctx, "create event", http.MethodPost, "/events", req, &event)
	return event, err
}

func (c *Client) DeleteEvent(ctx context.Context, eventID uint) error {
	return c.do(ctx, "delete event", http.MethodDelete, fmt.Sprintf("/events/%d", eventID), nil, nil)
}

func (c *Client) ListBookings(ctx context.Context, eventID uint) ([]api.BookingDetail, error) {
	var bookings []api.BookingDetail
	err := c.do(ctx, "list bookings", http.MethodGet, fmt.Sprintf("/events/%d/bookings", eventID), nil, &bookings)
	return bookings, err
}

func (c *Client) CreateSponsor(ctx context.Context, req api.CreateSponsorRequest) (api.Sponsor, error) {
	var sponsor api.Sponsor
	err := c.do(ctx, "create sponsor", http.MethodPost, "/sponsors", req, &sponsor)
	return sponsor, err
}

func (c *Client) BookTicket(ctx context.Context, req api.BookTicketRequest) (api.Booking, error) {
	var booking api.Booking
	err := c.do(ctx, "book ticket", http.MethodPost, "/book", req, &booking)
	return booking, err
}

func (c *Client) VerifyTicket(ctx context.Context, ticketHash string) (api.VerifiedBooking, error) {
	var verified api.VerifiedBooking
	err := c.do(ctx, "verify ticket", http.MethodGet, "/verify/"+url.PathEscape(ticketHash), nil, &verified)
	return verified, err
}

func (c *Client) ComputePrice(ctx context.Context, req api.PriceRequest) (api.PriceQuote, error) {
	var quote api.PriceQuote
	err := c.do(ctx, "compute price", http.MethodPost, "/events/price", req, &quote)
	return quote, err
}

// Login exchanges operator credentials for a bearer token, which is sent on
// every later request.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tok api.TokenResponse
	req := api.TokenRequest{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/token", req, &tok); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = tok.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.log.LogRemoteCall(ctx, op, method, path, status, time.Since(start), err)
	}()

	var reader io.Reader
	if body != nil {
		buf, merr := json.Marshal(body)
		if merr != nil {
			return &Error{Op: op, Message: "could not encode request", Err: merr}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Message: "Could not reach the boxoffice service.", Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Status: status, Err: err}
	}

	var env api.Envelope[json.RawMessage]
	decodeErr := json.Unmarshal(raw, &env)

	if status < 200 || status >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Op: op, Status: status, Message: msg}
	}
	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return &Error{Op: op, Status: status, Message: "Unexpected response from the boxoffice service.", Err: decodeErr}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Op: op, Status: status, Message: "Unexpected response from the boxoffice service.", Err: err}
	}
	return nil
}
