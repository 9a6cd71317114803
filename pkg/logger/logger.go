package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance writing to stdout
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter creates a logger writing to w. The console uses this to keep
// log output off the terminal it draws on.
func NewWithWriter(w io.Writer, levelStr string) *Logger {
	level := getLogLevel(levelStr)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithOperator adds the authenticated operator to logger context
func (l *Logger) WithOperator(username string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("operator", username)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// LogRemoteCall logs one outbound call made by the console gateway
func (l *Logger) LogRemoteCall(ctx context.Context, op, method, path string, status int, duration time.Duration, err error) {
	args := []any{
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
	}
	if err != nil {
		l.Logger.WarnContext(ctx, "Remote Call Failed", append(args, slog.String("error", err.Error()))...)
		return
	}
	l.Logger.DebugContext(ctx, "Remote Call", args...)
}

// Business logic logging methods

// LogEventCreated logs when an event is created
func (l *Logger) LogEventCreated(ctx context.Context, eventID uint, title string, tiers int) {
	l.Logger.InfoContext(ctx,
		"Event Created",
		slog.Uint64("event_id", uint64(eventID)),
		slog.String("title", title),
		slog.Int("tiers", tiers),
	)
}

// LogEventDeleted logs when an event is deleted
func (l *Logger) LogEventDeleted(ctx context.Context, eventID uint) {
	l.Logger.InfoContext(ctx,
		"Event Deleted",
		slog.Uint64("event_id", uint64(eventID)),
	)
}

// LogSponsorCreated logs when a sponsor is created
func (l *Logger) LogSponsorCreated(ctx context.Context, sponsorID uint, name string) {
	l.Logger.InfoContext(ctx,
		"Sponsor Created",
		slog.Uint64("sponsor_id", uint64(sponsorID)),
		slog.String("name", name),
	)
}

// LogBookingCreated logs when a booking is created
func (l *Logger) LogBookingCreated(ctx context.Context, bookingID, eventID, tierID uint, qty int, pricePaid float64) {
	l.Logger.InfoContext(ctx,
		"Booking Created",
		slog.Uint64("booking_id", uint64(bookingID)),
		slog.Uint64("event_id", uint64(eventID)),
		slog.Uint64("tier_id", uint64(tierID)),
		slog.Int("qty", qty),
		slog.Float64("price_paid", pricePaid),
	)
}

// LogTicketVerified logs a verification lookup
func (l *Logger) LogTicketVerified(ctx context.Context, ticketHash string, found bool) {
	l.Logger.InfoContext(ctx,
		"Ticket Verified",
		slog.String("ticket_hash", ticketHash),
		slog.Bool("found", found),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, username, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("operator", username),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
