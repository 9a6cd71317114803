// Package dialog manages the console's modal surfaces: one create-event form
// and one reusable info slot, behind a shared backdrop. Content for the info
// slot is described by a tagged Request and replaced on every Open.
package dialog

import (
	"strings"
	"sync"
	"unicode/utf8"
)

type Surface int

const (
	Form Surface = iota
	Info
)

func (s Surface) String() string {
	if s == Form {
		return "form"
	}
	return "info"
}

type Kind int

const (
	Confirm Kind = iota
	CollectInput
	ShowResult
	Loading
	Table
)

// Role tells the renderer how an action behaves. Dismiss actions close the
// enclosing surface no matter which workflow opened it.
type Role int

const (
	Primary Role = iota
	Dismiss
)

type Action struct {
	Label string
	Role  Role
	// BusyLabel replaces Label while the primary control is disabled.
	BusyLabel string
}

type Field struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	MaxLen      int
}

type Request struct {
	Kind    Kind
	Title   string
	Body    []string
	Fields  []Field
	Columns []string
	Rows    [][]string
	Actions []Action
	// Payload carries flow-specific context (event, tier, quantity).
	Payload any
}

// Dialog is one opened request. It stays valid after the surface is closed
// or replaced, but IsCurrent reports false from then on.
type Dialog struct {
	ID      uint64
	Surface Surface

	mu      sync.Mutex
	req     Request
	values  map[string]string
	busy    bool
	message string
}

func newDialog(id uint64, surface Surface, req Request) *Dialog {
	d := &Dialog{ID: id, Surface: surface, req: req, values: map[string]string{}}
	for _, f := range req.Fields {
		d.values[f.Name] = f.Value
	}
	return d
}

func (d *Dialog) Request() Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.req
}

func (d *Dialog) Kind() Kind {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.req.Kind
}

func (d *Dialog) Payload() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.req.Payload
}

func (d *Dialog) SetValue(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.req.Fields {
		if f.Name == name && f.MaxLen > 0 && utf8.RuneCountInString(value) > f.MaxLen {
			value = string([]rune(value)[:f.MaxLen])
		}
	}
	d.values[name] = value
}

func (d *Dialog) Value(name string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[name]
}

// TrimmedValue is Value with surrounding whitespace removed.
func (d *Dialog) TrimmedValue(name string) string {
	return strings.TrimSpace(d.Value(name))
}

// Busy reports whether the primary control is disabled by an in-flight call.
func (d *Dialog) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// TryBegin disables the primary control. It returns false if the control
// was already disabled, in which case the caller must not submit again.
func (d *Dialog) TryBegin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return false
	}
	d.busy = true
	return true
}

// End re-enables the primary control.
func (d *Dialog) End() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

// Message is the inline status line shown under the body.
func (d *Dialog) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message
}

func (d *Dialog) SetMessage(msg string) {
	d.mu.Lock()
	d.message = msg
	d.mu.Unlock()
}

// replace swaps the content in place, used for loading -> loaded transitions.
func (d *Dialog) replace(req Request) {
	d.mu.Lock()
	d.req = req
	for _, f := range req.Fields {
		if _, ok := d.values[f.Name]; !ok {
			d.values[f.Name] = f.Value
		}
	}
	d.mu.Unlock()
}
