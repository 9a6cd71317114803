package dialog

import "sync"

// Stack holds at most one dialog per surface. Opening any surface shows the
// backdrop; closing any surface hides it.
type Stack struct {
	mu       sync.Mutex
	nextID   uint64
	open     map[Surface]*Dialog
	backdrop bool
	changed  chan struct{}
}

func NewStack() *Stack {
	return &Stack{
		open:    make(map[Surface]*Dialog),
		changed: make(chan struct{}, 1),
	}
}

// Open shows req on surface, replacing whatever the surface showed before.
func (s *Stack) Open(surface Surface, req Request) *Dialog {
	s.mu.Lock()
	s.nextID++
	d := newDialog(s.nextID, surface, req)
	s.open[surface] = d
	s.backdrop = true
	s.mu.Unlock()
	s.signal()
	return d
}

// Close hides surface and the backdrop. Closing an empty surface only hides
// the backdrop.
func (s *Stack) Close(surface Surface) {
	s.mu.Lock()
	delete(s.open, surface)
	s.backdrop = false
	s.mu.Unlock()
	s.signal()
}

// CloseDialog closes d's surface only if d is still the dialog shown there.
func (s *Stack) CloseDialog(d *Dialog) bool {
	s.mu.Lock()
	if s.open[d.Surface] != d {
		s.mu.Unlock()
		return false
	}
	delete(s.open, d.Surface)
	s.backdrop = false
	s.mu.Unlock()
	s.signal()
	return true
}

// Dismiss is the generic dismiss control. It discards transient input only.
func (s *Stack) Dismiss(surface Surface) {
	s.Close(surface)
}

// Update replaces the content of d in place if it is still current.
func (s *Stack) Update(d *Dialog, req Request) bool {
	if !s.IsCurrent(d) {
		return false
	}
	d.replace(req)
	s.signal()
	return true
}

// Touch signals a redraw after a dialog mutated its own state.
func (s *Stack) Touch() {
	s.signal()
}

func (s *Stack) Current(surface Surface) *Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[surface]
}

func (s *Stack) IsCurrent(d *Dialog) bool {
	if d == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[d.Surface] == d
}

func (s *Stack) IsOpen(surface Surface) bool {
	return s.Current(surface) != nil
}

func (s *Stack) BackdropVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backdrop
}

// Top returns the dialog that receives input: the info slot wins over the
// form because it is drawn above it.
func (s *Stack) Top() *Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.open[Info]; d != nil {
		return d
	}
	return s.open[Form]
}

func (s *Stack) Changed() <-chan struct{} {
	return s.changed
}

func (s *Stack) signal() {
	select {
	case s.changed <- struct{}{}:
	default:
	}
}
