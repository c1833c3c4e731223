package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/editor"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/viewport"
	"github.com/rs/zerolog"
)

// Session is one rendered frame instance being edited. Every access goes through Do.
type Session struct {
	ID    string
	Key   string
	Frame string

	mu         sync.Mutex
	editor     *editor.Editor
	controller *editor.Controller
	saved      *editor.Saved

	// guarded by Registry.mu
	touched time.Time
}

func newSession(rec Record, frame string, referenceWidth float64) *Session {
	s := &Session{ID: uuid.NewString(), Key: rec.Key, Frame: frame}
	opts := []editor.Option{
		editor.WithReferenceWidth(referenceWidth),
		editor.WithSaveFunc(func(saved editor.Saved) {
			s.saved = &saved
		}),
	}
	if rec.Natural.Width > 0 && rec.Natural.Height > 0 {
		opts = append(opts, editor.WithNatural(rec.Natural))
	}
	s.editor = editor.New(rec.Source, rec.Variants, opts...)
	s.controller = editor.NewController(s.editor)
	return s
}

// Do runs fn while holding the session lock.
func (s *Session) Do(fn func(e *editor.Editor, c *editor.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.editor, s.controller)
}

// takeSaved returns the record of the last save once. The session lock must be held.
func (s *Session) takeSaved() *editor.Saved {
	saved := s.saved
	s.saved = nil
	return saved
}

func (s *Session) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	e.Str("id", s.ID).Str("key", s.Key)
	if level <= zerolog.DebugLevel {
		e.Str("frame", s.Frame)
	}
}

// Snapshot is what every session endpoint answers with.
type Snapshot struct {
	ID         string             `json:"id"`
	Key        string             `json:"key"`
	Frame      string             `json:"frame,omitempty"`
	State      editor.State       `json:"state"`
	Drag       editor.DragState   `json:"drag"`
	Device     data.Device        `json:"device"`
	Source     string             `json:"source"`
	HasChanges bool               `json:"hasChanges"`
	Ready      bool               `json:"ready"`
	LoadError  string             `json:"loadError,omitempty"`
	Container  editor.Size        `json:"container"`
	Natural    editor.Size        `json:"natural"`
	Current    data.Params        `json:"current"`
	Draft      data.Variants      `json:"draft"`
	Committed  data.Variants      `json:"committed"`
	Placement  viewport.Placement `json:"placement"`
	Handled    *bool              `json:"handled,omitempty"`
}

// snapshot must be called with the session lock held.
func (s *Session) snapshot() Snapshot {
	e := s.editor
	snap := Snapshot{
		ID:         s.ID,
		Key:        s.Key,
		Frame:      s.Frame,
		State:      e.State(),
		Drag:       s.controller.State(),
		Device:     e.Device(),
		Source:     e.Source(),
		HasChanges: e.HasChanges(),
		Ready:      e.Ready(),
		Container:  e.Container(),
		Natural:    e.Natural(),
		Current:    e.Current(),
		Draft:      e.Draft(),
		Committed:  e.Committed(),
		Placement:  e.Placement(),
	}
	if err := e.LoadError(); err != nil {
		snap.LoadError = err.Error()
	}
	return snap
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
}

func NewRegistry(idle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
	}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.touched = r.now()
	r.sessions[s.ID] = s
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.touched = r.now()
	}
	return s, ok
}

func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the configured limit.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)
	n := 0
	for id, s := range r.sessions {
		if s.touched.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	if r.idle <= 0 {
		return
	}
	interval := max(r.idle/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logging.Info("server.Registry.Run", "sweep", "ok", "", map[string]any{"dropped": n, "left": r.Len()})
			}
		}
	}
}
