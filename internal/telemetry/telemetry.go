// Package telemetry provides a JSONL event stream for recording what happens
// during a skillmesh session. Compiles, validations, and every wizard choice
// are recorded as structured JSON events tagged with a session ID, so a
// configuration session can be audited or replayed later.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindSessionStart  = "session_start"
	KindSessionDone   = "session_done"
	KindCompile       = "compile"
	KindValidate      = "validate"
	KindSkillSelected = "skill_selected"
	KindSkillRemoved  = "skill_removed"
	KindSkillBlocked  = "skill_blocked"
	KindModelReloaded = "model_reloaded"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, the session it belongs to, an optional skill, and arbitrary
// structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	SessionID string    `json:"session"`
	Skill     string    `json:"skill,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events as JSONL. It is safe for concurrent use by
// multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	w       io.WriteCloser
	enc     *json.Encoder
	mu      sync.Mutex
	session string
	now     func() time.Time
}

// NewEmitter creates an Emitter that appends JSONL events to the file at
// path, creating it if needed. Each Emitter gets a fresh session ID.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return newEmitter(f), nil
}

func newEmitter(w io.WriteCloser) *Emitter {
	return &Emitter{
		w:       w,
		enc:     json.NewEncoder(w),
		session: uuid.NewString(),
		now:     time.Now,
	}
}

// SessionID returns the session ID stamped on every event. A nil Emitter
// returns the empty string.
func (e *Emitter) SessionID() string {
	if e == nil {
		return ""
	}
	return e.session
}

// Emit writes a single event. A zero Timestamp or empty SessionID is filled
// in. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if evt.SessionID == "" {
		evt.SessionID = e.session
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record is shorthand for emitting an event of kind about skill.
func (e *Emitter) Record(kind, skill string, data any) error {
	return e.Emit(Event{Kind: kind, Skill: skill, Data: data})
}

// Close closes the underlying file. Calling Close on a nil Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.w.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
