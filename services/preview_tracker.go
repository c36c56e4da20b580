package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/incognitoworld123-dev/RationalART/models"
)

type PreviewStatus string

const (
	PreviewPending PreviewStatus = "pending"
	PreviewReady   PreviewStatus = "ready"
	PreviewFailed  PreviewStatus = "failed"
)

var ErrPreviewNotFound = errors.New("preview not found")

// Preview is one in-flight or finished visualization.
type Preview struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"-"`
	Status        PreviewStatus            `json:"status"`
	RefinedPrompt string                   `json:"refined_prompt,omitempty"`
	Generation    *models.GenerationResult `json:"generation,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

// PreviewTracker guards against late-arriving generation results. Each
// client has at most one active preview; starting a new one supersedes the
// old, and a result is applied only if its generation id still matches the
// active one. A stale result is dropped silently, never an error.
type PreviewTracker struct {
	mu       sync.Mutex
	active   map[string]string   // userID -> active preview id
	previews map[string]*Preview // preview id -> preview
}

func NewPreviewTracker() *PreviewTracker {
	return &PreviewTracker{
		active:   make(map[string]string),
		previews: make(map[string]*Preview),
	}
}

// Begin registers a new active preview for the client, superseding and
// discarding any previous one.
func (t *PreviewTracker) Begin(userID string) *Preview {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.active[userID]; ok {
		delete(t.previews, prev)
	}

	p := &Preview{
		ID:     uuid.New().String(),
		UserID: userID,
		Status: PreviewPending,
	}
	t.active[userID] = p.ID
	t.previews[p.ID] = p
	return p
}

// Complete applies a finished result if the preview is still the active one.
// Returns false when the result arrived too late and was dropped.
func (t *PreviewTracker) Complete(id string, result *VisualizeResult) bool {
	return t.apply(id, func(p *Preview) {
		p.Status = PreviewReady
		p.RefinedPrompt = result.RefinedPrompt
		p.Generation = result.Generation
	})
}

// Fail records a fatal generation error, if the preview is still active.
func (t *PreviewTracker) Fail(id, message string) bool {
	return t.apply(id, func(p *Preview) {
		p.Status = PreviewFailed
		p.Error = message
	})
}

func (t *PreviewTracker) apply(id string, fn func(*Preview)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.previews[id]
	if !ok || t.active[p.UserID] != id {
		return false
	}
	fn(p)
	return true
}

// Get returns the preview by id. Superseded previews are gone.
func (t *PreviewTracker) Get(id string) (*Preview, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.previews[id]
	if !ok {
		return nil, ErrPreviewNotFound
	}
	snapshot := *p
	return &snapshot, nil
}
