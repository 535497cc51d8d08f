package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/pinetree/internal/dom"
	"github.com/dgallion1/pinetree/internal/pine"
)

var (
	ErrNotFound     = errors.New("widget not found")
	ErrCapacity     = errors.New("widget capacity reached")
	ErrTooMany      = errors.New("too many records")
	ErrUnknownPart  = errors.New("unknown part")
	ErrNoSuchTarget = errors.New("no element for node and part")
)

// Session is one hosted widget and the document it renders into. The mutex
// serializes clicks and reads so each click runs to completion before the
// next one starts.
type Session struct {
	mu sync.Mutex

	ID        string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time

	widget *pine.Widget
	doc    *dom.Document
}

// ClickResult reports the state after a click.
type ClickResult struct {
	Region         string `json:"region"`
	SelectedItemID *int64 `json:"selected_item_id"`
	Folded         *bool  `json:"folded,omitempty"`
	Label          string `json:"label,omitempty"`
}

// Click delivers a click on the given part of node id's rendered element.
func (s *Session) Click(id int64, part string) (ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	class, ok := s.widget.Classes().Part(part)
	if !ok {
		return ClickResult{}, fmt.Errorf("%w: %q", ErrUnknownPart, part)
	}
	target, ok := s.doc.Part(id, class)
	if !ok {
		return ClickResult{}, fmt.Errorf("%w: node %d, part %q", ErrNoSuchTarget, id, part)
	}

	region := s.widget.HandleClick(target)
	s.UpdatedAt = time.Now()

	res := ClickResult{
		Region:         region.String(),
		SelectedItemID: s.selectedLocked(),
	}
	if folded, ok := s.widget.Folded(id); ok {
		res.Folded = &folded
	}
	if region == pine.RegionLabel {
		res.Label = target.Text()
	}
	return res, nil
}

// Markup serializes the current content of the widget's container.
func (s *Session) Markup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.InnerHTML()
}

// SelectedItemID returns the current selection, or nil before any.
func (s *Session) SelectedItemID() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Session) selectedLocked() *int64 {
	id, ok := s.widget.SelectedItemID()
	if !ok {
		return nil
	}
	return &id
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID             string    `json:"widget_id"`
	Source         string    `json:"source"`
	Nodes          int       `json:"nodes"`
	SelectedItemID *int64    `json:"selected_item_id"`
	FoldedIDs      []int64   `json:"folded_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:             s.ID,
		Source:         s.Source,
		Nodes:          s.widget.Len(),
		SelectedItemID: s.selectedLocked(),
		FoldedIDs:      s.widget.FoldedIDs(),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
