package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/pinetree/internal/config"
	"github.com/dgallion1/pinetree/internal/pine"
)

func testConfig() config.Config {
	return config.Config{
		ClassPrefix: "pine",
		IndentWidth: 4,
		WidgetTTL:   time.Hour,
		MaxWidgets:  10,
		MaxRecords:  100,
	}
}

func newTestManager(cfg config.Config) *Manager {
	return NewManager(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func exampleRecords() []pine.Record {
	return []pine.Record{
		{ItemID: 1, ItemParentID: pine.Parent(0), ItemName: "A"},
		{ItemID: 2, ItemParentID: pine.Parent(0), ItemName: "B"},
		{ItemID: 3, ItemParentID: pine.Parent(1), ItemName: "A1"},
	}
}

func TestManager_CreateAndClick(t *testing.T) {
	m := newTestManager(testConfig())
	sess, err := m.Create(exampleRecords(), CreateOptions{Source: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.ID) != 26 {
		t.Errorf("expected 26-char id, got %q", sess.ID)
	}

	res, err := m.Click(sess.ID, 1, "icon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Region != "icon" {
		t.Errorf("expected icon region, got %q", res.Region)
	}
	if res.Folded == nil || *res.Folded {
		t.Errorf("expected node 1 unfolded, got %v", res.Folded)
	}
	if res.SelectedItemID != nil {
		t.Errorf("expected no selection, got %d", *res.SelectedItemID)
	}
	if res.Label != "" {
		t.Errorf("expected no label for an icon click, got %q", res.Label)
	}

	res, err = m.Click(sess.ID, 2, "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SelectedItemID == nil || *res.SelectedItemID != 2 {
		t.Errorf("expected selection 2, got %v", res.SelectedItemID)
	}
	if res.Folded != nil {
		t.Error("expected no fold state for a leaf")
	}
	if res.Label != "B" {
		t.Errorf("expected label B, got %q", res.Label)
	}

	markup, err := sess.Markup()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(markup, "pine__element--unfolded") {
		t.Error("expected markup to reflect the unfold")
	}
	if !strings.Contains(markup, "pine__name pine__name--selected") {
		t.Error("expected markup to reflect the selection")
	}

	snap := sess.Snapshot()
	if snap.Nodes != 4 || snap.Source != "inline" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if len(snap.FoldedIDs) != 0 {
		t.Errorf("expected no folded ids, got %v", snap.FoldedIDs)
	}

	stats := m.Stats()
	if stats["render"].Count != 1 || stats["click"].Count != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestManager_ClickErrors(t *testing.T) {
	m := newTestManager(testConfig())
	sess, err := m.Create(exampleRecords(), CreateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Click("missing", 1, "icon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Click(sess.ID, 1, "bogus"); !errors.Is(err, ErrUnknownPart) {
		t.Errorf("expected ErrUnknownPart, got %v", err)
	}
	if _, err := m.Click(sess.ID, 42, "icon"); !errors.Is(err, ErrNoSuchTarget) {
		t.Errorf("expected ErrNoSuchTarget, got %v", err)
	}
	if _, err := m.Click(sess.ID, 0, "icon"); !errors.Is(err, ErrNoSuchTarget) {
		t.Errorf("expected root to have no icon, got %v", err)
	}
}

func TestManager_CreateErrors(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRecords = 2
	cfg.MaxWidgets = 1
	m := newTestManager(cfg)

	if _, err := m.Create(exampleRecords(), CreateOptions{}); !errors.Is(err, ErrTooMany) {
		t.Errorf("expected ErrTooMany, got %v", err)
	}
	bad := []pine.Record{{ItemID: 1, ItemParentID: pine.Parent(99), ItemName: "orphan"}}
	if _, err := m.Create(bad, CreateOptions{}); !errors.Is(err, pine.ErrUnknownParent) {
		t.Errorf("expected ErrUnknownParent, got %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("expected failed creates not to register, got %d", m.Count())
	}

	if _, err := m.Create(exampleRecords()[:1], CreateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Create(exampleRecords()[:1], CreateOptions{}); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected ErrCapacity, got %v", err)
	}
}

func TestManager_PrefixOverride(t *testing.T) {
	m := newTestManager(testConfig())
	sess, err := m.Create(exampleRecords(), CreateOptions{Prefix: "tree"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	markup, _ := sess.Markup()
	if !strings.Contains(markup, "tree__element") || strings.Contains(markup, "pine__") {
		t.Errorf("expected tree prefix throughout, got:\n%s", markup)
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(testConfig())
	sess, err := m.Create(exampleRecords(), CreateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Delete(sess.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.Delete(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestManager_StartStop(t *testing.T) {
	m := newTestManager(testConfig())
	m.Start(context.Background())
	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestManager_CreateRejectsDeepTree(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDepth = 3
	m := newTestManager(cfg)

	recs := make([]pine.Record, 4)
	for i := range recs {
		id := int64(i + 1)
		recs[i] = pine.Record{ItemID: id, ItemParentID: pine.Parent(id - 1), ItemName: "n"}
	}
	if _, err := m.Create(recs[:3], CreateOptions{}); err != nil {
		t.Fatalf("expected depth 3 to pass, got %v", err)
	}
	_, err := m.Create(recs, CreateOptions{})
	var buildErr *pine.BuildError
	if !errors.As(err, &buildErr) || !errors.Is(err, pine.ErrTooDeep) || buildErr.ID != 4 {
		t.Fatalf("expected ErrTooDeep on item 4, got %v", err)
	}
}
