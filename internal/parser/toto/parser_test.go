package toto

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Vodeneev/totobet/internal/pkg/storage"
)

type fakeFetcher struct {
	markup string
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	return f.markup, f.err
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.OpenSQLite(":memory:", true)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func markupFromLines(lines ...string) string {
	m := "<html><body>"
	for _, l := range lines {
		m += fmt.Sprintf("<p>%s</p>", l)
	}
	return m + "</body></html>"
}

var scenarioMarkup = markupFromLines(
	"Alles",
	"Formula 1 2024",
	"Race Winner",
	"Verstappen, Max",
	"1,50",
	"Pérez, Sergio",
	"8,00",
)

func TestRefreshEndToEnd(t *testing.T) {
	store := newTestStore(t)
	parser := NewParser("http://example.test/outrights", store, &fakeFetcher{markup: scenarioMarkup}, nil)
	ctx := context.Background()

	snapID, err := parser.Refresh(ctx, ModeStatic)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snapID == 0 {
		t.Fatal("expected non-zero snapshot id")
	}

	sections, err := store.ListSections(ctx)
	if err != nil {
		t.Fatalf("ListSections: %v", err)
	}
	if len(sections) != 1 || sections[0].Title != "Formula 1 2024" {
		t.Fatalf("sections = %v, want exactly [Formula 1 2024]", sections)
	}

	markets, err := store.ListMarkets(ctx, nil)
	if err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}
	if len(markets) != 1 || markets[0].Name != "Race Winner" {
		t.Fatalf("markets = %v, want exactly [Race Winner]", markets)
	}
	if markets[0].LastSeenSnapshotID != snapID {
		t.Errorf("market last seen = %d, want %d", markets[0].LastSeenSnapshotID, snapID)
	}

	outcomes, err := store.ListOutcomes(ctx, markets[0].ID)
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if outcomes[0].OddsDecimal != 1.50 || outcomes[1].OddsDecimal != 8.00 {
		t.Errorf("odds = %v, %v; want 1.50, 8.00", outcomes[0].OddsDecimal, outcomes[1].OddsDecimal)
	}
	if outcomes[1].ImpliedProb != 0.125 {
		t.Errorf("implied prob = %v, want 0.125", outcomes[1].ImpliedProb)
	}

	for _, tt := range []struct {
		name string
		key  string
	}{
		{"Verstappen, Max", "verstappen max"},
		{"Pérez, Sergio", "perez sergio"},
	} {
		e, err := store.FindEntity(ctx, tt.name)
		if err != nil {
			t.Fatalf("FindEntity(%q): %v", tt.name, err)
		}
		if e == nil {
			t.Fatalf("FindEntity(%q) = nil", tt.name)
		}
		if e.CanonicalKey != tt.key {
			t.Errorf("entity key for %q = %q, want %q", tt.name, e.CanonicalKey, tt.key)
		}
	}
}

func TestRefreshTwiceIsIdempotentOnDimensions(t *testing.T) {
	store := newTestStore(t)
	parser := NewParser("http://example.test/outrights", store, &fakeFetcher{markup: scenarioMarkup}, nil)
	ctx := context.Background()

	first, err := parser.Refresh(ctx, ModeStatic)
	if err != nil {
		t.Fatalf("first Refresh: %v", err)
	}
	second, err := parser.Refresh(ctx, ModeStatic)
	if err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if second <= first {
		t.Fatalf("snapshot ids not monotonic: %d then %d", first, second)
	}

	markets, err := store.ListMarkets(ctx, nil)
	if err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("got %d markets after two refreshes, want 1", len(markets))
	}
	if markets[0].LastSeenSnapshotID != second {
		t.Errorf("market last seen = %d, want %d", markets[0].LastSeenSnapshotID, second)
	}

	// Outcomes accumulate as a time series; the latest read returns only
	// the second refresh's rows.
	all, err := store.ListOutcomes(ctx, markets[0].ID)
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d outcomes total, want 4", len(all))
	}
	latest, err := store.LatestOutcomes(ctx, markets[0].ID)
	if err != nil {
		t.Fatalf("LatestOutcomes: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("got %d latest outcomes, want 2", len(latest))
	}
	for _, o := range latest {
		if o.SnapshotID != second {
			t.Errorf("latest outcome snapshot = %d, want %d", o.SnapshotID, second)
		}
	}
}

func TestRefreshSkipsUnparsableOddsTokens(t *testing.T) {
	store := newTestStore(t)
	// "12.50" passes no odds check, so the pair is never captured as an
	// entry; the block survives on the valid pair alone.
	markup := markupFromLines(
		"Race Winner",
		"Verstappen, Max",
		"1,50",
		"Norris, Lando",
		"12.50",
	)
	parser := NewParser("http://example.test/outrights", store, &fakeFetcher{markup: markup}, nil)
	ctx := context.Background()

	if _, err := parser.Refresh(ctx, ModeStatic); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	markets, err := store.ListMarkets(ctx, nil)
	if err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("got %d markets, want 1", len(markets))
	}
	outcomes, err := store.ListOutcomes(ctx, markets[0].ID)
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].SelectionName != "Verstappen, Max" {
		t.Errorf("outcomes = %v, want only the Verstappen row", outcomes)
	}
}

func TestRefreshFetchFailureCreatesNoSnapshot(t *testing.T) {
	store := newTestStore(t)
	parser := NewParser("http://example.test/outrights", store,
		&fakeFetcher{err: errors.New("connection refused")}, nil)

	if _, err := parser.Refresh(context.Background(), ModeStatic); err == nil {
		t.Fatal("expected refresh error")
	}
	markets, err := store.ListMarkets(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}
	if len(markets) != 0 {
		t.Errorf("expected empty store after failed fetch, got %v", markets)
	}
}

func TestRefreshAutoFallsBackToStatic(t *testing.T) {
	store := newTestStore(t)
	rendered := &fakeFetcher{err: errors.New("browser unavailable")}
	static := &fakeFetcher{markup: scenarioMarkup}
	parser := NewParser("http://example.test/outrights", store, static, rendered)

	if _, err := parser.Refresh(context.Background(), ModeAuto); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rendered.calls != 1 || static.calls != 1 {
		t.Errorf("calls rendered=%d static=%d, want 1 and 1", rendered.calls, static.calls)
	}
}

func TestRefreshUnknownMode(t *testing.T) {
	store := newTestStore(t)
	parser := NewParser("http://example.test/outrights", store, &fakeFetcher{}, nil)
	if _, err := parser.Refresh(context.Background(), "teleport"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
