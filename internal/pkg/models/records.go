// Package models defines the typed records for every table in the odds
// store. Rows are mapped to these structs at the storage boundary only.
package models

import "time"

// Snapshot is one immutable fetch of the source page, content-hashed.
// It is the time axis for every other record.
type Snapshot struct {
	ID        int64     `json:"id"`
	FetchedAt time.Time `json:"fetched_at"`
	URL       string    `json:"url"`
	SHA256    string    `json:"sha256"`
	Raw       string    `json:"-"` // empty when raw retention is disabled
}

// Section is a named tab grouping markets (e.g. a season label).
type Section struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Event is a named competition event, optionally tied to a section.
// The most recently observed non-null section wins on conflict.
type Event struct {
	ID        int64  `json:"id"`
	SectionID *int64 `json:"section_id,omitempty"`
	Name      string `json:"name"`
}

// Market is a single betting proposition. Name is the sole identity;
// LastSeenSnapshotID always reflects the newest snapshot that re-observed it.
type Market struct {
	ID                 int64  `json:"id"`
	EventID            *int64 `json:"event_id,omitempty"`
	Name               string `json:"name"`
	LastSeenSnapshotID int64  `json:"last_seen_snapshot_id"`
}

// Outcome is one selection's odds as recorded in one specific snapshot.
// Rows are append-only; ImpliedProb is always derived from OddsDecimal.
type Outcome struct {
	ID            int64   `json:"id"`
	MarketID      int64   `json:"market_id"`
	SelectionName string  `json:"selection_name"`
	OddsDecimal   float64 `json:"odds_decimal"`
	ImpliedProb   float64 `json:"implied_prob"`
	SnapshotID    int64   `json:"snapshot_id"`
	EntityID      *int64  `json:"entity_id,omitempty"`
}

// Entity type tags guessed at ingestion time.
const (
	EntityTypeDriver = "driver"
	EntityTypeTeam   = "team"
)

// Entity is a resolved real-world competitor or team with a stable
// identity across spelling variants.
type Entity struct {
	ID            int64  `json:"id"`
	Type          string `json:"type,omitempty"` // driver, team, or empty
	CanonicalName string `json:"canonical_name"`
	CanonicalKey  string `json:"canonical_key"`
}

// EntityAlias is a historical surface spelling observed for an entity,
// bounded by the snapshots that first and last saw it.
type EntityAlias struct {
	ID                  int64  `json:"id"`
	EntityID            int64  `json:"entity_id"`
	Alias               string `json:"alias"`
	AliasKey            string `json:"alias_key"`
	FirstSeenSnapshotID int64  `json:"first_seen_snapshot_id"`
	LastSeenSnapshotID  int64  `json:"last_seen_snapshot_id"`
}

// OddsHistoryEntry is one point in an entity's cross-snapshot odds time
// series, joined with the market it was priced in.
type OddsHistoryEntry struct {
	OutcomeID     int64   `json:"outcome_id"`
	MarketID      int64   `json:"market_id"`
	MarketName    string  `json:"market_name"`
	SelectionName string  `json:"selection_name"`
	OddsDecimal   float64 `json:"odds_decimal"`
	ImpliedProb   float64 `json:"implied_prob"`
	SnapshotID    int64   `json:"snapshot_id"`
}
