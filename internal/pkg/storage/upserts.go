package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Vodeneev/totobet/internal/pkg/normalize"
)

// NewSnapshot records one fetch attempt: timestamp, source URL, and the
// SHA-256 of the raw text. The raw text itself is retained only when the
// store was opened with raw retention on. Snapshots are immutable.
func (s *Store) NewSnapshot(ctx context.Context, url, raw string) (int64, error) {
	sum := sha256.Sum256([]byte(raw))
	var rawCol sql.NullString
	if s.retainRaw {
		rawCol = sql.NullString{String: raw, Valid: true}
	}
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO snapshots (fetched_at, url, raw_sha256, raw_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		url, hex.EncodeToString(sum[:]), rawCol,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	return id, nil
}

// UpsertSection creates the section on first sighting and returns its id.
// Sections are never updated.
func (s *Store) UpsertSection(ctx context.Context, title string) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sections (title) VALUES ($1)
		ON CONFLICT (title) DO NOTHING`, title); err != nil {
		return 0, fmt.Errorf("upsert section %q: %w", title, err)
	}
	var id int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT id FROM sections WHERE title = $1`, title).Scan(&id); err != nil {
		return 0, fmt.Errorf("select section %q: %w", title, err)
	}
	return id, nil
}

// UpsertEvent creates the event on first sighting of its name. The section
// link is upgrade-only: the most recently observed non-null section wins.
func (s *Store) UpsertEvent(ctx context.Context, name string, sectionID *int64) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO events (name, section_id) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`, name, nullableID(sectionID)); err != nil {
		return 0, fmt.Errorf("upsert event %q: %w", name, err)
	}
	var (
		id      int64
		current sql.NullInt64
	)
	if err := s.db.QueryRowContext(ctx,
		`SELECT id, section_id FROM events WHERE name = $1`, name).Scan(&id, &current); err != nil {
		return 0, fmt.Errorf("select event %q: %w", name, err)
	}
	if sectionID != nil && (!current.Valid || current.Int64 != *sectionID) {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE events SET section_id = $1 WHERE id = $2`, *sectionID, id); err != nil {
			return 0, fmt.Errorf("update event section: %w", err)
		}
	}
	return id, nil
}

// UpsertMarket creates the market on first sighting of its name; re-observing
// the same name never duplicates it. last_seen_snapshot_id is always moved
// to the newest snapshot, and the event link is upgrade-only like events.
func (s *Store) UpsertMarket(ctx context.Context, name string, eventID *int64, snapshotID int64) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO markets (name, event_id, last_seen_snapshot_id) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`, name, nullableID(eventID), snapshotID); err != nil {
		return 0, fmt.Errorf("upsert market %q: %w", name, err)
	}
	var (
		id      int64
		current sql.NullInt64
	)
	if err := s.db.QueryRowContext(ctx,
		`SELECT id, event_id FROM markets WHERE name = $1`, name).Scan(&id, &current); err != nil {
		return 0, fmt.Errorf("select market %q: %w", name, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE markets SET last_seen_snapshot_id = $1 WHERE id = $2`, snapshotID, id); err != nil {
		return 0, fmt.Errorf("update market last seen: %w", err)
	}
	if eventID != nil && (!current.Valid || current.Int64 != *eventID) {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE markets SET event_id = $1 WHERE id = $2`, *eventID, id); err != nil {
			return 0, fmt.Errorf("update market event: %w", err)
		}
	}
	return id, nil
}

// InsertOutcome appends one selection's odds for a snapshot. Outcomes are
// never mutated; repeated refreshes build the odds time series. The implied
// probability is always derived here, never supplied.
func (s *Store) InsertOutcome(ctx context.Context, marketID int64, selection string, odds float64, snapshotID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO outcomes (market_id, selection_name, odds_decimal, implied_prob, snapshot_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		marketID, selection, odds, normalize.ImpliedProbability(odds), snapshotID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert outcome %q: %w", selection, err)
	}
	return id, nil
}

// ResolveEntity maps a selection's surface text to a stable entity id. The
// canonical key is matched against existing entities and their aliases; a
// miss creates a new entity keyed by this first-seen name. Either way the
// surface text is recorded as an alias stamped with the snapshot.
func (s *Store) ResolveEntity(ctx context.Context, name, typ string, snapshotID int64) (int64, error) {
	key := normalize.CanonicalKey(name)
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT e.id FROM entities e
		LEFT JOIN entity_aliases a ON a.entity_id = e.id
		WHERE e.canonical_key = $1 OR a.alias_key = $1
		LIMIT 1`, key).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		var typCol sql.NullString
		if typ != "" {
			typCol = sql.NullString{String: typ, Valid: true}
		}
		if err := s.db.QueryRowContext(ctx, `
			INSERT INTO entities (type, canonical_name, canonical_key)
			VALUES ($1, $2, $3)
			RETURNING id`, typCol, name, key).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert entity %q: %w", name, err)
		}
	case err != nil:
		return 0, fmt.Errorf("resolve entity %q: %w", name, err)
	}
	if err := s.upsertAlias(ctx, id, name, key, snapshotID); err != nil {
		return 0, err
	}
	return id, nil
}

// upsertAlias records a surface spelling for an entity. The alias key is
// permanently bound to the entity; re-observations only bump the last-seen
// snapshot, which is never rewound.
func (s *Store) upsertAlias(ctx context.Context, entityID int64, alias, aliasKey string, snapshotID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entity_aliases (entity_id, alias, alias_key, first_seen_snapshot_id, last_seen_snapshot_id)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (entity_id, alias_key) DO UPDATE
		SET last_seen_snapshot_id = excluded.last_seen_snapshot_id
		WHERE excluded.last_seen_snapshot_id > entity_aliases.last_seen_snapshot_id`,
		entityID, alias, aliasKey, snapshotID)
	if err != nil {
		return fmt.Errorf("upsert alias %q: %w", alias, err)
	}
	return nil
}

// LinkOutcomeEntity ties an outcome row to the entity its selection text
// denotes. Created at most once per outcome, never mutated.
func (s *Store) LinkOutcomeEntity(ctx context.Context, outcomeID, entityID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcome_entities (outcome_id, entity_id) VALUES ($1, $2)
		ON CONFLICT (outcome_id) DO NOTHING`, outcomeID, entityID)
	if err != nil {
		return fmt.Errorf("link outcome %d to entity %d: %w", outcomeID, entityID, err)
	}
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
