package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Vodeneev/totobet/internal/pkg/models"
	"github.com/Vodeneev/totobet/internal/pkg/normalize"
)

// ListSections returns every section in insertion order.
func (s *Store) ListSections(ctx context.Context) ([]models.Section, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM sections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()
	var sections []models.Section
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.Title); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// ListEvents returns events, optionally filtered by section.
func (s *Store) ListEvents(ctx context.Context, sectionID *int64) ([]models.Event, error) {
	query := `SELECT id, section_id, name FROM events`
	var args []any
	if sectionID != nil {
		query += ` WHERE section_id = $1`
		args = append(args, *sectionID)
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	var events []models.Event
	for rows.Next() {
		var (
			ev  models.Event
			sec sql.NullInt64
		)
		if err := rows.Scan(&ev.ID, &sec, &ev.Name); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.SectionID = idPtr(sec)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ListMarkets returns markets, optionally filtered by event.
func (s *Store) ListMarkets(ctx context.Context, eventID *int64) ([]models.Market, error) {
	query := `SELECT id, event_id, name, last_seen_snapshot_id FROM markets`
	var args []any
	if eventID != nil {
		query += ` WHERE event_id = $1`
		args = append(args, *eventID)
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query markets: %w", err)
	}
	defer rows.Close()
	var markets []models.Market
	for rows.Next() {
		var (
			m  models.Market
			ev sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &ev, &m.Name, &m.LastSeenSnapshotID); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		m.EventID = idPtr(ev)
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

const outcomeCols = `o.id, o.market_id, o.selection_name, o.odds_decimal, o.implied_prob, o.snapshot_id, oe.entity_id`

// ListOutcomes returns a market's full outcome history in insertion order.
func (s *Store) ListOutcomes(ctx context.Context, marketID int64) ([]models.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+outcomeCols+`
		FROM outcomes o
		LEFT JOIN outcome_entities oe ON oe.outcome_id = o.id
		WHERE o.market_id = $1
		ORDER BY o.id`, marketID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()
	return scanOutcomes(rows)
}

// LatestOutcomes returns the current odds for a market: the outcome rows of
// the most recent snapshot that produced any outcome for it (a per-market
// maximum, not the global latest snapshot).
func (s *Store) LatestOutcomes(ctx context.Context, marketID int64) ([]models.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+outcomeCols+`
		FROM outcomes o
		LEFT JOIN outcome_entities oe ON oe.outcome_id = o.id
		WHERE o.market_id = $1
		  AND o.snapshot_id = (SELECT MAX(snapshot_id) FROM outcomes WHERE market_id = $1)
		ORDER BY o.id`, marketID)
	if err != nil {
		return nil, fmt.Errorf("query latest outcomes: %w", err)
	}
	defer rows.Close()
	return scanOutcomes(rows)
}

// FindEntity resolves a name or any known alias to its entity via the
// canonical key. Returns nil when nothing matches.
func (s *Store) FindEntity(ctx context.Context, nameOrAlias string) (*models.Entity, error) {
	key := normalize.CanonicalKey(nameOrAlias)
	var (
		e   models.Entity
		typ sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT e.id, e.type, e.canonical_name, e.canonical_key
		FROM entities e
		LEFT JOIN entity_aliases a ON a.entity_id = e.id
		WHERE e.canonical_key = $1 OR a.alias_key = $1
		LIMIT 1`, key).Scan(&e.ID, &typ, &e.CanonicalName, &e.CanonicalKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find entity %q: %w", nameOrAlias, err)
	}
	e.Type = typ.String
	return &e, nil
}

// EntityAliases returns every surface spelling recorded for an entity with
// its first/last-seen snapshot bounds.
func (s *Store) EntityAliases(ctx context.Context, entityID int64) ([]models.EntityAlias, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity_id, alias, alias_key, first_seen_snapshot_id, last_seen_snapshot_id
		FROM entity_aliases
		WHERE entity_id = $1
		ORDER BY id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query entity aliases: %w", err)
	}
	defer rows.Close()
	var aliases []models.EntityAlias
	for rows.Next() {
		var a models.EntityAlias
		if err := rows.Scan(&a.ID, &a.EntityID, &a.Alias, &a.AliasKey,
			&a.FirstSeenSnapshotID, &a.LastSeenSnapshotID); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// EntityOddsHistory returns the full cross-snapshot time series of every
// outcome ever linked to the entity, ordered by snapshot then insertion id.
// This is the basis for "odds moved from X to Y" reporting.
func (s *Store) EntityOddsHistory(ctx context.Context, entityID int64) ([]models.OddsHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.market_id, m.name, o.selection_name, o.odds_decimal, o.implied_prob, o.snapshot_id
		FROM outcomes o
		JOIN outcome_entities oe ON oe.outcome_id = o.id
		JOIN markets m ON m.id = o.market_id
		WHERE oe.entity_id = $1
		ORDER BY o.snapshot_id, o.id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query entity odds history: %w", err)
	}
	defer rows.Close()
	var entries []models.OddsHistoryEntry
	for rows.Next() {
		var h models.OddsHistoryEntry
		if err := rows.Scan(&h.OutcomeID, &h.MarketID, &h.MarketName, &h.SelectionName,
			&h.OddsDecimal, &h.ImpliedProb, &h.SnapshotID); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

func scanOutcomes(rows *sql.Rows) ([]models.Outcome, error) {
	var outcomes []models.Outcome
	for rows.Next() {
		var (
			o   models.Outcome
			ent sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.MarketID, &o.SelectionName, &o.OddsDecimal,
			&o.ImpliedProb, &o.SnapshotID, &ent); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.EntityID = idPtr(ent)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func idPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
