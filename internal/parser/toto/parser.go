package toto

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Vodeneev/totobet/internal/pkg/normalize"
	"github.com/Vodeneev/totobet/internal/pkg/storage"
)

// Fetch modes. ModeAuto tries the rendered browser fetch first and falls
// back to a static GET on any failure.
const (
	ModeAuto     = "auto"
	ModeRendered = "rendered"
	ModeStatic   = "static"
)

// Parser drives one refresh cycle: fetch the page, recover structure from
// its text, and upsert everything into the store under a new snapshot.
// Refreshes must not run concurrently against the same store; the caller's
// scheduler is responsible for serializing them.
type Parser struct {
	url      string
	store    *storage.Store
	static   Fetcher
	rendered Fetcher
}

// NewParser wires a parser to its store and fetch collaborators. rendered
// may be nil, in which case ModeRendered fails and ModeAuto degrades to the
// static fetch.
func NewParser(url string, store *storage.Store, static, rendered Fetcher) *Parser {
	return &Parser{url: url, store: store, static: static, rendered: rendered}
}

// Refresh runs one ingestion cycle and returns the new snapshot id. A fetch
// failure creates no snapshot. Parse-level non-matches are silently
// skipped; store errors abort the cycle.
func (p *Parser) Refresh(ctx context.Context, mode string) (int64, error) {
	markup, wasRendered, err := p.fetch(ctx, mode)
	if err != nil {
		return 0, fmt.Errorf("fetch page: %w", err)
	}

	snapID, err := p.store.NewSnapshot(ctx, p.url, markup)
	if err != nil {
		return 0, err
	}

	// A rendered DOM already contains the noscript fallbacks as live
	// content, so their duplicates are dropped.
	lines, err := ExtractTextLines(markup, wasRendered)
	if err != nil {
		return 0, err
	}

	sections := ExtractSections(lines)
	sectionIDs := make(map[string]int64, len(sections))
	for _, title := range sections {
		id, err := p.store.UpsertSection(ctx, title)
		if err != nil {
			return 0, err
		}
		sectionIDs[title] = id
	}

	blocks := ExtractBlocks(lines)
	var outcomes int
	for _, block := range blocks {
		var eventID *int64
		if sectionTitle := MatchSectionForMarket(block.Title, sections); sectionTitle != "" {
			var sectionID *int64
			if sid, ok := sectionIDs[sectionTitle]; ok {
				sectionID = &sid
			}
			id, err := p.store.UpsertEvent(ctx, sectionTitle, sectionID)
			if err != nil {
				return 0, err
			}
			eventID = &id
		}

		marketID, err := p.store.UpsertMarket(ctx, block.Title, eventID, snapID)
		if err != nil {
			return 0, err
		}

		for _, entry := range block.Entries {
			odds, err := normalize.ParseDutchOdds(entry.Odds)
			if err != nil {
				continue // not an odds token after all; skip, not fatal
			}
			outcomeID, err := p.store.InsertOutcome(ctx, marketID, entry.Selection, odds, snapID)
			if err != nil {
				return 0, err
			}
			entityID, err := p.store.ResolveEntity(ctx, entry.Selection, GuessEntityType(entry.Selection), snapID)
			if err != nil {
				return 0, err
			}
			if err := p.store.LinkOutcomeEntity(ctx, outcomeID, entityID); err != nil {
				return 0, err
			}
			outcomes++
		}
	}

	slog.Info("refresh complete",
		"snapshot_id", snapID,
		"sections", len(sections),
		"markets", len(blocks),
		"outcomes", outcomes,
		"rendered", wasRendered,
	)
	return snapID, nil
}

func (p *Parser) fetch(ctx context.Context, mode string) (markup string, wasRendered bool, err error) {
	switch mode {
	case ModeStatic:
		markup, err = p.static.Fetch(ctx, p.url)
		return markup, false, err
	case ModeRendered:
		if p.rendered == nil {
			return "", false, fmt.Errorf("rendered fetch not configured")
		}
		markup, err = p.rendered.Fetch(ctx, p.url)
		return markup, true, err
	case ModeAuto, "":
		if p.rendered != nil {
			markup, err = p.rendered.Fetch(ctx, p.url)
			if err == nil {
				return markup, true, nil
			}
			slog.Warn("rendered fetch failed, falling back to static", "error", err)
		}
		markup, err = p.static.Fetch(ctx, p.url)
		return markup, false, err
	default:
		return "", false, fmt.Errorf("unknown fetch mode %q", mode)
	}
}
