package toto

import (
	"strings"

	"github.com/Vodeneev/totobet/internal/pkg/normalize"
)

// fillerPrefix is the "show more" control rendered inside a market block.
const fillerPrefix = "bekijk meer"

// OddsEntry is one (selection, odds token) pair recorded under a market
// title. The odds token is kept as printed; parsing happens at ingestion.
type OddsEntry struct {
	Selection string
	Odds      string
}

// Block is one recovered market: its title line and the selection entries
// observed under it.
type Block struct {
	Title   string
	Entries []OddsEntry
}

// ExtractBlocks partitions a flat line sequence into market blocks with a
// single greedy left-to-right scan:
//
//   - lines are skipped until a title candidate opens a block
//   - inside a block, a new title flushes the current block and opens the next
//   - a line whose successor is an odds token records a (selection, odds) entry
//   - filler and anything else is decorative noise and skipped
//
// A flushed block is kept only when it has a title and at least one entry;
// entries are deduplicated by exact pair, first occurrence wins.
func ExtractBlocks(lines []string) []Block {
	var (
		blocks  []Block
		title   string
		entries []OddsEntry
	)
	flush := func() {
		if title != "" && len(entries) > 0 {
			blocks = append(blocks, Block{Title: title, Entries: dedupeEntries(entries)})
		}
		title, entries = "", nil
	}

	for i := 0; i < len(lines); {
		ln := normalize.Whitespace(lines[i])

		if title == "" && IsMarketTitle(ln) {
			title = ln
			i++
			continue
		}

		if title != "" {
			if strings.HasPrefix(strings.ToLower(ln), fillerPrefix) {
				i++
				continue
			}
			if IsMarketTitle(ln) {
				flush()
				title = ln
				i++
				continue
			}
			if i+1 < len(lines) && normalize.IsDutchOdds(lines[i+1]) {
				entries = append(entries, OddsEntry{Selection: ln, Odds: lines[i+1]})
				i += 2
				continue
			}
		}

		i++
	}
	flush()
	return blocks
}

func dedupeEntries(entries []OddsEntry) []OddsEntry {
	seen := make(map[OddsEntry]struct{}, len(entries))
	uniq := make([]OddsEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		uniq = append(uniq, e)
	}
	return uniq
}
