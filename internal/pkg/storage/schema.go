package storage

// Table definitions for both backends. The two dialects differ only in id
// generation and numeric types; all DML is shared.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		fetched_at  TEXT NOT NULL,
		url         TEXT NOT NULL,
		raw_sha256  TEXT NOT NULL,
		raw_text    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sections (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		title  TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		section_id  INTEGER NULL REFERENCES sections(id) ON DELETE SET NULL,
		name        TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS markets (
		id                     INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id               INTEGER NULL REFERENCES events(id) ON DELETE SET NULL,
		name                   TEXT NOT NULL UNIQUE,
		last_seen_snapshot_id  INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS outcomes (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		market_id       INTEGER NOT NULL REFERENCES markets(id) ON DELETE CASCADE,
		selection_name  TEXT NOT NULL,
		odds_decimal    REAL NOT NULL,
		implied_prob    REAL NOT NULL,
		snapshot_id     INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS entities (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		type            TEXT NULL,
		canonical_name  TEXT NOT NULL,
		canonical_key   TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS entity_aliases (
		id                       INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_id                INTEGER NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
		alias                    TEXT NOT NULL,
		alias_key                TEXT NOT NULL,
		first_seen_snapshot_id   INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		last_seen_snapshot_id    INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		UNIQUE(entity_id, alias_key)
	)`,
	`CREATE TABLE IF NOT EXISTS outcome_entities (
		outcome_id  INTEGER PRIMARY KEY REFERENCES outcomes(id) ON DELETE CASCADE,
		entity_id   INTEGER NOT NULL REFERENCES entities(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outcomes_market_snapshot ON outcomes(market_id, snapshot_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entity_aliases_key ON entity_aliases(alias_key)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id          BIGSERIAL PRIMARY KEY,
		fetched_at  TEXT NOT NULL,
		url         TEXT NOT NULL,
		raw_sha256  TEXT NOT NULL,
		raw_text    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sections (
		id     BIGSERIAL PRIMARY KEY,
		title  TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          BIGSERIAL PRIMARY KEY,
		section_id  BIGINT NULL REFERENCES sections(id) ON DELETE SET NULL,
		name        TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS markets (
		id                     BIGSERIAL PRIMARY KEY,
		event_id               BIGINT NULL REFERENCES events(id) ON DELETE SET NULL,
		name                   TEXT NOT NULL UNIQUE,
		last_seen_snapshot_id  BIGINT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS outcomes (
		id              BIGSERIAL PRIMARY KEY,
		market_id       BIGINT NOT NULL REFERENCES markets(id) ON DELETE CASCADE,
		selection_name  TEXT NOT NULL,
		odds_decimal    DOUBLE PRECISION NOT NULL,
		implied_prob    DOUBLE PRECISION NOT NULL,
		snapshot_id     BIGINT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS entities (
		id              BIGSERIAL PRIMARY KEY,
		type            TEXT NULL,
		canonical_name  TEXT NOT NULL,
		canonical_key   TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS entity_aliases (
		id                       BIGSERIAL PRIMARY KEY,
		entity_id                BIGINT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
		alias                    TEXT NOT NULL,
		alias_key                TEXT NOT NULL,
		first_seen_snapshot_id   BIGINT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		last_seen_snapshot_id    BIGINT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		UNIQUE(entity_id, alias_key)
	)`,
	`CREATE TABLE IF NOT EXISTS outcome_entities (
		outcome_id  BIGINT PRIMARY KEY REFERENCES outcomes(id) ON DELETE CASCADE,
		entity_id   BIGINT NOT NULL REFERENCES entities(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outcomes_market_snapshot ON outcomes(market_id, snapshot_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entity_aliases_key ON entity_aliases(alias_key)`,
}
