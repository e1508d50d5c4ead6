package main

import "database/sql"

func ensureSchema(db *sql.DB) error {

	// players table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS players (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			money BIGINT NOT NULL DEFAULT 100,
			energy INT NOT NULL DEFAULT 100,
			max_energy INT NOT NULL DEFAULT 100,
			level INT NOT NULL DEFAULT 1,
			experience INT NOT NULL DEFAULT 0,
			strength INT NOT NULL DEFAULT 1,
			agility INT NOT NULL DEFAULT 1,
			intelligence INT NOT NULL DEFAULT 1,
			charisma INT NOT NULL DEFAULT 1,
			wins INT NOT NULL DEFAULT 0,
			losses INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_active_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		ALTER TABLE players
			ADD COLUMN IF NOT EXISTS last_active_at TIMESTAMPTZ NOT NULL DEFAULT NOW();
	`)
	if err != nil {
		return err
	}

	// inventory table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS inventory (
			id BIGSERIAL PRIMARY KEY,
			player_id BIGINT NOT NULL REFERENCES players (id) ON DELETE CASCADE,
			item_type TEXT NOT NULL,
			item_id TEXT NOT NULL,
			equipped BOOLEAN NOT NULL DEFAULT TRUE,
			acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_inventory_player_id
		ON inventory (player_id, item_type);
	`)
	if err != nil {
		return err
	}

	// sessions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			player_id BIGINT NOT NULL REFERENCES players (id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_player_id
		ON sessions (player_id);
	`)
	if err != nil {
		return err
	}

	// auth_rate_limits table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS auth_rate_limits (
			ip TEXT NOT NULL,
			action TEXT NOT NULL,
			window_start TIMESTAMPTZ NOT NULL,
			attempt_count INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (ip, action)
		);
	`)
	if err != nil {
		return err
	}

	return nil
}
