package main

import (
	"database/sql"
	"time"
)

type Player struct {
	ID           int64
	Username     string
	Money        int64
	Energy       int
	MaxEnergy    int
	Level        int
	Experience   int
	Strength     int
	Agility      int
	Intelligence int
	Charisma     int
	Wins         int
	Losses       int
	CreatedAt    time.Time
}

const (
	expPerLevel       = 100
	maxEnergyPerLevel = 10
	restEnergyGain    = 40
)

func LoadPlayer(db *sql.DB, username string) (*Player, error) {
	var p Player

	err := db.QueryRow(`
		SELECT id, username, money, energy, max_energy, level, experience,
			strength, agility, intelligence, charisma, wins, losses, created_at
		FROM players
		WHERE username = $1
	`, username).Scan(
		&p.ID, &p.Username, &p.Money, &p.Energy, &p.MaxEnergy, &p.Level,
		&p.Experience, &p.Strength, &p.Agility, &p.Intelligence, &p.Charisma,
		&p.Wins, &p.Losses, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func LoadPlayerByID(db *sql.DB, playerID int64) (*Player, error) {
	var p Player

	err := db.QueryRow(`
		SELECT id, username, money, energy, max_energy, level, experience,
			strength, agility, intelligence, charisma, wins, losses, created_at
		FROM players
		WHERE id = $1
	`, playerID).Scan(
		&p.ID, &p.Username, &p.Money, &p.Energy, &p.MaxEnergy, &p.Level,
		&p.Experience, &p.Strength, &p.Agility, &p.Intelligence, &p.Charisma,
		&p.Wins, &p.Losses, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// addExperience grants exp and applies the linear leveling rule:
// level = 1 + experience/100, +10 max energy per level gained.
// Levels never go down, even if exp were ever reduced.
func addExperience(p *Player, amount int) bool {
	p.Experience += amount

	newLevel := 1 + p.Experience/expPerLevel
	if newLevel <= p.Level {
		return false
	}

	p.MaxEnergy += (newLevel - p.Level) * maxEnergyPerLevel
	p.Level = newLevel
	return true
}

// UpdatePlayerProgress persists the fields mutated by crime resolution.
func UpdatePlayerProgress(db *sql.DB, p *Player) error {
	_, err := db.Exec(`
		UPDATE players
		SET money = $2,
			energy = $3,
			max_energy = $4,
			level = $5,
			experience = $6,
			wins = $7,
			losses = $8,
			last_active_at = NOW()
		WHERE id = $1
	`, p.ID, p.Money, p.Energy, p.MaxEnergy, p.Level, p.Experience, p.Wins, p.Losses)

	return err
}

func UpdatePlayerEnergy(db *sql.DB, playerID int64, energy int) error {
	_, err := db.Exec(`
		UPDATE players
		SET energy = $2,
			last_active_at = NOW()
		WHERE id = $1
	`, playerID, energy)

	return err
}

func touchPlayer(db *sql.DB, playerID int64) {
	_, _ = db.Exec(`
		UPDATE players
		SET last_active_at = NOW()
		WHERE id = $1
	`, playerID)
}
