package main

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 7 * 24 * time.Hour

func createPlayerAccount(db *sql.DB, username string, password string) (*Player, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if !isValidUsername(username) {
		return nil, errors.New("INVALID_USERNAME")
	}
	if len(password) < 8 || len(password) > 128 {
		return nil, errors.New("INVALID_PASSWORD")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	var playerID int64
	err = db.QueryRow(`
		INSERT INTO players (username, password_hash, created_at, last_active_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`, username, hash).Scan(&playerID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("USERNAME_TAKEN")
		}
		return nil, err
	}

	// Every new player starts with brass knuckles equipped.
	if err := grantItem(db, playerID, ItemTypeWeapon, starterWeaponID); err != nil {
		return nil, err
	}

	return LoadPlayerByID(db, playerID)
}

func authenticate(db *sql.DB, username string, password string) (*Player, error) {
	username = strings.TrimSpace(strings.ToLower(username))

	var playerID int64
	var hash string
	if err := db.QueryRow(`
		SELECT id, password_hash
		FROM players
		WHERE username = $1
	`, username).Scan(&playerID, &hash); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("INVALID_CREDENTIALS")
		}
		return nil, err
	}

	if !verifyPassword(hash, password) {
		return nil, errors.New("INVALID_CREDENTIALS")
	}

	touchPlayer(db, playerID)

	return LoadPlayerByID(db, playerID)
}

func createSession(db *sql.DB, playerID int64) (string, time.Time, error) {
	sessionID, err := randomToken(24)
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().UTC().Add(sessionTTL)
	_, err = db.Exec(`
		INSERT INTO sessions (session_id, player_id, expires_at)
		VALUES ($1, $2, $3)
	`, sessionID, playerID, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}

	return sessionID, expiresAt, nil
}

func clearSession(db *sql.DB, sessionID string) {
	_, _ = db.Exec(`
		DELETE FROM sessions
		WHERE session_id = $1
	`, sessionID)
}

func getSessionPlayer(db *sql.DB, r *http.Request) (*Player, string, error) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return nil, "", err
	}

	var playerID int64
	var expiresAt time.Time
	if err := db.QueryRow(`
		SELECT player_id, expires_at
		FROM sessions
		WHERE session_id = $1
	`, cookie.Value).Scan(&playerID, &expiresAt); err != nil {
		return nil, "", err
	}

	if time.Now().UTC().After(expiresAt) {
		clearSession(db, cookie.Value)
		return nil, "", errors.New("SESSION_EXPIRED")
	}

	player, err := LoadPlayerByID(db, playerID)
	if err != nil {
		return nil, "", err
	}
	if player == nil {
		return nil, "", errors.New("PLAYER_NOT_FOUND")
	}

	return player, cookie.Value, nil
}

func writeSessionCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func pruneSessions(db *sql.DB) {
	if _, err := db.Exec(`
		DELETE FROM sessions
		WHERE expires_at < NOW()
	`); err != nil {
		log.Println("session prune failed:", err)
	}
}

func startSessionPruner(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			pruneSessions(db)
		}
	}()
}

func randomToken(bytesLen int) (string, error) {
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(stored string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
