package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "City of Syndicates API LIVE",
	})
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

func registerHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INVALID_REQUEST"})
			return
		}

		limit, window := authRateLimitConfig(authActionRegister)
		allowed, _, err := checkAuthRateLimit(db, getClientIP(r), authActionRegister, limit, window)
		if err != nil {
			log.Println("register rate limit check failed:", err)
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		if !allowed {
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "RATE_LIMITED"})
			return
		}

		player, err := createPlayerAccount(db, req.Username, req.Password)
		if err != nil {
			switch err.Error() {
			case "INVALID_USERNAME", "INVALID_PASSWORD", "USERNAME_TAKEN":
				json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: err.Error()})
			default:
				log.Println("register failed:", err)
				json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INTERNAL_ERROR"})
			}
			return
		}

		json.NewEncoder(w).Encode(AuthResponse{OK: true, Username: player.Username})
	}
}

func loginHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INVALID_REQUEST"})
			return
		}

		limit, window := authRateLimitConfig(authActionLogin)
		allowed, _, err := checkAuthRateLimit(db, getClientIP(r), authActionLogin, limit, window)
		if err != nil {
			log.Println("login rate limit check failed:", err)
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		if !allowed {
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "RATE_LIMITED"})
			return
		}

		player, err := authenticate(db, req.Username, req.Password)
		if err != nil {
			if err.Error() == "INVALID_CREDENTIALS" {
				json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INVALID_CREDENTIALS"})
				return
			}
			log.Println("login failed:", err)
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}

		sessionID, expiresAt, err := createSession(db, player.ID)
		if err != nil {
			log.Println("session create failed:", err)
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		writeSessionCookie(w, sessionID, expiresAt)

		json.NewEncoder(w).Encode(AuthResponse{OK: true, Username: player.Username})
	}
}

func logoutHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if cookie, err := r.Cookie("session_id"); err == nil {
			clearSession(db, cookie.Value)
		}
		clearSessionCookie(w)

		json.NewEncoder(w).Encode(SimpleResponse{OK: true})
	}
}

func meHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		player, _, err := getSessionPlayer(db, r)
		if err != nil {
			json.NewEncoder(w).Encode(AuthResponse{OK: false, Error: "NOT_AUTHENTICATED"})
			return
		}

		json.NewEncoder(w).Encode(AuthResponse{OK: true, Username: player.Username})
	}
}

func playerHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		username := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("username")))
		if !isValidUsername(username) {
			json.NewEncoder(w).Encode(PlayerResponse{OK: false, Error: "INVALID_USERNAME"})
			return
		}

		player, err := LoadPlayer(db, username)
		if err != nil {
			log.Println("player load failed:", err)
			json.NewEncoder(w).Encode(PlayerResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		if player == nil {
			json.NewEncoder(w).Encode(PlayerResponse{OK: false, Error: "PLAYER_NOT_FOUND"})
			return
		}

		items, err := LoadInventory(db, player.ID)
		if err != nil {
			log.Println("inventory load failed:", err)
			json.NewEncoder(w).Encode(PlayerResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}

		views := make([]InventoryItemView, 0, len(items))
		for _, item := range items {
			views = append(views, InventoryItemView{
				ItemID:   item.ItemID,
				ItemType: item.ItemType,
				Name:     itemDisplayName(item.ItemType, item.ItemID),
				Equipped: item.Equipped,
			})
		}

		json.NewEncoder(w).Encode(PlayerResponse{
			OK:           true,
			Username:     player.Username,
			Money:        player.Money,
			Energy:       player.Energy,
			MaxEnergy:    player.MaxEnergy,
			Level:        player.Level,
			Experience:   player.Experience,
			Strength:     player.Strength,
			Agility:      player.Agility,
			Intelligence: player.Intelligence,
			Charisma:     player.Charisma,
			Wins:         player.Wins,
			Losses:       player.Losses,
			Inventory:    views,
		})
	}
}

func crimeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			json.NewEncoder(w).Encode(CrimeResponse{OK: false, Error: "INVALID_REQUEST"})
			return
		}

		username := strings.TrimSpace(strings.ToLower(req.Username))
		if !isValidUsername(username) {
			json.NewEncoder(w).Encode(CrimeResponse{OK: false, Error: "INVALID_USERNAME"})
			return
		}

		player, err := LoadPlayer(db, username)
		if err != nil {
			log.Println("player load failed:", err)
			json.NewEncoder(w).Encode(CrimeResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		if player == nil {
			json.NewEncoder(w).Encode(CrimeResponse{OK: false, Error: "PLAYER_NOT_FOUND"})
			return
		}

		outcome, err := resolveCrime(db, player)
		if err != nil {
			if err == errNotEnoughEnergy {
				json.NewEncoder(w).Encode(CrimeResponse{
					OK:     false,
					Error:  "NOT_ENOUGH_ENERGY",
					Energy: player.Energy,
				})
				return
			}
			log.Println("crime resolution failed:", err)
			json.NewEncoder(w).Encode(CrimeResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}

		result := "FAILED"
		if outcome.Success {
			result = "SUCCESS"
		}

		json.NewEncoder(w).Encode(CrimeResponse{
			OK:         true,
			Result:     result,
			Crime:      outcome.Crime.Name,
			Reward:     outcome.Reward,
			Experience: player.Experience,
			Level:      player.Level,
			LeveledUp:  outcome.LeveledUp,
			Energy:     player.Energy,
			Money:      player.Money,
			Wins:       player.Wins,
			Losses:     player.Losses,
		})
	}
}

func crimeCatalogHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	json.NewEncoder(w).Encode(CrimeCatalogResponse{Crimes: crimeCatalog})
}

func restHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			json.NewEncoder(w).Encode(RestResponse{OK: false, Error: "INVALID_REQUEST"})
			return
		}

		username := strings.TrimSpace(strings.ToLower(req.Username))
		if !isValidUsername(username) {
			json.NewEncoder(w).Encode(RestResponse{OK: false, Error: "INVALID_USERNAME"})
			return
		}

		player, err := LoadPlayer(db, username)
		if err != nil {
			log.Println("player load failed:", err)
			json.NewEncoder(w).Encode(RestResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		if player == nil {
			json.NewEncoder(w).Encode(RestResponse{OK: false, Error: "PLAYER_NOT_FOUND"})
			return
		}

		player.Energy += restEnergyGain
		if player.Energy > player.MaxEnergy {
			player.Energy = player.MaxEnergy
		}

		if err := UpdatePlayerEnergy(db, player.ID, player.Energy); err != nil {
			log.Println("rest update failed:", err)
			json.NewEncoder(w).Encode(RestResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}

		json.NewEncoder(w).Encode(RestResponse{
			OK:        true,
			Energy:    player.Energy,
			MaxEnergy: player.MaxEnergy,
		})
	}
}

func armoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	json.NewEncoder(w).Encode(ArmoryResponse{
		Weapons: weaponCatalog,
		Armor:   armorCatalog,
	})
}

func armoryBuyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req BuyItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "INVALID_REQUEST"})
			return
		}

		username := strings.TrimSpace(strings.ToLower(req.Username))
		if !isValidUsername(username) {
			json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "INVALID_USERNAME"})
			return
		}

		player, err := LoadPlayer(db, username)
		if err != nil {
			log.Println("player load failed:", err)
			json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		if player == nil {
			json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "PLAYER_NOT_FOUND"})
			return
		}

		price, err := purchaseItem(db, player, req.ItemType, req.ItemID)
		if err != nil {
			switch err {
			case errItemNotFound:
				json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "ITEM_NOT_FOUND"})
			case errNotEnoughMoney:
				json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "NOT_ENOUGH_MONEY", Money: player.Money})
			default:
				log.Println("purchase failed:", err)
				json.NewEncoder(w).Encode(BuyItemResponse{OK: false, Error: "INTERNAL_ERROR"})
			}
			return
		}

		json.NewEncoder(w).Encode(BuyItemResponse{
			OK:       true,
			Item:     itemDisplayName(req.ItemType, req.ItemID),
			ItemType: req.ItemType,
			Price:    price,
			Money:    player.Money,
		})
	}
}
