package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
)

/* ======================
   Request / Response Types
   ====================== */

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Username string `json:"username,omitempty"`
}

type ActionRequest struct {
	Username string `json:"username"`
}

type CrimeResponse struct {
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	Result     string `json:"result,omitempty"`
	Crime      string `json:"crime,omitempty"`
	Reward     int64  `json:"reward,omitempty"`
	Experience int    `json:"experience,omitempty"`
	Level      int    `json:"level,omitempty"`
	LeveledUp  bool   `json:"leveledUp,omitempty"`
	Energy     int    `json:"energy"`
	Money      int64  `json:"money"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}

type RestResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Energy    int    `json:"energy"`
	MaxEnergy int    `json:"maxEnergy"`
}

type BuyItemRequest struct {
	Username string `json:"username"`
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
}

type BuyItemResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Item     string `json:"item,omitempty"`
	ItemType string `json:"itemType,omitempty"`
	Price    int64  `json:"price,omitempty"`
	Money    int64  `json:"money"`
}

type InventoryItemView struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	Name     string `json:"name"`
	Equipped bool   `json:"equipped"`
}

type PlayerResponse struct {
	OK           bool                `json:"ok"`
	Error        string              `json:"error,omitempty"`
	Username     string              `json:"username,omitempty"`
	Money        int64               `json:"money"`
	Energy       int                 `json:"energy"`
	MaxEnergy    int                 `json:"maxEnergy"`
	Level        int                 `json:"level"`
	Experience   int                 `json:"experience"`
	Strength     int                 `json:"strength"`
	Agility      int                 `json:"agility"`
	Intelligence int                 `json:"intelligence"`
	Charisma     int                 `json:"charisma"`
	Wins         int                 `json:"wins"`
	Losses       int                 `json:"losses"`
	Inventory    []InventoryItemView `json:"inventory,omitempty"`
}

type ArmoryResponse struct {
	Weapons map[string]WeaponSpec `json:"weapons"`
	Armor   map[string]ArmorSpec  `json:"armor"`
}

type CrimeCatalogResponse struct {
	Crimes []CrimeSpec `json:"crimes"`
}

type LeaderboardResponse struct {
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int                `json:"total"`
	Results  []LeaderboardEntry `json:"results"`
}

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Username   string `json:"username"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Money      int64  `json:"money"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}

type SimpleResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

/* ======================
   main()
   ====================== */

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	config = cfg

	log.Println("App environment:", cfg.AppEnv)
	if cfg.DevMode {
		log.Println("⚠️  DEV MODE ENABLED")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database:", err)
	}
	log.Println("Connected to PostgreSQL")

	if err := ensureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	startSessionPruner(db)

	mux := http.NewServeMux()
	registerRoutes(mux, db)

	addr := "0.0.0.0:" + cfg.Port
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("server failed:", err)
	}
}

/* ======================
   Routes
   ====================== */

func registerRoutes(mux *http.ServeMux, db *sql.DB) {
	mux.HandleFunc("/", rootHandler)
	mux.HandleFunc("/health", healthHandler(db))
	mux.HandleFunc("/register", registerHandler(db))
	mux.HandleFunc("/login", loginHandler(db))
	mux.HandleFunc("/auth/logout", logoutHandler(db))
	mux.HandleFunc("/auth/me", meHandler(db))
	mux.HandleFunc("/player", playerHandler(db))
	mux.HandleFunc("/crime", crimeHandler(db))
	mux.HandleFunc("/crimes", crimeCatalogHandler)
	mux.HandleFunc("/rest", restHandler(db))
	mux.HandleFunc("/armory", armoryHandler)
	mux.HandleFunc("/armory/buy", armoryBuyHandler(db))
	mux.HandleFunc("/leaderboard", leaderboardHandler(db))
}
