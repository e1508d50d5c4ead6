package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type leaderboardFilters struct {
	Query    string
	Sort     string
	Page     int
	PageSize int
}

func leaderboardHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		filters := parseLeaderboardFilters(r)
		orderBy := leaderboardOrderBy(filters.Sort)

		whereClauses := []string{"1=1"}
		args := []interface{}{}
		argIndex := 1

		if filters.Query != "" {
			whereClauses = append(whereClauses, "username ILIKE $"+strconv.Itoa(argIndex))
			args = append(args, "%"+filters.Query+"%")
			argIndex++
		}

		where := strings.Join(whereClauses, " AND ")

		countQuery := "SELECT COUNT(*) FROM players WHERE " + where
		var total int
		if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
			json.NewEncoder(w).Encode(SimpleResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}

		offset := (filters.Page - 1) * filters.PageSize
		argsWithPage := append(args, filters.PageSize, offset)
		resultsQuery := fmt.Sprintf(`
			SELECT
				ROW_NUMBER() OVER (ORDER BY %s) AS rank,
				username,
				level,
				experience,
				money,
				wins,
				losses
			FROM players
			WHERE %s
			ORDER BY %s
			LIMIT $%d OFFSET $%d
		`, orderBy, where, orderBy, argIndex, argIndex+1)

		rows, err := db.Query(resultsQuery, argsWithPage...)
		if err != nil {
			json.NewEncoder(w).Encode(SimpleResponse{OK: false, Error: "INTERNAL_ERROR"})
			return
		}
		defer rows.Close()

		results := []LeaderboardEntry{}
		for rows.Next() {
			var entry LeaderboardEntry
			if err := rows.Scan(&entry.Rank, &entry.Username, &entry.Level, &entry.Experience, &entry.Money, &entry.Wins, &entry.Losses); err != nil {
				continue
			}
			results = append(results, entry)
		}

		json.NewEncoder(w).Encode(LeaderboardResponse{
			Page:     filters.Page,
			PageSize: filters.PageSize,
			Total:    total,
			Results:  results,
		})
	}
}

func parseLeaderboardFilters(r *http.Request) leaderboardFilters {
	query := r.URL.Query()
	page := parsePositiveInt(query.Get("page"), 1)
	pageSize := parsePositiveInt(query.Get("pageSize"), 50)
	if pageSize > 200 {
		pageSize = 200
	}

	return leaderboardFilters{
		Query:    strings.TrimSpace(query.Get("q")),
		Sort:     strings.TrimSpace(query.Get("sort")),
		Page:     page,
		PageSize: pageSize,
	}
}

func leaderboardOrderBy(sortKey string) string {
	switch sortKey {
	case "money":
		return "money DESC, level DESC, experience DESC, created_at ASC, username ASC"
	case "wins":
		return "wins DESC, level DESC, experience DESC, created_at ASC, username ASC"
	case "level", "":
		fallthrough
	default:
		return "level DESC, experience DESC, wins DESC, created_at ASC, username ASC"
	}
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
