package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestParseLeaderboardFilters(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leaderboard?page=3&pageSize=25&q=vito&sort=wins", nil)

	filters := parseLeaderboardFilters(req)

	if filters.Page != 3 || filters.PageSize != 25 {
		t.Fatalf("got page=%d pageSize=%d", filters.Page, filters.PageSize)
	}
	if filters.Query != "vito" || filters.Sort != "wins" {
		t.Fatalf("got q=%q sort=%q", filters.Query, filters.Sort)
	}
}

func TestParseLeaderboardFiltersDefaultsAndCaps(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leaderboard?page=-1&pageSize=9999", nil)

	filters := parseLeaderboardFilters(req)

	if filters.Page != 1 {
		t.Fatalf("page = %d, want fallback 1", filters.Page)
	}
	if filters.PageSize != 200 {
		t.Fatalf("pageSize = %d, want capped 200", filters.PageSize)
	}
}

func TestLeaderboardOrderBy(t *testing.T) {
	if got := leaderboardOrderBy("money"); !strings.HasPrefix(got, "money DESC") {
		t.Fatalf("money sort got %q", got)
	}
	if got := leaderboardOrderBy("wins"); !strings.HasPrefix(got, "wins DESC") {
		t.Fatalf("wins sort got %q", got)
	}
	if got := leaderboardOrderBy(""); !strings.HasPrefix(got, "level DESC") {
		t.Fatalf("default sort got %q", got)
	}
	if got := leaderboardOrderBy("drop table"); !strings.HasPrefix(got, "level DESC") {
		t.Fatalf("unknown sort must fall back, got %q", got)
	}
}

func TestLeaderboardHandler(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("ROW_NUMBER").
		WillReturnRows(sqlmock.NewRows([]string{"rank", "username", "level", "experience", "money", "wins", "losses"}).
			AddRow(1, "vito", 5, 420, 9000, 40, 3).
			AddRow(2, "sonny", 3, 250, 4000, 21, 9))

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	rr := httptest.NewRecorder()
	leaderboardHandler(db)(rr, req)

	var res LeaderboardResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
	if res.Results[0].Username != "vito" || res.Results[0].Rank != 1 {
		t.Fatalf("top entry = %+v", res.Results[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
