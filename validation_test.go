package main

import "testing"

func TestIsValidUsername(t *testing.T) {
	cases := []struct {
		username string
		valid    bool
	}{
		{"vito", true},
		{"al-capone", true},
		{"lucky_7", true},
		{"ab", false},
		{"", false},
		{"user name", false},
		{"boss;drop table", false},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false}, // 33 chars
	}

	for _, tc := range cases {
		if got := isValidUsername(tc.username); got != tc.valid {
			t.Errorf("isValidUsername(%q) = %v, want %v", tc.username, got, tc.valid)
		}
	}
}
