package main

import "testing"

func TestAddExperienceBelowThreshold(t *testing.T) {
	p := &Player{Level: 1, Experience: 0, MaxEnergy: 100}

	leveled := addExperience(p, 50)

	if leveled {
		t.Fatal("expected no level up at 50 exp")
	}
	if p.Level != 1 || p.Experience != 50 || p.MaxEnergy != 100 {
		t.Fatalf("got level=%d exp=%d maxEnergy=%d", p.Level, p.Experience, p.MaxEnergy)
	}
}

func TestAddExperienceLevelUp(t *testing.T) {
	p := &Player{Level: 1, Experience: 95, MaxEnergy: 100}

	leveled := addExperience(p, 10)

	if !leveled {
		t.Fatal("expected level up at 105 exp")
	}
	if p.Level != 2 {
		t.Fatalf("level = %d, want 2", p.Level)
	}
	if p.MaxEnergy != 110 {
		t.Fatalf("maxEnergy = %d, want 110", p.MaxEnergy)
	}
}

func TestAddExperienceMultiLevelJump(t *testing.T) {
	p := &Player{Level: 1, Experience: 0, MaxEnergy: 100}

	leveled := addExperience(p, 250)

	if !leveled {
		t.Fatal("expected level up at 250 exp")
	}
	if p.Level != 3 {
		t.Fatalf("level = %d, want 3", p.Level)
	}
	// +10 per level gained, two levels at once.
	if p.MaxEnergy != 120 {
		t.Fatalf("maxEnergy = %d, want 120", p.MaxEnergy)
	}
}

func TestAddExperienceNeverLowersLevel(t *testing.T) {
	// A player granted a level manually keeps it even while exp lags behind.
	p := &Player{Level: 5, Experience: 0, MaxEnergy: 140}

	leveled := addExperience(p, 10)

	if leveled {
		t.Fatal("expected no level change")
	}
	if p.Level != 5 || p.MaxEnergy != 140 {
		t.Fatalf("got level=%d maxEnergy=%d", p.Level, p.MaxEnergy)
	}
}
