package main

import "testing"

func TestApplyCrimeOutcomeSuccess(t *testing.T) {
	p := &Player{Money: 100, Energy: 100, MaxEnergy: 100, Level: 1}
	crime := CrimeSpec{Name: "Pickpocket", Energy: 10, RewardMin: 20, RewardMax: 50, Exp: 5, Success: 0.9}

	applyCrimeOutcome(p, crime, true, 30)

	if p.Energy != 90 {
		t.Fatalf("energy = %d, want 90", p.Energy)
	}
	if p.Money != 130 {
		t.Fatalf("money = %d, want 130", p.Money)
	}
	if p.Wins != 1 || p.Losses != 0 {
		t.Fatalf("wins=%d losses=%d", p.Wins, p.Losses)
	}
	if p.Experience != 5 {
		t.Fatalf("experience = %d, want 5", p.Experience)
	}
}

func TestApplyCrimeOutcomeFailureStillSpendsEnergy(t *testing.T) {
	p := &Player{Money: 100, Energy: 70, MaxEnergy: 100, Level: 1}
	crime := CrimeSpec{Name: "Bank Heist", Energy: 60, RewardMin: 500, RewardMax: 1000, Exp: 50, Success: 0.4}

	applyCrimeOutcome(p, crime, false, 0)

	if p.Energy != 10 {
		t.Fatalf("energy = %d, want 10", p.Energy)
	}
	if p.Money != 100 {
		t.Fatalf("money = %d, want unchanged 100", p.Money)
	}
	if p.Wins != 0 || p.Losses != 1 {
		t.Fatalf("wins=%d losses=%d", p.Wins, p.Losses)
	}
	if p.Experience != 0 {
		t.Fatalf("experience = %d, want 0 on failure", p.Experience)
	}
}

func TestApplyCrimeOutcomeLevelUp(t *testing.T) {
	p := &Player{Money: 0, Energy: 100, MaxEnergy: 100, Level: 1, Experience: 95}
	crime := CrimeSpec{Name: "Pickpocket", Energy: 10, Exp: 5}

	leveled := applyCrimeOutcome(p, crime, true, 20)

	if !leveled {
		t.Fatal("expected level up")
	}
	if p.Level != 2 || p.MaxEnergy != 110 {
		t.Fatalf("level=%d maxEnergy=%d", p.Level, p.MaxEnergy)
	}
}

func TestRollSuccessExtremes(t *testing.T) {
	always, err := rollSuccess(1.0)
	if err != nil {
		t.Fatalf("rollSuccess(1.0): %v", err)
	}
	if !always {
		t.Fatal("probability 1.0 must always succeed")
	}

	never, err := rollSuccess(0)
	if err != nil {
		t.Fatalf("rollSuccess(0): %v", err)
	}
	if never {
		t.Fatal("probability 0 must never succeed")
	}
}

func TestRollRewardWithinRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		reward, err := rollReward(20, 50)
		if err != nil {
			t.Fatalf("rollReward: %v", err)
		}
		if reward < 20 || reward > 50 {
			t.Fatalf("reward %d out of [20,50]", reward)
		}
	}
}

func TestRollRewardDegenerateRange(t *testing.T) {
	reward, err := rollReward(30, 30)
	if err != nil {
		t.Fatalf("rollReward: %v", err)
	}
	if reward != 30 {
		t.Fatalf("reward = %d, want 30", reward)
	}
}

func TestPickCrimeReturnsCatalogEntry(t *testing.T) {
	for i := 0; i < 50; i++ {
		crime, err := pickCrime()
		if err != nil {
			t.Fatalf("pickCrime: %v", err)
		}
		found := false
		for _, candidate := range crimeCatalog {
			if candidate.Name == crime.Name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("picked crime %q not in catalog", crime.Name)
		}
	}
}
