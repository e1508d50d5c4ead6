package main

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"math/big"
)

type CrimeOutcome struct {
	Crime     CrimeSpec
	Success   bool
	Reward    int64
	LeveledUp bool
}

var errNotEnoughEnergy = errors.New("NOT_ENOUGH_ENERGY")

func pickCrime() (CrimeSpec, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(crimeCatalog))))
	if err != nil {
		return CrimeSpec{}, err
	}
	return crimeCatalog[n.Int64()], nil
}

// rollSuccess draws over a 1/10000 grid so catalog probabilities like 0.9
// and 0.4 resolve exactly.
func rollSuccess(probability float64) (bool, error) {
	if probability <= 0 {
		return false, nil
	}
	if probability >= 1 {
		return true, nil
	}

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return false, err
	}
	return float64(n.Int64()) < probability*10000, nil
}

func rollReward(min int64, max int64) (int64, error) {
	if max <= min {
		return min, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}

// applyCrimeOutcome mutates the player for a rolled crime. Energy is spent
// either way; a failed job still counts as a loss.
func applyCrimeOutcome(p *Player, crime CrimeSpec, success bool, reward int64) bool {
	p.Energy -= crime.Energy

	if !success {
		p.Losses++
		return false
	}

	p.Money += reward
	p.Wins++
	return addExperience(p, crime.Exp)
}

func resolveCrime(db *sql.DB, p *Player) (*CrimeOutcome, error) {
	crime, err := pickCrime()
	if err != nil {
		return nil, err
	}

	if p.Energy < crime.Energy {
		return nil, errNotEnoughEnergy
	}

	success, err := rollSuccess(crime.Success)
	if err != nil {
		return nil, err
	}

	var reward int64
	if success {
		reward, err = rollReward(crime.RewardMin, crime.RewardMax)
		if err != nil {
			return nil, err
		}
	}

	leveledUp := applyCrimeOutcome(p, crime, success, reward)

	if err := UpdatePlayerProgress(db, p); err != nil {
		return nil, err
	}

	return &CrimeOutcome{
		Crime:     crime,
		Success:   success,
		Reward:    reward,
		LeveledUp: leveledUp,
	}, nil
}
