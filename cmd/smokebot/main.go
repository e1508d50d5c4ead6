package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// smokebot registers a throwaway player against a running server and plays a
// few rounds of the game loop: crime until energy runs out, rest, and buy
// gear when it can afford it. Useful as an end-to-end smoke check.

type AuthResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
	Username string `json:"username,omitempty"`
}

type CrimeResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Result string `json:"result,omitempty"`
	Crime  string `json:"crime,omitempty"`
	Reward int64  `json:"reward,omitempty"`
	Energy int    `json:"energy"`
	Money  int64  `json:"money"`
	Level  int    `json:"level,omitempty"`
}

type RestResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Energy int    `json:"energy"`
}

type BuyItemResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Item  string `json:"item,omitempty"`
	Money int64  `json:"money"`
}

type PlayerResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Money  int64  `json:"money"`
	Energy int    `json:"energy"`
	Level  int    `json:"level"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

func main() {
	baseURL := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if baseURL == "" {
		log.Fatal("API_BASE_URL is required")
	}

	rounds := parseEnvInt("SMOKEBOT_ROUNDS", 5)
	minDelay := parseEnvInt("SMOKEBOT_DELAY_MIN_MS", 200)
	maxDelay := parseEnvInt("SMOKEBOT_DELAY_MAX_MS", 800)

	username := strings.TrimSpace(os.Getenv("SMOKEBOT_USERNAME"))
	if username == "" {
		username = fmt.Sprintf("smokebot_%d", time.Now().Unix())
	}
	password := strings.TrimSpace(os.Getenv("SMOKEBOT_PASSWORD"))
	if password == "" {
		password = fmt.Sprintf("smoke-%d-pass", rand.Int63())
	}

	client := &http.Client{Timeout: 15 * time.Second}

	if err := register(client, baseURL, username, password); err != nil {
		log.Fatalf("register failed for %s: %v", username, err)
	}
	if err := login(client, baseURL, username, password); err != nil {
		log.Fatalf("login failed for %s: %v", username, err)
	}
	log.Printf("%s registered and logged in", username)

	for round := 0; round < rounds; round++ {
		state, err := fetchPlayer(client, baseURL, username)
		if err != nil {
			log.Fatalf("player fetch failed: %v", err)
		}
		log.Printf("round %d: money=%d energy=%d level=%d wins=%d losses=%d",
			round+1, state.Money, state.Energy, state.Level, state.Wins, state.Losses)

		outcome, err := commitCrime(client, baseURL, username)
		if err != nil {
			if err.Error() == "NOT_ENOUGH_ENERGY" {
				energy, restErr := restUp(client, baseURL, username)
				if restErr != nil {
					log.Fatalf("rest failed: %v", restErr)
				}
				log.Printf("rested, energy=%d", energy)
				continue
			}
			log.Fatalf("crime failed: %v", err)
		}
		log.Printf("%s: %s reward=%d money=%d energy=%d",
			outcome.Crime, outcome.Result, outcome.Reward, outcome.Money, outcome.Energy)

		if outcome.Money >= 300 {
			if item, err := buyItem(client, baseURL, username, "armor", "leather_jacket"); err == nil {
				log.Printf("bought %s", item)
			}
		}

		sleepJitter(minDelay, maxDelay)
	}
}

func register(client *http.Client, baseURL string, username string, password string) error {
	var response AuthResponse
	if err := postJSON(client, baseURL+"/register", map[string]string{
		"username": username,
		"password": password,
	}, &response); err != nil {
		return err
	}
	if !response.OK && response.Error != "USERNAME_TAKEN" {
		return errors.New(response.Error)
	}
	return nil
}

func login(client *http.Client, baseURL string, username string, password string) error {
	var response AuthResponse
	if err := postJSON(client, baseURL+"/login", map[string]string{
		"username": username,
		"password": password,
	}, &response); err != nil {
		return err
	}
	if !response.OK {
		return errors.New(response.Error)
	}
	return nil
}

func fetchPlayer(client *http.Client, baseURL string, username string) (*PlayerResponse, error) {
	res, err := client.Get(baseURL + "/player?username=" + username)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var response PlayerResponse
	if err := decodeJSON(res.Body, &response); err != nil {
		return nil, err
	}
	if !response.OK {
		return nil, errors.New(response.Error)
	}
	return &response, nil
}

func commitCrime(client *http.Client, baseURL string, username string) (*CrimeResponse, error) {
	var response CrimeResponse
	if err := postJSON(client, baseURL+"/crime", map[string]string{"username": username}, &response); err != nil {
		return nil, err
	}
	if !response.OK {
		return nil, errors.New(response.Error)
	}
	return &response, nil
}

func restUp(client *http.Client, baseURL string, username string) (int, error) {
	var response RestResponse
	if err := postJSON(client, baseURL+"/rest", map[string]string{"username": username}, &response); err != nil {
		return 0, err
	}
	if !response.OK {
		return 0, errors.New(response.Error)
	}
	return response.Energy, nil
}

func buyItem(client *http.Client, baseURL string, username string, itemType string, itemID string) (string, error) {
	var response BuyItemResponse
	if err := postJSON(client, baseURL+"/armory/buy", map[string]string{
		"username": username,
		"itemType": itemType,
		"itemId":   itemID,
	}, &response); err != nil {
		return "", err
	}
	if !response.OK {
		return "", errors.New(response.Error)
	}
	return response.Item, nil
}

func postJSON(client *http.Client, url string, payload interface{}, target interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	res, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return decodeJSON(res.Body, target)
}

func decodeJSON(reader io.Reader, target interface{}) error {
	return json.NewDecoder(reader).Decode(target)
}

func sleepJitter(minMs int, maxMs int) {
	if minMs <= 0 {
		return
	}
	if maxMs < minMs {
		maxMs = minMs
	}
	jitter := rand.Intn(maxMs-minMs+1) + minMs
	time.Sleep(time.Duration(jitter) * time.Millisecond)
}

func parseEnvInt(key string, fallback int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}
