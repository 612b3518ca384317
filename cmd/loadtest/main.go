package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:4000"
	rps        = 25
	duration   = 1 * time.Minute
)

var queries = []string{
	`{ hello }`,
	`{ viewer { id fullName email } }`,
	`{ teams { id name users { id fullName } } }`,
	`{ user(id: "1") { fullName comments { body author { fullName } } } }`,
	`{ user(id: "2") { fullName highFives { id } } }`,
}

var httpc = &http.Client{Timeout: 10 * time.Second}

// login получает JWT через форму /login, как это делает живой клиент.
func login(email, password string) (string, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}
	resp, err := httpc.PostForm(targetHost+"/login", form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned %d", resp.StatusCode)
	}

	var body struct {
		JWT string `json:"jwt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.JWT, nil
}

// Targeter
func makeTargeter(token string) vegeta.Targeter {
	return func(t *vegeta.Target) error {
		query := queries[rand.Intn(len(queries))]
		body, _ := json.Marshal(map[string]string{"query": query})

		header := map[string][]string{"Content-Type": {"application/json"}}
		// 70% запросов идут аутентифицированными, остальные анонимно
		if rand.Float64() < 0.70 {
			header["Authorization"] = []string{"Bearer " + token}
		}

		t.Method = http.MethodPost
		t.URL = targetHost + "/graphql"
		t.Body = body
		t.Header = header
		return nil
	}
}

// Attack
func runAttack(token string) {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter(token)

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "graphql-load") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := smokeCheck(); err != nil {
		log.Fatalf("Target is not up: %v", err)
	}

	token, err := login("ada@example.com", "password")
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Println("Login OK, token acquired")

	runAttack(token)
}

// smokeCheck дергает /health перед атакой.
func smokeCheck() error {
	resp, err := httpc.Get(targetHost + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}
