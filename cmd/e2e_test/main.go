package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"holdings/internal/config"
	"holdings/internal/loader"
	"holdings/internal/screen"
)

func main() {
	baseURL := "http://localhost:8080"
	if v := os.Getenv("E2E_BASE_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint(baseURL+"/health", 200)

	// 2. Raw feed
	checkEndpoint(baseURL+"/holdings", 200)

	// 3. Screen against the feed
	logger := config.NewLogger("info", os.Stderr)
	var alerts int
	s := screen.New(loader.New(baseURL+"/holdings", nil, logger), screen.NotifierFunc(func(msg string) {
		alerts++
		fmt.Printf("Alert: %s\n", msg)
	}), logger)
	s.Activate(context.Background())
	<-s.Done()
	if alerts != 0 {
		log.Fatalf("expected no alert, got %d", alerts)
	}
	v := s.View()
	fmt.Printf("Loaded %d holdings, investment %s, current %s, P/L %s\n", len(v.Holdings), v.TotalInvestment, v.CurrentValue, v.TotalProfit)
	s.Deactivate()

	// 4. Screen against a missing route
	alerts = 0
	s = screen.New(loader.New(baseURL+"/missing", nil, logger), screen.NotifierFunc(func(string) { alerts++ }), logger)
	s.Activate(context.Background())
	<-s.Done()
	if alerts != 1 || len(s.View().Holdings) != 0 {
		log.Fatalf("expected one alert and no holdings, got %d alerts", alerts)
	}

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(url string, expectedStatus int) {
	fmt.Printf("Testing GET %s...\n", url)
	resp, err := http.Get(url)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}
