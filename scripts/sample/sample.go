package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/DEATHAIsol/instantfi/internal/controller"
	"github.com/DEATHAIsol/instantfi/internal/registry"
	"github.com/DEATHAIsol/instantfi/pkg/integrations/cmcquotes"
	"github.com/DEATHAIsol/instantfi/pkg/utils"
)

// Exercises a running server: proxies one quote batch, forces a sync and
// prints the resulting market list.
func main() {
	baseURL := utils.GetEnv("SAMPLE_BASE_URL", "http://localhost:8080")

	ids := registry.Default().ProviderIDs()
	listings := refresh(baseURL, ids)
	fmt.Printf("Proxy returned %d of %d listings\n", len(listings), len(ids))

	sync(baseURL)

	markets := listMarkets(baseURL)
	fmt.Printf("\nState: %s (stale=%t)\n", markets.State, markets.Stale)
	if markets.Error != "" {
		fmt.Printf("Last error [%s]: %s\n", markets.ErrorKind, markets.Error)
	}
	for i, a := range markets.Assets {
		fmt.Printf("%2d. %-9s %16s %10s %9s\n", i+1, a.Symbol, a.Display.Price, a.Display.MarketCap, a.Display.Change24h)
	}
}

func refresh(baseURL string, ids []string) map[string]cmcquotes.Listing {
	body, _ := json.Marshal(map[string]string{"ids": strings.Join(ids, ",")})

	resp, err := http.Post(baseURL+"/refresh", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to call refresh: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr controller.APIError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		log.Fatalf("Refresh failed: status %d: %s", resp.StatusCode, apiErr.Error)
	}

	var listings map[string]cmcquotes.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		log.Fatalf("Failed to decode refresh response: %v", err)
	}
	return listings
}

func sync(baseURL string) {
	resp, err := http.Post(baseURL+"/api/markets/sync", "application/json", nil)
	if err != nil {
		log.Fatalf("Failed to call sync: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Println("Sync completed")
	case http.StatusConflict:
		fmt.Println("Sync skipped, a refresh is already running")
	default:
		fmt.Printf("Sync failed: status %d\n", resp.StatusCode)
	}
}

func listMarkets(baseURL string) controller.MarketsResponse {
	resp, err := http.Get(baseURL + "/api/markets")
	if err != nil {
		log.Fatalf("Failed to list markets: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Failed to list markets: status %d", resp.StatusCode)
	}

	var markets controller.MarketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		log.Fatalf("Failed to decode markets response: %v", err)
	}
	return markets
}
