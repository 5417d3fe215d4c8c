package market

import (
	"context"
	"encoding/json"
	"time"
)

const (
	CurrencyUSD = "USD"

	SourceCoinMarketCap = "coinmarketcap"
)

// AssetDescriptor is a static catalog entry. ProviderID is empty when the
// token has no market-data listing.
type AssetDescriptor struct {
	LocalID          string  `json:"id"`
	DisplayName      string  `json:"name"`
	Symbol           string  `json:"symbol"`
	IconRef          string  `json:"image"`
	ProviderID       string  `json:"provider_id,omitempty"`
	StaticBorrowRate float64 `json:"borrow_rate"`
	StaticSupplyRate float64 `json:"supply_rate"`
}

func (d AssetDescriptor) HasProviderID() bool {
	return d.ProviderID != ""
}

type Quote struct {
	Price            float64 `json:"price"`
	MarketCap        float64 `json:"market_cap"`
	Volume24h        float64 `json:"volume_24h"`
	PercentChange24h float64 `json:"percent_change_24h"`
}

// Metadata carries optional per-listing details that ride along with a quote.
type Metadata struct {
	Name              string   `json:"name,omitempty"`
	Symbol            string   `json:"symbol,omitempty"`
	CirculatingSupply *float64 `json:"circulating_supply,omitempty"`
	TotalSupply       *float64 `json:"total_supply,omitempty"`
	ContractAddress   string   `json:"contract_address,omitempty"`
}

type Asset struct {
	AssetDescriptor
	Quote
	Metadata Metadata `json:"metadata"`
	// Rating has no known source and is never populated by a refresh.
	Rating *float64 `json:"rating,omitempty"`
}

// NewAsset returns an asset with all quote fields zeroed.
func NewAsset(d AssetDescriptor) Asset {
	return Asset{AssetDescriptor: d}
}

// RawQuoteMap is the provider's data envelope keyed by provider identifier.
// Entries are left undecoded so each one can be validated on its own.
type RawQuoteMap map[string]json.RawMessage

type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, providerIDs []string) (RawQuoteMap, error)
}

type RefreshOutcome struct {
	Assets    []Asset
	Kind      ErrorKind
	Err       error
	Completed time.Time
}

func (o RefreshOutcome) Success() bool {
	return o.Err == nil
}
