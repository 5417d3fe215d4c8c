package cmcquotes

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/DEATHAIsol/instantfi/pkg/types/market"
)

// listing is the partial schema of one data entry. Every field stays raw so
// that a bad value only affects the entry it belongs to.
type listing struct {
	Name              json.RawMessage            `json:"name"`
	Symbol            json.RawMessage            `json:"symbol"`
	Quote             map[string]json.RawMessage `json:"quote"`
	Platform          json.RawMessage            `json:"platform"`
	CirculatingSupply json.RawMessage            `json:"circulating_supply"`
	TotalSupply       json.RawMessage            `json:"total_supply"`
}

type quoteFields struct {
	Price            json.RawMessage `json:"price"`
	MarketCap        json.RawMessage `json:"market_cap"`
	Volume24h        json.RawMessage `json:"volume_24h"`
	PercentChange24h json.RawMessage `json:"percent_change_24h"`
}

type platform struct {
	TokenAddress string `json:"token_address"`
}

// Normalize converts raw entries into quotes in the given currency. Entries
// without a valid quote are left out; the result is never nil.
func Normalize(raw market.RawQuoteMap, currency string) map[string]market.Quote {
	quotes, _ := NormalizeReport(raw, currency)
	return quotes
}

// NormalizeReport is Normalize plus the sorted ids of the dropped entries.
func NormalizeReport(raw market.RawQuoteMap, currency string) (map[string]market.Quote, []string) {
	quotes := make(map[string]market.Quote, len(raw))
	var dropped []string

	for id, entry := range raw {
		q, ok := normalizeEntry(entry, currency)
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		quotes[id] = q
	}

	sort.Strings(dropped)
	return quotes, dropped
}

func normalizeEntry(entry json.RawMessage, currency string) (market.Quote, bool) {
	var l listing
	if err := json.Unmarshal(entry, &l); err != nil {
		return market.Quote{}, false
	}

	rawQuote, ok := quoteFor(l.Quote, currency)
	if !ok {
		return market.Quote{}, false
	}

	var f quoteFields
	if err := json.Unmarshal(rawQuote, &f); err != nil {
		return market.Quote{}, false
	}

	var q market.Quote
	if q.Price, ok = coerceNumber(f.Price); !ok || q.Price < 0 {
		return market.Quote{}, false
	}
	if q.MarketCap, ok = coerceNumber(f.MarketCap); !ok || q.MarketCap < 0 {
		return market.Quote{}, false
	}
	if q.Volume24h, ok = coerceNumber(f.Volume24h); !ok || q.Volume24h < 0 {
		return market.Quote{}, false
	}
	if q.PercentChange24h, ok = coerceNumber(f.PercentChange24h); !ok {
		return market.Quote{}, false
	}

	return q, true
}

func quoteFor(quotes map[string]json.RawMessage, currency string) (json.RawMessage, bool) {
	if q, ok := quotes[currency]; ok && !isNull(q) {
		return q, true
	}
	for k, q := range quotes {
		if strings.EqualFold(k, currency) && !isNull(q) {
			return q, true
		}
	}
	return nil, false
}

// coerceNumber accepts a JSON number or a string holding one. Anything else,
// including NaN and infinities, is rejected.
func coerceNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return 0, false
	}

	var v float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	} else if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// ExtractMetadata pulls optional listing details. Missing or malformed fields
// are left empty; an entry that is not an object yields no metadata.
func ExtractMetadata(raw market.RawQuoteMap) map[string]market.Metadata {
	out := make(map[string]market.Metadata, len(raw))
	for id, entry := range raw {
		var l listing
		if err := json.Unmarshal(entry, &l); err != nil {
			continue
		}

		md := market.Metadata{
			Name:   coerceString(l.Name),
			Symbol: coerceString(l.Symbol),
		}
		if v, ok := coerceNumber(l.CirculatingSupply); ok && v >= 0 {
			md.CirculatingSupply = &v
		}
		if v, ok := coerceNumber(l.TotalSupply); ok && v >= 0 {
			md.TotalSupply = &v
		}
		if len(l.Platform) > 0 && !isNull(l.Platform) {
			var p platform
			if err := json.Unmarshal(l.Platform, &p); err == nil {
				md.ContractAddress = strings.TrimSpace(p.TokenAddress)
			}
		}
		out[id] = md
	}
	return out
}

// Listing is the shape returned by the refresh proxy endpoint.
type Listing struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Symbol string                  `json:"symbol"`
	Quote  map[string]market.Quote `json:"quote"`
}

// Transform normalizes raw and attaches name and symbol, keyed by provider id.
func Transform(raw market.RawQuoteMap, currency string) map[string]Listing {
	quotes := Normalize(raw, currency)
	meta := ExtractMetadata(raw)

	out := make(map[string]Listing, len(quotes))
	for id, q := range quotes {
		md := meta[id]
		out[id] = Listing{
			ID:     id,
			Name:   md.Name,
			Symbol: md.Symbol,
			Quote:  map[string]market.Quote{currency: q},
		}
	}
	return out
}
