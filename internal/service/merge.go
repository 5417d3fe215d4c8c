package service

import (
	"cmp"
	"slices"

	"github.com/DEATHAIsol/instantfi/pkg/types/market"
)

// mergeQuotes returns a new collection where every asset whose provider id is
// present in quotes carries the new quote. Other assets keep their previous
// values. prev is not modified.
func mergeQuotes(prev []market.Asset, quotes map[string]market.Quote, meta map[string]market.Metadata) []market.Asset {
	next := make([]market.Asset, len(prev))
	copy(next, prev)

	for i := range next {
		a := &next[i]
		if !a.HasProviderID() {
			continue
		}
		if q, ok := quotes[a.ProviderID]; ok {
			a.Quote = q
		}
		if md, ok := meta[a.ProviderID]; ok {
			a.Metadata = mergeMetadata(a.Metadata, md)
		}
	}

	return next
}

func mergeMetadata(prev, next market.Metadata) market.Metadata {
	if next.Name != "" {
		prev.Name = next.Name
	}
	if next.Symbol != "" {
		prev.Symbol = next.Symbol
	}
	if next.CirculatingSupply != nil {
		prev.CirculatingSupply = next.CirculatingSupply
	}
	if next.TotalSupply != nil {
		prev.TotalSupply = next.TotalSupply
	}
	if next.ContractAddress != "" {
		prev.ContractAddress = next.ContractAddress
	}
	return prev
}

// sortByMarketCap orders assets by market cap descending. Equal market caps
// keep registry order, given by index.
func sortByMarketCap(assets []market.Asset, index func(localID string) int) {
	slices.SortStableFunc(assets, func(a, b market.Asset) int {
		if c := cmp.Compare(b.MarketCap, a.MarketCap); c != 0 {
			return c
		}
		return cmp.Compare(index(a.LocalID), index(b.LocalID))
	})
}

func initialAssets(descriptors []market.AssetDescriptor) []market.Asset {
	assets := make([]market.Asset, 0, len(descriptors))
	for _, d := range descriptors {
		assets = append(assets, market.NewAsset(d))
	}
	return assets
}
