package registry

import "github.com/DEATHAIsol/instantfi/pkg/types/market"

// Provider ids are CoinMarketCap ids. Rates are static placeholders.
var defaultDescriptors = []market.AssetDescriptor{
	{LocalID: "trump-2024", DisplayName: "Official Trump", Symbol: "TRUMP", IconRef: "/assets/trump.png", ProviderID: "35336", StaticBorrowRate: 4.2, StaticSupplyRate: 1.85},
	{LocalID: "bonk", DisplayName: "Bonk", Symbol: "BONK", IconRef: "/assets/bonk.png", ProviderID: "23095", StaticBorrowRate: 5.8, StaticSupplyRate: 2.45},
	{LocalID: "dogwifhat", DisplayName: "dogwifhat", Symbol: "WIF", IconRef: "/assets/wif.png", ProviderID: "28752", StaticBorrowRate: 6.2, StaticSupplyRate: 2.75},
	{LocalID: "fartcoin", DisplayName: "Fartcoin", Symbol: "FARTCOIN", IconRef: "/assets/fartcoin.png", ProviderID: "33597", StaticBorrowRate: 3.5, StaticSupplyRate: 1.55},
	{LocalID: "pudgy", DisplayName: "Pudgy Penguins", Symbol: "PENGU", IconRef: "/assets/pengu.png", ProviderID: "34466", StaticBorrowRate: 4.8, StaticSupplyRate: 2.15},
	{LocalID: "popcat", DisplayName: "Popcat", Symbol: "POPCAT", IconRef: "/assets/popcat.png", ProviderID: "28782", StaticBorrowRate: 3.9, StaticSupplyRate: 1.65},
	{LocalID: "mew", DisplayName: "cat in a dogs world", Symbol: "MEW", IconRef: "/assets/mew.png", ProviderID: "30126", StaticBorrowRate: 5.1, StaticSupplyRate: 2.25},
	{LocalID: "baby-doge-coin", DisplayName: "Baby Doge Coin", Symbol: "BABYDOGE", IconRef: "/assets/babydoge.png", ProviderID: "10407", StaticBorrowRate: 4.5, StaticSupplyRate: 1.95},
	{LocalID: "gigachad", DisplayName: "Gigachad", Symbol: "GIGA", IconRef: "/assets/giga.png", ProviderID: "30063", StaticBorrowRate: 6.7, StaticSupplyRate: 2.85},
	{LocalID: "ai16z", DisplayName: "ai16z", Symbol: "AI16Z", IconRef: "/assets/ai16z.png", ProviderID: "34026", StaticBorrowRate: 5.4, StaticSupplyRate: 2.35},
}
