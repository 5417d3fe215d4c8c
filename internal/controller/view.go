package controller

import (
	"net/url"
	"time"

	"github.com/DEATHAIsol/instantfi/internal/service"
	"github.com/DEATHAIsol/instantfi/pkg/format"
	"github.com/DEATHAIsol/instantfi/pkg/types/market"
)

const (
	dexScreenerBaseURL = "https://dexscreener.com"
	solscanTokenURL    = "https://solscan.io/token/"
)

type AssetDisplay struct {
	Price      string `json:"price"`
	MarketCap  string `json:"market_cap"`
	Volume24h  string `json:"volume_24h"`
	Change24h  string `json:"change_24h"`
	BorrowRate string `json:"borrow_rate"`
	SupplyRate string `json:"supply_rate"`
}

type AssetView struct {
	market.Asset
	Display AssetDisplay `json:"display"`
}

type MarketsResponse struct {
	State         string      `json:"state"`
	Stale         bool        `json:"stale"`
	ErrorKind     string      `json:"error_kind,omitempty"`
	Error         string      `json:"error,omitempty"`
	Currency      string      `json:"currency"`
	UpdatedAt     time.Time   `json:"updated_at"`
	LastSuccessAt *time.Time  `json:"last_success_at,omitempty"`
	Assets        []AssetView `json:"assets"`
}

type AssetLinks struct {
	Chart          string `json:"chart"`
	SwapOutputMint string `json:"swap_output_mint,omitempty"`
	Explorer       string `json:"explorer,omitempty"`
	DexScreener    string `json:"dexscreener,omitempty"`
}

type AssetDetailResponse struct {
	AssetView
	Stale             bool       `json:"stale"`
	SupplyRatio       string     `json:"supply_ratio,omitempty"`
	VolumeToMarketCap string     `json:"volume_to_market_cap,omitempty"`
	Links             AssetLinks `json:"links"`
}

func newAssetView(a market.Asset) AssetView {
	return AssetView{
		Asset: a,
		Display: AssetDisplay{
			Price:      format.Price(a.Price),
			MarketCap:  format.Compact(a.MarketCap),
			Volume24h:  format.Compact(a.Volume24h),
			Change24h:  format.Percent(a.PercentChange24h),
			BorrowRate: format.Rate(a.StaticBorrowRate),
			SupplyRate: format.Rate(a.StaticSupplyRate),
		},
	}
}

func newMarketsResponse(snap *service.Snapshot, currency string) MarketsResponse {
	resp := MarketsResponse{
		State:     snap.State.String(),
		Stale:     snap.Stale(),
		Error:     snap.LastError,
		Currency:  currency,
		UpdatedAt: snap.UpdatedAt,
		Assets:    make([]AssetView, 0, len(snap.Assets)),
	}
	if snap.ErrorKind != market.KindNone {
		resp.ErrorKind = snap.ErrorKind.String()
	}
	if !snap.LastSuccessAt.IsZero() {
		t := snap.LastSuccessAt
		resp.LastSuccessAt = &t
	}
	for _, a := range snap.Assets {
		resp.Assets = append(resp.Assets, newAssetView(a))
	}
	return resp
}

func newAssetDetail(a market.Asset, stale bool) AssetDetailResponse {
	detail := AssetDetailResponse{
		AssetView:         newAssetView(a),
		Stale:             stale,
		VolumeToMarketCap: format.Ratio(a.Volume24h, a.MarketCap),
		Links:             newAssetLinks(a),
	}
	md := a.Metadata
	if md.CirculatingSupply != nil && md.TotalSupply != nil {
		detail.SupplyRatio = format.Ratio(*md.CirculatingSupply, *md.TotalSupply)
	}
	return detail
}

// newAssetLinks builds embed and explorer links. The contract address is
// forwarded as is.
func newAssetLinks(a market.Asset) AssetLinks {
	addr := a.Metadata.ContractAddress
	if addr == "" {
		return AssetLinks{
			Chart: dexScreenerBaseURL + "/search?q=" + url.QueryEscape(a.Symbol) + "&embed=1&theme=dark",
		}
	}

	escaped := url.PathEscape(addr)
	return AssetLinks{
		Chart:          dexScreenerBaseURL + "/solana/" + escaped + "?embed=1&theme=dark",
		SwapOutputMint: addr,
		Explorer:       solscanTokenURL + escaped,
		DexScreener:    dexScreenerBaseURL + "/solana/" + escaped,
	}
}
