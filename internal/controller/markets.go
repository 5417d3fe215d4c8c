package controller

import (
	"net/http"

	"github.com/DEATHAIsol/instantfi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ListMarkets godoc
// @Summary List tracked markets
// @Description Current snapshot of all tracked tokens, sorted by market cap
// @Tags markets
// @Produce json
// @Success 200 {object} MarketsResponse
// @Router /api/markets [get]
func (c *Controller) ListMarkets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newMarketsResponse(c.marketData.Snapshot(), c.currency))
}

// GetMarket godoc
// @Summary Get a tracked market
// @Description Detail view for one token, including supply ratios and embed links
// @Tags markets
// @Produce json
// @Param symbol path string true "Token symbol (e.g., BONK)"
// @Success 200 {object} AssetDetailResponse
// @Failure 404 {object} APIError
// @Router /api/markets/{symbol} [get]
func (c *Controller) GetMarket(ctx *gin.Context) {
	d, ok := c.assets.Lookup(ctx.Param("symbol"))
	if !ok {
		notFound(ctx, "Market not found for symbol")
		return
	}

	snap := c.marketData.Snapshot()
	asset, ok := snap.FindByLocalID(d.LocalID)
	if !ok {
		notFound(ctx, "Market not found for symbol")
		return
	}

	ctx.JSON(http.StatusOK, newAssetDetail(asset, snap.Stale()))
}

// SyncMarkets godoc
// @Summary Refresh markets now
// @Description Runs a refresh cycle immediately
// @Tags markets
// @Produce json
// @Success 200 {object} MarketsResponse
// @Failure 409 {object} APIError
// @Failure 503 {object} APIError
// @Router /api/markets/sync [post]
func (c *Controller) SyncMarkets(ctx *gin.Context) {
	out := c.marketData.Refresh()

	switch {
	case out.Err == nil:
		ctx.JSON(http.StatusOK, newMarketsResponse(c.marketData.Snapshot(), c.currency))
	case errors.Is(out.Err, service.ErrRefreshInFlight):
		conflict(ctx, out.Err.Error())
	case errors.Is(out.Err, service.ErrServiceStopped):
		errorResponse(ctx, http.StatusServiceUnavailable, out.Err.Error())
	default:
		c.logger.Warn("manual refresh failed", "kind", out.Kind, "error", out.Err)
		errorWithKind(ctx, http.StatusServiceUnavailable, out.Err.Error(), out.Kind.String())
	}
}
