package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/DEATHAIsol/instantfi/pkg/integrations/cmcquotes"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var errNoIDs = errors.New("no cryptocurrency ids provided")

// IDList accepts either a comma-separated string or an array of strings.
type IDList []string

func (l *IDList) UnmarshalJSON(b []byte) error {
	var joined string
	if err := json.Unmarshal(b, &joined); err == nil {
		*l = splitIDs(strings.Split(joined, ","))
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.Wrap(err, "ids must be a string or an array of strings")
	}
	*l = splitIDs(list)
	return nil
}

// splitIDs trims and drops blank or repeated ids, keeping first-seen order.
func splitIDs(parts []string) IDList {
	ids := make(IDList, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		ids = append(ids, p)
	}
	return ids
}

type RefreshRequest struct {
	IDs IDList `json:"ids" swaggertype:"string" example:"35336,23095"`
}

// RefreshQuotes godoc
// @Summary Fetch latest quotes
// @Description Fetches quotes for the given provider ids. Invalid entries are dropped.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Comma-separated provider ids"
// @Success 200 {object} map[string]cmcquotes.Listing
// @Failure 500 {object} APIError
// @Router /refresh [post]
func (c *Controller) RefreshQuotes(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		internalError(ctx, "invalid request body: "+err.Error())
		return
	}
	if len(req.IDs) == 0 {
		internalError(ctx, errNoIDs.Error())
		return
	}

	raw, err := c.fetcher.FetchQuotes(ctx.Request.Context(), req.IDs)
	if err != nil {
		c.logger.Error("failed to fetch quotes", "ids", len(req.IDs), "error", err)
		internalError(ctx, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, cmcquotes.Transform(raw, c.currency))
}
