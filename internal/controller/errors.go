package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrNilMarketData  = errors.New("market data service cannot be nil")
	ErrNilFetcher     = errors.New("quote fetcher cannot be nil")
	ErrNilAssetLookup = errors.New("asset lookup cannot be nil")
)

type APIError struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

func errorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, APIError{Error: message})
}

func errorWithKind(ctx *gin.Context, status int, message, kind string) {
	ctx.JSON(status, APIError{Error: message, Kind: kind})
}

func notFound(ctx *gin.Context, message string) {
	errorResponse(ctx, http.StatusNotFound, message)
}

func conflict(ctx *gin.Context, message string) {
	errorResponse(ctx, http.StatusConflict, message)
}

func internalError(ctx *gin.Context, message string) {
	errorResponse(ctx, http.StatusInternalServerError, message)
}
