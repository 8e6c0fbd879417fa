package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/triotrip/internal/cache"
	"github.com/dharmasatrya/triotrip/internal/models"
)

type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
}

type SearchHandler struct {
	pipeline Searcher
	cache    cache.Cache
}

func NewSearchHandler(p Searcher, c cache.Cache) *SearchHandler {
	return &SearchHandler{
		pipeline: p,
		cache:    c,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}

	key := cache.Key(req)
	if body, found := h.cache.Get(ctx, key); found {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSONBlob(http.StatusOK, body)
	}

	resp, err := h.pipeline.Search(ctx, req)
	if err != nil {
		log.Printf("search %s-%s failed: %v", req.Origin, req.Destination, err)
		return errorJSON(c, http.StatusInternalServerError, "search_error", err.Error())
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := h.cache.Set(ctx, key, body); err != nil {
		log.Printf("cache set failed: %v", err)
	}

	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSONBlob(http.StatusOK, body)
}
