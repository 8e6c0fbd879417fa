package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/triotrip/internal/ai"
	"github.com/dharmasatrya/triotrip/internal/planner"
	"github.com/dharmasatrya/triotrip/internal/store"
	"github.com/dharmasatrya/triotrip/internal/upstream"
)

type Planner interface {
	Plan(ctx context.Context, req planner.Request) (*planner.Plan, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
}

type AIHandler struct {
	completer ai.Completer
	planner   Planner
}

func NewAIHandler(completer ai.Completer, p Planner) *AIHandler {
	return &AIHandler{
		completer: completer,
		planner:   p,
	}
}

type completeRequest struct {
	Prompt string `json:"prompt"`
	System string `json:"system"`
}

// Complete returns {"data": ...} when the model answered with JSON and
// {"raw": "..."} otherwise.
func (h *AIHandler) Complete(c echo.Context) error {
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errorJSON(c, http.StatusBadRequest, "validation_error", "prompt is required")
	}

	text, err := h.completer.Complete(c.Request().Context(), req.Prompt, req.System)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, ai.ParsePayload(text))
}

func (h *AIHandler) PlanTrip(c echo.Context) error {
	var req planner.Request
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	plan, err := h.planner.Plan(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, plan)
	case errors.Is(err, planner.ErrMissingPrompt), errors.Is(err, planner.ErrInvalidDate):
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, planner.ErrMalformedPlan):
		return errorJSON(c, http.StatusBadGateway, upstream.Failed.String(), err.Error())
	default:
		return upstreamError(c, err)
	}
}

func (h *AIHandler) GetPlan(c echo.Context) error {
	raw, err := h.planner.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "not_found", "plan not found")
	}
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}
