package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/triotrip/internal/booking"
)

type Booker interface {
	GetOffer(ctx context.Context, offerID string) (*booking.Response, error)
	CreateOrder(ctx context.Context, body []byte) (*booking.Response, error)
	GetOrder(ctx context.Context, orderID string) (*booking.Response, error)
}

type BookingHandler struct {
	client Booker
}

func NewBookingHandler(client Booker) *BookingHandler {
	return &BookingHandler{client: client}
}

func (h *BookingHandler) Offer(c echo.Context) error {
	var req struct {
		OfferID string `json:"offerId"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	resp, err := h.client.GetOffer(c.Request().Context(), req.OfferID)
	return relay(c, resp, err)
}

// Order forwards the request body to the order API untouched.
func (h *BookingHandler) Order(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to read request body: "+err.Error())
	}
	if len(body) == 0 || !json.Valid(body) {
		return errorJSON(c, http.StatusBadRequest, "validation_error", "order body must be a JSON document")
	}
	resp, err := h.client.CreateOrder(c.Request().Context(), body)
	return relay(c, resp, err)
}

func (h *BookingHandler) OrderGet(c echo.Context) error {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	resp, err := h.client.GetOrder(c.Request().Context(), req.OrderID)
	return relay(c, resp, err)
}

func relay(c echo.Context, resp *booking.Response, err error) error {
	if errors.Is(err, booking.ErrMissingOfferID) || errors.Is(err, booking.ErrMissingOrderID) {
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}
	if err != nil {
		return upstreamError(c, err)
	}
	return c.Blob(resp.Status, resp.ContentType, resp.Body)
}
