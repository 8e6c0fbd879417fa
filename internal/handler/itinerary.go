package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/triotrip/internal/itinerary"
)

func ItineraryPDFHandler(c echo.Context) error {
	var doc itinerary.Document
	if err := c.Bind(&doc); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	out, err := itinerary.Render(doc, time.Now())
	if errors.Is(err, itinerary.ErrNoFlight) {
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="triotrip-itinerary.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", out)
}
