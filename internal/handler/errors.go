package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/triotrip/internal/models"
	"github.com/dharmasatrya/triotrip/internal/upstream"
)

func errorJSON(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    status,
	})
}

// upstreamError answers with the status matching a collaborator failure.
func upstreamError(c echo.Context, err error) error {
	status := upstream.HTTPStatus(err)
	var ue *upstream.Error
	if !errors.As(err, &ue) {
		return errorJSON(c, status, "internal_error", err.Error())
	}
	log.Printf("%s call failed: %v", ue.Service, err)
	return errorJSON(c, status, ue.Kind.String(), err.Error())
}

// ErrorHandler renders errors returned by handlers and middleware as
// ErrorResponse bodies.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	kind := "internal_error"
	message := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
		switch status {
		case http.StatusNotFound:
			kind = "not_found"
		case http.StatusMethodNotAllowed:
			kind = "method_not_allowed"
		case http.StatusBadRequest:
			kind = "invalid_request"
		}
	} else {
		log.Printf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = errorJSON(c, status, kind, message)
	}
	if err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}
