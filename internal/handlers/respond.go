package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maisonrony/shop_backend/internal/logging"
	"github.com/maisonrony/shop_backend/internal/mykafka"
)

// Verbose widens 500 responses with the underlying error message. Only the
// development bootstrap turns it on; production callers get the generic text.
var Verbose bool

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{
		"success": false,
		"message": message,
	})
}

func internalError(c echo.Context, message string, err error) error {
	logging.FromContext(c.Request().Context()).Error(message, "error", err)
	body := echo.Map{
		"success": false,
		"message": message,
	}
	if Verbose && err != nil {
		body["error"] = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}

// publish fires a best-effort domain event; delivery failures are logged,
// never surfaced to the caller.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
