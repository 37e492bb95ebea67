package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a simple health‑check endpoint used by uptime monitors to
// verify that the bot process is running.  It returns a plain text
// "alive" message with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "alive")
}
