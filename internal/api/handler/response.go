package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

// writeResult renders a command outcome. Failed commands answer 422 with
// the same envelope so the shell can read the message either way.
func writeResult(c echo.Context, res ports.Result) error {
	if !res.Success {
		return c.JSON(http.StatusUnprocessableEntity, res)
	}
	return c.JSON(http.StatusOK, res)
}

// bind decodes the request body into req. Presence checks belong to the
// session controller so its failures carry the portal's messages.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	return nil
}

// bindAndValidate decodes the request body into req and runs its validation
// tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := bind(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}

// pathID reads the numeric :id path parameter.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", domain.ErrInvalidInput)
	}
	return id, nil
}
