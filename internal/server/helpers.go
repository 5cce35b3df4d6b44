package server

import (
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"roomboard/internal/middleware"
	"roomboard/internal/models"
	"roomboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// pageID reads a positive numeric route parameter. A malformed id answers 404
// like any other unknown page.
func pageID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusNotFound).SendString("Not found")
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// apiID is pageID for JSON routes: malformed ids get a 400 error body.
func apiID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+strings.ToUpper(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// pageError answers a page request that failed with err.
func pageError(c *fiber.Ctx, err error) error {
	switch {
	case models.HasCode(err, models.CodeNotFound):
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	case models.HasCode(err, models.CodeUnauthorized):
		return c.Status(fiber.StatusForbidden).SendString(service.NotAllowedMessage)
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "page request failed",
			slog.String("path", c.Path()), slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}
}

// formErrors extracts field errors from a validation failure, or nil if err is another kind.
func formErrors(err error) map[string][]string {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
		if appErr.Fields != nil {
			return appErr.Fields
		}
		return map[string][]string{"__all__": {appErr.Message}}
	}
	return nil
}

// safeNext returns next when it is a local absolute path, else "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") ||
		strings.Contains(next, `\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func redirectTo(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusFound)
}
