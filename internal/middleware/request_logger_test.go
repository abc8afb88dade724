package middleware_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())

	nextCalled := false
	app.Get("/ok", func(c *fiber.Ctx) error {
		nextCalled = true
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return domain.NewNotFoundError("gone")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// The error is rendered inside the logger and not handled a second time.
	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "resource not found", body.Message)
}

func TestRequestLogger_ErrorHandlerFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	writeErr := errors.New("connection closed")
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return writeErr
		},
	})
	app.Use(middleware.RequestLogger())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return domain.NewNotFoundError("gone")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	failures := logs.FilterMessage("Error handler failed to render response").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	fields := failures[0].ContextMap()
	assert.Equal(t, "connection closed", fields["error"])

	requests := logs.FilterMessage("HTTP Request").All()
	require.Len(t, requests, 1)
	assert.EqualValues(t, fiber.StatusInternalServerError, requests[0].ContextMap()["status"])
}
