package server

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AppError carries an HTTP status through the handler chain.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// errorMiddleware turns returned errors and panics into JSON envelopes.
// Details of 5xx errors are logged, never sent.
func errorMiddleware(logger *log.Logger) fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("[HTTP] panic recovered: %v", r)
				err = failure(c, fiber.StatusInternalServerError, "", nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}
		status, msg, data := normalizeError(err)
		if status >= 500 {
			logger.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
		}
		return failure(c, status, msg, data)
	}
}

func normalizeError(err error) (int, string, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, MessageInternalServerError, nil
		}
		return status, appErr.Message, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code <= 0 || fiberErr.Code >= 500 {
			return fiber.StatusInternalServerError, MessageInternalServerError, nil
		}
		return fiberErr.Code, fiberErr.Message, nil
	}
	return fiber.StatusInternalServerError, MessageInternalServerError, nil
}

// accessLog logs one line per request and makes sure every response carries
// an X-Request-ID.
func accessLog(logger *log.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)

		err := c.Next()

		logger.Printf(
			"[HTTP] rid=%s ip=%s method=%s path=%s status=%d latency=%s resp_bytes=%d",
			rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), len(c.Response().Body()),
		)
		return err
	}
}
