package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"labelbox/utils"
)

// Meta carries the status code and its standard message
type Meta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response wrapper
type Envelope struct {
	Meta  Meta        `json:"meta"`
	Data  interface{} `json:"data"`
	Error interface{} `json:"error"`
}

// NewEnvelope builds an envelope for the given status code
func NewEnvelope(code int, data, errv interface{}) Envelope {
	return Envelope{
		Meta:  Meta{Code: code, Message: http.StatusText(code)},
		Data:  data,
		Error: errv,
	}
}

// Respond writes a success envelope with the given status code
func Respond(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(NewEnvelope(code, data, nil))
}

// ErrorHandler renders every handler error as an envelope. Field-keyed
// violations are surfaced in the error slot; internal detail is logged and
// never echoed to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fields map[string][]string

	var appErr *utils.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		fields = appErr.Fields
		if code >= 500 {
			utils.Log.Error("Application error: %v", appErr)
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	default:
		utils.Log.Error("Unhandled error: %v", err)
	}

	var errv interface{}
	if fields != nil {
		errv = fields
	}
	return c.Status(code).JSON(NewEnvelope(code, nil, errv))
}
