package dto

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data, Message: message})
}
