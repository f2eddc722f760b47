package response

import "github.com/gofiber/fiber/v2"

// Response is the JSON shape of the console's own JSON endpoints: health
// checks and errors for clients that ask for JSON
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
	})
}

// Error sends an error response with statusCode
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success:   false,
		Error:     message,
		RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
	})
}
