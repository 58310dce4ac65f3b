package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	ID      string      `json:"id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created reports a newly stored resource by id
func Created(c *gin.Context, code int, message, id string) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		ID:      id,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, errs interface{}) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
