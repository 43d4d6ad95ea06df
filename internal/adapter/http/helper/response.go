package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petstore/internal/core/domain"
	"petstore/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, response.Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func SendError(c *gin.Context, statusCode int, message string, errors domain.FieldErrors) {
	body := response.Envelope{
		Success: false,
		Message: message,
	}

	if len(errors) > 0 {
		body.Errors = errors
	}

	c.JSON(statusCode, body)
}

func SendValidationError(c *gin.Context, errors domain.FieldErrors) {
	SendError(c, http.StatusUnprocessableEntity, "Validation failed", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message, nil)
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message, nil)
}
