package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/blackfish/models"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondDomainError picks the status code from the error type and attaches
// data (usually the current state) so the client can re-render.
func RespondDomainError(c *gin.Context, err error, data interface{}) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		ErrorLogger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	}
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    data,
	})
}

func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case models.IsValidation(err):
		return http.StatusBadRequest
	case models.IsNotFound(err):
		return http.StatusNotFound
	case models.IsConflict(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
