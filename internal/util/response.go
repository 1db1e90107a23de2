package util

import (
	"errors"
	"net/http"

	"wellmind_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the unified JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError maps the engine's error families onto HTTP statuses.
// ValidationError responses carry the full aggregated violation list.
func HandleServiceError(c *gin.Context, err error) {
	if ve, ok := AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: "validation failed",
			Data:    gin.H{"violations": ve.Violations},
		})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}

	var cfgErr *ConfigurationError
	var intErr *IntegrityError
	var evalErr *EvaluationError
	switch {
	case errors.As(err, &cfgErr):
		logger.Log.Error("Defective screening configuration", zap.Error(err))
	case errors.As(err, &intErr):
		logger.Log.Error("Screening engine invariant violated", zap.Error(err))
	case errors.As(err, &evalErr):
		logger.Log.Error("Rule evaluation failed", zap.String("rule", evalErr.RuleKind), zap.Error(err))
	default:
		logger.Log.Error("Internal server error", zap.Error(err))
	}
	InternalServerError(c)
}
