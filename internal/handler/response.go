package handler

import (
	"errors"
	"net/http"

	"github.com/blues/das/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LogicErrorResponse 按业务错误类型映射HTTP状态码
func LogicErrorResponse(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, logic.ErrAuctionNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, logic.ErrInvalidParams):
		statusCode = http.StatusBadRequest
	case errors.Is(err, logic.ErrAuctionEnded),
		errors.Is(err, logic.ErrNotAuctioneer),
		errors.Is(err, logic.ErrNoFundsAvailable),
		errors.Is(err, logic.ErrAuctionOngoing):
		statusCode = http.StatusConflict
	}

	ErrorResponse(c, statusCode, err.Error())
}
