package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/logger"
)

// ErrorHandler отвечает за ошибки, которые хэндлер положил в c.Errors,
// но сам не записал ответ. Сообщение клиенту берётся из AppError.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		logger.Component("http").WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Warn("http: необработанная ошибка запроса")

		response.Error(c, err.Err)
	}
}

// Recovery перехватывает panic в хэндлерах и отвечает 500 в общем формате.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Component("http").WithFields(logrus.Fields{
			"panic":  recovered,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("http: panic в обработчике")
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Success: false,
			Error:   &response.ErrorInfo{Code: "INTERNAL_ERROR", Message: "erro interno do servidor"},
		})
	})
}
