package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
)

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID.
// Использование: group.GET("/proposals/:id", UUIDValidator("id"), h.Get)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		if raw == "" {
			response.BadRequest(c, "parâmetro "+paramName+" é obrigatório")
			return
		}
		if _, err := uuid.Parse(raw); err != nil {
			response.BadRequest(c, "parâmetro "+paramName+" deve ser um UUID válido")
			return
		}
		c.Next()
	}
}
