package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/http/middleware"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
)

// currentSession возвращает сессию из AuthMiddleware или PublicSession.
func currentSession(c *gin.Context) entity.Session {
	session, _ := middleware.SessionFrom(c)
	return session
}

// uuidParam разбирает параметр пути. При ошибке ответ уже записан.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return uuid.Nil, false
	}
	return id, true
}

func uuidQuery(c *gin.Context, key string) (uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "parâmetro "+key+" inválido")
		return uuid.Nil, false
	}
	return id, true
}
