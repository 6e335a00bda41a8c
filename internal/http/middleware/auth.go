package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/service"
)

// ContextSessionKey — ключ entity.Session в gin.Context.
const ContextSessionKey = "session"

// AuthMiddleware проверяет JWT access токен и кладёт сессию в контекст.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "autenticação necessária")
			return
		}

		session, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "token inválido ou expirado")
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// RequireRole пропускает только сессии с одной из ролей.
func RequireRole(roles ...valueobject.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			response.Unauthorized(c, "autenticação necessária")
			return
		}
		if !slices.Contains(roles, session.Role) {
			response.Forbidden(c, "permissão insuficiente")
			return
		}
		c.Next()
	}
}

// SessionFrom возвращает сессию из контекста. Для публичных маршрутов
// возвращает entity.PublicSession и false.
func SessionFrom(c *gin.Context) (entity.Session, bool) {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return entity.PublicSession, false
	}
	session, ok := v.(entity.Session)
	if !ok {
		return entity.PublicSession, false
	}
	return session, true
}
