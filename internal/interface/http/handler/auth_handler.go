package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/dto"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login обслуживает POST /auth/login. tipo выбирает admin или corretor.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email, senha e tipo são obrigatórios")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Role:     valueobject.Role(req.Role),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAuthResponse(result))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refresh_token é obrigatório")
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTokenResponse(pair))
}
