package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/dto"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/usecase/adminuser"
)

type AdminUserHandler struct {
	users *adminuser.AdminUserUseCase
}

func NewAdminUserHandler(users *adminuser.AdminUserUseCase) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), currentSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAdminUserResponses(users))
}

func (h *AdminUserHandler) Create(c *gin.Context) {
	var req dto.CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	user, err := h.users.Create(c.Request.Context(), currentSession(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToAdminUserResponse(user))
}

func (h *AdminUserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	user, err := h.users.Update(c.Request.Context(), currentSession(c), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAdminUserResponse(user))
}

func (h *AdminUserHandler) ChangeStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status é obrigatório")
		return
	}

	user, err := h.users.ChangeStatus(c.Request.Context(), currentSession(c), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAdminUserResponse(user))
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), currentSession(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ProfilePermissions обслуживает GET /profiles/:perfil/permissions.
func (h *AdminUserHandler) ProfilePermissions(c *gin.Context) {
	perms, err := h.users.ProfilePermissions(c.Request.Context(), currentSession(c), c.Param("perfil"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, perms)
}
