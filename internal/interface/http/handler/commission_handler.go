package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/dto"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/usecase/commission"
)

type CommissionHandler struct {
	commissions *commission.CommissionUseCase
}

func NewCommissionHandler(commissions *commission.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{commissions: commissions}
}

// List: corretor видит свои комиссии, admin передаёт ?corretor_id=.
func (h *CommissionHandler) List(c *gin.Context) {
	brokerID, ok := uuidQuery(c, "corretor_id")
	if !ok {
		return
	}

	items, err := h.commissions.List(c.Request.Context(), currentSession(c), brokerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCommissionResponses(items))
}

func (h *CommissionHandler) Summary(c *gin.Context) {
	brokerID, ok := uuidQuery(c, "corretor_id")
	if !ok {
		return
	}

	summary, err := h.commissions.Summary(c.Request.Context(), currentSession(c), brokerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCommissionSummaryResponse(summary))
}

func (h *CommissionHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.CommissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}
	paidAt, err := dto.ParseDate(req.PaidAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.commissions.UpdateStatus(c.Request.Context(), currentSession(c), id, req.Status, paidAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCommissionResponse(item))
}
