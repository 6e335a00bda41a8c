package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/dto"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricetable"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricing"
)

type PriceTableHandler struct {
	listUC    *pricetable.ListPriceTablesUseCase
	getUC     *pricetable.GetPriceTableUseCase
	createUC  *pricetable.CreatePriceTableUseCase
	updateUC  *pricetable.UpdatePriceTableUseCase
	brackets  *pricetable.BracketUseCase
	resolveUC *pricing.ResolveTablePriceUseCase
}

func NewPriceTableHandler(
	listUC *pricetable.ListPriceTablesUseCase,
	getUC *pricetable.GetPriceTableUseCase,
	createUC *pricetable.CreatePriceTableUseCase,
	updateUC *pricetable.UpdatePriceTableUseCase,
	brackets *pricetable.BracketUseCase,
	resolveUC *pricing.ResolveTablePriceUseCase,
) *PriceTableHandler {
	return &PriceTableHandler{
		listUC:    listUC,
		getUC:     getUC,
		createUC:  createUC,
		updateUC:  updateUC,
		brackets:  brackets,
		resolveUC: resolveUC,
	}
}

func (h *PriceTableHandler) List(c *gin.Context) {
	tables, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToPriceTableResponses(tables))
}

func (h *PriceTableHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	details, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToPriceTableDetails(details))
}

func (h *PriceTableHandler) Create(c *gin.Context) {
	var req dto.PriceTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	table, err := h.createUC.Execute(c.Request.Context(), currentSession(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToPriceTableResponse(table))
}

func (h *PriceTableHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.PriceTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	table, err := h.updateUC.Execute(c.Request.Context(), currentSession(c), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToPriceTableResponse(table))
}

func (h *PriceTableHandler) AddBracket(c *gin.Context) {
	tableID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.BracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	bracket, err := h.brackets.Add(c.Request.Context(), currentSession(c), tableID, req.Label, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToBracketResponse(bracket))
}

func (h *PriceTableHandler) UpdateBracket(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.BracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	bracket, err := h.brackets.Update(c.Request.Context(), currentSession(c), id, req.Label, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBracketResponse(bracket))
}

func (h *PriceTableHandler) RemoveBracket(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.brackets.Remove(c.Request.Context(), currentSession(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Price обслуживает GET /price-tables/:id/price?idade=|nascimento=.
func (h *PriceTableHandler) Price(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	q, ok := bindPriceQuery(c)
	if !ok {
		return
	}

	quote, err := h.resolveUC.Execute(c.Request.Context(), id, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, quote)
}

func bindPriceQuery(c *gin.Context) (pricing.AgeQuery, bool) {
	var req dto.PriceQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "idade inválida")
		return pricing.AgeQuery{}, false
	}
	q, err := req.ToAgeQuery()
	if err != nil {
		response.Error(c, err)
		return pricing.AgeQuery{}, false
	}
	return q, true
}
