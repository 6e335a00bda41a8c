package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/interface/http/dto"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricetable"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricing"
	"github.com/matheusgmdr7/contratando2/internal/usecase/product"
)

type ProductHandler struct {
	products  *product.ProductUseCase
	links     *pricetable.ProductTablesUseCase
	resolveUC *pricing.ResolveProductPriceUseCase
}

func NewProductHandler(products *product.ProductUseCase, links *pricetable.ProductTablesUseCase, resolveUC *pricing.ResolveProductPriceUseCase) *ProductHandler {
	return &ProductHandler{products: products, links: links, resolveUC: resolveUC}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), currentSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponses(products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.products.Get(c.Request.Context(), currentSession(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	p, err := h.products.Create(c.Request.Context(), currentSession(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToProductResponse(p))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	p, err := h.products.Update(c.Request.Context(), currentSession(c), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

func (h *ProductHandler) SetAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	p, err := h.products.SetAvailability(c.Request.Context(), currentSession(c), id, *req.Available)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), currentSession(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ProductHandler) ListTables(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	links, err := h.links.List(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToLinkResponses(links))
}

func (h *ProductHandler) LinkTable(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	link, err := h.links.Link(c.Request.Context(), currentSession(c), id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToLinkResponse(link))
}

func (h *ProductHandler) UnlinkTable(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.links.Unlink(c.Request.Context(), currentSession(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ProductHandler) Price(c *gin.Context) {
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
