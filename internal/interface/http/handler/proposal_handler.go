package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/dto"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/response"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/usecase/proposal"
)

type ProposalHandler struct {
	unifier        *proposal.Unifier
	createUC       *proposal.CreateProposalUseCase
	validationUC   *proposal.SendValidationEmailUseCase
	signUC         *proposal.SignProposalUseCase
	attachUC       *proposal.AttachDocumentsUseCase
	maxUploadBytes int64
}

func NewProposalHandler(
	unifier *proposal.Unifier,
	createUC *proposal.CreateProposalUseCase,
	validationUC *proposal.SendValidationEmailUseCase,
	signUC *proposal.SignProposalUseCase,
	attachUC *proposal.AttachDocumentsUseCase,
	maxUploadBytes int64,
) *ProposalHandler {
	return &ProposalHandler{
		unifier:        unifier,
		createUC:       createUC,
		validationUC:   validationUC,
		signUC:         signUC,
		attachUC:       attachUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// List обслуживает GET /proposals?status=. Видимость зависит от роли сессии.
func (h *ProposalHandler) List(c *gin.Context) {
	var filter proposal.ListFilter
	if raw := c.Query("status"); raw != "" {
		status, err := valueobject.NewProposalStatus(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = &status
	}

	proposals, err := h.unifier.List(c.Request.Context(), currentSession(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProposalResponses(proposals))
}

func (h *ProposalHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.unifier.Get(c.Request.Context(), currentSession(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProposalResponse(p))
}

func (h *ProposalHandler) Create(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}
	input, err := req.ToInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.createUC.Execute(c.Request.Context(), currentSession(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToProposalResponse(p))
}

func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProposalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	p, err := h.unifier.UpdateStatus(c.Request.Context(), currentSession(c), id, req.Status, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProposalResponse(p))
}

func (h *ProposalHandler) Dependents(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	dependents, err := h.unifier.ListDependents(c.Request.Context(), currentSession(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDependentResponses(dependents))
}

func (h *ProposalHandler) SendValidationEmail(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// тело необязательно: без него письмо уходит на email из proposta
	var req dto.ValidationEmailRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "dados da requisição inválidos")
			return
		}
	}

	p, err := h.validationUC.Execute(c.Request.Context(), currentSession(c), id, proposal.ValidationEmailInput{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProposalResponse(p))
}

func (h *ProposalHandler) Sign(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.SignProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "dados da requisição inválidos")
		return
	}

	p, err := h.signUC.Execute(c.Request.Context(), id, proposal.SignInput{
		Signature:     req.Signature,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProposalResponse(p))
}

// AttachDocuments принимает multipart, где имя поля — тип документа
// (rg_frente, rg_verso, cpf, comprovante_residencia, cns).
func (h *ProposalHandler) AttachDocuments(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "arquivos inválidos ou acima do tamanho permitido")
		return
	}

	var uploads []proposal.DocumentUpload
	var opened []io.Closer
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, kind := range entity.RequiredDocuments {
		headers := form.File[kind]
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			logger.Component("http").WithError(err).WithField("kind", kind).Warn("http: не удалось открыть файл из формы")
			continue
		}
		opened = append(opened, f)
		uploads = append(uploads, proposal.DocumentUpload{Kind: kind, Body: f})
	}

	p, err := h.attachUC.Execute(c.Request.Context(), currentSession(c), id, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProposalResponse(p))
}

