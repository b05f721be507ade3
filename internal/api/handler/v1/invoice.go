package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campaign-raffle-api/internal/api/handler/v1/request"
	"campaign-raffle-api/internal/api/handler/v1/response"
	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/service"
)

type InvoiceService interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListInvoicesByCNPJ(ctx context.Context, cnpj string) ([]domain.Invoice, error)
	ImportInvoices(ctx context.Context, invoices []domain.Invoice) error
	SetInvoiceValidity(ctx context.Context, key domain.InvoiceKey, valid bool, reason string) error
}

type InvoiceHandler struct {
	svc InvoiceService
}

func NewInvoiceHandler(svc InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		svc: svc,
	}
}

// HandleListInvoices godoc
// @Summary      List imported invoices, optionally filtered by CNPJ
// @Tags         admin
// @Produce      json
// @Param        cnpj   query      string false "organization CNPJ"
// @Success      200   {object}    []domain.Invoice
// @Failure      401   {object}    response.Err
// @Failure      403   {object}    response.Err
// @Failure      500   {object}    response.Err
// @Router       /admin/invoices [get]
// @Security     Bearer
func (h *InvoiceHandler) HandleListInvoices(ctx *gin.Context) {
	var invoices []domain.Invoice
	var err error

	if cnpj := ctx.Query("cnpj"); cnpj != "" {
		invoices, err = h.svc.ListInvoicesByCNPJ(ctx.Request.Context(), cnpj)
	} else {
		invoices, err = h.svc.ListInvoices(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListInvoices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invoices)
}

// HandleImportInvoices godoc
// @Summary      Import or refresh a batch of invoices
// @Tags         admin
// @Produce      json
// @Param        request   body      request.ImportInvoicesRequest true "request body"
// @Success      200      {object}   map[string]interface{}
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/invoices/import [post]
// @Security     Bearer
func (h *InvoiceHandler) HandleImportInvoices(ctx *gin.Context) {
	var req request.ImportInvoicesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invoices := make([]domain.Invoice, 0, len(req.Invoices))
	for _, row := range req.Invoices {
		if err := row.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		var issueDate *time.Time
		if row.IssueDate != "" {
			parsed, err := time.Parse("2006-01-02", row.IssueDate)
			if err != nil {
				response.RenderErr(ctx, response.ErrBadRequest(err))
				return
			}
			issueDate = &parsed
		}

		invoices = append(invoices, domain.Invoice{
			Number:        row.Number,
			CNPJ:          row.CNPJ,
			Amount:        row.Amount,
			IssueDate:     issueDate,
			SupplierCount: row.SupplierCount,
			BranchCode:    row.BranchCode,
			Valid:         true,
		})
	}

	if err := h.svc.ImportInvoices(ctx.Request.Context(), invoices); err != nil {
		err = fmt.Errorf("v1.HandleImportInvoices -> h.svc.ImportInvoices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"imported": len(invoices)})
}

// HandleSetInvoiceValidity godoc
// @Summary      Mark an invoice as valid or invalid for the campaign
// @Tags         admin
// @Produce      json
// @Param        cnpj     path       string true "organization CNPJ"
// @Param        number   path       string true "invoice number"
// @Param        request  body       request.SetInvoiceValidityRequest true "request body"
// @Success      200     {object}    map[string]interface{}
// @Failure      400     {object}    response.Err
// @Failure      401     {object}    response.Err
// @Failure      403     {object}    response.Err
// @Failure      404     {object}    response.Err
// @Failure      500     {object}    response.Err
// @Router       /admin/invoices/{cnpj}/{number}/validity [put]
// @Security     Bearer
func (h *InvoiceHandler) HandleSetInvoiceValidity(ctx *gin.Context) {
	cnpj := ctx.Param("cnpj")
	number := ctx.Param("number")

	var req request.SetInvoiceValidityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	key := domain.InvoiceKey{Number: number, CNPJ: cnpj}
	if err := h.svc.SetInvoiceValidity(ctx.Request.Context(), key, *req.Valid, req.Reason); err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invoice", "number", number))
			return
		}

		err = fmt.Errorf("v1.HandleSetInvoiceValidity -> h.svc.SetInvoiceValidity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": true})
}
