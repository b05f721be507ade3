package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"campaign-raffle-api/internal/api/handler/v1/request"
	"campaign-raffle-api/internal/api/handler/v1/response"
	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/service"
)

type TicketService interface {
	SubmitInvoice(ctx context.Context, cnpj, invoiceNumber string) ([]domain.Ticket, error)
	ListSubmittableInvoices(ctx context.Context, cnpj string) ([]domain.Invoice, error)
	ListTicketsByCNPJ(ctx context.Context, cnpj string) ([]domain.Ticket, error)
	ListAllTickets(ctx context.Context) ([]domain.Ticket, error)
}

type TicketHandler struct {
	svc   TicketService
	users UserGetter
}

func NewTicketHandler(svc TicketService, users UserGetter) *TicketHandler {
	return &TicketHandler{
		svc:   svc,
		users: users,
	}
}

// HandleSubmitInvoice godoc
// @Summary      Exchange one of the caller's invoices for raffle tickets
// @Tags         tickets
// @Produce      json
// @Param        request   body      request.SubmitInvoiceRequest true "request body"
// @Success      201      {object}   response.SubmitInvoiceResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /invoices/submit [post]
// @Security     Bearer
func (h *TicketHandler) HandleSubmitInvoice(ctx *gin.Context) {
	var req request.SubmitInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := getUserFromContext(ctx, h.users)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("unknown user"))
		return
	}

	tickets, err := h.svc.SubmitInvoice(ctx.Request.Context(), user.CNPJ, req.InvoiceNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("invoice", "number", req.InvoiceNumber))
		case errors.Is(err, service.ErrInvoiceAlreadyUsed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvoiceAlreadyUsed))
		case errors.Is(err, service.ErrInvoiceNotValidated):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrInvoiceNotValidated))
		case errors.Is(err, service.ErrInvoiceYieldsNoTickets):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrInvoiceYieldsNoTickets))
		case errors.Is(err, service.ErrInvalidInvoiceData):
			response.RenderErr(ctx, response.ErrUnprocessable(service.ErrInvalidInvoiceData))
		default:
			err = fmt.Errorf("v1.HandleSubmitInvoice -> h.svc.SubmitInvoice -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.SubmitInvoiceResponse{
		Message: fmt.Sprintf("%d ticket(s) issued", len(tickets)),
		Tickets: tickets,
	})
}

// HandleListSubmittableInvoices godoc
// @Summary      List the caller's valid invoices not yet exchanged for tickets
// @Tags         tickets
// @Produce      json
// @Success      200      {object}   []domain.Invoice
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /invoices/eligible [get]
// @Security     Bearer
func (h *TicketHandler) HandleListSubmittableInvoices(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.users)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("unknown user"))
		return
	}

	invoices, err := h.svc.ListSubmittableInvoices(ctx.Request.Context(), user.CNPJ)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSubmittableInvoices -> h.svc.ListSubmittableInvoices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invoices)
}

// HandleListMyTickets godoc
// @Summary      List the caller's raffle tickets
// @Tags         tickets
// @Produce      json
// @Success      200      {object}   []domain.Ticket
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets [get]
// @Security     Bearer
func (h *TicketHandler) HandleListMyTickets(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.users)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("unknown user"))
		return
	}

	tickets, err := h.svc.ListTicketsByCNPJ(ctx.Request.Context(), user.CNPJ)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyTickets -> h.svc.ListTicketsByCNPJ -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleListAllTickets godoc
// @Summary      List every issued raffle ticket
// @Tags         admin
// @Produce      json
// @Success      200      {object}   []domain.Ticket
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/tickets [get]
// @Security     Bearer
func (h *TicketHandler) HandleListAllTickets(ctx *gin.Context) {
	tickets, err := h.svc.ListAllTickets(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllTickets -> h.svc.ListAllTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}
