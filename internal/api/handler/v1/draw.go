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

type DrawService interface {
	RunDraw(ctx context.Context, count int, operatorID string) (domain.DrawResult, error)
	EligibleTicketIDs(ctx context.Context) ([]uint, error)
	History(ctx context.Context) ([]domain.DrawRecord, error)
}

type DrawHandler struct {
	svc   DrawService
	users UserGetter
}

func NewDrawHandler(svc DrawService, users UserGetter) *DrawHandler {
	return &DrawHandler{
		svc:   svc,
		users: users,
	}
}

// HandleRunDraw godoc
// @Summary      Draw winners from the eligible ticket pool
// @Tags         admin
// @Produce      json
// @Param        request   body      request.RunDrawRequest true "request body"
// @Success      200      {object}   response.DrawResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/draws [post]
// @Security     Bearer
func (h *DrawHandler) HandleRunDraw(ctx *gin.Context) {
	var req request.RunDrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	operator, err := getUserFromContext(ctx, h.users)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("unknown user"))
		return
	}

	result, err := h.svc.RunDraw(ctx.Request.Context(), req.Quantity, operator.ID)
	if err != nil {
		var insufficient *service.InsufficientTicketsError
		switch {
		case errors.Is(err, service.ErrInvalidDrawCount):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDrawCount))
		case errors.As(err, &insufficient):
			response.RenderErr(ctx, response.ErrUnprocessable(insufficient))
		default:
			err = fmt.Errorf("v1.HandleRunDraw -> h.svc.RunDraw -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	message := fmt.Sprintf("%d winner(s) drawn", len(result.Winners))
	if result.Partial {
		message = fmt.Sprintf("%d of %d winner(s) drawn; remaining tickets were claimed by a concurrent draw", len(result.Winners), result.Requested)
	}

	ctx.JSON(http.StatusOK, response.DrawResponse{
		Success:   true,
		Message:   message,
		Requested: result.Requested,
		Partial:   result.Partial,
		Winners:   result.Winners,
	})
}

// HandleListEligibleTickets godoc
// @Summary      List IDs of tickets currently eligible for a draw
// @Tags         admin
// @Produce      json
// @Success      200      {object}   response.EligibleTicketsResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/draws/eligible-tickets [get]
// @Security     Bearer
func (h *DrawHandler) HandleListEligibleTickets(ctx *gin.Context) {
	ids, err := h.svc.EligibleTicketIDs(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEligibleTickets -> h.svc.EligibleTicketIDs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EligibleTicketsResponse{TicketIDs: ids})
}

// HandleListDraws godoc
// @Summary      List past draw results, most recent first
// @Tags         admin
// @Produce      json
// @Success      200      {object}   []domain.DrawRecord
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/draws [get]
// @Security     Bearer
func (h *DrawHandler) HandleListDraws(ctx *gin.Context) {
	records, err := h.svc.History(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListDraws -> h.svc.History -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}
