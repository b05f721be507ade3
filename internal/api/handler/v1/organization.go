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

type OrganizationService interface {
	CreateOrganization(ctx context.Context, org domain.Organization) (domain.Organization, error)
	ImportOrganizations(ctx context.Context, orgs []domain.Organization) error
	GetOrganization(ctx context.Context, cnpj string) (domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, org domain.Organization) (domain.Organization, error)
	DeleteOrganization(ctx context.Context, cnpj string) error
}

type OrganizationHandler struct {
	svc OrganizationService
}

func NewOrganizationHandler(svc OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		svc: svc,
	}
}

// HandleCreateOrganization godoc
// @Summary      Register a participating organization
// @Tags         admin
// @Produce      json
// @Param        request   body      request.CreateOrganizationRequest true "request body"
// @Success      201      {object}   domain.Organization
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/organizations [post]
// @Security     Bearer
func (h *OrganizationHandler) HandleCreateOrganization(ctx *gin.Context) {
	var req request.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	org, err := h.svc.CreateOrganization(ctx.Request.Context(), domain.Organization{
		CNPJ:      req.CNPJ,
		LegalName: req.LegalName,
		TradeName: req.TradeName,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrganizationExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrOrganizationExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateOrganization -> h.svc.CreateOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, org)
}

// HandleImportOrganizations godoc
// @Summary      Import or refresh a batch of organizations
// @Tags         admin
// @Produce      json
// @Param        request   body      request.ImportOrganizationsRequest true "request body"
// @Success      200      {object}   map[string]interface{}
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/organizations/import [post]
// @Security     Bearer
func (h *OrganizationHandler) HandleImportOrganizations(ctx *gin.Context) {
	var req request.ImportOrganizationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orgs := make([]domain.Organization, 0, len(req.Organizations))
	for _, row := range req.Organizations {
		orgs = append(orgs, domain.Organization{
			CNPJ:      row.CNPJ,
			LegalName: row.LegalName,
			TradeName: row.TradeName,
		})
	}

	if err := h.svc.ImportOrganizations(ctx.Request.Context(), orgs); err != nil {
		err = fmt.Errorf("v1.HandleImportOrganizations -> h.svc.ImportOrganizations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"imported": len(orgs)})
}

// HandleListOrganizations godoc
// @Summary      List active organizations
// @Tags         admin
// @Produce      json
// @Success      200      {object}   []domain.Organization
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/organizations [get]
// @Security     Bearer
func (h *OrganizationHandler) HandleListOrganizations(ctx *gin.Context) {
	orgs, err := h.svc.ListOrganizations(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListOrganizations -> h.svc.ListOrganizations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orgs)
}

// HandleGetOrganization godoc
// @Summary      Get one organization by CNPJ
// @Tags         admin
// @Produce      json
// @Param        cnpj   path       string true "organization CNPJ"
// @Success      200   {object}    domain.Organization
// @Failure      401   {object}    response.Err
// @Failure      403   {object}    response.Err
// @Failure      404   {object}    response.Err
// @Failure      500   {object}    response.Err
// @Router       /admin/organizations/{cnpj} [get]
// @Security     Bearer
func (h *OrganizationHandler) HandleGetOrganization(ctx *gin.Context) {
	cnpj := ctx.Param("cnpj")

	org, err := h.svc.GetOrganization(ctx.Request.Context(), cnpj)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "cnpj", cnpj))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrganization -> h.svc.GetOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, org)
}

// HandleUpdateOrganization godoc
// @Summary      Update an organization's names
// @Tags         admin
// @Produce      json
// @Param        cnpj     path       string true "organization CNPJ"
// @Param        request  body       request.UpdateOrganizationRequest true "request body"
// @Success      200     {object}    domain.Organization
// @Failure      400     {object}    response.Err
// @Failure      401     {object}    response.Err
// @Failure      403     {object}    response.Err
// @Failure      404     {object}    response.Err
// @Failure      500     {object}    response.Err
// @Router       /admin/organizations/{cnpj} [put]
// @Security     Bearer
func (h *OrganizationHandler) HandleUpdateOrganization(ctx *gin.Context) {
	cnpj := ctx.Param("cnpj")

	var req request.UpdateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	org, err := h.svc.UpdateOrganization(ctx.Request.Context(), domain.Organization{
		CNPJ:      cnpj,
		LegalName: req.LegalName,
		TradeName: req.TradeName,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "cnpj", cnpj))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateOrganization -> h.svc.UpdateOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, org)
}

// HandleDeleteOrganization godoc
// @Summary      Soft-delete an organization
// @Tags         admin
// @Produce      json
// @Param        cnpj   path       string true "organization CNPJ"
// @Success      204   "no content"
// @Failure      401   {object}    response.Err
// @Failure      403   {object}    response.Err
// @Failure      404   {object}    response.Err
// @Failure      500   {object}    response.Err
// @Router       /admin/organizations/{cnpj} [delete]
// @Security     Bearer
func (h *OrganizationHandler) HandleDeleteOrganization(ctx *gin.Context) {
	cnpj := ctx.Param("cnpj")

	if err := h.svc.DeleteOrganization(ctx.Request.Context(), cnpj); err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("organization", "cnpj", cnpj))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteOrganization -> h.svc.DeleteOrganization -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
