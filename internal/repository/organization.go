package repository

import (
	"context"
	"fmt"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository/dao"
)

var (
	ErrOrganizationExists   = dao.ErrOrganizationExists
	ErrOrganizationNotFound = dao.ErrOrganizationNotFound
)

type OrganizationDAO interface {
	Insert(ctx context.Context, org dao.Organization) (dao.Organization, error)
	UpsertBatch(ctx context.Context, orgs []dao.Organization) error
	FindByCNPJ(ctx context.Context, cnpj string) (dao.Organization, error)
	FindAll(ctx context.Context) ([]dao.Organization, error)
	Update(ctx context.Context, org dao.Organization) (dao.Organization, error)
	SoftDelete(ctx context.Context, cnpj string) error
}

type OrganizationRepository struct {
	dao OrganizationDAO
}

func NewOrganizationRepository(dao OrganizationDAO) *OrganizationRepository {
	return &OrganizationRepository{
		dao: dao,
	}
}

func (r *OrganizationRepository) domainToDao(o domain.Organization) dao.Organization {
	return dao.Organization{
		CNPJ:      o.CNPJ,
		LegalName: o.LegalName,
		TradeName: o.TradeName,
		Deleted:   o.Deleted,
	}
}

func (r *OrganizationRepository) daoToDomain(o dao.Organization) domain.Organization {
	return domain.Organization{
		CNPJ:      o.CNPJ,
		LegalName: o.LegalName,
		TradeName: o.TradeName,
		Deleted:   o.Deleted,
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(org))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrganizationRepository) Import(ctx context.Context, orgs []domain.Organization) error {
	daoOrgs := make([]dao.Organization, len(orgs))
	for i, org := range orgs {
		daoOrgs[i] = r.domainToDao(org)
	}

	if err := r.dao.UpsertBatch(ctx, daoOrgs); err != nil {
		return fmt.Errorf("r.dao.UpsertBatch -> %w", err)
	}

	return nil
}

func (r *OrganizationRepository) FindByCNPJ(ctx context.Context, cnpj string) (domain.Organization, error) {
	org, err := r.dao.FindByCNPJ(ctx, cnpj)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.FindByCNPJ -> %w", err)
	}

	return r.daoToDomain(org), nil
}

func (r *OrganizationRepository) FindAll(ctx context.Context) ([]domain.Organization, error) {
	daoOrgs, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	orgs := make([]domain.Organization, len(daoOrgs))
	for i, org := range daoOrgs {
		orgs[i] = r.daoToDomain(org)
	}

	return orgs, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(org))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, cnpj string) error {
	if err := r.dao.SoftDelete(ctx, cnpj); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}
