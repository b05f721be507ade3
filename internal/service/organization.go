package service

import (
	"context"
	"fmt"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
)

var (
	ErrOrganizationExists   = repository.ErrOrganizationExists
	ErrOrganizationNotFound = repository.ErrOrganizationNotFound
)

type OrganizationRepository interface {
	Create(ctx context.Context, org domain.Organization) (domain.Organization, error)
	Import(ctx context.Context, orgs []domain.Organization) error
	FindByCNPJ(ctx context.Context, cnpj string) (domain.Organization, error)
	FindAll(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org domain.Organization) (domain.Organization, error)
	Delete(ctx context.Context, cnpj string) error
}

type OrganizationService struct {
	repo OrganizationRepository
}

func NewOrganizationService(repo OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		repo: repo,
	}
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	created, err := s.repo.Create(ctx, org)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ImportOrganizations commits a batch of already-parsed organization rows,
// upserting by CNPJ. Parsing and deduplication happen client-side.
func (s *OrganizationService) ImportOrganizations(ctx context.Context, orgs []domain.Organization) error {
	if err := s.repo.Import(ctx, orgs); err != nil {
		return fmt.Errorf("s.repo.Import -> %w", err)
	}

	return nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, cnpj string) (domain.Organization, error) {
	org, err := s.repo.FindByCNPJ(ctx, cnpj)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.FindByCNPJ -> %w", err)
	}

	return org, nil
}

func (s *OrganizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return orgs, nil
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	updated, err := s.repo.Update(ctx, org)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, cnpj string) error {
	if err := s.repo.Delete(ctx, cnpj); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
