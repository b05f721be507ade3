package service

import (
	"context"
	"fmt"

	"campaign-raffle-api/internal/domain"
)

type InvoiceRepository interface {
	ListAll(ctx context.Context) ([]domain.Invoice, error)
	ListByCNPJ(ctx context.Context, cnpj string) ([]domain.Invoice, error)
	Import(ctx context.Context, invoices []domain.Invoice) error
	SetValidity(ctx context.Context, key domain.InvoiceKey, valid bool, reason string) error
}

// InvoiceService covers the back-office side of invoices: bulk import of
// committed rows and the validation flag the draw eligibility depends on.
type InvoiceService struct {
	repo InvoiceRepository
}

func NewInvoiceService(repo InvoiceRepository) *InvoiceService {
	return &InvoiceService{
		repo: repo,
	}
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return invoices, nil
}

func (s *InvoiceService) ListInvoicesByCNPJ(ctx context.Context, cnpj string) ([]domain.Invoice, error) {
	invoices, err := s.repo.ListByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByCNPJ -> %w", err)
	}

	return invoices, nil
}

// ImportInvoices commits a batch of already-parsed invoice rows. Re-imports
// of an existing invoice refresh its figures without touching the
// consumption flag.
func (s *InvoiceService) ImportInvoices(ctx context.Context, invoices []domain.Invoice) error {
	if err := s.repo.Import(ctx, invoices); err != nil {
		return fmt.Errorf("s.repo.Import -> %w", err)
	}

	return nil
}

// SetInvoiceValidity flips the back-office validation flag. Only valid
// invoices feed the eligible ticket pool; the reason is kept for audit.
func (s *InvoiceService) SetInvoiceValidity(ctx context.Context, key domain.InvoiceKey, valid bool, reason string) error {
	if err := s.repo.SetValidity(ctx, key, valid, reason); err != nil {
		return fmt.Errorf("s.repo.SetValidity -> %w", err)
	}

	return nil
}
