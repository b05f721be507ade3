package repository

import (
	"context"
	"fmt"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository/dao"
)

var (
	ErrInvoiceNotFound    = dao.ErrInvoiceNotFound
	ErrInvoiceAlreadyUsed = dao.ErrInvoiceAlreadyUsed
)

type InvoiceDAO interface {
	FindByKey(ctx context.Context, number, cnpj string) (dao.Invoice, error)
	FindValid(ctx context.Context) ([]dao.Invoice, error)
	FindByCNPJ(ctx context.Context, cnpj string) ([]dao.Invoice, error)
	FindSubmittableByCNPJ(ctx context.Context, cnpj string) ([]dao.Invoice, error)
	FindAll(ctx context.Context) ([]dao.Invoice, error)
	UpsertBatch(ctx context.Context, invoices []dao.Invoice) error
	SetValidity(ctx context.Context, number, cnpj string, valid bool, reason string) error
	MarkUsed(ctx context.Context, number, cnpj string) error
}

type InvoiceRepository struct {
	dao InvoiceDAO
}

func NewInvoiceRepository(dao InvoiceDAO) *InvoiceRepository {
	return &InvoiceRepository{
		dao: dao,
	}
}

func (r *InvoiceRepository) domainToDao(i domain.Invoice) dao.Invoice {
	return dao.Invoice{
		Number:        i.Number,
		CNPJ:          i.CNPJ,
		Amount:        i.Amount,
		IssueDate:     i.IssueDate,
		SupplierCount: i.SupplierCount,
		BranchCode:    i.BranchCode,
		Valid:         i.Valid,
		Reason:        i.Reason,
		UsedForTicket: i.UsedForTicket,
	}
}

func (r *InvoiceRepository) daoToDomain(i dao.Invoice) domain.Invoice {
	return domain.Invoice{
		Number:        i.Number,
		CNPJ:          i.CNPJ,
		Amount:        i.Amount,
		IssueDate:     i.IssueDate,
		SupplierCount: i.SupplierCount,
		BranchCode:    i.BranchCode,
		Valid:         i.Valid,
		Reason:        i.Reason,
		UsedForTicket: i.UsedForTicket,
	}
}

func (r *InvoiceRepository) daosToDomain(daoInvoices []dao.Invoice) []domain.Invoice {
	invoices := make([]domain.Invoice, len(daoInvoices))
	for i, invoice := range daoInvoices {
		invoices[i] = r.daoToDomain(invoice)
	}
	return invoices
}

func (r *InvoiceRepository) FindByKey(ctx context.Context, key domain.InvoiceKey) (domain.Invoice, error) {
	invoice, err := r.dao.FindByKey(ctx, key.Number, key.CNPJ)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return r.daoToDomain(invoice), nil
}

func (r *InvoiceRepository) ListValid(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := r.dao.FindValid(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindValid -> %w", err)
	}

	return r.daosToDomain(invoices), nil
}

func (r *InvoiceRepository) ListByCNPJ(ctx context.Context, cnpj string) ([]domain.Invoice, error) {
	invoices, err := r.dao.FindByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCNPJ -> %w", err)
	}

	return r.daosToDomain(invoices), nil
}

func (r *InvoiceRepository) ListSubmittableByCNPJ(ctx context.Context, cnpj string) ([]domain.Invoice, error) {
	invoices, err := r.dao.FindSubmittableByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSubmittableByCNPJ -> %w", err)
	}

	return r.daosToDomain(invoices), nil
}

func (r *InvoiceRepository) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(invoices), nil
}

func (r *InvoiceRepository) Import(ctx context.Context, invoices []domain.Invoice) error {
	daoInvoices := make([]dao.Invoice, len(invoices))
	for i, invoice := range invoices {
		daoInvoices[i] = r.domainToDao(invoice)
	}

	if err := r.dao.UpsertBatch(ctx, daoInvoices); err != nil {
		return fmt.Errorf("r.dao.UpsertBatch -> %w", err)
	}

	return nil
}

func (r *InvoiceRepository) SetValidity(ctx context.Context, key domain.InvoiceKey, valid bool, reason string) error {
	if err := r.dao.SetValidity(ctx, key.Number, key.CNPJ, valid, reason); err != nil {
		return fmt.Errorf("r.dao.SetValidity -> %w", err)
	}

	return nil
}

func (r *InvoiceRepository) MarkUsed(ctx context.Context, key domain.InvoiceKey) error {
	if err := r.dao.MarkUsed(ctx, key.Number, key.CNPJ); err != nil {
		return fmt.Errorf("r.dao.MarkUsed -> %w", err)
	}

	return nil
}
