package repository

import (
	"context"
	"fmt"
	"time"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository/dao"
)

var ErrTicketNotFound = dao.ErrTicketNotFound

type TicketDAO interface {
	InsertBatch(ctx context.Context, tickets []dao.Ticket) ([]dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindUndrawn(ctx context.Context) ([]dao.Ticket, error)
	FindByCNPJ(ctx context.Context, cnpj string) ([]dao.Ticket, error)
	FindAll(ctx context.Context) ([]dao.Ticket, error)
	MarkDrawn(ctx context.Context, id uint, at time.Time) error
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:            t.ID,
		InvoiceNumber: t.InvoiceNumber,
		CNPJ:          t.CNPJ,
		CreatedAt:     t.CreatedAt,
		DrawnAt:       t.DrawnAt,
	}
}

func (r *TicketRepository) daosToDomain(daoTickets []dao.Ticket) []domain.Ticket {
	tickets := make([]domain.Ticket, len(daoTickets))
	for i, ticket := range daoTickets {
		tickets[i] = r.daoToDomain(ticket)
	}
	return tickets
}

// CreateForInvoice creates count tickets referencing one invoice, as a
// single batch.
func (r *TicketRepository) CreateForInvoice(ctx context.Context, key domain.InvoiceKey, count int) ([]domain.Ticket, error) {
	daoTickets := make([]dao.Ticket, count)
	for i := range daoTickets {
		daoTickets[i] = dao.Ticket{
			InvoiceNumber: key.Number,
			CNPJ:          key.CNPJ,
		}
	}

	created, err := r.dao.InsertBatch(ctx, daoTickets)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.daosToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (domain.Ticket, error) {
	ticket, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(ticket), nil
}

func (r *TicketRepository) ListUndrawn(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := r.dao.FindUndrawn(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUndrawn -> %w", err)
	}

	return r.daosToDomain(tickets), nil
}

func (r *TicketRepository) ListByCNPJ(ctx context.Context, cnpj string) ([]domain.Ticket, error) {
	tickets, err := r.dao.FindByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCNPJ -> %w", err)
	}

	return r.daosToDomain(tickets), nil
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(tickets), nil
}

func (r *TicketRepository) MarkDrawn(ctx context.Context, id uint, at time.Time) error {
	if err := r.dao.MarkDrawn(ctx, id, at); err != nil {
		return fmt.Errorf("r.dao.MarkDrawn -> %w", err)
	}

	return nil
}
