package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"campaign-raffle-api/internal/config"
	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
)

var (
	ErrInvoiceNotFound    = repository.ErrInvoiceNotFound
	ErrInvoiceAlreadyUsed = repository.ErrInvoiceAlreadyUsed

	// ErrInvalidInvoiceData means the invoice row itself is malformed
	// (negative amount or supplier count). Upstream validation should
	// have rejected it, so hitting this signals a data-integrity bug.
	ErrInvalidInvoiceData = errors.New("invalid invoice data")

	// ErrInvoiceYieldsNoTickets is the normal "valid but too small"
	// outcome, distinct from a malformed invoice.
	ErrInvoiceYieldsNoTickets = errors.New("invoice value and supplier count yield no tickets")

	// ErrInvoiceNotValidated means the invoice exists but the back office
	// has not (or no longer) cleared it for the campaign.
	ErrInvoiceNotValidated = errors.New("invoice is not validated for the campaign")
)

type TicketRepository interface {
	CreateForInvoice(ctx context.Context, key domain.InvoiceKey, count int) ([]domain.Ticket, error)
	ListByCNPJ(ctx context.Context, cnpj string) ([]domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
}

type TicketInvoiceRepository interface {
	FindByKey(ctx context.Context, key domain.InvoiceKey) (domain.Invoice, error)
	ListSubmittableByCNPJ(ctx context.Context, cnpj string) ([]domain.Invoice, error)
	MarkUsed(ctx context.Context, key domain.InvoiceKey) error
}

// TicketService owns the issuance side of the raffle: converting a
// validated invoice into a batch of tickets, exactly once per invoice.
type TicketService struct {
	repo        TicketRepository
	invoiceRepo TicketInvoiceRepository
	conf        *config.CampaignConfig
}

func NewTicketService(repo TicketRepository, invoiceRepo TicketInvoiceRepository, conf *config.CampaignConfig) *TicketService {
	return &TicketService{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		conf:        conf,
	}
}

// ComputeTicketCount is the issuance rule: one ticket per full TicketValue
// of invoice amount, capped at the supplier count when the invoice has
// fewer than SupplierCapThreshold suppliers. Zero is a normal outcome.
func (s *TicketService) ComputeTicketCount(amount float64, supplierCount int) (int, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 || supplierCount < 0 {
		return 0, ErrInvalidInvoiceData
	}

	base := int(math.Floor(amount / s.conf.TicketValue))

	if supplierCount < s.conf.SupplierCapThreshold && supplierCount < base {
		return supplierCount, nil
	}

	return base, nil
}

// SubmitInvoice runs the invoice-submission flow: look up the caller's
// invoice, apply the issuance rule, create the ticket batch and consume
// the invoice. An invoice yielding zero tickets returns
// ErrInvoiceYieldsNoTickets; whether it is still consumed is a campaign
// configuration choice.
func (s *TicketService) SubmitInvoice(ctx context.Context, cnpj, invoiceNumber string) ([]domain.Ticket, error) {
	key := domain.InvoiceKey{Number: invoiceNumber, CNPJ: cnpj}

	invoice, err := s.invoiceRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}

		return nil, fmt.Errorf("s.invoiceRepo.FindByKey -> %w", err)
	}

	if invoice.UsedForTicket {
		return nil, ErrInvoiceAlreadyUsed
	}

	if !invoice.Valid {
		return nil, ErrInvoiceNotValidated
	}

	count, err := s.ComputeTicketCount(invoice.Amount, invoice.SupplierCount)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		if s.conf.ConsumeZeroTicketInvoices {
			if err = s.invoiceRepo.MarkUsed(ctx, key); err != nil {
				return nil, fmt.Errorf("s.invoiceRepo.MarkUsed -> %w", err)
			}
		}

		return nil, ErrInvoiceYieldsNoTickets
	}

	tickets, err := s.repo.CreateForInvoice(ctx, key, count)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateForInvoice -> %w", err)
	}

	if err = s.invoiceRepo.MarkUsed(ctx, key); err != nil {
		// The batch exists but the invoice could not be consumed,
		// e.g. a double-submit race marked it first. Surface the
		// conflict so the operator can reconcile the extra batch.
		zap.L().Error("failed to mark invoice as used after issuing tickets",
			zap.String("invoice", key.Number),
			zap.String("cnpj", key.CNPJ),
			zap.Int("tickets", len(tickets)),
			zap.Error(err),
		)

		return nil, fmt.Errorf("s.invoiceRepo.MarkUsed -> %w", err)
	}

	return tickets, nil
}

// ListSubmittableInvoices returns the caller's invoices that can still be
// turned into tickets.
func (s *TicketService) ListSubmittableInvoices(ctx context.Context, cnpj string) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListSubmittableByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("s.invoiceRepo.ListSubmittableByCNPJ -> %w", err)
	}

	return invoices, nil
}

func (s *TicketService) ListTicketsByCNPJ(ctx context.Context, cnpj string) ([]domain.Ticket, error) {
	tickets, err := s.repo.ListByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByCNPJ -> %w", err)
	}

	return tickets, nil
}

func (s *TicketService) ListAllTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return tickets, nil
}
