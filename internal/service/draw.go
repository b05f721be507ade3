package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/rng"
)

var (
	// ErrInvalidDrawCount rejects a draw request for zero or fewer winners.
	ErrInvalidDrawCount = errors.New("draw count must be a positive integer")
)

// InsufficientTicketsError reports a draw request larger than the eligible
// pool, carrying both numbers so the operator can retry with a smaller count.
type InsufficientTicketsError struct {
	Requested int
	Available int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("insufficient eligible tickets: requested %d, available %d", e.Requested, e.Available)
}

const metadataPlaceholder = "unknown"

type DrawTicketRepository interface {
	ListUndrawn(ctx context.Context) ([]domain.Ticket, error)
	MarkDrawn(ctx context.Context, id uint, at time.Time) error
}

type DrawInvoiceRepository interface {
	ListValid(ctx context.Context) ([]domain.Invoice, error)
}

type DrawRecordRepository interface {
	RecordWinner(ctx context.Context, ticketID uint, operatorID string, at time.Time) (domain.DrawRecord, error)
	History(ctx context.Context) ([]domain.DrawRecord, error)
}

type DrawOrganizationRepository interface {
	FindByCNPJ(ctx context.Context, cnpj string) (domain.Organization, error)
}

type DrawUserRepository interface {
	FindFirstByCNPJ(ctx context.Context, cnpj string) (domain.User, error)
}

// DrawService orchestrates a drawing: snapshot eligibility, select winners
// once per request, then record each win independently. Correctness under
// concurrent draws rests on the unique ticket constraint at the draw-record
// layer, not on locking the ticket pool.
type DrawService struct {
	tickets  DrawTicketRepository
	invoices DrawInvoiceRepository
	records  DrawRecordRepository
	orgs     DrawOrganizationRepository
	users    DrawUserRepository
	src      rng.Source
}

func NewDrawService(
	tickets DrawTicketRepository,
	invoices DrawInvoiceRepository,
	records DrawRecordRepository,
	orgs DrawOrganizationRepository,
	users DrawUserRepository,
	src rng.Source,
) *DrawService {
	return &DrawService{
		tickets:  tickets,
		invoices: invoices,
		records:  records,
		orgs:     orgs,
		users:    users,
		src:      src,
	}
}

// FilterEligible keeps the tickets whose invoice key is in validKeys.
// The input tickets are expected to be undrawn already; the function is a
// pure set intersection over one snapshot, so re-running it on unchanged
// state yields the identical set.
func FilterEligible(tickets []domain.Ticket, validKeys map[domain.InvoiceKey]struct{}) []domain.Ticket {
	eligible := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if _, ok := validKeys[ticket.InvoiceKey()]; ok {
			eligible = append(eligible, ticket)
		}
	}

	return eligible
}

// snapshot reads the undrawn tickets and valid invoices once and derives
// the eligible pool for this draw request.
func (s *DrawService) snapshot(ctx context.Context) ([]domain.Ticket, map[domain.InvoiceKey]domain.Invoice, error) {
	undrawn, err := s.tickets.ListUndrawn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s.tickets.ListUndrawn -> %w", err)
	}

	validInvoices, err := s.invoices.ListValid(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s.invoices.ListValid -> %w", err)
	}

	invoiceByKey := make(map[domain.InvoiceKey]domain.Invoice, len(validInvoices))
	validKeys := make(map[domain.InvoiceKey]struct{}, len(validInvoices))
	for _, invoice := range validInvoices {
		invoiceByKey[invoice.Key()] = invoice
		validKeys[invoice.Key()] = struct{}{}
	}

	return FilterEligible(undrawn, validKeys), invoiceByKey, nil
}

// EligibleTicketIDs exposes the current eligible pool, used by the raffle
// screen animation.
func (s *DrawService) EligibleTicketIDs(ctx context.Context) ([]uint, error) {
	eligible, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(eligible))
	for i, ticket := range eligible {
		ids[i] = ticket.ID
	}

	return ids, nil
}

// RunDraw draws count winners for operatorID.
//
// Validation failures (non-positive count, insufficient pool) return an
// error with nothing persisted. After that, each winner is recorded
// independently: a ticket claimed by a concurrent draw is dropped from the
// result and the draw continues, so the returned DrawResult may be partial.
// Only when nothing at all could be recorded is the storage failure
// returned as an error.
func (s *DrawService) RunDraw(ctx context.Context, count int, operatorID string) (domain.DrawResult, error) {
	if count <= 0 {
		return domain.DrawResult{}, ErrInvalidDrawCount
	}

	eligible, invoiceByKey, err := s.snapshot(ctx)
	if err != nil {
		return domain.DrawResult{}, err
	}

	if count > len(eligible) {
		return domain.DrawResult{}, &InsufficientTicketsError{Requested: count, Available: len(eligible)}
	}

	ticketByID := make(map[uint]domain.Ticket, len(eligible))
	ids := make([]uint, len(eligible))
	for i, ticket := range eligible {
		ticketByID[ticket.ID] = ticket
		ids[i] = ticket.ID
	}

	// One selection over one snapshot; selecting per winner would let
	// concurrent ticket churn skew the draw between picks.
	selected, err := rng.SelectWinners(ids, count, s.src)
	if err != nil {
		return domain.DrawResult{}, fmt.Errorf("rng.SelectWinners -> %w", err)
	}

	drawnAt := time.Now().UTC()
	winners := make([]domain.Winner, 0, count)
	var lastErr error

	for _, ticketID := range selected {
		if _, err = s.records.RecordWinner(ctx, ticketID, operatorID, drawnAt); err != nil {
			if errors.Is(err, repository.ErrTicketAlreadyDrawn) {
				zap.L().Warn("ticket claimed by a concurrent draw, dropping winner",
					zap.Uint("ticket_id", ticketID),
				)
				continue
			}

			zap.L().Error("failed to record winner",
				zap.Uint("ticket_id", ticketID),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if err = s.tickets.MarkDrawn(ctx, ticketID, drawnAt); err != nil {
			// The draw record exists, so the win stands; the missing
			// timestamp is repairable and must not drop the winner.
			zap.L().Error("failed to stamp drawn ticket",
				zap.Uint("ticket_id", ticketID),
				zap.Error(err),
			)
		}

		winners = append(winners, s.resolveWinner(ctx, ticketByID[ticketID], invoiceByKey))
	}

	if len(winners) == 0 && lastErr != nil {
		return domain.DrawResult{}, fmt.Errorf("s.records.RecordWinner -> %w", lastErr)
	}

	return domain.DrawResult{
		Requested: count,
		Winners:   winners,
		Partial:   len(winners) < count,
	}, nil
}

// resolveWinner attaches display metadata to a recorded winner. Lookup
// failures degrade to placeholders; the win itself is already durable.
func (s *DrawService) resolveWinner(ctx context.Context, ticket domain.Ticket, invoiceByKey map[domain.InvoiceKey]domain.Invoice) domain.Winner {
	winner := domain.Winner{
		TicketID:      ticket.ID,
		InvoiceNumber: ticket.InvoiceNumber,
		CNPJ:          ticket.CNPJ,
		LegalName:     metadataPlaceholder,
		TradeName:     "",
		BranchCode:    "",
	}

	if invoice, ok := invoiceByKey[ticket.InvoiceKey()]; ok {
		winner.BranchCode = invoice.BranchCode
	}

	org, err := s.orgs.FindByCNPJ(ctx, ticket.CNPJ)
	if err != nil {
		zap.L().Warn("winner organization lookup failed",
			zap.String("cnpj", ticket.CNPJ),
			zap.Error(err),
		)
	} else {
		winner.LegalName = org.LegalName
		winner.TradeName = org.TradeName
	}

	user, err := s.users.FindFirstByCNPJ(ctx, ticket.CNPJ)
	if err == nil {
		winner.WhatsApp = user.WhatsApp
	}

	return winner
}

func (s *DrawService) History(ctx context.Context) ([]domain.DrawRecord, error) {
	records, err := s.records.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.records.History -> %w", err)
	}

	return records, nil
}
