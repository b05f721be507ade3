package repository

import (
	"context"
	"fmt"
	"time"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository/dao"
)

var ErrTicketAlreadyDrawn = dao.ErrTicketAlreadyDrawn

type DrawDAO interface {
	Insert(ctx context.Context, record dao.DrawRecord) (dao.DrawRecord, error)
	FindAll(ctx context.Context) ([]dao.DrawRecord, error)
}

type DrawRepository struct {
	dao DrawDAO
}

func NewDrawRepository(dao DrawDAO) *DrawRepository {
	return &DrawRepository{
		dao: dao,
	}
}

func (r *DrawRepository) daoToDomain(d dao.DrawRecord) domain.DrawRecord {
	return domain.DrawRecord{
		ID:         d.ID,
		TicketID:   d.TicketID,
		OperatorID: d.OperatorID,
		DrawnAt:    d.DrawnAt,
	}
}

// RecordWinner inserts the durable proof that ticketID won. A conflicting
// record from a concurrent draw comes back as ErrTicketAlreadyDrawn inside
// the wrap, matchable with errors.Is, so the caller can treat it as a
// per-winner conflict.
func (r *DrawRepository) RecordWinner(ctx context.Context, ticketID uint, operatorID string, at time.Time) (domain.DrawRecord, error) {
	record, err := r.dao.Insert(ctx, dao.DrawRecord{
		TicketID:   ticketID,
		OperatorID: operatorID,
		DrawnAt:    at,
	})
	if err != nil {
		return domain.DrawRecord{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(record), nil
}

func (r *DrawRepository) History(ctx context.Context) ([]domain.DrawRecord, error) {
	daoRecords, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	records := make([]domain.DrawRecord, len(daoRecords))
	for i, record := range daoRecords {
		records[i] = r.daoToDomain(record)
	}

	return records, nil
}
