package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrTicketAlreadyDrawn reports that another draw claimed the ticket first.
var ErrTicketAlreadyDrawn = errors.New("ticket already drawn")

type DrawRecord struct {
	ID uint `gorm:"column:id;primaryKey"`

	// The unique index is the enforcement point of the whole system:
	// at most one record may ever reference a ticket, so a concurrent
	// double-draw surfaces as a unique violation here instead of a
	// duplicate winner.
	TicketID   uint      `gorm:"column:cupom_id;uniqueIndex;not null"`
	OperatorID string    `gorm:"column:admin_user_id;not null;size:36"`
	DrawnAt    time.Time `gorm:"column:data_sorteio;not null"`
}

func (DrawRecord) TableName() string {
	return "sorteios"
}

type DrawDAO struct {
	db *gorm.DB
}

func NewDrawDAO(db *gorm.DB) *DrawDAO {
	return &DrawDAO{
		db: db,
	}
}

func (d *DrawDAO) Insert(ctx context.Context, record DrawRecord) (DrawRecord, error) {
	result := d.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return DrawRecord{}, ErrTicketAlreadyDrawn
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return DrawRecord{}, ErrTicketAlreadyDrawn
		}

		return DrawRecord{}, result.Error
	}

	return record, nil
}

func (d *DrawDAO) FindAll(ctx context.Context) ([]DrawRecord, error) {
	var records []DrawRecord

	result := d.db.WithContext(ctx).Order("data_sorteio DESC, id DESC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

func (d *DrawDAO) FindByTicketID(ctx context.Context, ticketID uint) (DrawRecord, error) {
	var record DrawRecord

	result := d.db.WithContext(ctx).First(&record, "cupom_id = ?", ticketID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return DrawRecord{}, ErrTicketNotFound
		}

		return DrawRecord{}, result.Error
	}

	return record, nil
}
