package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Ticket struct {
	ID uint `gorm:"column:id;primaryKey"`

	InvoiceNumber string `gorm:"column:num_nota;not null;index:idx_cupons_nota"`
	CNPJ          string `gorm:"column:cnpj;not null;index:idx_cupons_nota"`

	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	DrawnAt   *time.Time `gorm:"column:sorteado_em"`
}

func (Ticket) TableName() string {
	return "cupons"
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertBatch creates the tickets issued from one invoice in a single
// statement, so an invoice either yields its full batch or nothing.
func (d *TicketDAO) InsertBatch(ctx context.Context, tickets []Ticket) ([]Ticket, error) {
	if len(tickets) == 0 {
		return nil, nil
	}

	result := d.db.WithContext(ctx).Create(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

// FindUndrawn returns every ticket that has not won yet. Together with
// InvoiceDAO.FindValid it forms the eligibility snapshot of a draw request.
func (d *TicketDAO) FindUndrawn(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Where("sorteado_em IS NULL").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByCNPJ(ctx context.Context, cnpj string) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Where("cnpj = ?", cnpj).Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindAll(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).Order("id").Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// MarkDrawn stamps sorteado_em, but only on a ticket that is still
// undrawn. The guard clause keeps the transition one-way.
func (d *TicketDAO) MarkDrawn(ctx context.Context, id uint, at time.Time) error {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ? AND sorteado_em IS NULL", id).
		Update("sorteado_em", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketAlreadyDrawn
	}

	return nil
}
