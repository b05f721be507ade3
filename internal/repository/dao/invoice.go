package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceAlreadyUsed = errors.New("invoice already used for tickets")
)

type Invoice struct {
	Number string `gorm:"column:num_nota;primaryKey;size:44"`
	CNPJ   string `gorm:"column:cnpj;primaryKey;size:14"`

	Amount        float64    `gorm:"column:valor"`
	IssueDate     *time.Time `gorm:"column:data_emissao"`
	SupplierCount int        `gorm:"column:qtd_fornecedores"`
	BranchCode    string     `gorm:"column:codfilial"`

	Valid  bool   `gorm:"column:valida;not null;default:false"`
	Reason string `gorm:"column:motivo"`

	UsedForTicket bool `gorm:"column:utilizada_para_cupom;not null;default:false"`
}

func (Invoice) TableName() string {
	return "notas_fiscais"
}

type InvoiceDAO struct {
	db *gorm.DB
}

func NewInvoiceDAO(db *gorm.DB) *InvoiceDAO {
	return &InvoiceDAO{
		db: db,
	}
}

func (d *InvoiceDAO) FindByKey(ctx context.Context, number, cnpj string) (Invoice, error) {
	var invoice Invoice

	result := d.db.WithContext(ctx).
		First(&invoice, "num_nota = ? AND cnpj = ?", number, cnpj)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invoice{}, ErrInvoiceNotFound
		}

		return Invoice{}, result.Error
	}

	return invoice, nil
}

// FindValid returns every invoice flagged valid by the back office.
// The draw flow snapshots this set before selecting winners.
func (d *InvoiceDAO) FindValid(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice

	result := d.db.WithContext(ctx).Where("valida = ?", true).Find(&invoices)
	if result.Error != nil {
		return nil, result.Error
	}

	return invoices, nil
}

func (d *InvoiceDAO) FindByCNPJ(ctx context.Context, cnpj string) ([]Invoice, error) {
	var invoices []Invoice

	result := d.db.WithContext(ctx).Where("cnpj = ?", cnpj).Order("num_nota").Find(&invoices)
	if result.Error != nil {
		return nil, result.Error
	}

	return invoices, nil
}

// FindSubmittableByCNPJ lists the invoices a participant can still turn
// into tickets: validated and not yet used.
func (d *InvoiceDAO) FindSubmittableByCNPJ(ctx context.Context, cnpj string) ([]Invoice, error) {
	var invoices []Invoice

	result := d.db.WithContext(ctx).
		Where("cnpj = ? AND valida = ? AND utilizada_para_cupom = ?", cnpj, true, false).
		Order("data_emissao").
		Find(&invoices)
	if result.Error != nil {
		return nil, result.Error
	}

	return invoices, nil
}

func (d *InvoiceDAO) FindAll(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice

	result := d.db.WithContext(ctx).Order("cnpj, num_nota").Find(&invoices)
	if result.Error != nil {
		return nil, result.Error
	}

	return invoices, nil
}

func (d *InvoiceDAO) UpsertBatch(ctx context.Context, invoices []Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "num_nota"}, {Name: "cnpj"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"valor", "data_emissao", "qtd_fornecedores", "codfilial",
		}),
	}).Create(&invoices)

	return result.Error
}

func (d *InvoiceDAO) SetValidity(ctx context.Context, number, cnpj string, valid bool, reason string) error {
	result := d.db.WithContext(ctx).Model(&Invoice{}).
		Where("num_nota = ? AND cnpj = ?", number, cnpj).
		Updates(map[string]interface{}{
			"valida": valid,
			"motivo": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// MarkUsed flips utilizada_para_cupom exactly once. The WHERE clause makes
// the transition one-way: a second call finds no unused row and reports
// ErrInvoiceAlreadyUsed instead of silently re-marking.
func (d *InvoiceDAO) MarkUsed(ctx context.Context, number, cnpj string) error {
	result := d.db.WithContext(ctx).Model(&Invoice{}).
		Where("num_nota = ? AND cnpj = ? AND utilizada_para_cupom = ?", number, cnpj, false).
		Update("utilizada_para_cupom", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvoiceAlreadyUsed
	}

	return nil
}
