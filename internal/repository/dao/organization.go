package dao

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrganizationExists   = errors.New("organization already exists")
	ErrOrganizationNotFound = errors.New("organization not found")
)

type Organization struct {
	CNPJ      string `gorm:"column:cnpj;primaryKey;size:14"`
	LegalName string `gorm:"column:razao_social;not null"`
	TradeName string `gorm:"column:nome_fantasia"`
	Deleted   bool   `gorm:"column:excluido;not null;default:false"`
}

func (Organization) TableName() string {
	return "clientes"
}

type OrganizationDAO struct {
	db *gorm.DB
}

func NewOrganizationDAO(db *gorm.DB) *OrganizationDAO {
	return &OrganizationDAO{
		db: db,
	}
}

func (d *OrganizationDAO) Insert(ctx context.Context, org Organization) (Organization, error) {
	result := d.db.WithContext(ctx).Create(&org)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Organization{}, ErrOrganizationExists
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return Organization{}, ErrOrganizationExists
		}

		return Organization{}, result.Error
	}

	return org, nil
}

// UpsertBatch inserts the given organizations, updating the name fields of
// rows whose CNPJ already exists. Used by the bulk import commit path.
func (d *OrganizationDAO) UpsertBatch(ctx context.Context, orgs []Organization) error {
	if len(orgs) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cnpj"}},
		DoUpdates: clause.AssignmentColumns([]string{"razao_social", "nome_fantasia"}),
	}).Create(&orgs)

	return result.Error
}

func (d *OrganizationDAO) FindByCNPJ(ctx context.Context, cnpj string) (Organization, error) {
	var org Organization

	result := d.db.WithContext(ctx).First(&org, "cnpj = ?", cnpj)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Organization{}, ErrOrganizationNotFound
		}

		return Organization{}, result.Error
	}

	return org, nil
}

func (d *OrganizationDAO) FindAll(ctx context.Context) ([]Organization, error) {
	var orgs []Organization

	result := d.db.WithContext(ctx).Where("excluido = ?", false).Order("razao_social").Find(&orgs)
	if result.Error != nil {
		return nil, result.Error
	}

	return orgs, nil
}

func (d *OrganizationDAO) Update(ctx context.Context, org Organization) (Organization, error) {
	result := d.db.WithContext(ctx).Model(&Organization{}).
		Where("cnpj = ?", org.CNPJ).
		Updates(map[string]interface{}{
			"razao_social":  org.LegalName,
			"nome_fantasia": org.TradeName,
		})
	if result.Error != nil {
		return Organization{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Organization{}, ErrOrganizationNotFound
	}

	return d.FindByCNPJ(ctx, org.CNPJ)
}

// SoftDelete flags the organization as excluded. The row stays because
// invoices and tickets reference the CNPJ.
func (d *OrganizationDAO) SoftDelete(ctx context.Context, cnpj string) error {
	result := d.db.WithContext(ctx).Model(&Organization{}).
		Where("cnpj = ?", cnpj).
		Update("excluido", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}
