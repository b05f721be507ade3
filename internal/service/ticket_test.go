package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campaign-raffle-api/internal/config"
	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/repository/dao"
)

func newCampaignConfig() *config.CampaignConfig {
	return &config.CampaignConfig{
		TicketValue:          500,
		SupplierCapThreshold: 4,
	}
}

func TestComputeTicketCount(t *testing.T) {
	svc := NewTicketService(nil, nil, newCampaignConfig())

	tests := []struct {
		name          string
		amount        float64
		supplierCount int
		want          int
	}{
		{"below one ticket value", 499.99, 10, 0},
		{"exactly one ticket value", 500, 10, 1},
		{"just under two ticket values", 999.99, 10, 1},
		{"floor of amount over value", 1500, 5, 3},
		{"suppliers at threshold never cap", 2000, 4, 4},
		{"suppliers above threshold never cap", 2000, 5, 4},
		{"few suppliers cap the count", 2000, 2, 2},
		{"cap only applies when below base", 1000, 3, 2},
		{"zero suppliers cap to zero", 2000, 0, 0},
		{"zero amount", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ComputeTicketCount(tt.amount, tt.supplierCount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeTicketCountRejectsMalformedInput(t *testing.T) {
	svc := NewTicketService(nil, nil, newCampaignConfig())

	tests := []struct {
		name          string
		amount        float64
		supplierCount int
	}{
		{"negative amount", -1, 5},
		{"negative supplier count", 1000, -1},
		{"NaN amount", math.NaN(), 5},
		{"infinite amount", math.Inf(1), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ComputeTicketCount(tt.amount, tt.supplierCount)
			assert.ErrorIs(t, err, ErrInvalidInvoiceData)
		})
	}
}

func TestComputeTicketCountIsDeterministic(t *testing.T) {
	svc := NewTicketService(nil, nil, newCampaignConfig())

	first, err := svc.ComputeTicketCount(12345.67, 3)
	assert.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := svc.ComputeTicketCount(12345.67, 3)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

type TicketServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	conf        *config.CampaignConfig
	svc         *TicketService
	invoiceRepo *repository.InvoiceRepository
}

func (suite *TicketServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = dao.InitTables(suite.db)
	suite.Require().NoError(err)

	suite.conf = newCampaignConfig()
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(suite.db))
	suite.invoiceRepo = repository.NewInvoiceRepository(dao.NewInvoiceDAO(suite.db))
	suite.svc = NewTicketService(ticketRepo, suite.invoiceRepo, suite.conf)
}

func (suite *TicketServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TicketServiceTestSuite) seedInvoice(number, cnpj string, amount float64, suppliers int, valid bool) {
	invoice := dao.Invoice{
		Number:        number,
		CNPJ:          cnpj,
		Amount:        amount,
		SupplierCount: suppliers,
		BranchCode:    "001",
		Valid:         valid,
	}
	suite.Require().NoError(suite.db.Create(&invoice).Error)
}

func (suite *TicketServiceTestSuite) TestSubmitInvoiceIssuesTickets() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", 1500, 5, true)

	tickets, err := suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-1")
	suite.Require().NoError(err)
	suite.Len(tickets, 3)
	for _, ticket := range tickets {
		suite.Equal("NF-1", ticket.InvoiceNumber)
		suite.Equal("11222333000144", ticket.CNPJ)
		suite.Nil(ticket.DrawnAt)
	}

	invoice, err := suite.invoiceRepo.FindByKey(ctx, domain.InvoiceKey{Number: "NF-1", CNPJ: "11222333000144"})
	suite.Require().NoError(err)
	suite.True(invoice.UsedForTicket)

	mine, err := suite.svc.ListTicketsByCNPJ(ctx, "11222333000144")
	suite.Require().NoError(err)
	suite.Len(mine, 3)
}

func (suite *TicketServiceTestSuite) TestSubmitInvoiceTwiceConflicts() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", 1000, 5, true)

	_, err := suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-1")
	suite.Require().NoError(err)

	_, err = suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-1")
	suite.ErrorIs(err, ErrInvoiceAlreadyUsed)

	all, err := suite.svc.ListAllTickets(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *TicketServiceTestSuite) TestSubmitInvoiceNotFound() {
	_, err := suite.svc.SubmitInvoice(context.Background(), "11222333000144", "NF-404")
	suite.ErrorIs(err, ErrInvoiceNotFound)
}

func (suite *TicketServiceTestSuite) TestSubmitInvoiceNotValidated() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", 1500, 5, false)

	_, err := suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-1")
	suite.ErrorIs(err, ErrInvoiceNotValidated)
}

func (suite *TicketServiceTestSuite) TestSubmitInvoiceYieldingNoTicketsIsNotConsumed() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", 300, 3, true)

	_, err := suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-1")
	suite.ErrorIs(err, ErrInvoiceYieldsNoTickets)

	submittable, err := suite.svc.ListSubmittableInvoices(ctx, "11222333000144")
	suite.Require().NoError(err)
	suite.Len(submittable, 1)
}

func (suite *TicketServiceTestSuite) TestSubmitZeroTicketInvoiceConsumedWhenConfigured() {
	ctx := context.Background()
	suite.conf.ConsumeZeroTicketInvoices = true
	suite.seedInvoice("NF-1", "11222333000144", 300, 3, true)

	_, err := suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-1")
	suite.ErrorIs(err, ErrInvoiceYieldsNoTickets)

	invoice, err := suite.invoiceRepo.FindByKey(ctx, domain.InvoiceKey{Number: "NF-1", CNPJ: "11222333000144"})
	suite.Require().NoError(err)
	suite.True(invoice.UsedForTicket)
}

func (suite *TicketServiceTestSuite) TestListSubmittableInvoicesFiltersUsedAndInvalid() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", 1000, 5, true)
	suite.seedInvoice("NF-2", "11222333000144", 1000, 5, false)
	suite.seedInvoice("NF-3", "11222333000144", 1000, 5, true)

	_, err := suite.svc.SubmitInvoice(ctx, "11222333000144", "NF-3")
	suite.Require().NoError(err)

	submittable, err := suite.svc.ListSubmittableInvoices(ctx, "11222333000144")
	suite.Require().NoError(err)
	suite.Require().Len(submittable, 1)
	suite.Equal("NF-1", submittable[0].Number)
}

func TestTicketServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TicketServiceTestSuite))
}
