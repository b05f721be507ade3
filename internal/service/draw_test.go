package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/repository/dao"
)

type DrawServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	svc         *DrawService
	ticketRepo  *repository.TicketRepository
	invoiceRepo *repository.InvoiceRepository
	drawRepo    *repository.DrawRepository
}

func (suite *DrawServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = dao.InitTables(suite.db)
	suite.Require().NoError(err)

	suite.ticketRepo = repository.NewTicketRepository(dao.NewTicketDAO(suite.db))
	suite.invoiceRepo = repository.NewInvoiceRepository(dao.NewInvoiceDAO(suite.db))
	suite.drawRepo = repository.NewDrawRepository(dao.NewDrawDAO(suite.db))
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(suite.db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(suite.db))

	suite.svc = NewDrawService(
		suite.ticketRepo,
		suite.invoiceRepo,
		suite.drawRepo,
		orgRepo,
		userRepo,
		rand.New(rand.NewSource(42)),
	)
}

func (suite *DrawServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DrawServiceTestSuite) seedInvoice(number, cnpj string, valid bool) {
	invoice := dao.Invoice{
		Number:        number,
		CNPJ:          cnpj,
		Amount:        5000,
		SupplierCount: 10,
		BranchCode:    "001",
		Valid:         valid,
		UsedForTicket: true,
	}
	suite.Require().NoError(suite.db.Create(&invoice).Error)
}

func (suite *DrawServiceTestSuite) seedTickets(number, cnpj string, count int) []uint {
	ids := make([]uint, 0, count)
	for i := 0; i < count; i++ {
		ticket := dao.Ticket{
			InvoiceNumber: number,
			CNPJ:          cnpj,
			CreatedAt:     time.Now().UTC(),
		}
		suite.Require().NoError(suite.db.Create(&ticket).Error)
		ids = append(ids, ticket.ID)
	}

	return ids
}

func (suite *DrawServiceTestSuite) seedOrganization(cnpj, legalName, tradeName string) {
	org := dao.Organization{
		CNPJ:      cnpj,
		LegalName: legalName,
		TradeName: tradeName,
	}
	suite.Require().NoError(suite.db.Create(&org).Error)
}

func (suite *DrawServiceTestSuite) seedUser(id, cnpj, whatsapp string) {
	user := dao.User{
		ID:       id,
		Email:    id + "@example.com",
		Password: "hashed",
		Name:     "Test User",
		Role:     domain.RoleParticipant,
		CNPJ:     cnpj,
		WhatsApp: whatsapp,
	}
	suite.Require().NoError(suite.db.Create(&user).Error)
}

func (suite *DrawServiceTestSuite) TestRunDrawSelectsDistinctWinners() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	ids := suite.seedTickets("NF-1", "11222333000144", 5)

	result, err := suite.svc.RunDraw(ctx, 3, "operator-1")
	suite.Require().NoError(err)
	suite.Equal(3, result.Requested)
	suite.False(result.Partial)
	suite.Require().Len(result.Winners, 3)

	seen := make(map[uint]bool)
	for _, winner := range result.Winners {
		suite.False(seen[winner.TicketID], "ticket %d drawn twice in one draw", winner.TicketID)
		seen[winner.TicketID] = true
		suite.Contains(ids, winner.TicketID)
	}

	history, err := suite.svc.History(ctx)
	suite.Require().NoError(err)
	suite.Len(history, 3)
	for _, record := range history {
		suite.Equal("operator-1", record.OperatorID)
	}

	remaining, err := suite.svc.EligibleTicketIDs(ctx)
	suite.Require().NoError(err)
	suite.Len(remaining, 2)
	for _, id := range remaining {
		suite.False(seen[id], "drawn ticket %d still eligible", id)
	}
}

func (suite *DrawServiceTestSuite) TestSequentialDrawsNeverRepeatWinners() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	suite.seedTickets("NF-1", "11222333000144", 6)

	seen := make(map[uint]bool)

	first, err := suite.svc.RunDraw(ctx, 2, "operator-1")
	suite.Require().NoError(err)
	for _, winner := range first.Winners {
		suite.False(seen[winner.TicketID])
		seen[winner.TicketID] = true
	}

	second, err := suite.svc.RunDraw(ctx, 4, "operator-1")
	suite.Require().NoError(err)
	for _, winner := range second.Winners {
		suite.False(seen[winner.TicketID], "ticket %d won twice across draws", winner.TicketID)
		seen[winner.TicketID] = true
	}

	suite.Len(seen, 6)

	_, err = suite.svc.RunDraw(ctx, 1, "operator-1")
	var insufficient *InsufficientTicketsError
	suite.ErrorAs(err, &insufficient)
	suite.Equal(0, insufficient.Available)
}

func (suite *DrawServiceTestSuite) TestEligibilityExcludesInvalidInvoices() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	suite.seedInvoice("NF-2", "55666777000188", false)
	validIDs := suite.seedTickets("NF-1", "11222333000144", 3)
	suite.seedTickets("NF-2", "55666777000188", 3)

	eligible, err := suite.svc.EligibleTicketIDs(ctx)
	suite.Require().NoError(err)
	suite.ElementsMatch(validIDs, eligible)

	result, err := suite.svc.RunDraw(ctx, 3, "operator-1")
	suite.Require().NoError(err)
	for _, winner := range result.Winners {
		suite.Contains(validIDs, winner.TicketID)
	}
}

func (suite *DrawServiceTestSuite) TestRunDrawRejectsNonPositiveCount() {
	ctx := context.Background()

	_, err := suite.svc.RunDraw(ctx, 0, "operator-1")
	suite.ErrorIs(err, ErrInvalidDrawCount)

	_, err = suite.svc.RunDraw(ctx, -3, "operator-1")
	suite.ErrorIs(err, ErrInvalidDrawCount)
}

func (suite *DrawServiceTestSuite) TestRunDrawInsufficientPoolPersistsNothing() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	suite.seedTickets("NF-1", "11222333000144", 3)

	_, err := suite.svc.RunDraw(ctx, 10, "operator-1")
	var insufficient *InsufficientTicketsError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal(10, insufficient.Requested)
	suite.Equal(3, insufficient.Available)

	history, err := suite.svc.History(ctx)
	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *DrawServiceTestSuite) TestRunDrawPartialWhenTicketAlreadyClaimed() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	ids := suite.seedTickets("NF-1", "11222333000144", 4)

	// Another draw recorded this ticket but has not stamped it yet, so it
	// still looks eligible to a fresh snapshot.
	claimed := dao.DrawRecord{
		TicketID:   ids[0],
		OperatorID: "operator-2",
		DrawnAt:    time.Now().UTC(),
	}
	suite.Require().NoError(suite.db.Create(&claimed).Error)

	result, err := suite.svc.RunDraw(ctx, 4, "operator-1")
	suite.Require().NoError(err)
	suite.True(result.Partial)
	suite.Equal(4, result.Requested)
	suite.Require().Len(result.Winners, 3)
	for _, winner := range result.Winners {
		suite.NotEqual(ids[0], winner.TicketID)
	}

	// Still exactly one record per ticket.
	var count int64
	suite.Require().NoError(suite.db.Model(&dao.DrawRecord{}).Count(&count).Error)
	suite.Equal(int64(4), count)
}

func (suite *DrawServiceTestSuite) TestRunDrawResolvesWinnerMetadata() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	suite.seedTickets("NF-1", "11222333000144", 1)
	suite.seedOrganization("11222333000144", "ACME Comercio LTDA", "ACME")
	suite.seedUser("user-1", "11222333000144", "+5511999998888")

	result, err := suite.svc.RunDraw(ctx, 1, "operator-1")
	suite.Require().NoError(err)
	suite.Require().Len(result.Winners, 1)

	winner := result.Winners[0]
	suite.Equal("NF-1", winner.InvoiceNumber)
	suite.Equal("ACME Comercio LTDA", winner.LegalName)
	suite.Equal("ACME", winner.TradeName)
	suite.Equal("001", winner.BranchCode)
	suite.Equal("+5511999998888", winner.WhatsApp)
}

func (suite *DrawServiceTestSuite) TestRunDrawDegradesMissingMetadata() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	suite.seedTickets("NF-1", "11222333000144", 1)

	result, err := suite.svc.RunDraw(ctx, 1, "operator-1")
	suite.Require().NoError(err)
	suite.Require().Len(result.Winners, 1)

	winner := result.Winners[0]
	suite.Equal("unknown", winner.LegalName)
	suite.Empty(winner.WhatsApp)
}

func TestDrawServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DrawServiceTestSuite))
}

func TestFilterEligible(t *testing.T) {
	keyA := domain.InvoiceKey{Number: "NF-1", CNPJ: "11222333000144"}
	keyB := domain.InvoiceKey{Number: "NF-2", CNPJ: "55666777000188"}

	tickets := []domain.Ticket{
		{ID: 1, InvoiceNumber: keyA.Number, CNPJ: keyA.CNPJ},
		{ID: 2, InvoiceNumber: keyB.Number, CNPJ: keyB.CNPJ},
		{ID: 3, InvoiceNumber: keyA.Number, CNPJ: keyA.CNPJ},
	}
	validKeys := map[domain.InvoiceKey]struct{}{keyA: {}}

	eligible := FilterEligible(tickets, validKeys)
	assert.Len(t, eligible, 2)
	for _, ticket := range eligible {
		assert.Equal(t, keyA, ticket.InvoiceKey())
	}

	// Same snapshot in, same set out.
	again := FilterEligible(tickets, validKeys)
	assert.Equal(t, eligible, again)

	assert.Empty(t, FilterEligible(nil, validKeys))
	assert.Empty(t, FilterEligible(tickets, nil))
}

type failingDrawRecords struct {
	err error
}

func (f *failingDrawRecords) RecordWinner(_ context.Context, _ uint, _ string, _ time.Time) (domain.DrawRecord, error) {
	return domain.DrawRecord{}, f.err
}

func (f *failingDrawRecords) History(_ context.Context) ([]domain.DrawRecord, error) {
	return nil, f.err
}

func (suite *DrawServiceTestSuite) TestRunDrawFailsWhenNothingRecorded() {
	ctx := context.Background()
	suite.seedInvoice("NF-1", "11222333000144", true)
	suite.seedTickets("NF-1", "11222333000144", 3)

	storageErr := errors.New("connection refused")
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(suite.db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(suite.db))
	svc := NewDrawService(
		suite.ticketRepo,
		suite.invoiceRepo,
		&failingDrawRecords{err: storageErr},
		orgRepo,
		userRepo,
		rand.New(rand.NewSource(1)),
	)

	_, err := svc.RunDraw(ctx, 2, "operator-1")
	suite.ErrorIs(err, storageErr)
}
