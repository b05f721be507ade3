package v1

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campaign-raffle-api/internal/api/middleware"
	"campaign-raffle-api/internal/config"
	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/repository/dao"
	"campaign-raffle-api/internal/service"
)

type DrawHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *DrawHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = dao.InitTables(suite.db)
	suite.Require().NoError(err)

	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(suite.db))
	invoiceRepo := repository.NewInvoiceRepository(dao.NewInvoiceDAO(suite.db))
	drawRepo := repository.NewDrawRepository(dao.NewDrawDAO(suite.db))
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(suite.db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(suite.db))

	userSvc := service.NewUserService(userRepo)
	drawSvc := service.NewDrawService(ticketRepo, invoiceRepo, drawRepo, orgRepo, userRepo, rand.New(rand.NewSource(7)))
	ticketSvc := service.NewTicketService(ticketRepo, invoiceRepo, &config.CampaignConfig{
		TicketValue:          500,
		SupplierCapThreshold: 4,
	})

	drawHandler := NewDrawHandler(drawSvc, userSvc)
	ticketHandler := NewTicketHandler(ticketSvc, userSvc)

	suite.seedUser("admin-1", domain.RoleAdmin, "")
	suite.seedUser("user-1", domain.RoleParticipant, "11222333000144")

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	asUser := func(id string) gin.HandlerFunc {
		return func(ctx *gin.Context) {
			ctx.Set(middleware.ContextKeyUserID, id)
		}
	}

	admin := suite.router.Group("/admin", asUser("admin-1"), middleware.RequireAdmin(userSvc))
	admin.POST("/draws", drawHandler.HandleRunDraw)
	admin.GET("/draws", drawHandler.HandleListDraws)
	admin.GET("/draws/eligible-tickets", drawHandler.HandleListEligibleTickets)

	participant := suite.router.Group("", asUser("user-1"))
	participant.POST("/invoices/submit", ticketHandler.HandleSubmitInvoice)
}

func (suite *DrawHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DrawHandlerTestSuite) seedUser(id, role, cnpj string) {
	user := dao.User{
		ID:       id,
		Email:    id + "@example.com",
		Password: "hashed",
		Name:     "Test User",
		Role:     role,
		CNPJ:     cnpj,
	}
	suite.Require().NoError(suite.db.Create(&user).Error)
}

func (suite *DrawHandlerTestSuite) seedInvoice(number, cnpj string, amount float64, suppliers int, used bool) {
	invoice := dao.Invoice{
		Number:        number,
		CNPJ:          cnpj,
		Amount:        amount,
		SupplierCount: suppliers,
		Valid:         true,
		UsedForTicket: used,
	}
	suite.Require().NoError(suite.db.Create(&invoice).Error)
}

func (suite *DrawHandlerTestSuite) seedTickets(number, cnpj string, count int) {
	for i := 0; i < count; i++ {
		ticket := dao.Ticket{
			InvoiceNumber: number,
			CNPJ:          cnpj,
			CreatedAt:     time.Now().UTC(),
		}
		suite.Require().NoError(suite.db.Create(&ticket).Error)
	}
}

func (suite *DrawHandlerTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	return w
}

func (suite *DrawHandlerTestSuite) TestRunDrawReturnsWinners() {
	suite.seedInvoice("NF-1", "11222333000144", 5000, 10, true)
	suite.seedTickets("NF-1", "11222333000144", 5)

	w := suite.postJSON("/admin/draws", gin.H{"quantity": 2})
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Success   bool `json:"success"`
		Requested int  `json:"requested"`
		Partial   bool `json:"partial"`
		Winners   []struct {
			TicketID uint `json:"ticket_id"`
		} `json:"winners"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(2, resp.Requested)
	suite.False(resp.Partial)
	suite.Len(resp.Winners, 2)
}

func (suite *DrawHandlerTestSuite) TestRunDrawRejectsInvalidQuantity() {
	w := suite.postJSON("/admin/draws", gin.H{"quantity": 0})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DrawHandlerTestSuite) TestRunDrawInsufficientPool() {
	suite.seedInvoice("NF-1", "11222333000144", 5000, 10, true)
	suite.seedTickets("NF-1", "11222333000144", 1)

	w := suite.postJSON("/admin/draws", gin.H{"quantity": 5})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *DrawHandlerTestSuite) TestSubmitInvoiceFlow() {
	suite.seedInvoice("NF-1", "11222333000144", 1500, 5, false)

	w := suite.postJSON("/invoices/submit", gin.H{"invoice_number": "NF-1"})
	suite.Equal(http.StatusCreated, w.Code)

	var resp struct {
		Tickets []struct {
			ID uint `json:"id"`
		} `json:"tickets"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Tickets, 3)

	// Resubmitting the consumed invoice conflicts.
	w = suite.postJSON("/invoices/submit", gin.H{"invoice_number": "NF-1"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *DrawHandlerTestSuite) TestSubmitUnknownInvoice() {
	suite.Equal(http.StatusNotFound, suite.postJSON("/invoices/submit", gin.H{"invoice_number": "NF-404"}).Code)
}

func TestDrawHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DrawHandlerTestSuite))
}
