package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"campaign-raffle-api/docs"
	v1 "campaign-raffle-api/internal/api/handler/v1"
	"campaign-raffle-api/internal/api/middleware"
	"campaign-raffle-api/internal/config"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/repository/dao"
	"campaign-raffle-api/internal/rng"
	"campaign-raffle-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	ticketHandler := s.initTicketHandler(db, userSvc)
	invoiceHandler := s.initInvoiceHandler(db)
	organizationHandler := s.initOrganizationHandler(db)
	drawHandler := s.initDrawHandler(db, userSvc)
	s.MountHandlers(userSvc, authHandler, userHandler, ticketHandler, invoiceHandler, organizationHandler, drawHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB, users v1.UserGetter) *v1.TicketHandler {
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	invoiceRepo := repository.NewInvoiceRepository(dao.NewInvoiceDAO(db))
	svc := service.NewTicketService(ticketRepo, invoiceRepo, s.Config.Campaign)
	handler := v1.NewTicketHandler(svc, users)

	return handler
}

func (s *Server) initInvoiceHandler(db *gorm.DB) *v1.InvoiceHandler {
	repo := repository.NewInvoiceRepository(dao.NewInvoiceDAO(db))
	svc := service.NewInvoiceService(repo)
	handler := v1.NewInvoiceHandler(svc)

	return handler
}

func (s *Server) initOrganizationHandler(db *gorm.DB) *v1.OrganizationHandler {
	repo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	svc := service.NewOrganizationService(repo)
	handler := v1.NewOrganizationHandler(svc)

	return handler
}

func (s *Server) initDrawHandler(db *gorm.DB, users v1.UserGetter) *v1.DrawHandler {
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	invoiceRepo := repository.NewInvoiceRepository(dao.NewInvoiceDAO(db))
	drawRepo := repository.NewDrawRepository(dao.NewDrawDAO(db))
	orgRepo := repository.NewOrganizationRepository(dao.NewOrganizationDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewDrawService(ticketRepo, invoiceRepo, drawRepo, orgRepo, userRepo, rng.NewSource())
	handler := v1.NewDrawHandler(svc, users)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc *service.UserService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	ticketHandler *v1.TicketHandler,
	invoiceHandler *v1.InvoiceHandler,
	organizationHandler *v1.OrganizationHandler,
	drawHandler *v1.DrawHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	participants := s.Router.Group(basePath, verifyJWT)
	{
		participants.GET("/users/:userID", userHandler.HandleGetUser)
		participants.GET("/invoices/eligible", ticketHandler.HandleListSubmittableInvoices)
		participants.POST("/invoices/submit", ticketHandler.HandleSubmitInvoice)
		participants.GET("/tickets", ticketHandler.HandleListMyTickets)
	}

	admin := s.Router.Group(basePath+"/admin", verifyJWT, middleware.RequireAdmin(userSvc))
	{
		admin.GET("/organizations", organizationHandler.HandleListOrganizations)
		admin.POST("/organizations", organizationHandler.HandleCreateOrganization)
		admin.POST("/organizations/import", organizationHandler.HandleImportOrganizations)
		admin.GET("/organizations/:cnpj", organizationHandler.HandleGetOrganization)
		admin.PUT("/organizations/:cnpj", organizationHandler.HandleUpdateOrganization)
		admin.DELETE("/organizations/:cnpj", organizationHandler.HandleDeleteOrganization)

		admin.GET("/invoices", invoiceHandler.HandleListInvoices)
		admin.POST("/invoices/import", invoiceHandler.HandleImportInvoices)
		admin.PUT("/invoices/:cnpj/:number/validity", invoiceHandler.HandleSetInvoiceValidity)

		admin.GET("/tickets", ticketHandler.HandleListAllTickets)

		admin.GET("/users", userHandler.HandleListUsers)

		admin.GET("/draws", drawHandler.HandleListDraws)
		admin.POST("/draws", drawHandler.HandleRunDraw)
		admin.GET("/draws/eligible-tickets", drawHandler.HandleListEligibleTickets)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Campaign Raffle API"
	docs.SwaggerInfo.Description = "Invoice-backed raffle ticket issuance and winner drawing."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
