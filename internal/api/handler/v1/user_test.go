package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campaign-raffle-api/internal/api/middleware"
	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/repository/dao"
	"campaign-raffle-api/internal/service"
)

type UserHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *UserHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = dao.InitTables(suite.db)
	suite.Require().NoError(err)

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(suite.db)))
	handler := NewUserHandler(userSvc)

	suite.seedUser("admin-1", domain.RoleAdmin)
	suite.seedUser("user-1", domain.RoleParticipant)
	suite.seedUser("user-2", domain.RoleParticipant)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	asAdmin := func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, "admin-1")
	}

	admin := suite.router.Group("/admin", asAdmin, middleware.RequireAdmin(userSvc))
	admin.GET("/users", handler.HandleListUsers)

	suite.router.GET("/users/:userID", handler.HandleGetUser)
}

func (suite *UserHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserHandlerTestSuite) seedUser(id, role string) {
	user := dao.User{
		ID:       id,
		Email:    id + "@example.com",
		Password: "hashed",
		Name:     "Test User",
		Role:     role,
	}
	suite.Require().NoError(suite.db.Create(&user).Error)
}

func (suite *UserHandlerTestSuite) TestListUsers() {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var users []domain.User
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &users))
	suite.Len(users, 3)

	ids := make([]string, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	suite.ElementsMatch([]string{"admin-1", "user-1", "user-2"}, ids)
}

func (suite *UserHandlerTestSuite) TestGetUser() {
	req := httptest.NewRequest(http.MethodGet, "/users/user-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var user domain.User
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	suite.Equal("user-1", user.ID)
}

func (suite *UserHandlerTestSuite) TestGetUnknownUser() {
	req := httptest.NewRequest(http.MethodGet, "/users/nobody", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
