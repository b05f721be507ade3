package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campaign-raffle-api/internal/domain"
	"campaign-raffle-api/internal/repository"
	"campaign-raffle-api/internal/repository/dao"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = dao.InitTables(suite.db)
	suite.Require().NoError(err)

	suite.svc = NewAuthService(repository.NewUserRepository(dao.NewUserDAO(suite.db)))
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) TestSignupHashesPasswordAndAssignsID() {
	ctx := context.Background()

	user, err := suite.svc.Signup(ctx, domain.User{
		Email:    "maria@example.com",
		Password: "super-secret",
		Name:     "Maria",
		CNPJ:     "11222333000144",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(user.ID)
	suite.Equal(domain.RoleParticipant, user.Role)

	var stored dao.User
	suite.Require().NoError(suite.db.First(&stored, "email = ?", "maria@example.com").Error)
	suite.NotEqual("super-secret", stored.Password)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("super-secret")))
}

func (suite *AuthServiceTestSuite) TestSignupDuplicateEmail() {
	ctx := context.Background()

	_, err := suite.svc.Signup(ctx, domain.User{Email: "maria@example.com", Password: "super-secret", Name: "Maria"})
	suite.Require().NoError(err)

	_, err = suite.svc.Signup(ctx, domain.User{Email: "maria@example.com", Password: "other", Name: "Maria"})
	suite.ErrorIs(err, ErrUserEmailExists)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	ctx := context.Background()

	_, err := suite.svc.Signup(ctx, domain.User{Email: "maria@example.com", Password: "super-secret", Name: "Maria"})
	suite.Require().NoError(err)

	user, err := suite.svc.Login(ctx, "maria@example.com", "super-secret")
	suite.Require().NoError(err)
	suite.Equal("maria@example.com", user.Email)

	_, err = suite.svc.Login(ctx, "maria@example.com", "wrong")
	suite.ErrorIs(err, ErrWrongPassword)

	_, err = suite.svc.Login(ctx, "nobody@example.com", "super-secret")
	suite.ErrorIs(err, ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
