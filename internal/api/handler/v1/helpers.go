package v1

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"campaign-raffle-api/internal/api/middleware"
	"campaign-raffle-api/internal/domain"
)

var errMissingUserID = errors.New("user ID not found in request context")

type UserGetter interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

// getUserFromContext resolves the authenticated user behind the JWT that
// middleware.VerifyJWT already validated.
func getUserFromContext(ctx *gin.Context, users UserGetter) (domain.User, error) {
	userID := ctx.GetString(middleware.ContextKeyUserID)
	if userID == "" {
		return domain.User{}, errMissingUserID
	}

	return users.GetUser(ctx.Request.Context(), userID)
}
