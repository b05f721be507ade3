package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"campaign-raffle-api/internal/api/handler/v1/response"
	"campaign-raffle-api/internal/domain"
)

type UserGetter interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

// RequireAdmin gates draw and back-office routes. It runs after VerifyJWT.
func RequireAdmin(users UserGetter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetString(ContextKeyUserID)
		if userID == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("not authenticated"))
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("unknown user"))
			return
		}

		if !user.IsAdmin() {
			response.RenderErr(ctx, response.ErrForbidden("administrator privileges required"))
			return
		}

		ctx.Next()
	}
}
