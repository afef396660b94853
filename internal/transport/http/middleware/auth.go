package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/response"
)

const ContextUserKey = "current_user"

const bearerPrefix = "Bearer "

type userCtxKey struct{}

// RequireAuth resolves the bearer token to a stored user. Missing or non-Bearer
// headers yield 401 "Authentication required"; bad or expired tokens their own
// 401; a token whose user has since been deleted is an internal error.
func RequireAuth(auth *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.FromError(c, app.ErrAuthRequired)
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			response.FromError(c, err)
			return
		}

		user, err := auth.ResolveUser(c.Request.Context(), claims)
		if err != nil {
			response.FromError(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*model.User)
	return user, ok && user != nil
}
