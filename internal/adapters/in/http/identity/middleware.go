package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectfood/internal/core/domain/model/kernel"
	"connectfood/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

const actorKey = "connectfood.actor"

type actorContextKey struct{}

// QueryTokenParam carries the credential for clients that cannot set headers,
// such as browser WebSocket connections.
const QueryTokenParam = "access_token"

// Middleware authenticates every request through provider and stores the
// resolved actor on the echo context and on the request context, where plain
// http.Handlers find it. Unauthenticated requests get 401.
func Middleware(provider Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := provider.Resolve(c.Request().Context(), credential(c.Request()))
			if err != nil {
				message := "invalid credential"
				if errors.Is(err, ErrMissingCredential) {
					message = "missing credential"
				}
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="connectfood"`)
				return c.JSON(http.StatusUnauthorized, servers.Error{Code: http.StatusUnauthorized, Message: message})
			}
			c.Set(actorKey, actor)
			c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Middleware.
func ActorFrom(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorKey).(kernel.Actor)
	return actor, ok
}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor kernel.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(kernel.Actor)
	return actor, ok
}

func credential(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return token
	}
	return r.URL.Query().Get(QueryTokenParam)
}
