package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/platform-analytics/app/sdk/auth"
	"github.com/jcpaschoal/platform-analytics/app/sdk/errs"
	"github.com/jcpaschoal/platform-analytics/business/sdk/web"
	"github.com/jcpaschoal/platform-analytics/business/types/role"
)

// Authorize validates that the authenticated caller holds one of the
// allowed roles for the route.
func Authorize(ath *auth.Auth, allowedRoles ...role.Role) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)

			if err := ath.Authorize(ctx, claims, allowedRoles...); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
