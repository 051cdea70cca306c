package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/platform-analytics/app/sdk/errs"
	"github.com/jcpaschoal/platform-analytics/business/sdk/web"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
)

// Errors handles errors coming out of the call chain. The detailed error is
// logged here; errors marked internal-only leave the handler as a generic
// internal error so details never reach the client.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			log.Error(ctx, "message", "ERROR", err.Error())

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				return errs.Errorf(errs.Internal, "Internal Server Error")
			}

			if appErr.Code == errs.InternalOnlyLog {
				log.Error(ctx, "message", "FUNCTION", appErr.FuncName, "FILE", appErr.FileName)
				return errs.Errorf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}

		return h
	}

	return m
}
