package errs

import "net/http"

// Set of error codes the application reports with.
var (
	OK                 = ErrCode{value: 0}
	Canceled           = ErrCode{value: 1}
	Unknown            = ErrCode{value: 2}
	InvalidArgument    = ErrCode{value: 3}
	DeadlineExceeded   = ErrCode{value: 4}
	NotFound           = ErrCode{value: 5}
	Aborted            = ErrCode{value: 10}
	FailedPrecondition = ErrCode{value: 9}
	Internal           = ErrCode{value: 13}
	Unauthenticated    = ErrCode{value: 16}
	PermissionDenied   = ErrCode{value: 7}

	// InternalOnlyLog marks errors whose details stay in the logs; the
	// client sees a generic internal error.
	InternalOnlyLog = ErrCode{value: 14}
)

var codeNames = map[ErrCode]string{
	OK:                 "ok",
	Canceled:           "canceled",
	Unknown:            "unknown",
	InvalidArgument:    "invalid_argument",
	DeadlineExceeded:   "deadline_exceeded",
	NotFound:           "not_found",
	Aborted:            "aborted",
	FailedPrecondition: "failed_precondition",
	Internal:           "internal",
	Unauthenticated:    "unauthenticated",
	PermissionDenied:   "permission_denied",
	InternalOnlyLog:    "internal",
}

var codeNumbers = map[string]ErrCode{
	"ok":                  OK,
	"canceled":            Canceled,
	"unknown":             Unknown,
	"invalid_argument":    InvalidArgument,
	"deadline_exceeded":   DeadlineExceeded,
	"not_found":           NotFound,
	"aborted":             Aborted,
	"failed_precondition": FailedPrecondition,
	"internal":            Internal,
	"unauthenticated":     Unauthenticated,
	"permission_denied":   PermissionDenied,
}

var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	Canceled:           http.StatusGatewayTimeout,
	Unknown:            http.StatusInternalServerError,
	InvalidArgument:    http.StatusBadRequest,
	DeadlineExceeded:   http.StatusGatewayTimeout,
	NotFound:           http.StatusNotFound,
	Aborted:            http.StatusConflict,
	FailedPrecondition: http.StatusBadRequest,
	Internal:           http.StatusInternalServerError,
	Unauthenticated:    http.StatusUnauthorized,
	PermissionDenied:   http.StatusForbidden,
	InternalOnlyLog:    http.StatusInternalServerError,
}
