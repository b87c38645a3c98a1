package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrUserNotFound
	ErrProductNotFound
	ErrOrderNotFound
	ErrUploadFailed
	ErrVerificationFailed
	ErrDuplicateOrder
	ErrUpstream
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "data not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrUserNotFound:       "user not found",
	ErrProductNotFound:    "product not found",
	ErrOrderNotFound:      "order not found",
	ErrUploadFailed:       "image upload failed",
	ErrVerificationFailed: "notification verification failed",
	ErrDuplicateOrder:     "order id already exists",
	ErrUpstream:           "upstream service error",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrUserNotFound:       http.StatusNotFound,
	ErrProductNotFound:    http.StatusNotFound,
	ErrOrderNotFound:      http.StatusNotFound,
	ErrUploadFailed:       http.StatusInternalServerError,
	ErrVerificationFailed: http.StatusBadRequest,
	ErrDuplicateOrder:     http.StatusBadRequest,
	ErrUpstream:           http.StatusInternalServerError,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrUserNotFound:       "0005",
	ErrProductNotFound:    "0006",
	ErrOrderNotFound:      "0007",
	ErrUploadFailed:       "0008",
	ErrVerificationFailed: "0009",
	ErrDuplicateOrder:     "0010",
	ErrUpstream:           "0011",
}
