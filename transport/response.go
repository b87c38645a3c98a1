package transport

import (
	"encoding/json"
	"net/http"

	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/utils/errors"
)

type responseEnvelope struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  string      `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeSuccessStatus(w, http.StatusOK, data)
}

func writeSuccessStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(responseEnvelope{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	cerr, ok := err.(errors.CustomError)
	if !ok {
		cerr = errors.SetCustomError(constant.ErrInternal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(cerr.ErrorHTTPCode())
	_ = json.NewEncoder(w).Encode(responseEnvelope{
		Code:    cerr.ErrorCode(),
		Message: cerr.Error(),
		Detail:  cerr.Detail(),
	})
}
