package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "mentiond/pkg/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError translates a domain error into the JSON error envelope. Untyped
// errors surface as a generic internal error so backend details never leak.
func writeError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	message := "internal server error"
	var domainErr *pkgerrors.Error
	if errors.As(err, &domainErr) && domainErr.Code != pkgerrors.CodeInternal {
		message = domainErr.Message
	}
	writeJSON(w, pkgerrors.ToHTTPStatus(code), errorResponse{
		Error: errorBody{Code: string(code), Message: message},
	})
}
