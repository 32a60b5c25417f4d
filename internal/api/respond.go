package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/techmarket/internal/core/fault"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// sendFault maps the typed fault kinds onto HTTP statuses. Unclassified
// errors become opaque 500s.
func sendFault(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	status := http.StatusInternalServerError
	msg := "internal error"

	switch kind {
	case fault.KindValidation:
		status = http.StatusBadRequest
		msg = err.Error()
	case fault.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case fault.KindForbidden:
		status = http.StatusForbidden
		msg = err.Error()
	case fault.KindInvalidTransition:
		status = http.StatusConflict
		msg = err.Error()
	}

	sendJSON(w, status, errorResponse{Error: msg, Kind: string(kind)})
}
