package http

import (
	"encoding/json"
	"net/http"
)

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageBody{Message: message})
}

// httpError carries a status and user-facing message up from helpers that
// cannot write the response themselves.
type httpError struct {
	status  int
	message string
}

func (e *httpError) write(w http.ResponseWriter) {
	writeMessage(w, e.status, e.message)
}
