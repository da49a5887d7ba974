package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// ResultEnvelope is the service-layer result surface: either the operation
// fully succeeded and data is present, or messages describe what went wrong.
type ResultEnvelope struct {
	Success  bool  `json:"success"`
	Messages []any `json:"messages"`
	Data     any   `json:"data,omitempty"`
}

func WriteResult(w http.ResponseWriter, status int, success bool, messages []any, data any) error {
	if messages == nil {
		messages = []any{}
	}
	return WriteJSON(w, status, &ResultEnvelope{
		Success:  success,
		Messages: messages,
		Data:     data,
	})
}
