package json

import (
	"encoding/json"
	"net/http"
)

// Envelope is the canonical success wrapper for Pattaya1 API responses.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the canonical error wrapper.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error" example:"invalid request body"`
}

// Write encodes data as JSON and sends it to the client as-is.
// Used by legacy endpoints whose wire shape predates the envelope.
func Write(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteData wraps the payload in the canonical {success:true, data} envelope.
func WriteData(w http.ResponseWriter, code int, data any) {
	Write(w, code, Envelope{Success: true, Data: data})
}

// WriteRaw relays pre-encoded JSON (an upstream body) without re-wrapping.
// Upstream listings already carry a top-level data field, which is the
// accepted legacy success shape.
func WriteRaw(w http.ResponseWriter, code int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(raw)
}

// WriteError sends a structured error response with success:false.
func WriteError(w http.ResponseWriter, code int, msg string) {
	Write(w, code, ErrorResponse{Success: false, Error: msg})
}

// Read decodes a JSON request body into dst.
// Unknown fields are rejected so clients can't smuggle extra data past DTOs.
func Read(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	defer r.Body.Close()
	return decoder.Decode(dst)
}
