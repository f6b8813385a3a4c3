package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	h "eventgather/internal/delivery/http/helpers"
)

// RequireFields returns a wrapper that rejects requests whose JSON body does
// not contain every named key. The first missing key, in argument order, is
// reported with 400. Presence is what is checked: a key set to an empty
// string passes here and is left to domain validation. The body is restored
// for the wrapped handler.
func RequireFields(fields ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				h.WriteError(w, http.StatusBadRequest, "could not read request body")
				return
			}
			r.Body.Close()

			var payload map[string]json.RawMessage
			if err := json.Unmarshal(body, &payload); err != nil {
				h.WriteError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			for _, field := range fields {
				if _, ok := payload[field]; !ok {
					h.WriteError(w, http.StatusBadRequest, "missing required field: "+field)
					return
				}
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next(w, r)
		}
	}
}
