package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireFields(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fields      []string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "all present",
			body:       `{"email":"a@b.com","password":"pw"}`,
			fields:     []string{"email", "password"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty string still counts as present",
			body:       `{"email":"","password":"pw"}`,
			fields:     []string{"email", "password"},
			wantStatus: http.StatusOK,
		},
		{
			name:        "first missing field in argument order is reported",
			body:        `{"password":"pw"}`,
			fields:      []string{"email", "password", "username"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "missing required field: email",
		},
		{
			name:        "invalid json",
			body:        `{"email":`,
			fields:      []string{"email"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid JSON body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var seenBody string
			handler := RequireFields(tt.fields...)(func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				seenBody = string(b)
				w.WriteHeader(http.StatusOK)
			})
			handler(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.body, seenBody, "handler sees the original body")
				return
			}
			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.wantMessage, resp["message"])
		})
	}
}
