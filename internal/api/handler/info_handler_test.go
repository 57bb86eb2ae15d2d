package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"bank-records/internal/api/handler"
	"bank-records/internal/api/handler/dto"
	"bank-records/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoHandler(t *testing.T) {
	h := handler.NewInfoHandler(
		config.ServiceConfig{Product: "loan", BuildVersion: "3.1"},
		config.ContactConfig{
			Message:        "Loans support",
			ContactDetails: map[string]string{"name": "Jane Doe", "email": "loans@example.com"},
			OnCallSupport:  []string{"(555) 555-1234"},
		},
	)

	t.Run("build info", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.BuildInfo(rec, httptest.NewRequest(http.MethodGet, "/api/build-info", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `"3.1"`, rec.Body.String())
	})

	t.Run("runtime version", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RuntimeVersion(rec, httptest.NewRequest(http.MethodGet, "/api/runtime-version", nil))

		var version string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&version))
		assert.Equal(t, runtime.Version(), version)
	})

	t.Run("contact info", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ContactInfo(rec, httptest.NewRequest(http.MethodGet, "/api/contact-info", nil))

		var body dto.ContactInfoResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Loans support", body.Message)
		assert.Equal(t, "loans@example.com", body.ContactDetails["email"])
		assert.Equal(t, []string{"(555) 555-1234"}, body.OnCallSupport)
	})
}
