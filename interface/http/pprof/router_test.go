package pprof

import (
	"github.com/stretchr/testify/assert"
	"github.com/switchyard/controller/interface/http/auth/external"
	"github.com/switchyard/controller/interface/http/auth/null"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConstructRouter(t *testing.T) {
	t.Run("serves named profiles", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ConstructRouter(null.Authenticator{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/goroutine?debug=1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "goroutine")
	})

	t.Run("requires authentication", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ConstructRouter(external.Authenticator{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/goroutine", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
