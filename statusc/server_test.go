package statusc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type testStatus struct {
	Status Status `json:"status"`
	Addr   string `json:"addr"`
}

func TestHandler(t *testing.T) {
	h := Handler(func(ctx context.Context) (testStatus, error) {
		return testStatus{Status: Serving, Addr: "127.0.0.1:8888"}, nil
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"status": "serving", "addr": "127.0.0.1:8888"}`, w.Body.String())
}

func TestHandlerError(t *testing.T) {
	h := Handler(func(ctx context.Context) (testStatus, error) {
		return testStatus{}, errors.New("not ready")
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "not ready")
}

func TestStatusText(t *testing.T) {
	var s Status
	require.NoError(t, s.UnmarshalText([]byte("serving")))
	require.Equal(t, Serving, s)

	require.Error(t, s.UnmarshalText([]byte("stopped")))
}
