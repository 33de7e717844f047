package slogx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "invites", Version: "test", Env: "test", Level: "debug", Output: &buf})
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.DiscardHandler)) })

	logger.Debug("hello", "invitation_id", "inv-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "invites", line["service"])
	require.Equal(t, "inv-1", line["invitation_id"])
	require.Equal(t, "DEBUG", line["level"])
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(context.Background()))

	l := Discard()
	require.Equal(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx = With(ctx, "invitation_id", "inv-7")
	FromContext(ctx).Info("accepted")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "inv-7", line["invitation_id"])
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var fromCtx *slog.Logger
	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	r := httptest.NewRequest(http.MethodGet, "/livez", nil)
	r.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.NotNil(t, fromCtx)
	require.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "http_request", line["msg"])
	require.Equal(t, "req-123", line["req_id"])
	require.EqualValues(t, http.StatusTeapot, line["status"])
	require.EqualValues(t, len("short and stout"), line["bytes"])
}

func TestHTTPMiddlewareGeneratesRequestID(t *testing.T) {
	h := HTTPMiddleware(Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, rec.Header().Get(HeaderRequestID), 26)
}
