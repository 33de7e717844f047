package app

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/aussiebroadwan/invites/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("INVITES_JWKS_FILE", "/etc/invites/jwks.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 7, cfg.DaysToExpiry)
	require.Equal(t, 8, cfg.PasswordMinLength)
	require.Equal(t, "log", cfg.MailDriver)
	require.Equal(t, 10*time.Second, cfg.MailTimeout)
	require.Equal(t, 15*time.Minute, cfg.JWKSRefreshInterval)
	require.False(t, cfg.ForceRequireGroup)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("INVITES_JWKS_URL", "http://auth:8080/.well-known/jwks.json")
	t.Setenv("INVITES_AUDIENCE", "invites,admin")
	t.Setenv("INVITES_DAYS_TO_EXPIRY", "3")
	t.Setenv("INVITES_FORCE_REQUIRE_GROUP", "true")
	t.Setenv("INVITES_MAIL_DRIVER", "smtp")
	t.Setenv("SMTP_HOST", "mail.example.org")
	t.Setenv("INVITES_MAIL_TIMEOUT", "2s")
	t.Setenv("INVITES_LOGIN_BACK_URL", "https://app.example.org/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"invites", "admin"}, cfg.Audience)
	require.Equal(t, 3, cfg.DaysToExpiry)
	require.True(t, cfg.ForceRequireGroup)
	require.Equal(t, "mail.example.org", cfg.SMTPHost)
	require.Equal(t, 2*time.Second, cfg.MailTimeout)
	require.Equal(t, "https://app.example.org/", cfg.LoginBackURL)
}

func TestConfigValidate(t *testing.T) {
	base := Config{JWKSFile: "jwks.json", DaysToExpiry: 7, MailDriver: "log"}
	require.NoError(t, base.Validate())

	noKeys := base
	noKeys.JWKSFile = ""
	require.ErrorContains(t, noKeys.Validate(), "INVITES_JWKS_URL")

	smtp := base
	smtp.MailDriver = "smtp"
	require.ErrorContains(t, smtp.Validate(), "SMTP_HOST")

	unknown := base
	unknown.MailDriver = "pigeon"
	unknown.DaysToExpiry = -1
	err := unknown.Validate()
	require.ErrorContains(t, err, "pigeon")
	require.ErrorContains(t, err, "INVITES_DAYS_TO_EXPIRY")

	sameDay := base
	sameDay.DaysToExpiry = 0
	require.NoError(t, sameDay.Validate())
}

func testJWKS(t *testing.T, kid string) jwtx.JWKS {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewEd25519JWK(kid, "sig", "EdDSA", pub)}}
}

func TestKeyRefresherFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jwks.json")
	b, err := json.Marshal(testJWKS(t, "file-1"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	keys := jwtx.NewKeySet()
	k := NewKeyRefresher(keys, "", path, slogx.Discard(), 0)
	require.Equal(t, 15*time.Minute, k.Interval)

	require.NoError(t, k.Refresh(context.Background()))
	_, err = keys.Get("file-1")
	require.NoError(t, err)
}

func TestKeyRefresherKeepsKeysOnFailure(t *testing.T) {
	var fail atomic.Bool
	set := testJWKS(t, "url-1")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(set)
	}))
	defer srv.Close()

	keys := jwtx.NewKeySet()
	k := NewKeyRefresher(keys, srv.URL, "", slogx.Discard(), time.Hour)
	require.NoError(t, k.Refresh(context.Background()))
	require.True(t, keys.IsReady())

	fail.Store(true)
	require.Error(t, k.Refresh(context.Background()))
	_, err := keys.Get("url-1")
	require.NoError(t, err)
}

func TestKeyRefresherRunsOnInterval(t *testing.T) {
	var hits atomic.Int32
	set := testJWKS(t, "tick")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = json.NewEncoder(w).Encode(set)
	}))
	defer srv.Close()

	keys := jwtx.NewKeySet()
	k := NewKeyRefresher(keys, srv.URL, "", slogx.Discard(), 10*time.Millisecond)
	k.Start()
	require.Eventually(t, keys.IsReady, time.Second, 5*time.Millisecond)
	k.Stop()

	require.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestKeyRefresherWithoutSource(t *testing.T) {
	k := NewKeyRefresher(jwtx.NewKeySet(), "", "", slogx.Discard(), time.Hour)
	require.Error(t, k.Refresh(context.Background()))
}

func TestRunReleasesResourcesWhenListenFails(t *testing.T) {
	taken, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer taken.Close()

	dir := t.TempDir()
	jwks := filepath.Join(dir, "jwks.json")
	b, err := json.Marshal(testJWKS(t, "file-1"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jwks, b, 0o600))

	app, err := New(Config{
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                taken.Addr().(*net.TCPAddr).Port,
		ShutdownGracePeriod: time.Second,
		DatabaseFile:        filepath.Join(dir, "invites.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		JWKSFile:            jwks,
		JWKSRefreshInterval: time.Hour,
		DaysToExpiry:        7,
		PasswordMinLength:   8,
		MailDriver:          "log",
		MailFrom:            "noreply@localhost",
	})
	require.NoError(t, err)

	require.ErrorContains(t, app.Run(), "server failed")

	select {
	case <-app.keyRefresher.doneCh:
	default:
		t.Fatal("key refresher still running")
	}
	require.Error(t, app.db.Ping(context.Background()))

	// A later Shutdown does not stop or close anything twice.
	require.NoError(t, app.Shutdown())
}
