//go:build e2e

package invites_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/invites/pkg/cryptox"
	"github.com/aussiebroadwan/invites/pkg/invitesdk"
	"github.com/aussiebroadwan/invites/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and token helpers for the invitation service end-to-end
 * tests. The service trusts a throwaway Ed25519 key whose JWKS is copied
 * into the container, so tests mint their own access tokens.
 */

const (
	testImageName = "invites-test:latest"
	testIssuer    = "https://auth.e2e.test"
	testAudience  = "invites"
	testKeyID     = "e2e-key-1"
	scopeIssue    = "invitations:issue"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Invitation Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Invitation Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/invites/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// env is a running service plus a signer it trusts.
type env struct {
	BaseURL string
	Client  *invitesdk.Client
	signer  jwtx.Signer
}

// setupInvitesContainer starts the service and returns its environment.
// extra overrides the default container environment.
func setupInvitesContainer(t *testing.T, extra map[string]string) *env {
	t.Helper()
	ctx := context.Background()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(testKeyID, pemKey)
	require.NoError(t, err)
	jwks, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	require.NoError(t, err)

	containerEnv := map[string]string{
		"INVITES_JWKS_FILE":      "/data/jwks.json",
		"INVITES_ISSUER":         testIssuer,
		"INVITES_AUDIENCE":       testAudience,
		"INVITES_SITE_URL":       "https://invites.e2e.test",
		"INVITES_LOGIN_URL":      "https://auth.e2e.test/login",
		"INVITES_MAIL_DRIVER":    "log",
		"INVITES_DAYS_TO_EXPIRY": "7",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
	}
	for k, v := range extra {
		containerEnv[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          containerEnv,
		Files: []testcontainers.ContainerFile{{
			Reader:            bytes.NewReader(jwks),
			ContainerFilePath: "/data/jwks.json",
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return &env{BaseURL: baseURL, Client: invitesdk.NewClient(baseURL), signer: signer}
}

// token mints an access token for an administrator holding scopes.
func (e *env) token(t *testing.T, scopes ...string) string {
	t.Helper()
	claims := jwtx.NewAccessClaims("01J0E2EADMIN00000000000000", scopes, time.Hour,
		testIssuer, []string{testAudience}, "grace", "Grace Hopper", time.Now())
	tok, err := e.signer.Sign(claims)
	require.NoError(t, err)
	return tok
}

// session returns an SDK session for an administrator holding scopes.
func (e *env) session(t *testing.T, scopes ...string) *invitesdk.Session {
	t.Helper()
	return e.Client.NewSession(e.token(t, scopes...))
}

// acceptRequest is a valid acceptance form for firstName.
func acceptRequest(firstName string) invitesdk.AcceptRequest {
	return invitesdk.AcceptRequest{
		FirstName:       firstName,
		Surname:         "Lovelace",
		Password:        "AnalyticalEngine1843",
		PasswordConfirm: "AnalyticalEngine1843",
	}
}
