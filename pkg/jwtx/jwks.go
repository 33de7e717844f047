package jwtx

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// JWK represents a public key in JSON Web Key format (RFC 7517). Only
// Ed25519 (OKP) keys are understood.
type JWK struct {
	Kty string `json:"kty"`           // key type: "OKP"
	Use string `json:"use,omitempty"` // what we use it for: "sig"
	Alg string `json:"alg,omitempty"` // algorithm: "EdDSA"
	Kid string `json:"kid,omitempty"` // key ID
	Crv string `json:"crv,omitempty"` // curve: "Ed25519"
	X   string `json:"x,omitempty"`   // base64url encoded public key

	// Fields of other key types are kept so unknown keys can be skipped
	// rather than rejected.
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`
	Y string `json:"y,omitempty"`
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewEd25519JWK builds a JWK for an Ed25519 public key.
func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP",
		Use: use,
		Alg: alg,
		Kid: kid,
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// maxJWKSBytes caps the size of a JWKS document.
const maxJWKSBytes = 1 << 20

// DecodeJWKS parses a JWKS document.
func DecodeJWKS(r io.Reader) (JWKS, error) {
	var set JWKS
	if err := json.NewDecoder(io.LimitReader(r, maxJWKSBytes)).Decode(&set); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode jwks: %w", err)
	}
	return set, nil
}

// LoadJWKSFile reads a JWKS document from disk.
func LoadJWKSFile(path string) (JWKS, error) {
	f, err := os.Open(path) // #nosec G304 - operator supplied path
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: open jwks: %w", err)
	}
	defer f.Close()
	return DecodeJWKS(f)
}

// FetchJWKS downloads a JWKS document, typically the auth service's
// /.well-known/jwks.json.
func FetchJWKS(ctx context.Context, client *http.Client, url string) (JWKS, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return JWKS{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: unexpected status %d", resp.StatusCode)
	}
	return DecodeJWKS(resp.Body)
}

var errUnsupportedKey = errors.New("jwtx: unsupported key")
