package service

import "github.com/aussiebroadwan/invites/pkg/cryptox"

// TokenGenerator produces single-use acceptance tokens.
type TokenGenerator interface {
	Generate() string
}

// RandomTokens draws 256 bits from crypto/rand and encodes them base64url
// without padding. A failing entropy source panics; an invitation must never
// carry a guessable token.
type RandomTokens struct{}

func (RandomTokens) Generate() string {
	return cryptox.MustGenerateToken(cryptox.TokenSize256)
}
