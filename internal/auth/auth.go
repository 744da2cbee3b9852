// Package auth holds the storefront's identity gate.
//
// The gate only checks that a bearer credential is present. Tokens issued by
// IssueToken are opaque: nothing binds them to a user or an expiry, so passing
// the gate is not proof of identity.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

// CredentialFromHeader extracts the bearer credential from the Authorization header.
// A value without the "Bearer " prefix is taken as the credential itself.
func CredentialFromHeader(h http.Header) (string, error) {
	token := strings.Replace(h.Get("Authorization"), bearerPrefix, "", 1)
	if token == "" {
		return "", fmt.Errorf("%w: token required", domain.ErrUnauthorized)
	}
	return token, nil
}

// IssueToken builds a login token from the user id, the issue time and random bits.
func IssueToken(userID int64, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("token_%d_%d_%s", userID, now.UnixMilli(), random)
}

type credentialKey struct{}

func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey{}, credential)
}

func CredentialFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(credentialKey{}).(string); ok {
		return c
	}
	return ""
}
