package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gravitas-games/hexgrid/internal/config"
)

// ErrMissingToken is returned when auth is enabled and no token was sent.
var ErrMissingToken = errors.New("missing authentication token")

// tokenSubprotocol is the Sec-WebSocket-Protocol name that carries a token
// as "access_token, <token>".
const tokenSubprotocol = "access_token"

// TokenValidator checks HS256 tokens issued for this service.
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator returns nil when no secret is configured, meaning
// connections are accepted without a token.
func NewTokenValidator(cfg config.AuthConfig) *TokenValidator {
	if cfg.Secret == "" {
		return nil
	}
	return &TokenValidator{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

// ValidateToken parses tokenString and returns its subject.
func (v *TokenValidator) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// authenticate resolves the client identity for r. Without a validator every
// client is identified by its remote address.
func (v *TokenValidator) authenticate(r *http.Request) (string, error) {
	if v == nil {
		return r.RemoteAddr, nil
	}
	tokenString := extractToken(r)
	if tokenString == "" {
		return "", ErrMissingToken
	}
	return v.ValidateToken(tokenString)
}

// extractToken looks in the websocket subprotocol, the Authorization header
// and the token query parameter, in that order.
func extractToken(r *http.Request) string {
	if protocols := r.Header.Get("Sec-WebSocket-Protocol"); protocols != "" {
		var parts []string
		for _, p := range strings.Split(protocols, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 2 && parts[0] == tokenSubprotocol {
			return parts[1]
		}
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
		return token
	}

	return r.URL.Query().Get("token")
}
