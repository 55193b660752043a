package middleware

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
)

// signingKeyInfo binds derived keys to this token format.
const signingKeyInfo = "crowdfund-signer-v1"

// RoleAdmin grants access to the admin routes.
const RoleAdmin = "admin"

// SignerClaims are the claims of a signer token. Addresses is the set of
// accounts whose authorization the bearer may present to the contract.
type SignerClaims struct {
	Addresses []string `json:"addresses"`
	Roles     []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTConfig holds signer token configuration.
type JWTConfig struct {
	SigningKey []byte
	Issuer     string
	ExpiresIn  time.Duration
}

// DeriveSigningKey derives the HS256 key from the configured secret.
func DeriveSigningKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(signingKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}

// GenerateToken creates a signed signer token.
func GenerateToken(cfg JWTConfig, subject string, addresses, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.ExpiresIn)

	claims := SignerClaims{
		Addresses: addresses,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cfg.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.SigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and verifies a signer token.
func (cfg JWTConfig) ValidateToken(tokenString string) (*SignerClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &SignerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.SigningKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SignerClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// SignerAuth returns a Gin middleware that validates Bearer signer tokens
// and populates the signer context.
func SignerAuth(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortAuth(c, apperrors.CodeAuthFailed, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortAuth(c, apperrors.CodeAuthFailed, "invalid authorization header format")
			return
		}

		claims, err := cfg.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortAuth(c, apperrors.CodeTokenExpired, "token expired")
				return
			}
			abortAuth(c, apperrors.CodeTokenInvalid, "invalid token")
			return
		}

		c.Set(string(ctxKeySigners), claims.Addresses)
		c.Set(string(ctxKeyRoles), claims.Roles)
		c.Request = c.Request.WithContext(
			SetSignerContext(c.Request.Context(), claims.Subject, claims.Addresses, claims.Roles),
		)

		c.Next()
	}
}

func abortAuth(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    code,
		"message": message,
	})
}
