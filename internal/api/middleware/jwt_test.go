package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig(t *testing.T) JWTConfig {
	t.Helper()
	key, err := DeriveSigningKey("test-secret")
	require.NoError(t, err)
	return JWTConfig{SigningKey: key, Issuer: "crowdfund", ExpiresIn: time.Hour}
}

func TestDeriveSigningKey(t *testing.T) {
	a, err := DeriveSigningKey("secret-a")
	require.NoError(t, err)
	again, err := DeriveSigningKey("secret-a")
	require.NoError(t, err)
	b, err := DeriveSigningKey("secret-b")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, []byte("secret-a"), a)

	_, err = DeriveSigningKey("")
	require.Error(t, err)
}

func TestJWTConfigValidateToken_Success(t *testing.T) {
	cfg := testJWTConfig(t)

	token, expiresAt, err := GenerateToken(cfg, "ops", []string{testDonor}, []string{RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := cfg.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{testDonor}, claims.Addresses)
	assert.Equal(t, []string{RoleAdmin}, claims.Roles)
	assert.Equal(t, "ops", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTConfigValidateToken_Rejections(t *testing.T) {
	cfg := testJWTConfig(t)

	t.Run("wrong issuer", func(t *testing.T) {
		token, _, err := GenerateToken(cfg, "ops", nil, nil)
		require.NoError(t, err)
		other := cfg
		other.Issuer = "someone-else"
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		expired := cfg
		expired.ExpiresIn = -time.Minute
		token, _, err := GenerateToken(expired, "ops", nil, nil)
		require.NoError(t, err)
		_, err = cfg.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, _, err := GenerateToken(cfg, "ops", nil, nil)
		require.NoError(t, err)
		other := cfg
		other.SigningKey, err = DeriveSigningKey("another-secret")
		require.NoError(t, err)
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})
}

func TestSignerAuth(t *testing.T) {
	cfg := testJWTConfig(t)
	valid, _, err := GenerateToken(cfg, "dashboard", []string{testDonor}, nil)
	require.NoError(t, err)
	expiredCfg := cfg
	expiredCfg.ExpiresIn = -time.Minute
	expired, _, err := GenerateToken(expiredCfg, "dashboard", nil, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "AUTH_FAILED"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "AUTH_FAILED"},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized, "TOKEN_INVALID"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SignerAuth(cfg))
			router.GET("/whoami", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"signers": GetSigners(c.Request.Context()),
					"subject": GetSubject(c.Request.Context()),
				})
			})

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Contains(t, w.Body.String(), tt.code)
			} else {
				assert.Contains(t, w.Body.String(), testDonor)
				assert.Contains(t, w.Body.String(), "dashboard")
			}
		})
	}
}
