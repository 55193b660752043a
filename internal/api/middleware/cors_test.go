package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ezcrow.dev/crowdfund/internal/config"
)

func TestBuildCORSConfig(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		want    []string
	}{
		{"empty falls back to local dashboard", nil, defaultAllowedOrigins},
		{"wildcard only falls back", []string{"*"}, defaultAllowedOrigins},
		{"wildcard stripped", []string{"*", "https://crowd.example"}, []string{"https://crowd.example"}},
		{"configured kept", []string{"https://a.example", "https://b.example"}, []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildCORSConfig(config.CORSConfig{AllowedOrigins: tt.origins, AllowCredentials: true})
			assert.False(t, got.AllowAllOrigins)
			assert.True(t, got.AllowCredentials)
			assert.Equal(t, tt.want, got.AllowOrigins)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestCORS_EmptyOriginsDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { CORS(config.CORSConfig{}) })
}
