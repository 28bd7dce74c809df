package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewProductUserAgentProvider tests the NewProductUserAgentProvider function.
func TestNewProductUserAgentProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		product  string
		version  string
		expected string
	}{
		{
			name:     "product with version",
			product:  "flickr-mirror",
			version:  "1.2.3",
			expected: "flickr-mirror/1.2.3",
		},
		{
			name:     "product without version",
			product:  "flickr-mirror",
			version:  "",
			expected: "flickr-mirror",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := NewProductUserAgentProvider(tt.product, tt.version)

			assert.Implements(t, (*UserAgentProvider)(nil), provider)
			assert.Equal(t, tt.expected, provider.GetUserAgent())
		})
	}
}
