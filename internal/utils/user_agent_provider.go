package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import "fmt"

// UserAgentProvider is an interface that defines a method for retrieving a User-Agent string.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// ProductUserAgentProvider identifies requests as coming from a named product and version.
type ProductUserAgentProvider struct {
	userAgent string
}

// NewProductUserAgentProvider creates a provider returning "<product>/<version>".
// An empty version yields just the product name.
func NewProductUserAgentProvider(product, version string) UserAgentProvider {
	userAgent := product
	if version != "" {
		userAgent = fmt.Sprintf("%s/%s", product, version)
	}

	return &ProductUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns a User-Agent string.
func (p *ProductUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
