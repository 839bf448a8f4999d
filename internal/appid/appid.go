// Package appid loads the vanguard application identity.
package appid

import (
	"context"

	"github.com/fulmenhq/gofulmen/appidentity"

	appidentityassets "github.com/tadeyemo32/career26-vanguard/internal/assets/appidentity"
)

func init() {
	// Best-effort registration. An explicit FULMEN_APP_IDENTITY_PATH still wins;
	// the embedded copy keeps a standalone binary working anywhere.
	_ = appidentity.RegisterEmbeddedIdentityYAML(appidentityassets.YAML)
}

// Get returns the resolved application identity.
func Get(ctx context.Context) (*appidentity.Identity, error) {
	return appidentity.Get(ctx)
}

// Fallback is the identity used when none can be resolved.
func Fallback() *appidentity.Identity {
	return &appidentity.Identity{
		Vendor:      "tadeyemo32",
		BinaryName:  "vanguard",
		EnvPrefix:   "VANGUARD_",
		ConfigName:  "vanguard",
		Description: "Turn legal company names into ranked web search queries",
	}
}

// GetOrFallback returns the resolved identity, or Fallback on error.
func GetOrFallback(ctx context.Context) *appidentity.Identity {
	identity, err := appidentity.Get(ctx)
	if err != nil || identity == nil {
		return Fallback()
	}
	return identity
}
