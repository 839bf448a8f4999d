package appid

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/gofulmen/appidentity"
	"github.com/stretchr/testify/require"

	appidentityassets "github.com/tadeyemo32/career26-vanguard/internal/assets/appidentity"
)

// resetIdentity clears the process-wide identity cache and re-registers the
// embedded copy.
func resetIdentity(t *testing.T) {
	t.Helper()
	appidentity.Reset()
	require.NoError(t, appidentity.RegisterEmbeddedIdentityYAML(appidentityassets.YAML))
	t.Cleanup(func() { appidentity.Reset() })
}

func TestEmbeddedIdentityOutsideRepo(t *testing.T) {
	resetIdentity(t)
	t.Setenv(appidentity.EnvIdentityPath, "")

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	require.NoError(t, os.Chdir(t.TempDir()))

	identity, err := Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "vanguard", identity.BinaryName)
	require.Equal(t, "VANGUARD_", identity.EnvPrefix)
	require.Equal(t, "vanguard", identity.ConfigName)
}

func TestExplicitPathIsAuthoritative(t *testing.T) {
	resetIdentity(t)
	t.Setenv(appidentity.EnvIdentityPath, filepath.Join(t.TempDir(), "missing-app.yaml"))

	_, err := Get(context.Background())
	require.Error(t, err)

	var notFound *appidentity.NotFoundError
	require.True(t, errors.As(err, &notFound), "got %T: %v", err, err)

	fallback := GetOrFallback(context.Background())
	require.Equal(t, Fallback().BinaryName, fallback.BinaryName)
	require.Equal(t, "VANGUARD_", fallback.EnvPrefix)
}
