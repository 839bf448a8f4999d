package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fulmenhq/gofulmen/appidentity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionHandlerIncludesIdentityMetadata(t *testing.T) {
	SetVersionInfo("1.2.3", "abcd123", "2026-01-07T12:00:00Z")
	SetAppIdentity(&appidentity.Identity{
		BinaryName:  "vanguard",
		Description: "company name search queries",
	})
	t.Cleanup(func() {
		SetVersionInfo("dev", "unknown", "unknown")
		SetAppIdentity(nil)
	})

	rec := httptest.NewRecorder()
	VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp VersionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "vanguard", resp.App.Name)
	assert.Equal(t, "company name search queries", resp.App.Description)
	assert.Equal(t, "1.2.3", resp.App.Version)
	assert.Equal(t, "abcd123", resp.App.Commit)
	assert.Equal(t, "2026-01-07T12:00:00Z", resp.App.BuildDate)
	assert.NotEmpty(t, resp.Dependencies.Gofulmen)
	assert.NotEmpty(t, resp.Dependencies.Crucible)
	assert.Positive(t, resp.Runtime.NumCPU)
}

func TestCurrentVersionFallsBackToExecutableName(t *testing.T) {
	SetAppIdentity(nil)
	resp := CurrentVersion()
	assert.NotEmpty(t, resp.App.Name)
	assert.NotEmpty(t, resp.Runtime.Platform)
}

func TestExecutableName(t *testing.T) {
	prev := os.Args
	t.Cleanup(func() { os.Args = prev })

	os.Args = []string{"/usr/local/bin/vanguard", "serve"}
	assert.Equal(t, "vanguard", executableName())

	os.Args = nil
	assert.Equal(t, "unknown", executableName())
}
