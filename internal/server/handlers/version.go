package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"github.com/fulmenhq/gofulmen/appidentity"
	"github.com/fulmenhq/gofulmen/crucible"
)

const unknown = "unknown"

// Build metadata, set from main through SetVersionInfo.
var (
	AppVersion   = "dev"
	AppCommit    = unknown
	AppBuildDate = unknown
	appIdentity  *appidentity.Identity
)

func SetVersionInfo(version, commit, buildDate string) {
	AppVersion, AppCommit, AppBuildDate = version, commit, buildDate
}

// SetAppIdentity supplies the name and description reported by /version.
func SetAppIdentity(identity *appidentity.Identity) {
	appIdentity = identity
}

// VersionResponse is the body of GET /version.
type VersionResponse struct {
	App          AppInfo     `json:"app"`
	Dependencies DepInfo     `json:"dependencies"`
	Runtime      RuntimeInfo `json:"runtime"`
}

type AppInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
	Commit      string `json:"git_commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version,omitempty"`
}

type DepInfo struct {
	Gofulmen string `json:"gofulmen"`
	Crucible string `json:"crucible"`
}

type RuntimeInfo struct {
	Platform      string `json:"platform"`
	NumCPU        int    `json:"num_cpu"`
	NumGoroutines int    `json:"num_goroutines"`
}

// CurrentVersion reports build, dependency and runtime details. A commit or
// build date left unset by the linker is taken from the VCS stamp.
func CurrentVersion() VersionResponse {
	name, description := executableName(), ""
	if appIdentity != nil {
		name, description = appIdentity.BinaryName, appIdentity.Description
	}

	stamp := vcsStamp()
	commit := AppCommit
	if commit == unknown && stamp["vcs.revision"] != "" {
		commit = stamp["vcs.revision"]
	}
	built := AppBuildDate
	if built == unknown && stamp["vcs.time"] != "" {
		built = stamp["vcs.time"]
	}

	deps := crucible.GetVersion()
	return VersionResponse{
		App: AppInfo{
			Name:        name,
			Description: description,
			Version:     AppVersion,
			Commit:      commit,
			BuildDate:   built,
			GoVersion:   runtime.Version(),
		},
		Dependencies: DepInfo{Gofulmen: deps.Gofulmen, Crucible: deps.Crucible},
		Runtime: RuntimeInfo{
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
			NumCPU:        runtime.NumCPU(),
			NumGoroutines: runtime.NumGoroutine(),
		},
	}
}

func executableName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return unknown
	}
	return filepath.Base(os.Args[0])
}

func vcsStamp() map[string]string {
	stamp := map[string]string{}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return stamp
	}
	for _, s := range info.Settings {
		stamp[s.Key] = s.Value
	}
	return stamp
}

func VersionHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, CurrentVersion())
}
