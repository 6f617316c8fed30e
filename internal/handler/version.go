package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/osse101/SpinVault_Go/internal/event"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version            string `json:"version"`
	GoVersion          string `json:"go_version"`
	BuildTime          string `json:"build_time,omitempty"`
	GitCommit          string `json:"git_commit,omitempty"`
	EventSchemaVersion string `json:"event_schema_version"`
}

// Injected with -ldflags "-X .../internal/handler.Version=..."
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = ""
)

// HandleVersion reports which build is deployed
// GET /version
func HandleVersion() http.HandlerFunc {
	info := VersionInfo{
		Version:            resolveVersion(),
		GoVersion:          runtime.Version(),
		BuildTime:          BuildTime,
		GitCommit:          resolveCommit(),
		EventSchemaVersion: event.EventSchemaVersion,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// build flag, then VERSION env, then "dev"
func resolveVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// Falls back to the vcs stamp go build embeds when no flag was given.
func resolveCommit() string {
	if GitCommit != "" {
		return GitCommit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}
