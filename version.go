/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package apibind

import (
	"fmt"
	"runtime"

	"github.com/suparena/apibind/registry"
)

// Version information set by build flags, e.g.
//
//	go build -ldflags "-X github.com/suparena/apibind.GitCommit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of apibind
	Version = "0.1.0"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version" api:"version,auto"`
	GitCommit string `json:"gitCommit" api:"gitCommit,auto"`
	BuildDate string `json:"buildDate" api:"buildDate,auto"`
	GoVersion string `json:"goVersion" api:"goVersion,auto"`
}

// String renders the version on one line.
func (v VersionInfo) String() string {
	return fmt.Sprintf("apibind %s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildDate, v.GoVersion)
}

// GetVersionInfo returns the version information. Serialize(GetVersionInfo())
// yields the same keys as its JSON form.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func init() {
	registry.RegisterTags[VersionInfo]()
}
