package app

import "github.com/prometheus/common/version"

// Build metadata is injected with -ldflags into
// github.com/prometheus/common/version (Version, Revision, Branch,
// BuildUser, BuildDate). The same values back the calcmcp_build_info metric.

// VersionString is the one-line form used by --version.
func VersionString() string {
	return version.Info()
}

// VersionReport is the multi-line form printed by the version command.
func VersionReport() string {
	return version.Print(programName)
}
