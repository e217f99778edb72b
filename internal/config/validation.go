package config

import (
	"path/filepath"
	"strings"

	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
)

// Validate checks the configuration for the mistakes that would otherwise
// surface as confusing toolchain failures later.
func (c *Config) Validate() error {
	if c.ImportPath == "" {
		return apperrors.ConfigRequired("import_path")
	}
	if strings.HasPrefix(c.ImportPath, "/") || strings.HasSuffix(c.ImportPath, "/") {
		return apperrors.ValidationFailed("import_path", "must not begin or end with a slash")
	}
	if strings.Contains(c.ImportPath, "\\") {
		return apperrors.ValidationFailed("import_path", "must use forward slashes")
	}
	if filepath.IsAbs(c.PackageDir) {
		return apperrors.ValidationFailed("package_dir", "must be relative to the project root")
	}
	if filepath.IsAbs(c.CommandsDir) {
		return apperrors.ValidationFailed("commands_dir", "must be relative to the project root")
	}
	if !strings.HasPrefix(c.SourceSuffix, ".") {
		return apperrors.ValidationFailed("source_suffix", "must begin with a dot")
	}
	if c.Lint.MinConfidence < 0 || c.Lint.MinConfidence > 1 {
		return apperrors.ValidationFailed("lint.min_confidence", "must be between 0 and 1")
	}
	if len(c.Tools.Vendor) == 0 {
		return apperrors.ConfigRequired("tools.vendor")
	}
	if c.Stamp != nil && c.Stamp.Package == "" {
		return apperrors.ValidationFailed("stamp.package", "must name a package when stamp is set")
	}
	return nil
}
