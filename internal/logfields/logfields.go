package logfields

import (
	"log/slog"
	"strings"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCommand    = "command"
	KeyTool       = "tool"
	KeyPath       = "path"
	KeyTarget     = "target"
	KeyWorkspace  = "workspace"
	KeyImportPath = "import_path"
	KeyPackages   = "packages"
	KeyFiles      = "files"
	KeyDurationMS = "duration_ms"
	KeyRunID      = "run_id"
	KeyExitCode   = "exit_code"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Tool(name string) slog.Attr      { return slog.String(KeyTool, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Workspace(w string) slog.Attr    { return slog.String(KeyWorkspace, w) }
func ImportPath(p string) slog.Attr   { return slog.String(KeyImportPath, p) }
func Packages(n int) slog.Attr        { return slog.Int(KeyPackages, n) }
func Files(n int) slog.Attr           { return slog.Int(KeyFiles, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func ExitCode(code int) slog.Attr     { return slog.Int(KeyExitCode, code) }

// Command renders an argv as a single space-joined string.
func Command(argv []string) slog.Attr { return slog.String(KeyCommand, strings.Join(argv, " ")) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
