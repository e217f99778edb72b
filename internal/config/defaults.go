package config

// Default values applied when the configuration file leaves fields unset.
const (
	DefaultPackageDir    = "pkg"
	DefaultCommandsDir   = "cmd"
	DefaultSourceSuffix  = ".go"
	DefaultGoTool        = "go"
	DefaultFmtTool       = "gofmt"
	DefaultLintTool      = "golint"
	DefaultMinConfidence = 0.3
	DefaultDebounceMS    = 500
)

// DefaultVendorCommand is the dependency tool invocation used to materialize
// the vendor directory when the config does not override it.
var DefaultVendorCommand = []string{"glide", "install", "--strip-vendor"}

// DefaultDirectTools are the first-token names whose remaining arguments are
// forwarded verbatim to the tool runner without any parsing.
var DefaultDirectTools = []string{"go", "gofmt", "golint", "glide"}

// Default returns a configuration with all defaults applied and the given
// project root. The import path stays empty and must come from the config
// file (or the caller, in tests).
func Default(projectRoot string) *Config {
	cfg := &Config{projectRoot: projectRoot}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.PackageDir == "" {
		cfg.PackageDir = DefaultPackageDir
	}
	if cfg.CommandsDir == "" {
		cfg.CommandsDir = DefaultCommandsDir
	}
	if cfg.SourceSuffix == "" {
		cfg.SourceSuffix = DefaultSourceSuffix
	}
	if cfg.Tools.Go == "" {
		cfg.Tools.Go = DefaultGoTool
	}
	if cfg.Tools.Fmt == "" {
		cfg.Tools.Fmt = DefaultFmtTool
	}
	if cfg.Tools.Lint == "" {
		cfg.Tools.Lint = DefaultLintTool
	}
	if len(cfg.Tools.Vendor) == 0 {
		cfg.Tools.Vendor = append([]string(nil), DefaultVendorCommand...)
	}
	if len(cfg.Tools.Direct) == 0 {
		cfg.Tools.Direct = append([]string(nil), DefaultDirectTools...)
	}
	if cfg.Lint.MinConfidence == 0 {
		cfg.Lint.MinConfidence = DefaultMinConfidence
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = DefaultDebounceMS
	}
}

// IsDirectTool reports whether name selects passthrough mode.
func (c *Config) IsDirectTool(name string) bool {
	for _, tool := range c.Tools.Direct {
		if tool == name {
			return true
		}
	}
	return false
}
