package build

import (
	"path/filepath"

	"git.home.luguber.info/inful/gowork/internal/toolrunner"
)

// EnvInfo describes the environment a toolchain invocation would see. Values
// are computed, not created: inspecting the environment has no side effects.
type EnvInfo struct {
	Gopath      string // workspace root
	ProjectLink string // project's linked location inside the workspace
	Src         string
	Pkg         string
	Bin         string
}

// EnvInfo reports the workspace layout and environment overrides for the
// configured project.
func (s *Service) EnvInfo() EnvInfo {
	layout := s.ws.Layout()
	return EnvInfo{
		Gopath:      layout.Root,
		ProjectLink: filepath.Join(layout.Src, filepath.FromSlash(s.cfg.ImportPath)),
		Src:         layout.Src,
		Pkg:         layout.Pkg,
		Bin:         layout.Bin,
	}
}

// Pairs renders the overrides in KEY=VALUE form, in stable order.
func (e EnvInfo) Pairs() []string {
	return []string{
		toolrunner.EnvGopath + "=" + e.Gopath,
		toolrunner.EnvPwd + "=" + e.ProjectLink,
	}
}
