package plan

// Plan represents a workspace plan file.
type Plan struct {
	Libs      []string `yaml:"libs,omitempty"`
	Bins      []string `yaml:"bins,omitempty"`
	Git       *bool    `yaml:"git,omitempty"`
	Toolchain string   `yaml:"toolchain,omitempty"`
}

// InitGit returns the git setting, falling back to def when unset.
func (p *Plan) InitGit(def bool) bool {
	if p.Git != nil {
		return *p.Git
	}
	return def
}
