package detector

import (
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"gopkg.in/ini.v1"
)

// manifestMeta extracts project metadata from the ecosystem's manifest
// files. Best-effort: a malformed manifest yields less metadata, never a
// detection failure.
func manifestMeta(reader *FSReader, eco Ecosystem) map[string]string {
	meta := map[string]string{}

	switch eco {
	case EcosystemCPP:
		cmakeMeta(reader, meta)
	case EcosystemRust:
		cargoMeta(reader, meta)
	case EcosystemGo:
		gomodMeta(reader, meta)
	case EcosystemPython:
		pyprojectMeta(reader, meta)
		setupCfgMeta(reader, meta)
	}

	if len(meta) == 0 {
		return nil
	}
	return meta
}

type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Edition string `toml:"edition"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

func cargoMeta(reader *FSReader, meta map[string]string) {
	if !reader.Has("Cargo.toml") {
		return
	}
	var m cargoManifest
	if err := toml.Unmarshal([]byte(reader.Read("Cargo.toml")), &m); err != nil {
		return
	}
	if m.Package.Name != "" {
		meta["package"] = m.Package.Name
	}
	if m.Package.Edition != "" {
		meta["edition"] = m.Package.Edition
	}
	if m.Workspace != nil {
		meta["workspace"] = "true"
	}
}

type pyprojectManifest struct {
	Project struct {
		Name           string `toml:"name"`
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
}

func pyprojectMeta(reader *FSReader, meta map[string]string) {
	if !reader.Has("pyproject.toml") {
		return
	}
	var m pyprojectManifest
	if err := toml.Unmarshal([]byte(reader.Read("pyproject.toml")), &m); err != nil {
		return
	}
	if m.Project.Name != "" {
		meta["package"] = m.Project.Name
	}
	if m.Project.RequiresPython != "" {
		meta["requires_python"] = m.Project.RequiresPython
	}
}

func setupCfgMeta(reader *FSReader, meta map[string]string) {
	if !reader.Has("setup.cfg") {
		return
	}
	cfg, err := ini.Load([]byte(reader.Read("setup.cfg")))
	if err != nil {
		return
	}
	if name := cfg.Section("metadata").Key("name").String(); name != "" && meta["package"] == "" {
		meta["package"] = name
	}
}

func gomodMeta(reader *FSReader, meta map[string]string) {
	if !reader.Has("go.mod") {
		return
	}
	f, err := modfile.Parse("go.mod", []byte(reader.Read("go.mod")), nil)
	if err != nil {
		return
	}
	if f.Module != nil {
		meta["module"] = f.Module.Mod.Path
	}
	if f.Go != nil {
		meta["go_version"] = f.Go.Version
	}
}

var cmakeProjectRe = regexp.MustCompile(`(?i)project\s*\(\s*([A-Za-z0-9_.-]+)`)

func cmakeMeta(reader *FSReader, meta map[string]string) {
	if !reader.Has("CMakeLists.txt") {
		return
	}
	content := reader.Read("CMakeLists.txt")
	if m := cmakeProjectRe.FindStringSubmatch(content); m != nil {
		meta["project"] = strings.TrimSpace(m[1])
	}
}
