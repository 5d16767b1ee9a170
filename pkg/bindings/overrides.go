package bindings

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"polycheck/pkg/detector"
)

// overrideFile is the on-disk shape of a repo-level binding override:
//
//	bindings:
//	  rust:
//	    test:
//	      - program: cargo
//	        args: ["nextest", "run"]
type overrideFile struct {
	Bindings map[string]map[string][]Command `yaml:"bindings"`
}

// ApplyOverridesFile merges a repository's override file into the table in
// place. A missing file is not an error; a malformed one is, since a broken
// override must halt the pipeline rather than silently fall back to
// defaults the author meant to replace.
func (t Table) ApplyOverridesFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}
	return t.applyOverrides(path, data)
}

func (t Table) applyOverrides(path string, data []byte) error {
	var of overrideFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return fmt.Errorf("failed to parse overrides file %s: %w", path, err)
	}

	for ecoName, caps := range of.Bindings {
		eco, ok := detector.ParseEcosystem(ecoName)
		if !ok {
			return fmt.Errorf("overrides file %s: unknown ecosystem %q", path, ecoName)
		}
		for capName, chain := range caps {
			capability, err := ParseCapability(capName)
			if err != nil {
				return fmt.Errorf("overrides file %s: %w", path, err)
			}
			if len(chain) == 0 {
				return fmt.Errorf("overrides file %s: empty command chain for %s/%s", path, ecoName, capName)
			}
			for _, c := range chain {
				if c.Program == "" {
					return fmt.Errorf("overrides file %s: command with empty program for %s/%s", path, ecoName, capName)
				}
			}
			if t[eco] == nil {
				t[eco] = map[Capability]Chain{}
			}
			t[eco][capability] = Chain(chain)
		}
	}
	return nil
}
