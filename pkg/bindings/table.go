package bindings

import (
	"fmt"

	"polycheck/pkg/detector"
)

// ConfigurationError reports an (ecosystem, capability) pair with no
// binding. It is fatal to the caller: an unbound combination must halt the
// pipeline, never degrade to a no-op.
type ConfigurationError struct {
	Ecosystem  detector.Ecosystem
	Capability Capability
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no tool binding for capability %q on ecosystem %q", e.Capability, e.Ecosystem)
}

// Table maps ecosystem and capability to the command chain to execute
type Table map[detector.Ecosystem]map[Capability]Chain

// Defaults returns a copy of the built-in binding table. Every declared
// ecosystem binds every capability; Validate enforces that in tests.
func Defaults() Table {
	t := Table{
		detector.EcosystemCPP: {
			CapabilityLicenseCheck:   {{Program: "reuse", Args: []string{"lint"}}},
			CapabilityStaticAnalysis: {{Program: "clang-tidy", Args: []string{"-p", ".", "--warnings-as-errors=*"}}},
			CapabilityTest:           {{Program: "bazel", Args: []string{"test", "//..."}}},
			CapabilityFormatCheck:    {{Program: "clang-format", Args: []string{"--dry-run", "--Werror"}}},
			CapabilityCopyrightCheck: {{Program: "addlicense", Args: []string{"-check", "."}}},
		},
		detector.EcosystemRust: {
			CapabilityLicenseCheck: {{Program: "cargo", Args: []string{"deny", "check", "licenses"}}},
			// Linter, dependency audit, supply-chain scanner, in that fixed
			// order. All three run even if an earlier one fails; see
			// dispatch.Dispatch for the aggregation policy.
			CapabilityStaticAnalysis: {
				{Program: "cargo", Args: []string{"clippy", "--all-targets", "--", "-D", "warnings"}},
				{Program: "cargo", Args: []string{"audit"}},
				{Program: "cargo", Args: []string{"vet", "--locked"}},
			},
			CapabilityTest:           {{Program: "cargo", Args: []string{"test"}}},
			CapabilityFormatCheck:    {{Program: "cargo", Args: []string{"fmt", "--", "--check"}}},
			CapabilityCopyrightCheck: {{Program: "addlicense", Args: []string{"-check", "."}}},
		},
		detector.EcosystemGo: {
			CapabilityLicenseCheck: {{Program: "go-licenses", Args: []string{"check", "./..."}}},
			CapabilityStaticAnalysis: {
				{Program: "staticcheck", Args: []string{"./..."}},
				{Program: "govulncheck", Args: []string{"./..."}},
			},
			CapabilityTest:           {{Program: "go", Args: []string{"test", "./..."}}},
			CapabilityFormatCheck:    {{Program: "gofumpt", Args: []string{"-l", "-e", "."}}},
			CapabilityCopyrightCheck: {{Program: "addlicense", Args: []string{"-check", "."}}},
		},
		detector.EcosystemPython: {
			CapabilityLicenseCheck:   {{Program: "reuse", Args: []string{"lint"}}},
			CapabilityStaticAnalysis: {{Program: "ruff", Args: []string{"check", "."}}},
			CapabilityTest:           {{Program: "pytest"}},
			CapabilityFormatCheck:    {{Program: "ruff", Args: []string{"format", "--check", "."}}},
			CapabilityCopyrightCheck: {{Program: "addlicense", Args: []string{"-check", "."}}},
		},
	}
	return t.clone()
}

// Resolve looks up the command chain for the pair. The returned chain is the
// exact set of commands to execute, deterministically, on every call.
func (t Table) Resolve(eco detector.Ecosystem, capability Capability) (Chain, error) {
	caps, ok := t[eco]
	if !ok {
		return nil, &ConfigurationError{Ecosystem: eco, Capability: capability}
	}
	chain, ok := caps[capability]
	if !ok || len(chain) == 0 {
		return nil, &ConfigurationError{Ecosystem: eco, Capability: capability}
	}
	return chain, nil
}

// Validate checks that every supported ecosystem binds every capability
func (t Table) Validate() error {
	for _, eco := range detector.Ecosystems() {
		for _, capability := range Capabilities() {
			if _, err := t.Resolve(eco, capability); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for eco, caps := range t {
		out[eco] = make(map[Capability]Chain, len(caps))
		for capability, chain := range caps {
			cp := make(Chain, len(chain))
			copy(cp, chain)
			out[eco][capability] = cp
		}
	}
	return out
}
