package bindings

import (
	"fmt"
	"strings"
)

// Capability names a category of CI check requested by the caller
type Capability string

const (
	CapabilityLicenseCheck   Capability = "license-check"
	CapabilityStaticAnalysis Capability = "static-analysis"
	CapabilityTest           Capability = "test"
	CapabilityFormatCheck    Capability = "format-check"
	CapabilityCopyrightCheck Capability = "copyright-check"
)

// Capabilities returns all supported capabilities in a stable order
func Capabilities() []Capability {
	return []Capability{
		CapabilityLicenseCheck,
		CapabilityStaticAnalysis,
		CapabilityTest,
		CapabilityFormatCheck,
		CapabilityCopyrightCheck,
	}
}

// ParseCapability converts a capability name from the command line. Unknown
// names are rejected rather than defaulted: silently skipping a requested
// check would be a correctness violation for a compliance gate.
func ParseCapability(s string) (Capability, error) {
	for _, c := range Capabilities() {
		if string(c) == s {
			return c, nil
		}
	}
	names := make([]string, 0, len(Capabilities()))
	for _, c := range Capabilities() {
		names = append(names, string(c))
	}
	return "", fmt.Errorf("unknown capability %q (supported: %s)", s, strings.Join(names, ", "))
}

// Command is a structured external invocation: a program and its argument
// list. Commands are never assembled from strings, so there is no shell
// interpolation anywhere in the dispatch path.
type Command struct {
	Program string   `json:"program" yaml:"program"`
	Args    []string `json:"args,omitempty" yaml:"args"`
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Chain is an ordered list of commands resolved for one
// (ecosystem, capability) pair. Multi-command chains run in declared order.
type Chain []Command
