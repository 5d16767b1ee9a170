package detector

import "fmt"

// signature is a single detection rule: if any of the manifests contains the
// pattern (or merely exists, when pattern is empty), the repository belongs
// to the ecosystem.
type signature struct {
	manifests []string
	pattern   string
	ecosystem Ecosystem
	signal    string
}

var bazelManifests = []string{"BUILD", "BUILD.bazel"}

// signatures is the ordered rule table. Rules are evaluated top to bottom and
// the first match wins, so ordering is load-bearing: native/compiled markers
// come before managed-language markers. A mixed-language repository resolves
// to the first matching rule; that bias is deliberate and documented on
// Detect.
var signatures = []signature{
	// C/C++
	{bazelManifests, "cc_binary", EcosystemCPP, "cc_binary rule in Bazel build file"},
	{bazelManifests, "cc_library", EcosystemCPP, "cc_library rule in Bazel build file"},
	{[]string{"CMakeLists.txt"}, "", EcosystemCPP, "CMakeLists.txt"},

	// Rust
	{bazelManifests, "rust_binary", EcosystemRust, "rust_binary rule in Bazel build file"},
	{bazelManifests, "rust_library", EcosystemRust, "rust_library rule in Bazel build file"},
	{[]string{"Cargo.toml"}, "", EcosystemRust, "Cargo.toml"},

	// Go
	{bazelManifests, "go_binary", EcosystemGo, "go_binary rule in Bazel build file"},
	{bazelManifests, "go_library", EcosystemGo, "go_library rule in Bazel build file"},
	{[]string{"go.mod"}, "", EcosystemGo, "go.mod"},

	// Python
	{bazelManifests, "py_binary", EcosystemPython, "py_binary rule in Bazel build file"},
	{bazelManifests, "py_library", EcosystemPython, "py_library rule in Bazel build file"},
	{[]string{"pyproject.toml"}, "", EcosystemPython, "pyproject.toml"},
	{[]string{"setup.py"}, "", EcosystemPython, "setup.py"},
	{[]string{"setup.cfg"}, "", EcosystemPython, "setup.cfg"},
	{[]string{"requirements.txt"}, "", EcosystemPython, "requirements.txt"},
}

// describe renders the rule for "markers tried" diagnostics
func (s signature) describe() string {
	if s.pattern == "" {
		return fmt.Sprintf("%s exists", s.manifests[0])
	}
	return fmt.Sprintf("%q in %s", s.pattern, s.manifests[0])
}

// manifestFiles returns every manifest filename named by the rule table,
// deduplicated, in table order
func manifestFiles() []string {
	seen := map[string]bool{}
	var out []string
	for _, sig := range signatures {
		for _, m := range sig.manifests {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
