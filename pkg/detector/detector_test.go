package detector_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"polycheck/pkg/detector"
)

// Test helper to create temporary test project directories
func createTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		dir := filepath.Dir(fullPath)

		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}

		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file %s: %v", fullPath, err)
		}
	}

	return tmpDir
}

func TestEcosystemDetection(t *testing.T) {
	tests := []struct {
		name              string
		files             map[string]string
		expectedEcosystem detector.Ecosystem
		expectedManifest  string
	}{
		{
			name: "Bazel cc_binary",
			files: map[string]string{
				"BUILD":       `cc_binary(name = "server", srcs = ["server.cc"])`,
				"server.cc":   "int main() { return 0; }",
				"WORKSPACE":   "",
			},
			expectedEcosystem: detector.EcosystemCPP,
			expectedManifest:  "BUILD",
		},
		{
			name: "Bazel rust_binary",
			files: map[string]string{
				"BUILD.bazel": `rust_binary(name = "agent", srcs = ["main.rs"])`,
				"main.rs":     "fn main() {}",
			},
			expectedEcosystem: detector.EcosystemRust,
			expectedManifest:  "BUILD.bazel",
		},
		{
			name: "Cargo project",
			files: map[string]string{
				"Cargo.toml":  "[package]\nname = \"agent\"\nedition = \"2021\"\n",
				"src/main.rs": "fn main() {}",
			},
			expectedEcosystem: detector.EcosystemRust,
			expectedManifest:  "Cargo.toml",
		},
		{
			name: "CMake project",
			files: map[string]string{
				"CMakeLists.txt": "cmake_minimum_required(VERSION 3.20)\nproject(server)\n",
				"src/main.cpp":   "int main() { return 0; }",
			},
			expectedEcosystem: detector.EcosystemCPP,
			expectedManifest:  "CMakeLists.txt",
		},
		{
			name: "Go module",
			files: map[string]string{
				"go.mod":  "module example.com/myapp\n\ngo 1.22\n",
				"main.go": "package main\n\nfunc main() {}\n",
			},
			expectedEcosystem: detector.EcosystemGo,
			expectedManifest:  "go.mod",
		},
		{
			name: "Python pyproject",
			files: map[string]string{
				"pyproject.toml": "[project]\nname = \"myapp\"\n",
				"myapp/main.py":  "print('hello')",
			},
			expectedEcosystem: detector.EcosystemPython,
			expectedManifest:  "pyproject.toml",
		},
		{
			name: "Python requirements only",
			files: map[string]string{
				"requirements.txt": "requests==2.31.0\n",
				"main.py":          "print('hello')",
			},
			expectedEcosystem: detector.EcosystemPython,
			expectedManifest:  "requirements.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectPath := createTestProject(t, tt.files)
			d := detector.Detect(projectPath)

			if d.Ecosystem != tt.expectedEcosystem {
				t.Errorf("Expected ecosystem %s, got %s", tt.expectedEcosystem, d.Ecosystem)
			}
			if d.Manifest != tt.expectedManifest {
				t.Errorf("Expected manifest %s, got %s", tt.expectedManifest, d.Manifest)
			}
			if !d.Detected() {
				t.Error("Expected Detected() to be true")
			}
		})
	}
}

func TestMixedManifestPriority(t *testing.T) {
	// A BUILD file carrying both native and managed rules must resolve to
	// the native ecosystem, deterministically
	projectPath := createTestProject(t, map[string]string{
		"BUILD": `
cc_binary(name = "core", srcs = ["core.cc"])
py_binary(name = "tool", srcs = ["tool.py"])
`,
	})

	d := detector.Detect(projectPath)
	if d.Ecosystem != detector.EcosystemCPP {
		t.Errorf("Expected cpp to win over python in mixed BUILD, got %s", d.Ecosystem)
	}
}

func TestRustBeforePython(t *testing.T) {
	projectPath := createTestProject(t, map[string]string{
		"BUILD":            `rust_binary(name = "agent", srcs = ["main.rs"])`,
		"requirements.txt": "maturin==1.0\n",
	})

	d := detector.Detect(projectPath)
	if d.Ecosystem != detector.EcosystemRust {
		t.Errorf("Expected rust (native) to win over python manifests, got %s", d.Ecosystem)
	}
}

func TestNotDetected(t *testing.T) {
	projectPath := createTestProject(t, map[string]string{
		"README.md": "# hello",
		"data.json": "{}",
	})

	d := detector.Detect(projectPath)

	if d.Detected() {
		t.Fatalf("Expected no detection, got %s", d.Ecosystem)
	}
	if d.Ecosystem != detector.EcosystemUnknown {
		t.Errorf("Expected EcosystemUnknown, got %s", d.Ecosystem)
	}
	if len(d.MarkersTried) == 0 {
		t.Error("Expected markers tried to be enumerated for diagnostics")
	}
	expectedSignals := []string{"no ecosystem markers matched"}
	if !reflect.DeepEqual(d.Signals, expectedSignals) {
		t.Errorf("Expected signals %v, got %v", expectedSignals, d.Signals)
	}
}

func TestNotDetectedListsScannedManifests(t *testing.T) {
	// A BUILD file with no recognized rules is scanned but matches nothing
	projectPath := createTestProject(t, map[string]string{
		"BUILD": `genrule(name = "docs", outs = ["docs.tar"])`,
	})

	d := detector.Detect(projectPath)
	if d.Detected() {
		t.Fatalf("Expected no detection, got %s", d.Ecosystem)
	}

	found := false
	for _, m := range d.ManifestsScanned {
		if m == "BUILD" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected BUILD in manifests scanned, got %v", d.ManifestsScanned)
	}
}

func TestDetectionIdempotence(t *testing.T) {
	projectPath := createTestProject(t, map[string]string{
		"Cargo.toml":  "[package]\nname = \"agent\"\n",
		"src/main.rs": "fn main() {}",
	})

	first := detector.Detect(projectPath)
	second := detector.Detect(projectPath)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical detections on unchanged manifests:\n%+v\n%+v", first, second)
	}
}

func TestDetectionIgnoresVendoredTrees(t *testing.T) {
	// Source files below ignored directories must not corroborate signals
	projectPath := createTestProject(t, map[string]string{
		"Cargo.toml":          "[package]\nname = \"agent\"\n",
		"target/debug/gen.rs": "fn main() {}",
	})

	d := detector.Detect(projectPath)
	if d.Ecosystem != detector.EcosystemRust {
		t.Fatalf("Expected rust, got %s", d.Ecosystem)
	}
	for _, s := range d.Signals {
		if s == ".rs files in tree" {
			t.Errorf("Ignored build output leaked into signals: %v", d.Signals)
		}
	}

	withSrc := createTestProject(t, map[string]string{
		"Cargo.toml":  "[package]\nname = \"agent\"\n",
		"src/main.rs": "fn main() {}",
	})
	d = detector.Detect(withSrc)
	found := false
	for _, s := range d.Signals {
		if s == ".rs files in tree" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected source-file signal, got %v", d.Signals)
	}
}

func TestManifestMetadata(t *testing.T) {
	tests := []struct {
		name         string
		files        map[string]string
		expectedMeta map[string]string
	}{
		{
			name: "Cargo package name and edition",
			files: map[string]string{
				"Cargo.toml": "[package]\nname = \"agent\"\nedition = \"2021\"\n",
			},
			expectedMeta: map[string]string{"package": "agent", "edition": "2021"},
		},
		{
			name: "Cargo workspace",
			files: map[string]string{
				"Cargo.toml": "[workspace]\nmembers = [\"crates/*\"]\n",
			},
			expectedMeta: map[string]string{"workspace": "true"},
		},
		{
			name: "Go module path and version",
			files: map[string]string{
				"go.mod": "module example.com/myapp\n\ngo 1.22\n",
			},
			expectedMeta: map[string]string{"module": "example.com/myapp", "go_version": "1.22"},
		},
		{
			name: "pyproject project name",
			files: map[string]string{
				"pyproject.toml": "[project]\nname = \"myapp\"\nrequires-python = \">=3.11\"\n",
			},
			expectedMeta: map[string]string{"package": "myapp", "requires_python": ">=3.11"},
		},
		{
			name: "setup.cfg metadata name",
			files: map[string]string{
				"setup.cfg": "[metadata]\nname = legacyapp\n",
			},
			expectedMeta: map[string]string{"package": "legacyapp"},
		},
		{
			name: "CMake project name",
			files: map[string]string{
				"CMakeLists.txt": "cmake_minimum_required(VERSION 3.20)\nproject(server CXX)\n",
			},
			expectedMeta: map[string]string{"project": "server"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projectPath := createTestProject(t, tt.files)
			d := detector.Detect(projectPath)

			for k, v := range tt.expectedMeta {
				if d.Meta[k] != v {
					t.Errorf("Expected meta[%s]=%q, got %q (meta: %v)", k, v, d.Meta[k], d.Meta)
				}
			}
		})
	}
}

func TestMalformedManifestStillDetects(t *testing.T) {
	projectPath := createTestProject(t, map[string]string{
		"Cargo.toml": "this is [ not valid toml",
	})

	d := detector.Detect(projectPath)
	if d.Ecosystem != detector.EcosystemRust {
		t.Errorf("Malformed manifest must not break detection, got %s", d.Ecosystem)
	}
	if len(d.Meta) != 0 {
		t.Errorf("Expected no metadata from malformed manifest, got %v", d.Meta)
	}
}

func TestParseEcosystem(t *testing.T) {
	for _, eco := range detector.Ecosystems() {
		got, ok := detector.ParseEcosystem(string(eco))
		if !ok || got != eco {
			t.Errorf("ParseEcosystem(%q) = %q, %v", eco, got, ok)
		}
	}
	if _, ok := detector.ParseEcosystem("cobol"); ok {
		t.Error("Expected ParseEcosystem to reject unknown tags")
	}
}
