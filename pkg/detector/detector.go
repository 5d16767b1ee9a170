package detector

import (
	"io/fs"
	"os"
)

// Detect inspects the build manifests in root and resolves the project's
// ecosystem. Rules are evaluated in fixed priority order and the first match
// wins, so a repository carrying markers for more than one ecosystem
// deterministically resolves to the highest-priority one; callers needing
// multi-ecosystem handling invoke Detect per subdirectory.
//
// The result is a pure function of the manifest content, computed fresh on
// every call. A no-match outcome is a normal Detection with
// Ecosystem == EcosystemUnknown, not an error.
func Detect(root string, ignores ...string) Detection {
	return DetectFS(os.DirFS(root), ignores...)
}

// DetectFS is Detect over an abstract filesystem
func DetectFS(fsys fs.FS, ignores ...string) Detection {
	reader := NewFSReader(fsys, ignores)

	for _, sig := range signatures {
		for _, manifest := range sig.manifests {
			if !reader.Has(manifest) {
				continue
			}
			if sig.pattern != "" && !reader.Contains(manifest, sig.pattern) {
				continue
			}
			return Detection{
				Ecosystem: sig.ecosystem,
				Manifest:  manifest,
				Marker:    sig.pattern,
				Signals:   append([]string{sig.signal}, extensionSignals(reader, sig.ecosystem)...),
				Meta:      manifestMeta(reader, sig.ecosystem),
			}
		}
	}

	return notDetected(reader)
}

// notDetected builds the diagnostic-rich no-match outcome: which manifests
// were present, and every marker the rule table tried.
func notDetected(reader *FSReader) Detection {
	var scanned []string
	for _, m := range manifestFiles() {
		if reader.Has(m) {
			scanned = append(scanned, m)
		}
	}

	tried := make([]string, 0, len(signatures))
	for _, sig := range signatures {
		tried = append(tried, sig.describe())
	}

	return Detection{
		Ecosystem:        EcosystemUnknown,
		Signals:          []string{"no ecosystem markers matched"},
		ManifestsScanned: scanned,
		MarkersTried:     tried,
	}
}

// extensionSignals adds corroborating source-file evidence to the signal
// list. Purely informational; it never changes the detection outcome.
func extensionSignals(reader *FSReader, eco Ecosystem) []string {
	ext := map[Ecosystem]string{
		EcosystemCPP:    ".cc",
		EcosystemRust:   ".rs",
		EcosystemGo:     ".go",
		EcosystemPython: ".py",
	}[eco]

	_, extCounts, err := reader.ScanTree()
	if err != nil {
		return nil
	}

	if eco == EcosystemCPP {
		n := extCounts[".cc"] + extCounts[".cpp"] + extCounts[".c"] + extCounts[".h"] + extCounts[".hpp"]
		if n == 0 {
			return nil
		}
		return []string{"C/C++ sources in tree"}
	}

	if extCounts[ext] == 0 {
		return nil
	}
	return []string{ext + " files in tree"}
}
