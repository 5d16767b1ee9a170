package detector

import (
	"io"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnoreGlobs are tree-scan exclusions applied when the caller
// supplies none. Manifest probing at the root is unaffected by these.
var defaultIgnoreGlobs = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"target/**",
	".venv/**",
	"venv/**",
	"dist/**",
	"build/**",
	"bazel-*/**",
}

// FSReader provides filesystem operations abstracted over fs.FS
type FSReader struct {
	fsys    fs.FS
	ignores []string
}

// NewFSReader creates a new FSReader for the given filesystem. Ignore
// patterns are doublestar globs matched against slash-separated relative
// paths; when empty, defaultIgnoreGlobs apply.
func NewFSReader(fsys fs.FS, ignores []string) *FSReader {
	if len(ignores) == 0 {
		ignores = defaultIgnoreGlobs
	}
	return &FSReader{fsys: fsys, ignores: ignores}
}

// Has checks if a file exists at the given path
func (r *FSReader) Has(path string) bool {
	_, err := fs.Stat(r.fsys, path)
	return err == nil
}

// Read reads a file and returns its content as a string
func (r *FSReader) Read(path string) string {
	f, err := r.fsys.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ""
	}
	return string(data)
}

// Contains reports whether the file at path contains the substring,
// case-insensitively
func (r *FSReader) Contains(path, substring string) bool {
	content := strings.ToLower(r.Read(path))
	return strings.Contains(content, strings.ToLower(substring))
}

func (r *FSReader) ignored(path string) bool {
	for _, g := range r.ignores {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
		// "dir/**" should also prune the directory itself
		if base, found := strings.CutSuffix(g, "/**"); found {
			if ok, err := doublestar.Match(base, path); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// ScanTree walks the filesystem, skipping ignored subtrees, and returns all
// file paths plus a count of files per lowercase extension
func (r *FSReader) ScanTree() ([]string, map[string]int, error) {
	var files []string
	extCounts := map[string]int{}

	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			if r.ignored(p) {
				return fs.SkipDir
			}
			return nil
		}
		if r.ignored(p) {
			return nil
		}
		files = append(files, p)
		if i := strings.LastIndex(p, "."); i >= 0 && !strings.Contains(p[i:], "/") {
			extCounts[strings.ToLower(p[i:])]++
		}
		return nil
	})

	return files, extCounts, err
}
