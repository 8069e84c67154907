// Package discovery walks a scan root and produces the ordered list of
// configuration files the pipeline will normalize.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/onrcanogul/prod-analyzer/internal/model"
)

// skipDirs are build/VCS/editor directories excluded from every scan.
var skipDirs = map[string]bool{
	".git":           true,
	".hg":            true,
	".svn":           true,
	".idea":          true,
	".vscode":        true,
	"node_modules":   true,
	"vendor":         true,
	"target":         true,
	"build":          true,
	"dist":           true,
	"out":            true,
	"bin":            true,
	"obj":            true,
	".prod-analyzer": true,
}

// jsonConfigNames are the JSON filenames the scanner recognizes as
// configuration (arbitrary *.json is data, not config).
var jsonConfigNames = map[string]bool{
	"config.json":   true,
	"settings.json": true,
}

// Discover returns every recognized configuration file under root in
// deterministic sorted order. Files matched by the root .gitignore are
// excluded. An unreadable root is a hard error; unreadable subtrees are
// skipped.
func Discover(root string) ([]model.SourceFile, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	// .gitignore in the scan root only; absence is the common case.
	gi, giErr := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if giErr != nil {
		gi = nil
	}

	var files []model.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || (gi != nil && gi.MatchesPath(rel))) {
				return filepath.SkipDir
			}
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		format, ok := DetectFormat(d.Name())
		if !ok {
			return nil
		}
		files = append(files, model.SourceFile{Path: path, Format: format})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// DetectFormat maps a filename to its configuration format.
func DetectFormat(name string) (model.Format, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".yml"), strings.HasSuffix(lower, ".yaml"):
		return model.FormatYAML, true
	case strings.HasSuffix(lower, ".properties"):
		return model.FormatProperties, true
	case strings.HasPrefix(lower, ".env"):
		return model.FormatEnv, true
	case strings.HasSuffix(lower, ".json"):
		if jsonConfigNames[lower] || strings.HasPrefix(lower, "appsettings") {
			return model.FormatJSON, true
		}
	}
	return "", false
}
