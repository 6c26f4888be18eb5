// Package util provides PO file formatting and file selection utilities.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
)

// PoFilePattern selects all po files below a directory.
const PoFilePattern = "**/*.po"

// ResolvePoFiles expands paths into po files. A directory expands to all
// po files below it, anything else is used as a glob pattern, where "**"
// matches any number of directories. Each file is returned once, in the
// order of the arguments.
func ResolvePoFiles(paths []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)

	for _, path := range paths {
		pattern := path
		if IsDir(path) {
			pattern = filepath.Join(path, PoFilePattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", path, err)
		}
		if len(matches) == 0 {
			log.Warnf("no po files match %q", path)
			continue
		}
		log.Debugf("found %d file(s) for %q", len(matches), path)
		sort.Strings(matches)
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	return files, nil
}

// IsDir returns true if path is exist and is a directory.
func IsDir(name string) bool {
	fi, err := os.Stat(name)
	if err != nil || !fi.IsDir() {
		return false
	}
	return true
}
