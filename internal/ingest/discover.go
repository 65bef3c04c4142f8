package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover resolves the CSV file to process. An explicitly given path must
// exist. Without one, exactly one file matching pattern under inputDir is
// expected; zero or several matches is a usage error that names the candidates.
func Discover(inputDir, pattern, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("ingest: specified file %q does not exist", explicit)
		}
		return explicit, nil
	}

	glob := filepath.Join(inputDir, pattern)
	matches, err := filepath.Glob(glob)
	if err != nil {
		return "", fmt.Errorf("ingest: bad input pattern %q: %w", glob, err)
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("ingest: no files matching %q; place the export in %s/ or pass a file argument", glob, inputDir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ingest: multiple files match %q, pass one explicitly:\n  %s", glob, strings.Join(matches, "\n  "))
	}
}
