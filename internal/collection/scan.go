package collection

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// recordingExtensions lists every container file suffix a directory scan
// recognizes, matching the original collation pass's extension set.
var recordingExtensions = map[string]bool{
	".cam":       true,
	".rec":       true,
	".recording": true,
	".tmv":       true,
	".tmv2":      true,
	".trp":       true,
	".ttm":       true,
	".yatc":      true,
}

// dataExtensions lists the asset-catalog file suffixes (Tibia.dat/pic/spr).
var dataExtensions = map[string]bool{
	".dat": true,
	".pic": true,
	".spr": true,
}

// GatherRecordingPaths walks root recursively, returning every file whose
// extension names a known recording container format.
func GatherRecordingPaths(root string) ([]string, error) {
	return gatherPaths(root, recordingExtensions)
}

// GatherDataPaths walks root recursively, returning every Tibia.dat/pic/spr
// candidate file.
func GatherDataPaths(root string) ([]string, error) {
	return gatherPaths(root, dataExtensions)
}

func gatherPaths(root string, extensions map[string]bool) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if extensions[strings.ToLower(filepath.Ext(path))] {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collection: scanning %s: %w", root, err)
	}
	return out, nil
}

// DenyList is the set of SHA-1 checksums (lowercase hex) a collation pass
// should skip outright, e.g. known-corrupt or known-cheat recordings.
type DenyList map[string]struct{}

// ParseDenyList reads one checksum per line from path, tolerating trailing
// comments/whitespace the way the original deny-list format does: only the
// leading run of hex digits on each line is taken as the checksum, and
// blank lines are skipped.
func ParseDenyList(path string) (DenyList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("collection: reading deny-list: %w", err)
	}
	defer f.Close()

	result := make(DenyList)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		end := strings.IndexFunc(text, func(r rune) bool {
			return !strings.ContainsRune("0123456789abcdefABCDEF", r)
		})
		if end == -1 {
			end = len(text)
		}
		checksum := strings.ToLower(text[:end])
		if checksum == "" {
			continue
		}
		if len(checksum) != 40 {
			return nil, fmt.Errorf("collection: deny-list line %d: %q is not a valid SHA1 checksum", line, checksum)
		}
		result[checksum] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("collection: reading deny-list: %w", err)
	}
	return result, nil
}

// Has reports whether checksum is on the deny list.
func (d DenyList) Has(checksum string) bool {
	_, ok := d[checksum]
	return ok
}
