package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// indexFileName is the well-known index file name inside a collection root.
const indexFileName = "index.json"

// Load reads root's index.json, returning a fresh empty Index if the file
// doesn't exist yet (a not-yet-indexed collection root is not an error).
func Load(root string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(root, indexFileName))
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("collection: reading index: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("collection: parsing index: %w", err)
	}
	if idx.VideoFiles == nil {
		idx.VideoFiles = make(map[string]VideoEntry)
	}
	return &idx, nil
}

// Save writes idx to root's index.json atomically: the new contents are
// written to a temp file in the same directory, then renamed over the old
// index, so a reader never observes a partially-written file and a crash
// mid-write leaves the previous index intact.
func Save(root string, idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("collection: encoding index: %w", err)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("collection: creating root: %w", err)
	}

	tmp, err := os.CreateTemp(root, indexFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("collection: creating temp index: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("collection: writing temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("collection: closing temp index: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(root, indexFileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("collection: renaming temp index: %w", err)
	}
	return nil
}

// Subdirectories a collection root is expected to carry alongside its
// index.json.
const (
	DirDat    = "dat"
	DirPic    = "pic"
	DirSpr    = "spr"
	DirVideos = "videos"
)

// EnsureLayout creates root's dat/pic/spr/videos subfolders if they don't
// already exist.
func EnsureLayout(root string) error {
	for _, dir := range []string{DirDat, DirPic, DirSpr, DirVideos} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return fmt.Errorf("collection: creating %s: %w", dir, err)
		}
	}
	return nil
}
