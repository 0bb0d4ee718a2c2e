// Package collection models the persisted asset/recording library a
// management tool scans into and reads back from disk: a root directory
// holding dat/pic/spr subfolders plus recordings, indexed by content
// signature/checksum so repeat scans can skip files already known.
package collection

// Index is the on-disk index.json contract: every known asset file keyed
// by its embedded signature, and every known recording keyed by its SHA-1
// checksum.
type Index struct {
	Version int `json:"Version"`

	DatFiles []uint32 `json:"DatFiles"`
	PicFiles []uint32 `json:"PicFiles"`
	SprFiles []uint32 `json:"SprFiles"`

	VideoFiles map[string]VideoEntry `json:"VideoFiles"`
}

// VersionTriplet mirrors version.Triplet without importing the version
// package, keeping the persisted shape stable even if the in-memory
// profile type grows fields later.
type VersionTriplet struct {
	Major   int `json:"Major"`
	Minor   int `json:"Minor"`
	Preview int `json:"Preview"`
}

// VideoEntry is one recording's catalog record: its container format, the
// client version it was captured against, every filesystem name it's been
// seen under (the same recording can live in a library under more than one
// name), and its playback runtime in milliseconds.
type VideoEntry struct {
	Format  string         `json:"Format"`
	Version VersionTriplet `json:"Version"`
	Names   []string       `json:"Names"`
	Runtime int64          `json:"Runtime"`
}

// New returns an empty index at the current on-disk schema version.
func New() *Index {
	return &Index{
		Version:    0,
		VideoFiles: make(map[string]VideoEntry),
	}
}

// HasDatFile reports whether signature is already catalogued among the
// dat files.
func (idx *Index) HasDatFile(signature uint32) bool { return contains(idx.DatFiles, signature) }

// HasPicFile reports whether signature is already catalogued among the
// pic files.
func (idx *Index) HasPicFile(signature uint32) bool { return contains(idx.PicFiles, signature) }

// HasSprFile reports whether signature is already catalogued among the
// spr files.
func (idx *Index) HasSprFile(signature uint32) bool { return contains(idx.SprFiles, signature) }

func contains(list []uint32, v uint32) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// AddDatFile catalogs signature if it isn't already present.
func (idx *Index) AddDatFile(signature uint32) {
	if !idx.HasDatFile(signature) {
		idx.DatFiles = append(idx.DatFiles, signature)
	}
}

// AddPicFile catalogs signature if it isn't already present.
func (idx *Index) AddPicFile(signature uint32) {
	if !idx.HasPicFile(signature) {
		idx.PicFiles = append(idx.PicFiles, signature)
	}
}

// AddSprFile catalogs signature if it isn't already present.
func (idx *Index) AddSprFile(signature uint32) {
	if !idx.HasSprFile(signature) {
		idx.SprFiles = append(idx.SprFiles, signature)
	}
}

// AddVideoName records that the checksum'd recording is also known under
// name, appending it only if it isn't already listed.
func (idx *Index) AddVideoName(checksum string, entry VideoEntry, name string) {
	if idx.VideoFiles == nil {
		idx.VideoFiles = make(map[string]VideoEntry)
	}
	existing, ok := idx.VideoFiles[checksum]
	if !ok {
		entry.Names = append([]string(nil), entry.Names...)
		if !containsString(entry.Names, name) {
			entry.Names = append(entry.Names, name)
		}
		idx.VideoFiles[checksum] = entry
		return
	}
	if !containsString(existing.Names, name) {
		existing.Names = append(existing.Names, name)
	}
	idx.VideoFiles[checksum] = existing
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
