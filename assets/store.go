package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
)

// Store is the entry point for decoding a client's asset files: sprites,
// picture atlases, and the item/outfit/effect/missile catalog. It holds a
// base path plus a lazily-populated cache of opened file handles, reading
// the flat offset-table layout these files use rather than a packed
// archive format.
type Store struct {
	BasePath string
	Profile  *version.Profile

	files sync.Map // filename -> *offsetFile

	typesOnce sync.Once
	types     map[Category]map[int]*Type
	typesErr  error
}

// Open opens the asset directory at dir for the given client version.
// Nothing is read from disk until the first Sprite/Picture/Type call.
func Open(dir string, v version.Triplet) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: client directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: %q is not a directory", dir)
	}

	return &Store{
		BasePath: dir,
		Profile:  version.New(v),
	}, nil
}

// Close releases every opened file handle.
func (s *Store) Close() error {
	var first error
	s.files.Range(func(key, value any) bool {
		if f, ok := value.(*offsetFile); ok {
			if err := f.Close(); err != nil && first == nil {
				first = err
			}
		}
		s.files.Delete(key)
		return true
	})
	return first
}

func (s *Store) load(name string) (*offsetFile, error) {
	if f, ok := s.files.Load(name); ok {
		return f.(*offsetFile), nil
	}

	file, err := openOffsetFile(filepath.Join(s.BasePath, name))
	if err != nil {
		return nil, err
	}

	actual, loaded := s.files.LoadOrStore(name, file)
	if loaded {
		file.Close()
		return actual.(*offsetFile), nil
	}
	return file, nil
}

func (s *Store) loadSprites() (*offsetFile, error) { return s.load("Tibia.spr") }
func (s *Store) loadPictures() (*offsetFile, error) { return s.load("Tibia.pic") }

// Type looks up a single decoded catalog entry, loading and parsing the
// whole type file on first use.
func (s *Store) Type(cat Category, id int) (*Type, error) {
	s.typesOnce.Do(s.loadTypes)
	if s.typesErr != nil {
		return nil, s.typesErr
	}
	t, ok := s.types[cat][id]
	if !ok {
		return nil, fmt.Errorf("assets: %v type %d not found", cat, id)
	}
	return t, nil
}

// loadTypes reads Tibia.dat in full: a header of four u16 counts (items,
// outfits, effects, missiles) followed by that many sequential records per
// category, in that order.
func (s *Store) loadTypes() {
	data, err := os.ReadFile(filepath.Join(s.BasePath, "Tibia.dat"))
	if err != nil {
		s.typesErr = fmt.Errorf("assets: %w", err)
		return
	}

	r := reader.New(data)
	if _, err := r.U32(); err != nil { // signature, unused beyond presence
		s.typesErr = fmt.Errorf("assets: reading Tibia.dat signature: %w", err)
		return
	}

	counts := make([]int, 4)
	for i := range counts {
		n, err := r.U16()
		if err != nil {
			s.typesErr = fmt.Errorf("assets: reading Tibia.dat counts: %w", err)
			return
		}
		counts[i] = int(n)
	}

	s.types = map[Category]map[int]*Type{
		CategoryItem:    make(map[int]*Type, counts[0]),
		CategoryOutfit:  make(map[int]*Type, counts[1]),
		CategoryEffect:  make(map[int]*Type, counts[2]),
		CategoryMissile: make(map[int]*Type, counts[3]),
	}

	categories := []Category{CategoryItem, CategoryOutfit, CategoryEffect, CategoryMissile}
	firstID := []int{100, 1, 1, 1} // item ids traditionally start at 100

	for ci, cat := range categories {
		for i := 0; i < counts[ci]; i++ {
			id := firstID[ci] + i
			t, err := readType(r, id, cat, s.Profile)
			if err != nil {
				s.typesErr = fmt.Errorf("assets: %w", err)
				return
			}
			s.types[cat][id] = t
		}
	}
}
