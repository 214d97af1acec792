package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Longer escaped floor names are replaced by a digest in render file names.
const maxFloorKey = 64

// ============================================================
// File Storage
// ============================================================

// FileStorage keeps one directory per map: the uploaded source and its
// cached renders.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) MapDir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *FileStorage) SourcePath(id string) string {
	return filepath.Join(s.MapDir(id), "map.xml")
}

// RenderPath is plan<ext> for the whole map and plan.<floor key><ext> for a
// floor selection. Distinct floor names always get distinct keys.
func (s *FileStorage) RenderPath(id, floor, ext string) string {
	name := "plan"
	if floor != "" {
		name += "." + floorKey(floor)
	}
	return filepath.Join(s.MapDir(id), name+ext)
}

func (s *FileStorage) EnsureDir(id string) error {
	if err := os.MkdirAll(s.MapDir(id), 0o755); err != nil {
		return fmt.Errorf("mkdir map dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(id, target string, data []byte) error {
	if err := s.EnsureDir(id); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// ReadFile returns ok=false when the file does not exist.
func (s *FileStorage) ReadFile(target string) ([]byte, bool, error) {
	data, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStorage) Remove(id string) error {
	if err := os.RemoveAll(s.MapDir(id)); err != nil {
		return fmt.Errorf("remove map dir: %w", err)
	}
	return nil
}

// floorKey path-escapes the name, which is injective and never yields "%%".
// Names too long for a file name become "%%" plus a sha256 prefix.
func floorKey(floor string) string {
	key := url.PathEscape(floor)
	if len(key) <= maxFloorKey {
		return key
	}
	sum := sha256.Sum256([]byte(floor))
	return "%%" + hex.EncodeToString(sum[:16])
}
