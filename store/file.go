package store

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
)

// File stores each key as one file inside a directory. Writes go through a
// temp file and rename so a crash mid-write never leaves a truncated
// document behind.
type File struct {
	dir string
}

// NewFile creates the directory when missing and returns a file-backed KV.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, encodeKey(key)+".json")
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, "write-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// encodeKey makes a key safe as a file name. Plain keys pass through; keys
// with separators or other unsafe characters are hex-encoded.
func encodeKey(key string) string {
	safe := true
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':' || r == '.') {
			safe = false
			break
		}
	}
	if safe && !strings.ContainsAny(key, "/\\") {
		return strings.ReplaceAll(key, ":", "_")
	}
	return "x" + hex.EncodeToString([]byte(key))
}
