// Package storage persists uploaded profile images on the local filesystem.
// Images live under one directory per user, keyed by the user's display
// name, with a fixed "profile<ext>" filename so a re-upload with the same
// extension overwrites in place.
package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type ImageStore struct {
	Root string // base directory for all user image folders
}

func NewImageStore(root string) *ImageStore { return &ImageStore{Root: root} }

// Save writes src to <root>/<owner>/profile<ext> and returns the path
// relative to the store root. The owner directory is created on demand.
// A previous image with a different extension is left behind; only the
// database path decides which file is current.
func (s *ImageStore) Save(owner, origName string, src io.Reader) (string, error) {
	dir := filepath.Join(s.Root, owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := "profile" + filepath.Ext(origName)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(owner, name)), nil
}

// Remove deletes the image at the given store-relative path. A file that
// is already gone counts as success; the record is cleared either way.
func (s *ImageStore) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
