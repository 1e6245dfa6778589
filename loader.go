package finboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Store loads and saves the book state file.
//
// A state file that fails to decode is never silently replaced: the corrupt
// bytes are preserved under a timestamped name, the backup from the previous
// save is tried instead, and until the caller confirms the overwrite every
// save lands in a separate recovery file next to the original.
type Store struct {
	path string

	corrupted        bool
	overwriteAllowed bool
}

// NewStore returns a store for the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string { return s.path }

// Corrupted reports whether the last Load hit a corrupt state file.
func (s *Store) Corrupted() bool { return s.corrupted }

// ConfirmOverwrite allows the next Save to write over a corrupt state file.
func (s *Store) ConfirmOverwrite() { s.overwriteAllowed = true }

func (s *Store) backupPath() string { return s.path + ".bak" }

// Load reads the state file and rebuilds the book. A missing file yields a
// fresh empty book.
//
// On a corrupt file, Load copies the bytes to <path>.corrupt.<unix>.bak and
// falls back to the backup from the previous save. If the backup works the
// book is returned along with a non-nil error describing the recovery; if it
// does not, a fresh book is returned with an error wrapping ErrCorruptState.
func (s *Store) Load(now Time) (*Book, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewBook(now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read state file %q: %w", s.path, err)
	}

	book, err := DecodeBook(bytes.NewReader(content), now)
	if err == nil {
		return book, nil
	}

	s.corrupted = true
	corruptPath := fmt.Sprintf("%s.corrupt.%d.bak", s.path, time.Now().Unix())
	if werr := os.WriteFile(corruptPath, content, 0644); werr != nil {
		log.Printf("could not preserve corrupt state file: %v", werr)
	} else {
		log.Printf("corrupt state file preserved as %q", corruptPath)
	}

	backup, berr := os.ReadFile(s.backupPath())
	if berr == nil {
		if book, berr = DecodeBook(bytes.NewReader(backup), now); berr == nil {
			return book, fmt.Errorf("state file %q is corrupt, recovered from backup: %w", s.path, err)
		}
	}
	return NewBook(now), fmt.Errorf("state file %q is corrupt and has no usable backup: %w", s.path, err)
}

// Save writes the book to the state file, keeping the previous good copy as
// <path>.bak and writing through a temporary file so a crash mid-save never
// truncates the state.
//
// After a corrupt Load, and until ConfirmOverwrite is called, the book is
// written to <path>.recovered.<unix>.json instead, leaving the corrupt
// original untouched.
func (s *Store) Save(b *Book) error {
	target := s.path
	if s.corrupted && !s.overwriteAllowed {
		target = fmt.Sprintf("%s.recovered.%d.json", s.path, time.Now().Unix())
		log.Printf("state file is corrupt, saving to %q until overwrite is confirmed", target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}

	if target == s.path {
		if err := s.backup(); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".tmp-")
	if err != nil {
		return fmt.Errorf("could not create temporary state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeBook(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("could not replace state file %q: %w", target, err)
	}

	if target == s.path && s.corrupted {
		// the overwrite was confirmed and succeeded
		s.corrupted = false
		s.overwriteAllowed = false
	}
	return nil
}

// backup copies the current state file to <path>.bak, if it exists.
func (s *Store) backup() error {
	src, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read state file for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.backupPath())
	if err != nil {
		return fmt.Errorf("could not create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("could not back up state file: %w", err)
	}
	return nil
}
