// Package ratestore keeps the active rate source on disk and serves parsed
// snapshots of it.
package ratestore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/AnnaCarter465/tax-footprint/data"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

type snapshot struct {
	rates   *tax.RateTable
	raw     []byte
	modTime time.Time
	size    int64
}

// Store caches the parsed rate source and reloads it when the file changes.
// Readers never block on writers.
type Store struct {
	path string

	mu  sync.Mutex // serialises reloads and replacements
	cur atomic.Pointer[snapshot]
}

// Open loads the rate source at path. A missing file is seeded with the
// built-in default rates.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := seed(path); err != nil {
			return nil, err
		}
		log.Infof("seeded rate source %s with built-in defaults", path)
	}

	s := &Store{path: path}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.reload(); err != nil {
		return nil, err
	}

	return s, nil
}

func seed(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create rate source directory: %w", err)
	}

	return writeAtomic(path, data.DefaultRates, nil)
}

func (s *Store) Path() string {
	return s.path
}

// Current returns the parsed rates, reloading first if the file's size or
// modification time changed since the last load.
func (s *Store) Current() (*tax.RateTable, error) {
	snap, err := s.fresh()
	if err != nil {
		return nil, err
	}

	return snap.rates, nil
}

// Raw returns the text of the active rate source.
func (s *Store) Raw() ([]byte, error) {
	snap, err := s.fresh()
	if err != nil {
		return nil, err
	}

	return bytes.Clone(snap.raw), nil
}

func (s *Store) fresh() (*snapshot, error) {
	snap := s.cur.Load()

	info, err := os.Stat(s.path)
	if err != nil {
		if snap == nil {
			return nil, &tax.ConfigurationError{Reason: fmt.Sprintf("stat %s: %v", s.path, err), Err: err}
		}

		log.Warnf("stat rate source %s: %v; serving cached rates", s.path, err)
		return snap, nil
	}

	if snap != nil && unchanged(snap, info) {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another caller may have reloaded while we waited
	if snap := s.cur.Load(); snap != nil && unchanged(snap, info) {
		return snap, nil
	}

	return s.reload()
}

func unchanged(snap *snapshot, info fs.FileInfo) bool {
	return snap.modTime.Equal(info.ModTime()) && snap.size == info.Size()
}

// reload must be called with s.mu held.
func (s *Store) reload() (*snapshot, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, &tax.ConfigurationError{Reason: fmt.Sprintf("stat %s: %v", s.path, err), Err: err}
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &tax.ConfigurationError{Reason: fmt.Sprintf("read %s: %v", s.path, err), Err: err}
	}

	rates, err := tax.ParseRates(raw)
	if err != nil {
		log.Errorf("rate source %s is invalid: %v", s.path, err)
		return nil, err
	}

	if err := rates.CheckContiguity(); err != nil {
		log.Warnf("rate source %s: %v", s.path, err)
	}

	snap := &snapshot{rates: rates, raw: raw, modTime: info.ModTime(), size: info.Size()}
	s.cur.Store(snap)

	log.Infof("loaded rate source %s (tax year %q)", s.path, rates.TaxYear)

	return snap, nil
}

// Replace validates content by loading it from a staging file next to the
// active source, then renames it over the active source. On any failure the
// active source is left untouched.
func (s *Store) Replace(content []byte) (*tax.RateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var staged *tax.RateTable

	err := writeAtomic(s.path, content, func(tmp string) error {
		rates, err := tax.LoadRates(tmp)
		if err != nil {
			return err
		}

		staged = rates
		return nil
	})
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat replaced rate source: %w", err)
	}

	s.cur.Store(&snapshot{rates: staged, raw: bytes.Clone(content), modTime: info.ModTime(), size: info.Size()})

	log.Infof("replaced rate source %s (tax year %q)", s.path, staged.TaxYear)

	return staged, nil
}

// writeAtomic writes content to a temp file in the same directory as path,
// runs check against it, then renames it into place.
func writeAtomic(path string, content []byte, check func(tmp string) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}

	tmp := f.Name()

	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("write staging file: %w", err)
	}

	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync staging file: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	if check != nil {
		if err = check(tmp); err != nil {
			return err
		}
	}

	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod staging file: %w", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("install rate source: %w", err)
	}

	return nil
}
