package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
)

// Store persists a whole Directory as one vCard file.
type Store struct {
	Path string
}

// NewStore creates a Store bound to path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Location returns the snapshot path.
func (s *Store) Location() string {
	return s.Path
}

// Load restores the Directory saved at Path. A missing file yields an empty
// Directory. Any other failure is returned and must abort startup.
func (s *Store) Load() (*contact.Directory, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, s.Path,
	)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgSnapshotMiss)
		return contact.NewDirectory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSnapshotRead, err)
	}

	d, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", config.ErrSnapshotDecode, s.Path, err)
	}

	log.Info(config.MsgSnapshotLoaded,
		config.LogKeyCount, d.Len(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return d, nil
}

// Save replaces the file at Path with a complete snapshot of d.
func (s *Store) Save(d *contact.Directory) error {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return err
	}
	if err := WriteFile(s.Path, buf.Bytes()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSnapshotWrite, err)
	}

	slog.Info(config.MsgSnapshotSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, s.Path,
		config.LogKeyCount, d.Len(),
	)
	return nil
}
