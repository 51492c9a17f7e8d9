// Package storage persists the local session record: the bearer token
// together with the cached profile.  The two values always travel as a
// single record so a token can never survive without its profile (or
// the other way round), which is the split state the auth store would
// otherwise have to repair at startup.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/iliyamo/cinelux-booking/internal/model"
)

// Record is the persisted session pair.  A record with an empty Token
// or a nil User is not considered valid and loads as absent.
type Record struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Valid reports whether both halves of the pair are present.
func (r Record) Valid() bool {
	return r.Token != "" && r.User != nil
}

// ErrNoSession is returned by Load when no valid record exists.
var ErrNoSession = errors.New("no stored session")

// SessionStore reads and writes the session record.  Save replaces the
// whole record atomically; Purge removes it.  Token is a convenience
// read used by the gateway when attaching bearer credentials.
type SessionStore interface {
	Load() (Record, error)
	Save(Record) error
	Purge() error
	Token() string
}

// FileStore keeps the record in a single JSON file.  Writes go through
// a temp file and rename so a crash mid-write leaves either the old
// record or the new one, never a torn pair.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore persisting at path.  The parent
// directory is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored record.  A missing file, unreadable JSON or a
// half-empty record (token without profile or profile without token)
// all count as "no session"; the half-empty case additionally purges
// the file so later reads do not keep tripping over it.
func (s *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, ErrNoSession
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = s.Purge()
		return Record{}, ErrNoSession
	}
	if !rec.Valid() {
		_ = s.Purge()
		return Record{}, ErrNoSession
	}
	return rec, nil
}

// Save writes the record atomically.  Invalid (half-empty) records are
// rejected so callers cannot reintroduce split state.  Each write gets
// its own temp file; concurrent saves each rename a complete record
// into place and the last rename wins.
func (s *FileStore) Save(rec Record) error {
	if !rec.Valid() {
		return errors.New("refusing to save incomplete session record")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "session-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Purge removes the stored record.  Removing an already absent record
// is not an error.
func (s *FileStore) Purge() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token returns the stored bearer token, or "" when no valid session
// record exists.
func (s *FileStore) Token() string {
	rec, err := s.Load()
	if err != nil {
		return ""
	}
	return rec.Token
}

// MemoryStore is an in-process SessionStore used by tests and by
// callers that explicitly opt out of persistence.
type MemoryStore struct {
	rec   Record
	saved bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (Record, error) {
	if !s.saved || !s.rec.Valid() {
		s.rec = Record{}
		s.saved = false
		return Record{}, ErrNoSession
	}
	return s.rec, nil
}

func (s *MemoryStore) Save(rec Record) error {
	if !rec.Valid() {
		return errors.New("refusing to save incomplete session record")
	}
	s.rec = rec
	s.saved = true
	return nil
}

func (s *MemoryStore) Purge() error {
	s.rec = Record{}
	s.saved = false
	return nil
}

func (s *MemoryStore) Token() string {
	if !s.saved {
		return ""
	}
	return s.rec.Token
}

// Seed places a possibly half-empty record directly into the store,
// bypassing Save's validation.  Tests use it to reproduce the legacy
// split-state scenarios the auth store must clean up.
func (s *MemoryStore) Seed(rec Record) {
	s.rec = rec
	s.saved = true
}
