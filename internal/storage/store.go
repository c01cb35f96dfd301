package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store reads and writes named JSON documents inside a single directory.
// It never reports I/O or decode failures to callers: loads degrade to a
// caller-supplied default and saves are best-effort. Failures are logged
// at debug level so they stay observable.
//
// There is no locking and no temp-file swap. LanguageForge is a
// single-user, single-process tool; a crash mid-write may corrupt a
// document, which the next load tolerates by returning defaults.
type Store struct {
	dir string
	log *zap.SugaredLogger
}

// NewStore returns a Store rooted at dir. A nil logger disables logging.
func NewStore(dir string, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the directory this store reads and writes in.
func (s *Store) Dir() string { return s.dir }

// Path returns the absolute path of the named document.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Load reads the named document and decodes it into a fresh T. A missing
// file, unreadable file, or malformed JSON all yield def unchanged.
func Load[T any](s *Store, name string, def T) T {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debugw("read failed, using default", "file", name, "err", err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.Debugw("decode failed, using default", "file", name, "err", err)
		return def
	}
	return v
}

// Save serializes v as pretty-printed UTF-8 JSON and overwrites the named
// document. HTML escaping is off so links and non-ASCII text stay
// readable in the file. Errors are swallowed (logged at debug).
func (s *Store) Save(name string, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.log.Debugw("encode failed, document not saved", "file", name, "err", err)
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Debugw("create dir failed, document not saved", "file", name, "err", err)
		return
	}
	if err := os.WriteFile(s.Path(name), buf.Bytes(), 0o644); err != nil {
		s.log.Debugw("write failed", "file", name, "err", err)
	}
}
