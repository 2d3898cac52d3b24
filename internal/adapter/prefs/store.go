package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// KeyPreferDark holds the user's dark-theme preference as a JSON boolean.
const KeyPreferDark = "USER_PREFER_DARK"

// ErrReadOnly is returned by writes to a store opened with OpenReadOnly.
var ErrReadOnly = errors.New("prefs: store is read-only")

const lockTimeout = 1 * time.Second

var bucketName = []byte("preferences")

// Store keeps user preferences in a local bbolt file. A nil db means the
// file does not exist yet and every preference is unset.
type Store struct {
	db       *bolt.DB
	readOnly bool
}

// Open opens (creating if needed) the preference file at path. It holds an
// exclusive lock until Close.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("prefs: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenReadOnly opens the preference file with a shared lock, so any number of
// readers can hold it at once. A missing file is not created and reads as unset.
func OpenReadOnly(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &Store{readOnly: true}, nil
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: lockTimeout, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("prefs: open %s read-only: %w", path, err)
	}
	return &Store{db: db, readOnly: true}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// PreferDark reports the stored preference. An unset or unreadable value is false.
func (s *Store) PreferDark() (bool, error) {
	if s.db == nil {
		return false, nil
	}

	var dark bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(KeyPreferDark))
		if len(v) == 0 {
			return nil
		}
		if err := json.Unmarshal(v, &dark); err != nil {
			dark = false
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("prefs: read %s: %w", KeyPreferDark, err)
	}
	return dark, nil
}

// SetPreferDark stores the preference.
func (s *Store) SetPreferDark(dark bool) error {
	if s.readOnly {
		return ErrReadOnly
	}
	encoded, err := json.Marshal(dark)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(KeyPreferDark), encoded)
	})
	if err != nil {
		return fmt.Errorf("prefs: write %s: %w", KeyPreferDark, err)
	}
	return nil
}

// Lazy opens the preference file on first use, read-only unless writable is
// set. The file is not locked before the first read or write.
type Lazy struct {
	path     string
	writable bool

	once  sync.Once
	store *Store
	err   error
}

// NewLazy returns a Lazy store for path.
func NewLazy(path string, writable bool) *Lazy {
	return &Lazy{path: path, writable: writable}
}

func (l *Lazy) open() (*Store, error) {
	l.once.Do(func() {
		if l.writable {
			l.store, l.err = Open(l.path)
		} else {
			l.store, l.err = OpenReadOnly(l.path)
		}
	})
	return l.store, l.err
}

// PreferDark opens the file if needed and reads the preference.
func (l *Lazy) PreferDark() (bool, error) {
	s, err := l.open()
	if err != nil {
		return false, err
	}
	return s.PreferDark()
}

// SetPreferDark opens the file if needed and stores the preference.
func (l *Lazy) SetPreferDark(dark bool) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.SetPreferDark(dark)
}

// Close closes the file if it was opened. A Lazy closed before first use
// never opens the file.
func (l *Lazy) Close() error {
	l.once.Do(func() { l.err = errors.New("prefs: store closed") })
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
