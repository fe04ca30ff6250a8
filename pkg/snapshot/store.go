// Package snapshot persists which architecture each engine session was
// running, so a session can be restored against the same register model.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"

	"archcore/pkg/arch"
	archerrors "archcore/pkg/errors"
	"archcore/pkg/machine"
	"archcore/pkg/serial"
)

var ErrNotFound = errors.New("snapshot: session not found")

// Session is a restored session record.
type Session struct {
	ID      uuid.UUID
	Arch    arch.Arch
	SavedAt time.Time
}

// Store is a PebbleDB-backed session store. It is safe for concurrent use.
type Store struct {
	db        *pebble.DB
	catalogue *serial.Catalogue
}

// Open opens (creating if needed) a store rooted at dbPath.
func Open(dbPath string) (*Store, error) {
	return open(dbPath, &pebble.Options{})
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(dbPath string, opts *pebble.Options) (*Store, error) {
	db, err := pebble.Open(dbPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return &Store{
		db:        db,
		catalogue: machine.Catalogue(),
	}, nil
}

// Create saves a under a fresh session id.
func (s *Store) Create(a arch.Arch) (uuid.UUID, error) {
	id := uuid.New()
	if err := s.Save(id, a); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Save writes the session record for id, replacing any previous one.
func (s *Store) Save(id uuid.UUID, a arch.Arch) error {
	value, err := s.encode(a, time.Now())
	if err != nil {
		return err
	}

	batch := s.db.NewIndexedBatch()
	defer batch.Close()
	if err := batch.Set(sessionKey(id), value, nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// Load restores the session stored under id. A record whose register table
// no longer matches the running build fails with a serialization error.
func (s *Store) Load(id uuid.UUID) (*Session, error) {
	value, found, err := get(s.db, sessionKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a, savedAt, err := s.decode(value)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &Session{ID: id, Arch: a, SavedAt: savedAt}, nil
}

// Delete removes the session stored under id. Deleting an unknown id is not
// an error.
func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Delete(sessionKey(id), pebble.Sync)
}

// List returns every stored session id in key order.
func (s *Store) List() ([]uuid.UUID, error) {
	iter, err := s.db.NewIter(sessionBounds())
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var ids []uuid.UUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := uuid.FromBytes(iter.Key()[len(sessionPrefix):])
		if err != nil {
			return nil, fmt.Errorf("corrupt session key %x: %w", iter.Key(), err)
		}
		ids = append(ids, id)
	}
	return ids, iter.Error()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// A record is: architecture object, fingerprint, save time in unix
// nanoseconds.
func (s *Store) encode(a arch.Arch, savedAt time.Time) ([]byte, error) {
	fp, err := arch.Fingerprint(a)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	ser := serial.NewSerializer(&buf)
	if err := serial.WriteObject(ser, a); err != nil {
		return nil, err
	}
	if err := ser.WriteBytes(fp[:]); err != nil {
		return nil, err
	}
	if err := ser.WriteUint(8, uint64(savedAt.UnixNano())); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) decode(value []byte) (arch.Arch, time.Time, error) {
	r := bytes.NewReader(value)
	d := serial.NewDeserializer(r)

	obj, err := s.catalogue.ReadObject(d)
	if err != nil {
		return nil, time.Time{}, err
	}
	loaded, ok := obj.(arch.Arch)
	if !ok {
		return nil, time.Time{}, archerrors.Serializationf("decoded object %T is not an architecture", obj)
	}
	// Hand out the shared instance rather than the freshly loaded one.
	a, err := machine.New(loaded.Type())
	if err != nil {
		return nil, time.Time{}, err
	}

	stored, err := d.ReadBytes()
	if err != nil {
		return nil, time.Time{}, err
	}
	current, err := arch.Fingerprint(a)
	if err != nil {
		return nil, time.Time{}, err
	}
	if !bytes.Equal(stored, current[:]) {
		return nil, time.Time{}, archerrors.Serializationf("%s register table fingerprint mismatch: stored %x, current %x", a.Type(), stored, current)
	}

	nanos, err := d.ReadUint(8)
	if err != nil {
		return nil, time.Time{}, err
	}
	if r.Len() > 0 {
		return nil, time.Time{}, archerrors.Serializationf("extra %d bytes left after deserialization", r.Len())
	}
	return a, time.Unix(0, int64(nanos)), nil
}
