package snapshot

import (
	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
)

var sessionPrefix = []byte("session:")

func sessionKey(id uuid.UUID) []byte {
	key := make([]byte, 0, len(sessionPrefix)+len(id))
	key = append(key, sessionPrefix...)
	return append(key, id[:]...)
}

// sessionBounds returns the iterator bounds covering every session key.
func sessionBounds() *pebble.IterOptions {
	upper := append([]byte(nil), sessionPrefix...)
	upper[len(upper)-1]++
	return &pebble.IterOptions{
		LowerBound: sessionPrefix,
		UpperBound: upper,
	}
}

// get returns a copy of the value stored under key, or found=false.
func get(r pebble.Reader, key []byte) ([]byte, bool, error) {
	value, closer, err := r.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	// Make a copy since value is only valid until closer.Close()
	result := make([]byte, len(value))
	copy(result, value)
	return result, true, nil
}
