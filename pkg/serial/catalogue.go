package serial

import (
	"sort"

	"archcore/pkg/errors"
)

// Factory returns a zero object ready to have Load called on it.
type Factory func() Serializable

// Catalogue maps class identifiers to factories. It is populated once and
// read-only afterwards.
type Catalogue struct {
	factories map[UID]Factory
}

func NewCatalogue() *Catalogue {
	return &Catalogue{factories: make(map[UID]Factory)}
}

// Register adds a factory for uid. Registering ClassNone or the same uid
// twice panics.
func (c *Catalogue) Register(uid UID, f Factory) {
	if uid == ClassNone {
		panic("serial: cannot register ClassNone")
	}
	if _, ok := c.factories[uid]; ok {
		panic("serial: duplicate class uid " + uid.String())
	}
	c.factories[uid] = f
}

// UIDs returns every registered class identifier in ascending order.
func (c *Catalogue) UIDs() []UID {
	uids := make([]UID, 0, len(c.factories))
	for uid := range c.factories {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids
}

// WriteObject writes obj's class identifier followed by its payload.
func WriteObject(s *Serializer, obj Serializable) error {
	uid, err := obj.ClassUID()
	if err != nil {
		return err
	}
	if err := s.WriteUID(uid); err != nil {
		return err
	}
	return obj.Dump(s)
}

// ReadObject reads a class identifier, builds the matching object and loads
// its payload.
func (c *Catalogue) ReadObject(d *Deserializer) (Serializable, error) {
	uid, err := d.ReadUID()
	if err != nil {
		return nil, err
	}
	f, ok := c.factories[uid]
	if !ok {
		return nil, errors.Serializationf("serial: no factory for class %s", uid)
	}
	obj := f()
	if err := obj.Load(d); err != nil {
		return nil, err
	}
	return obj, nil
}
