package serial

import (
	"bufio"
	"fmt"
	"io"

	"archcore/pkg/errors"
)

// UID is a stable class identifier written ahead of every serialized object so
// a Catalogue can rebuild the right concrete type.
type UID uint32

const (
	ClassNone UID = iota
	ClassArchNone
	ClassArchARM
	ClassArchARM64
)

func (u UID) String() string {
	switch u {
	case ClassNone:
		return "none"
	case ClassArchNone:
		return "arch_none"
	case ClassArchARM:
		return "arch_arm"
	case ClassArchARM64:
		return "arch_arm64"
	default:
		return fmt.Sprintf("uid(%d)", uint32(u))
	}
}

// Every token on the wire starts with one of these tags.
const (
	tagEmpty byte = 0xE0 + iota
	tagUID
	tagUint
	tagBytes
)

// maxBytesLen bounds WriteBytes/ReadBytes payloads.
const maxBytesLen = 1 << 24

// Serializable is implemented by anything that can be written to a Serializer
// and rebuilt from a Deserializer.
type Serializable interface {
	ClassUID() (UID, error)
	Dump(s *Serializer) error
	Load(d *Deserializer) error
}

// Serializer is the sink side of the framework. It does not own w.
type Serializer struct {
	w io.Writer
}

func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{w: w}
}

func (s *Serializer) write(b ...byte) error {
	if _, err := s.w.Write(b); err != nil {
		return errors.WrapSerialization(err, "serial: write failed")
	}
	return nil
}

// WriteEmpty writes the marker used by objects that carry no payload.
func (s *Serializer) WriteEmpty() error {
	return s.write(tagEmpty)
}

func (s *Serializer) WriteUID(uid UID) error {
	return s.write(append([]byte{tagUID}, EncodeLittleEndian(4, uint64(uid))...)...)
}

// WriteUint writes x as octets little-endian bytes. octets must be 1..8.
func (s *Serializer) WriteUint(octets int, x uint64) error {
	if octets < 1 || octets > 8 {
		return errors.Serializationf("serial: invalid integer width %d", octets)
	}
	buf := []byte{tagUint, byte(octets)}
	buf = append(buf, EncodeLittleEndian(octets, x)...)
	return s.write(buf...)
}

// WriteBytes writes a general-natural length prefix followed by b.
func (s *Serializer) WriteBytes(b []byte) error {
	if len(b) > maxBytesLen {
		return errors.Serializationf("serial: byte payload too large (%d bytes)", len(b))
	}
	buf := append([]byte{tagBytes}, EncodeGeneralNatural(uint64(len(b)))...)
	buf = append(buf, b...)
	return s.write(buf...)
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Deserializer is the source side of the framework. Readers that are not
// io.ByteReaders are wrapped in a bufio.Reader, which may read ahead.
type Deserializer struct {
	r byteReader
}

func NewDeserializer(r io.Reader) *Deserializer {
	if br, ok := r.(byteReader); ok {
		return &Deserializer{r: br}
	}
	return &Deserializer{r: bufio.NewReader(r)}
}

func (d *Deserializer) expect(tag byte) error {
	b, err := d.r.ReadByte()
	if err != nil {
		return errors.WrapSerialization(err, "serial: read tag failed")
	}
	if b != tag {
		return errors.Serializationf("serial: expected tag %#02x, got %#02x", tag, b)
	}
	return nil
}

func (d *Deserializer) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, errors.WrapSerialization(err, "serial: short read")
	}
	return buf, nil
}

// ReadEmpty consumes exactly one empty marker.
func (d *Deserializer) ReadEmpty() error {
	return d.expect(tagEmpty)
}

func (d *Deserializer) ReadUID() (UID, error) {
	if err := d.expect(tagUID); err != nil {
		return ClassNone, err
	}
	b, err := d.read(4)
	if err != nil {
		return ClassNone, err
	}
	return UID(DecodeLittleEndian(b)), nil
}

func (d *Deserializer) ReadUint(octets int) (uint64, error) {
	if err := d.expect(tagUint); err != nil {
		return 0, err
	}
	width, err := d.r.ReadByte()
	if err != nil {
		return 0, errors.WrapSerialization(err, "serial: read integer width failed")
	}
	if int(width) != octets {
		return 0, errors.Serializationf("serial: expected %d-octet integer, got %d", octets, width)
	}
	b, err := d.read(octets)
	if err != nil {
		return 0, err
	}
	return DecodeLittleEndian(b), nil
}

func (d *Deserializer) ReadBytes() ([]byte, error) {
	if err := d.expect(tagBytes); err != nil {
		return nil, err
	}
	header, err := d.r.ReadByte()
	if err != nil {
		return nil, errors.WrapSerialization(err, "serial: read length failed")
	}
	prefix := []byte{header}
	if extra := generalNaturalExtraOctets(header); extra > 0 {
		rest, err := d.read(extra)
		if err != nil {
			return nil, err
		}
		prefix = append(prefix, rest...)
	}
	n, _, ok := DecodeGeneralNatural(prefix)
	if !ok {
		return nil, errors.Serializationf("serial: malformed length prefix %x", prefix)
	}
	if n > maxBytesLen {
		return nil, errors.Serializationf("serial: byte payload too large (%d bytes)", n)
	}
	return d.read(int(n))
}
