// Package machine selects and rebuilds architecture variants.
package machine

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"archcore/pkg/arch"
	"archcore/pkg/arch/arm32"
	"archcore/pkg/arch/arm64"
	"archcore/pkg/errors"
	"archcore/pkg/serial"
)

type cachedArch struct {
	once sync.Once
	arch arch.Arch
	err  error
}

// One shared instance per type; the map itself is never written after init.
var archCache = map[arch.Type]*cachedArch{
	arch.TypeARM32: {},
	arch.TypeARM64: {},
}

func build(t arch.Type) (arch.Arch, error) {
	switch t {
	case arch.TypeARM32:
		return arm32.New(), nil
	case arch.TypeARM64:
		return arm64.New(), nil
	default:
		return nil, fmt.Errorf("unsupported architecture: %s", t)
	}
}

// New returns the validated architecture for t. Repeated calls return the
// same read-only instance.
func New(t arch.Type) (arch.Arch, error) {
	c, ok := archCache[t]
	if !ok {
		return nil, fmt.Errorf("unsupported architecture: %s", t)
	}
	c.once.Do(func() {
		a, err := build(t)
		if err != nil {
			c.err = err
			return
		}
		if err := arch.Validate(a); err != nil {
			c.err = fmt.Errorf("invalid register table: %w", err)
			return
		}
		c.arch = a
	})
	return c.arch, c.err
}

// ByName parses name with arch.ParseType and returns the matching
// architecture.
func ByName(name string) (arch.Arch, error) {
	t, err := arch.ParseType(name)
	if err != nil {
		return nil, err
	}
	return New(t)
}

// Host returns the architecture of the machine the process runs on.
func Host() (arch.Arch, error) {
	m, err := hostMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to detect host machine: %w", err)
	}
	t, err := typeForMachine(m)
	if err != nil {
		return nil, err
	}
	return New(t)
}

// typeForMachine maps a uname machine string or GOARCH value to a Type.
func typeForMachine(m string) (arch.Type, error) {
	m = strings.ToLower(m)
	switch {
	case m == "aarch64" || m == "arm64":
		return arch.TypeARM64, nil
	case m == "arm" || strings.HasPrefix(m, "armv"):
		return arch.TypeARM32, nil
	default:
		return arch.TypeNone, fmt.Errorf("unsupported host machine: %s", m)
	}
}

// Catalogue returns a catalogue that can rebuild every architecture variant.
func Catalogue() *serial.Catalogue {
	c := serial.NewCatalogue()
	c.Register(serial.ClassArchARM, func() serial.Serializable { return arm32.New() })
	c.Register(serial.ClassArchARM64, func() serial.Serializable { return arm64.New() })
	return c
}

// Encode serializes a as a single catalogue object.
func Encode(a arch.Arch) ([]byte, error) {
	var buf bytes.Buffer
	if err := serial.WriteObject(serial.NewSerializer(&buf), a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode rebuilds an architecture written by Encode and returns the same
// validated instance New would. Trailing bytes are an error.
func Decode(data []byte) (arch.Arch, error) {
	r := bytes.NewReader(data)
	obj, err := Catalogue().ReadObject(serial.NewDeserializer(r))
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, errors.Serializationf("extra %d bytes left after deserialization", r.Len())
	}
	loaded, ok := obj.(arch.Arch)
	if !ok {
		return nil, errors.Serializationf("decoded object %T is not an architecture", obj)
	}
	return New(loaded.Type())
}
