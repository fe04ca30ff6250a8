// Package arch describes the registers of an instruction-set architecture:
// which exist, how wide each one is, and which serve as stack pointer,
// program counter and timestamp counter. It holds no register values.
package arch

import (
	"fmt"
	"sort"
	"strings"

	"archcore/pkg/errors"
	"archcore/pkg/serial"
)

// Reg identifies a register within one architecture. The same number means
// different registers on different architectures.
type Reg uint16

type Type int

const (
	TypeNone Type = iota
	TypeARM32
	TypeARM64
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeARM32:
		return "arm32"
	case TypeARM64:
		return "arm64"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// ParseType is the inverse of Type.String. It also accepts the common
// aliases "arm" and "aarch64".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return TypeNone, nil
	case "arm32", "arm":
		return TypeARM32, nil
	case "arm64", "aarch64":
		return TypeARM64, nil
	default:
		return TypeNone, fmt.Errorf("unsupported architecture: %s", s)
	}
}

// CPUMode is an execution sub-mode an architecture can switch between.
type CPUMode int

const (
	ModeA32 CPUMode = iota // ARM
	ModeT32                // Thumb
	ModeA64                // AArch64
)

func (m CPUMode) String() string {
	switch m {
	case ModeA32:
		return "A32"
	case ModeT32:
		return "T32"
	case ModeA64:
		return "A64"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Arch is the ISA-independent view of an architecture used by the engine.
// Implementations are immutable once constructed.
type Arch interface {
	serial.Serializable

	Type() Type
	Bits() int
	Octets() int
	NumRegs() int
	Modes() []CPUMode
	SupportsMode(m CPUMode) bool

	RegName(r Reg) (string, error)
	RegNum(name string) (Reg, error)
	RegSize(r Reg) (int, error)
	Registers() []Reg

	SP() Reg
	PC() Reg
}

// TimestampCounter is implemented by architectures that define a cycle or
// timestamp counter register.
type TimestampCounter interface {
	TSC() Reg
}

// TSC returns a's timestamp counter register, if it has one.
func TSC(a Arch) (Reg, bool) {
	if t, ok := a.(TimestampCounter); ok {
		return t.TSC(), true
	}
	return 0, false
}

// Base holds the state shared by every variant. Variants embed it and add
// RegSize, SP and PC.
type Base struct {
	typ     Type
	bits    int
	numRegs int
	modes   []CPUMode
	regMap  map[string]Reg
	names   map[Reg]string
	ids     []Reg
}

// NewBase builds the descriptor table. It panics if two names share an id,
// since the reverse lookup would then be ambiguous.
func NewBase(typ Type, bits, numRegs int, modes []CPUMode, regMap map[string]Reg) Base {
	table := make(map[string]Reg, len(regMap))
	names := make(map[Reg]string, len(regMap))
	ids := make([]Reg, 0, len(regMap))
	for name, r := range regMap {
		table[name] = r
		if other, ok := names[r]; ok {
			panic(fmt.Sprintf("arch: %s and %s share register number %d", other, name, r))
		}
		names[r] = name
		ids = append(ids, r)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return Base{
		typ:     typ,
		bits:    bits,
		numRegs: numRegs,
		modes:   append([]CPUMode(nil), modes...),
		regMap:  table,
		names:   names,
		ids:     ids,
	}
}

func (b *Base) Type() Type {
	return b.typ
}

func (b *Base) Bits() int {
	return b.bits
}

// Octets returns the byte width of a native machine word.
func (b *Base) Octets() int {
	return b.bits / 8
}

// NumRegs returns the size a register value store needs for this
// architecture.
func (b *Base) NumRegs() int {
	return b.numRegs
}

func (b *Base) Modes() []CPUMode {
	return append([]CPUMode(nil), b.modes...)
}

func (b *Base) SupportsMode(m CPUMode) bool {
	for _, mode := range b.modes {
		if mode == m {
			return true
		}
	}
	return false
}

func (b *Base) RegName(r Reg) (string, error) {
	name, ok := b.names[r]
	if !ok {
		return "", errors.UnknownRegisterf("%s: unknown register number: %d", b.typ, r)
	}
	return name, nil
}

func (b *Base) RegNum(name string) (Reg, error) {
	r, ok := b.regMap[name]
	if !ok {
		return 0, errors.UnknownRegisterf("%s: unknown register name: %s", b.typ, name)
	}
	return r, nil
}

// Registers returns every register in the descriptor table in ascending
// numeric order.
func (b *Base) Registers() []Reg {
	return append([]Reg(nil), b.ids...)
}

func (b *Base) ClassUID() (serial.UID, error) {
	switch b.typ {
	case TypeARM32:
		return serial.ClassArchARM, nil
	case TypeARM64:
		return serial.ClassArchARM64, nil
	case TypeNone:
		return serial.ClassArchNone, nil
	default:
		return serial.ClassNone, errors.Serializationf("arch: unsupported arch type %s", b.typ)
	}
}

// Dump writes an empty marker: the type is carried by the class uid and
// nothing else varies.
func (b *Base) Dump(s *serial.Serializer) error {
	return s.WriteEmpty()
}

func (b *Base) Load(d *serial.Deserializer) error {
	return d.ReadEmpty()
}
