package arch

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"archcore/pkg/errors"
	"archcore/pkg/serial"
)

// toyArch is a two-register architecture; widthless lists registers that
// are deliberately missing from its width rule.
type toyArch struct {
	Base
	widthless map[Reg]bool
}

func newToy(typ Type, widthless ...Reg) *toyArch {
	a := &toyArch{
		Base:      NewBase(typ, 16, 3, []CPUMode{ModeA32}, map[string]Reg{"a": 0, "s": 1, "p": 2}),
		widthless: map[Reg]bool{},
	}
	for _, r := range widthless {
		a.widthless[r] = true
	}
	return a
}

func (a *toyArch) RegSize(r Reg) (int, error) {
	if r > 2 || a.widthless[r] {
		return 0, errors.UnsupportedRegisterf("toy: unsupported register number: %d", r)
	}
	return 16, nil
}

func (a *toyArch) SP() Reg { return 1 }
func (a *toyArch) PC() Reg { return 2 }

func TestParseType(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeARM32, TypeARM64} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	for alias, want := range map[string]Type{"arm": TypeARM32, "AArch64": TypeARM64, " arm64 ": TypeARM64} {
		if got, err := ParseType(alias); err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v; want %v", alias, got, err, want)
		}
	}
	if _, err := ParseType("x86"); err == nil {
		t.Error("ParseType(x86) should fail")
	}
}

func TestBaseLookups(t *testing.T) {
	a := newToy(TypeARM32)

	if a.Octets() != 2 || a.Bits() != 16 {
		t.Errorf("bits/octets = %d/%d", a.Bits(), a.Octets())
	}
	if diff := cmp.Diff([]Reg{0, 1, 2}, a.Registers()); diff != "" {
		t.Errorf("Registers mismatch (-want +got):\n%s", diff)
	}
	if r, err := a.RegNum("s"); err != nil || r != 1 {
		t.Errorf("RegNum(s) = %d, %v", r, err)
	}
	if name, err := a.RegName(2); err != nil || name != "p" {
		t.Errorf("RegName(2) = %q, %v", name, err)
	}
	if _, err := a.RegNum("q"); !errors.IsUnknownRegister(err) {
		t.Errorf("RegNum(q) err = %v, want unknown register", err)
	}
	if _, err := a.RegName(7); !errors.IsUnknownRegister(err) {
		t.Errorf("RegName(7) err = %v, want unknown register", err)
	}
	if !a.SupportsMode(ModeA32) || a.SupportsMode(ModeA64) {
		t.Errorf("unexpected mode support: %v", a.Modes())
	}
}

func TestBaseReturnsCopies(t *testing.T) {
	a := newToy(TypeARM32)
	regs := a.Registers()
	regs[0] = 99
	modes := a.Modes()
	modes[0] = ModeA64
	if a.Registers()[0] != 0 || a.Modes()[0] != ModeA32 {
		t.Error("caller mutation leaked into architecture")
	}
}

func TestNewBasePanicsOnSharedNumber(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for two names sharing a number")
		}
	}()
	NewBase(TypeARM32, 32, 2, nil, map[string]Reg{"a": 0, "b": 0})
}

func TestClassUID(t *testing.T) {
	tests := []struct {
		typ  Type
		want serial.UID
	}{
		{TypeNone, serial.ClassArchNone},
		{TypeARM32, serial.ClassArchARM},
		{TypeARM64, serial.ClassArchARM64},
	}
	for _, tt := range tests {
		got, err := newToy(tt.typ).ClassUID()
		if err != nil || got != tt.want {
			t.Errorf("%s: ClassUID() = %v, %v; want %v", tt.typ, got, err, tt.want)
		}
	}

	if _, err := newToy(Type(42)).ClassUID(); !errors.IsSerialization(err) {
		t.Errorf("unmapped type: err = %v, want serialization error", err)
	}
}

func TestDumpLoadWritesEmptyMarker(t *testing.T) {
	a := newToy(TypeARM32)
	var buf bytes.Buffer
	if err := a.Dump(serial.NewSerializer(&buf)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Fatal("Dump wrote nothing; an explicit empty marker is required")
	}

	b := newToy(TypeARM32)
	if err := b.Load(serial.NewDeserializer(&buf)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Load left %d bytes unread", buf.Len())
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(newToy(TypeARM32)); err != nil {
		t.Errorf("Validate(toy) = %v", err)
	}
	if err := Validate(newToy(TypeARM32, 0)); err == nil || !errors.IsUnsupportedRegister(err) {
		t.Errorf("missing width rule: err = %v, want unsupported register", err)
	}
}

func TestValidateRejectsOutOfTableSpecial(t *testing.T) {
	a := &badSP{toyArch: newToy(TypeARM32)}
	if err := Validate(a); !errors.IsUnknownRegister(err) {
		t.Errorf("err = %v, want unknown register for sp", err)
	}
}

type badSP struct{ *toyArch }

func (a *badSP) SP() Reg { return 9 }

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(newToy(TypeARM32))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fingerprint(newToy(TypeARM32))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("fingerprint is not deterministic")
	}
	c, err := Fingerprint(newToy(TypeARM64))
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("fingerprint ignores architecture type")
	}
	if _, err := Fingerprint(newToy(TypeARM32, 1)); !errors.IsUnsupportedRegister(err) {
		t.Errorf("err = %v, want unsupported register", err)
	}
}

func TestTSC(t *testing.T) {
	if _, ok := TSC(newToy(TypeARM32)); ok {
		t.Error("toy architecture has no timestamp counter")
	}
}
