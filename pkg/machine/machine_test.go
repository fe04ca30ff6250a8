package machine

import (
	"bytes"
	"sync"
	"testing"

	"archcore/pkg/arch"
	"archcore/pkg/errors"
	"archcore/pkg/serial"
)

func TestNew(t *testing.T) {
	tests := []struct {
		typ  arch.Type
		bits int
	}{
		{arch.TypeARM32, 32},
		{arch.TypeARM64, 64},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			a, err := New(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			if a.Type() != tt.typ || a.Bits() != tt.bits || a.Octets() != tt.bits/8 {
				t.Errorf("got %s with %d bits / %d octets", a.Type(), a.Bits(), a.Octets())
			}
			b, _ := New(tt.typ)
			if a != b {
				t.Error("New returned a different instance on second call")
			}
		})
	}

	for _, typ := range []arch.Type{arch.TypeNone, arch.Type(17)} {
		if _, err := New(typ); err == nil {
			t.Errorf("New(%s) should fail", typ)
		}
	}
}

func TestNewConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]arch.Arch, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := New(arch.TypeARM64)
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := a.RegNum("x0"); err != nil {
				t.Error(err)
			}
			results[i] = a
		}(i)
	}
	wg.Wait()
	for _, a := range results[1:] {
		if a != results[0] {
			t.Fatal("concurrent callers saw different instances")
		}
	}
}

func TestByName(t *testing.T) {
	a, err := ByName("aarch64")
	if err != nil || a.Type() != arch.TypeARM64 {
		t.Errorf("ByName(aarch64) = %v, %v", a, err)
	}
	if _, err := ByName("mips"); err == nil {
		t.Error("ByName(mips) should fail")
	}
}

func TestTypeForMachine(t *testing.T) {
	tests := map[string]arch.Type{
		"aarch64": arch.TypeARM64,
		"arm64":   arch.TypeARM64,
		"armv7l":  arch.TypeARM32,
		"armv6l":  arch.TypeARM32,
		"arm":     arch.TypeARM32,
	}
	for m, want := range tests {
		if got, err := typeForMachine(m); err != nil || got != want {
			t.Errorf("typeForMachine(%s) = %v, %v; want %v", m, got, err, want)
		}
	}
	if _, err := typeForMachine("x86_64"); err == nil {
		t.Error("typeForMachine(x86_64) should fail")
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, typ := range []arch.Type{arch.TypeARM32, arch.TypeARM64} {
		a, err := New(typ)
		if err != nil {
			t.Fatal(err)
		}
		data, err := Encode(a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Decode(data)
		if err != nil {
			t.Fatalf("%s: Decode: %v", typ, err)
		}
		want, _ := a.ClassUID()
		got, _ := b.ClassUID()
		if got != want || b.Type() != typ {
			t.Errorf("%s: decoded class %s type %s, want class %s", typ, got, b.Type(), want)
		}
	}
}

func TestDecodeReturnsSharedInstance(t *testing.T) {
	for _, typ := range []arch.Type{arch.TypeARM32, arch.TypeARM64} {
		a, err := New(typ)
		if err != nil {
			t.Fatal(err)
		}
		data, err := Encode(a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Decode(data)
		if err != nil {
			t.Fatalf("%s: Decode: %v", typ, err)
		}
		if b != a {
			t.Errorf("%s: Decode returned %p, want the cached instance %p", typ, b, a)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	a, _ := New(arch.TypeARM32)
	data, err := Encode(a)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string][]byte{
		"trailing bytes": append(append([]byte(nil), data...), 0x00),
		"truncated":      data[:len(data)-1],
		"empty":          nil,
		"unknown class":  encodeUID(t, serial.ClassArchNone),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(input); !errors.IsSerialization(err) {
				t.Errorf("err = %v, want serialization error", err)
			}
		})
	}
}

func encodeUID(t *testing.T, uid serial.UID) []byte {
	t.Helper()
	var buf bytes.Buffer
	s := serial.NewSerializer(&buf)
	if err := s.WriteUID(uid); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteEmpty(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCatalogueCoversVariants(t *testing.T) {
	uids := Catalogue().UIDs()
	if len(uids) != 2 || uids[0] != serial.ClassArchARM || uids[1] != serial.ClassArchARM64 {
		t.Errorf("catalogue uids = %v", uids)
	}
}
