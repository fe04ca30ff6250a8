package arch

import (
	"golang.org/x/crypto/blake2b"

	"archcore/pkg/serial"
)

// Fingerprint hashes the type, word width and full register table of a.
// Two builds that disagree on any register name, number or width produce
// different fingerprints.
func Fingerprint(a Arch) ([32]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}, err
	}
	h.Write(serial.EncodeLittleEndian(4, uint64(a.Type())))
	h.Write(serial.EncodeLittleEndian(4, uint64(a.Bits())))
	for _, r := range a.Registers() {
		name, err := a.RegName(r)
		if err != nil {
			return [32]byte{}, err
		}
		size, err := a.RegSize(r)
		if err != nil {
			return [32]byte{}, err
		}
		h.Write(serial.EncodeLittleEndian(2, uint64(r)))
		h.Write(serial.EncodeGeneralNatural(uint64(len(name))))
		h.Write([]byte(name))
		h.Write(serial.EncodeLittleEndian(4, uint64(size)))
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
