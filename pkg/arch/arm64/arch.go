// Package arm64 is the AArch64 register model.
package arm64

import (
	"archcore/pkg/arch"
	"archcore/pkg/errors"
)

// ARM64 represents the 64-bit ARM architecture in the A64 state.
type ARM64 struct {
	arch.Base
}

var (
	_ arch.Arch             = (*ARM64)(nil)
	_ arch.TimestampCounter = (*ARM64)(nil)
)

// New returns an initialized ARM64.
func New() *ARM64 {
	return &ARM64{
		Base: arch.NewBase(arch.TypeARM64, 64, NumRegs, []arch.CPUMode{arch.ModeA64}, regMap),
	}
}

// RegSize returns the width in bits of register r in the value store.
func (a *ARM64) RegSize(r arch.Reg) (int, error) {
	switch {
	case r <= XZR:
		return 64, nil
	case r >= NF && r <= VF:
		// NZCV bits are kept one per byte
		return 8, nil
	case r == FPCR, r == FPSR:
		return 32, nil
	case r >= V0 && r <= V31:
		return 128, nil
	case r == TPIDR_EL0, r == CNTVCT_EL0:
		return 64, nil
	default:
		return 0, errors.UnsupportedRegisterf("arm64: unsupported register number: %d", r)
	}
}

func (a *ARM64) SP() arch.Reg {
	return SP
}

func (a *ARM64) PC() arch.Reg {
	return PC
}

// TSC returns the virtual counter, which the engine uses as its cycle
// counter.
func (a *ARM64) TSC() arch.Reg {
	return CNTVCT_EL0
}
