// Package arm32 is the 32-bit ARM (AArch32) register model.
package arm32

import (
	"archcore/pkg/arch"
	"archcore/pkg/errors"
)

// ARM32 represents the 32-bit ARM architecture. It supports both the ARM
// and Thumb instruction sets.
type ARM32 struct {
	arch.Base
}

var _ arch.Arch = (*ARM32)(nil)

// New returns an initialized ARM32. Besides A32 it lists the Thumb (T32)
// mode, which the tf flag switches into.
func New() *ARM32 {
	return &ARM32{
		Base: arch.NewBase(arch.TypeARM32, 32, NumRegs, []arch.CPUMode{arch.ModeA32, arch.ModeT32}, regMap),
	}
}

// RegSize returns the width in bits of register r in the value store.
// Boolean flags occupy a full byte.
func (a *ARM32) RegSize(r arch.Reg) (int, error) {
	switch {
	case r <= PC:
		return 32, nil
	case r >= NF && r <= TF:
		return 8, nil
	case r == CPSR, r == FPSCR:
		return 32, nil
	case r >= D0 && r <= D31:
		return 64, nil
	default:
		return 0, errors.UnsupportedRegisterf("arm32: unsupported register number: %d", r)
	}
}

func (a *ARM32) SP() arch.Reg {
	return SP
}

func (a *ARM32) PC() arch.Reg {
	return PC
}
