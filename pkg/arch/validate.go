package arch

import "fmt"

// Validate checks that a's descriptor table and width rule agree: every
// register round-trips by name, has a positive width, fits in the value
// store, and the distinguished registers are all present.
func Validate(a Arch) error {
	regs := a.Registers()
	if len(regs) == 0 {
		return fmt.Errorf("%s: empty register table", a.Type())
	}
	if a.Bits() <= 0 || a.Bits()%8 != 0 {
		return fmt.Errorf("%s: invalid bit width %d", a.Type(), a.Bits())
	}

	for _, r := range regs {
		name, err := a.RegName(r)
		if err != nil {
			return err
		}
		back, err := a.RegNum(name)
		if err != nil {
			return err
		}
		if back != r {
			return fmt.Errorf("%s: register %s maps to %d, expected %d", a.Type(), name, back, r)
		}
		size, err := a.RegSize(r)
		if err != nil {
			return fmt.Errorf("%s: register %s has no width rule: %w", a.Type(), name, err)
		}
		if size <= 0 {
			return fmt.Errorf("%s: register %s has width %d", a.Type(), name, size)
		}
		if int(r) >= a.NumRegs() {
			return fmt.Errorf("%s: register %s (%d) exceeds register count %d", a.Type(), name, r, a.NumRegs())
		}
	}

	special := map[string]Reg{"sp": a.SP(), "pc": a.PC()}
	if tsc, ok := TSC(a); ok {
		special["tsc"] = tsc
	}
	for role, r := range special {
		if _, err := a.RegName(r); err != nil {
			return fmt.Errorf("%s: %s register: %w", a.Type(), role, err)
		}
	}
	return nil
}
