package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"archcore/pkg/arch"
	"archcore/pkg/machine"
	"archcore/pkg/snapshot"
)

func run(config Config, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list", "lookup", "info":
		a, err := selectArch(config.Arch)
		if err != nil {
			return err
		}
		switch cmd {
		case "list":
			return listRegisters(a, out)
		case "lookup":
			return lookupRegisters(a, rest, out)
		default:
			return printInfo(a, out)
		}
	case "save", "restore", "sessions":
		store, err := snapshot.Open(config.DataPath)
		if err != nil {
			return err
		}
		defer store.Close()
		switch cmd {
		case "save":
			a, err := selectArch(config.Arch)
			if err != nil {
				return err
			}
			id, err := store.Create(a)
			if err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			log.Printf("Saved %s session", a.Type())
			fmt.Fprintln(out, id)
			return nil
		case "restore":
			if len(rest) != 1 {
				return fmt.Errorf("restore takes exactly one session id")
			}
			id, err := uuid.Parse(rest[0])
			if err != nil {
				return fmt.Errorf("invalid session id %q: %w", rest[0], err)
			}
			session, err := store.Load(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "session:  %s\nsaved:    %s\n", session.ID, session.SavedAt.UTC().Format("2006-01-02T15:04:05Z"))
			return printInfo(session.Arch, out)
		default:
			ids, err := store.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		}
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func selectArch(name string) (arch.Arch, error) {
	if name == "" {
		return machine.Host()
	}
	return machine.ByName(name)
}

func listRegisters(a arch.Arch, out io.Writer) error {
	for _, r := range a.Registers() {
		name, err := a.RegName(r)
		if err != nil {
			return err
		}
		size, err := a.RegSize(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%3d  %-12s %d\n", r, name, size)
	}
	return nil
}

// lookupRegisters accepts register names or decimal register numbers.
func lookupRegisters(a arch.Arch, queries []string, out io.Writer) error {
	if len(queries) == 0 {
		return fmt.Errorf("lookup needs at least one register")
	}
	for _, q := range queries {
		r, err := resolve(a, q)
		if err != nil {
			return err
		}
		name, err := a.RegName(r)
		if err != nil {
			return err
		}
		size, err := a.RegSize(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: id=%d bits=%d\n", name, r, size)
	}
	return nil
}

func resolve(a arch.Arch, q string) (arch.Reg, error) {
	if n, err := strconv.ParseUint(q, 10, 16); err == nil {
		return arch.Reg(n), nil
	}
	return a.RegNum(strings.ToLower(q))
}

func printInfo(a arch.Arch, out io.Writer) error {
	uid, err := a.ClassUID()
	if err != nil {
		return err
	}
	fp, err := arch.Fingerprint(a)
	if err != nil {
		return err
	}
	sp, err := a.RegName(a.SP())
	if err != nil {
		return err
	}
	pc, err := a.RegName(a.PC())
	if err != nil {
		return err
	}
	tsc := "-"
	if r, ok := arch.TSC(a); ok {
		if tsc, err = a.RegName(r); err != nil {
			return err
		}
	}

	modes := make([]string, 0, len(a.Modes()))
	for _, m := range a.Modes() {
		modes = append(modes, m.String())
	}

	fmt.Fprintf(out, "arch:     %s\n", a.Type())
	fmt.Fprintf(out, "bits:     %d\n", a.Bits())
	fmt.Fprintf(out, "octets:   %d\n", a.Octets())
	fmt.Fprintf(out, "regs:     %d defined, %d slots\n", len(a.Registers()), a.NumRegs())
	fmt.Fprintf(out, "modes:    %s\n", strings.Join(modes, ","))
	fmt.Fprintf(out, "sp/pc:    %s/%s\n", sp, pc)
	fmt.Fprintf(out, "tsc:      %s\n", tsc)
	fmt.Fprintf(out, "class:    %s\n", uid)
	fmt.Fprintf(out, "digest:   %x\n", fp)
	return nil
}
