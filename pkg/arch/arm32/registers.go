package arm32

import "archcore/pkg/arch"

// Register numbers. Flags come after the core registers so the general
// purpose file stays contiguous from R0.
const (
	R0 arch.Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	SP // r13
	LR // r14
	PC // r15

	NF // negative
	ZF // zero
	CF // carry
	VF // overflow
	QF // saturation
	GE1
	GE2
	GE3
	GE4
	TF // Thumb state

	CPSR
	FPSCR

	D0
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	D8
	D9
	D10
	D11
	D12
	D13
	D14
	D15
	D16
	D17
	D18
	D19
	D20
	D21
	D22
	D23
	D24
	D25
	D26
	D27
	D28
	D29
	D30
	D31

	NumRegs = int(iota)
)

var regMap = map[string]arch.Reg{
	"r0":  R0,
	"r1":  R1,
	"r2":  R2,
	"r3":  R3,
	"r4":  R4,
	"r5":  R5,
	"r6":  R6,
	"r7":  R7,
	"r8":  R8,
	"r9":  R9,
	"r10": R10,
	"r11": R11,
	"r12": R12,
	"sp":  SP,
	"lr":  LR,
	"pc":  PC,

	"nf":  NF,
	"zf":  ZF,
	"cf":  CF,
	"vf":  VF,
	"qf":  QF,
	"ge1": GE1,
	"ge2": GE2,
	"ge3": GE3,
	"ge4": GE4,
	"tf":  TF,

	"cpsr":  CPSR,
	"fpscr": FPSCR,

	"d0":  D0,
	"d1":  D1,
	"d2":  D2,
	"d3":  D3,
	"d4":  D4,
	"d5":  D5,
	"d6":  D6,
	"d7":  D7,
	"d8":  D8,
	"d9":  D9,
	"d10": D10,
	"d11": D11,
	"d12": D12,
	"d13": D13,
	"d14": D14,
	"d15": D15,
	"d16": D16,
	"d17": D17,
	"d18": D18,
	"d19": D19,
	"d20": D20,
	"d21": D21,
	"d22": D22,
	"d23": D23,
	"d24": D24,
	"d25": D25,
	"d26": D26,
	"d27": D27,
	"d28": D28,
	"d29": D29,
	"d30": D30,
	"d31": D31,
}
