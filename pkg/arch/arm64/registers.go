package arm64

import "archcore/pkg/arch"

const (
	X0 arch.Reg = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
	X29 // frame pointer
	X30 // link register
	SP
	PC
	XZR

	NF // negative
	ZF // zero
	CF // carry
	VF // overflow

	FPCR
	FPSR

	V0
	V1
	V2
	V3
	V4
	V5
	V6
	V7
	V8
	V9
	V10
	V11
	V12
	V13
	V14
	V15
	V16
	V17
	V18
	V19
	V20
	V21
	V22
	V23
	V24
	V25
	V26
	V27
	V28
	V29
	V30
	V31

	TPIDR_EL0  // thread pointer
	CNTVCT_EL0 // virtual counter

	NumRegs = int(iota)
)

var regMap = map[string]arch.Reg{
	"x0":  X0,
	"x1":  X1,
	"x2":  X2,
	"x3":  X3,
	"x4":  X4,
	"x5":  X5,
	"x6":  X6,
	"x7":  X7,
	"x8":  X8,
	"x9":  X9,
	"x10": X10,
	"x11": X11,
	"x12": X12,
	"x13": X13,
	"x14": X14,
	"x15": X15,
	"x16": X16,
	"x17": X17,
	"x18": X18,
	"x19": X19,
	"x20": X20,
	"x21": X21,
	"x22": X22,
	"x23": X23,
	"x24": X24,
	"x25": X25,
	"x26": X26,
	"x27": X27,
	"x28": X28,
	"x29": X29,
	"x30": X30,
	"sp":  SP,
	"pc":  PC,
	"xzr": XZR,

	"nf": NF,
	"zf": ZF,
	"cf": CF,
	"vf": VF,

	"fpcr": FPCR,
	"fpsr": FPSR,

	"v0":  V0,
	"v1":  V1,
	"v2":  V2,
	"v3":  V3,
	"v4":  V4,
	"v5":  V5,
	"v6":  V6,
	"v7":  V7,
	"v8":  V8,
	"v9":  V9,
	"v10": V10,
	"v11": V11,
	"v12": V12,
	"v13": V13,
	"v14": V14,
	"v15": V15,
	"v16": V16,
	"v17": V17,
	"v18": V18,
	"v19": V19,
	"v20": V20,
	"v21": V21,
	"v22": V22,
	"v23": V23,
	"v24": V24,
	"v25": V25,
	"v26": V26,
	"v27": V27,
	"v28": V28,
	"v29": V29,
	"v30": V30,
	"v31": V31,

	"tpidr_el0":  TPIDR_EL0,
	"cntvct_el0": CNTVCT_EL0,
}
