package x86

// Mnemonic identifies an 8086/8088 instruction by its assembler mnemonic.
// The set is closed: every value the decoder can produce has an entry here
// and in mnemonicNames.
type Mnemonic uint8

// The complete 8086/8088 mnemonic set, grouped the way the Intel reference
// manual groups them.
const (
	MOV Mnemonic = iota
	PUSH
	POP
	XCHG
	IN
	OUT
	XLAT
	LEA
	LDS
	LES
	LAHF
	SAHF
	PUSHF
	POPF

	ADD
	ADC
	INC
	AAA
	DAA
	SUB
	SBB
	DEC
	NEG
	CMP
	AAS
	DAS
	MUL
	IMUL
	AAM
	DIV
	IDIV
	AAD
	CBW
	CWD

	NOT
	SHL
	SHR
	SAR
	ROL
	ROR
	RCL
	RCR
	AND
	TEST
	OR
	XOR

	REP
	MOVS
	CMPS
	SCAS
	LODS
	STOS

	CALL
	JMP
	RET
	RETF
	LOOP
	LOOPZ
	LOOPNZ
	JCXZ
	INT
	INTO
	IRET

	JO
	JNO
	JB
	JNB
	JE
	JNE
	JBE
	JA
	JS
	JNS
	JP
	JNP
	JL
	JGE
	JLE
	JG

	CLC
	CMC
	STC
	CLD
	STD
	CLI
	STI
	HLT
	WAIT
	ESC

	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{
	MOV: "mov", PUSH: "push", POP: "pop", XCHG: "xchg", IN: "in", OUT: "out",
	XLAT: "xlat", LEA: "lea", LDS: "lds", LES: "les", LAHF: "lahf", SAHF: "sahf",
	PUSHF: "pushf", POPF: "popf",

	ADD: "add", ADC: "adc", INC: "inc", AAA: "aaa", DAA: "daa", SUB: "sub",
	SBB: "sbb", DEC: "dec", NEG: "neg", CMP: "cmp", AAS: "aas", DAS: "das",
	MUL: "mul", IMUL: "imul", AAM: "aam", DIV: "div", IDIV: "idiv", AAD: "aad",
	CBW: "cbw", CWD: "cwd",

	NOT: "not", SHL: "shl", SHR: "shr", SAR: "sar", ROL: "rol", ROR: "ror",
	RCL: "rcl", RCR: "rcr", AND: "and", TEST: "test", OR: "or", XOR: "xor",

	REP: "rep", MOVS: "movs", CMPS: "cmps", SCAS: "scas", LODS: "lods", STOS: "stos",

	CALL: "call", JMP: "jmp", RET: "ret", RETF: "retf", LOOP: "loop",
	LOOPZ: "loopz", LOOPNZ: "loopnz", JCXZ: "jcxz", INT: "int", INTO: "into", IRET: "iret",

	JO: "jo", JNO: "jno", JB: "jb", JNB: "jnb", JE: "je", JNE: "jne",
	JBE: "jbe", JA: "ja", JS: "js", JNS: "jns", JP: "jp", JNP: "jnp",
	JL: "jl", JGE: "jge", JLE: "jle", JG: "jg",

	CLC: "clc", CMC: "cmc", STC: "stc", CLD: "cld", STD: "std", CLI: "cli",
	STI: "sti", HLT: "hlt", WAIT: "wait", ESC: "esc",
}

// String returns the lowercase assembler mnemonic text.
func (m Mnemonic) String() string {
	if m < mnemonicCount {
		if name := mnemonicNames[m]; name != "" {
			return name
		}
	}
	return "???"
}

// IsConditionalJump returns whether the mnemonic is a short conditional jump.
func (m Mnemonic) IsConditionalJump() bool {
	return m >= JO && m <= JG
}

// IsLoop returns whether the mnemonic is one of the LOOP family or JCXZ.
func (m Mnemonic) IsLoop() bool {
	switch m {
	case LOOP, LOOPZ, LOOPNZ, JCXZ:
		return true
	default:
		return false
	}
}

// IsString returns whether the mnemonic is a string instruction that can
// carry a REP prefix.
func (m Mnemonic) IsString() bool {
	switch m {
	case MOVS, CMPS, SCAS, LODS, STOS:
		return true
	default:
		return false
	}
}
