package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

// decodeText decodes a single instruction from data and renders it, failing
// the test on any decode error.
func decodeText(t *testing.T, data []uint8) string {
	t.Helper()
	d := NewDecoder()
	cur := NewCursor(data, 0)
	ins, err := d.Decode(cur)
	assert.NoError(t, err)
	return NewPrinter().String(ins)
}

func TestDecode_Forms(t *testing.T) {
	tests := []struct {
		name string
		data []uint8
		want string
	}{
		{"mov reg,imm16", []uint8{0xB8, 0x01, 0x00}, "mov ax, 1"},
		{"mov reg,imm8", []uint8{0xB0, 0x05}, "mov al, 5"},
		{"mov r/m,reg", []uint8{0x89, 0xD8}, "mov ax, bx"},
		{"mov reg,r/m (d bit)", []uint8{0x8B, 0xD8}, "mov bx, ax"},
		{"mov acc,[addr]", []uint8{0xA1, 0x00, 0x10}, "mov ax, [4096]"},
		{"mov [addr],acc", []uint8{0xA3, 0x00, 0x10}, "mov [4096], ax"},
		{"mov mem,imm word", []uint8{0xC7, 0x06, 0x00, 0x10, 0x02, 0x00}, "mov word [4096], 2"},
		{"mov sreg,r/m", []uint8{0x8E, 0xD8}, "mov ds, ax"},
		{"mov r/m,sreg", []uint8{0x8C, 0xD8}, "mov ax, ds"},
		{"push reg", []uint8{0x50}, "push ax"},
		{"pop reg", []uint8{0x58}, "pop ax"},
		{"push sreg", []uint8{0x06}, "push es"},
		{"pop sreg", []uint8{0x1F}, "pop ds"},
		{"pop cs", []uint8{0x0F}, "pop cs"},
		{"pop r/m16", []uint8{0x8F, 0xC0}, "pop ax"},
		{"xchg r/m,reg", []uint8{0x87, 0xD8}, "xchg ax, bx"},
		{"xchg acc,reg", []uint8{0x93}, "xchg ax, bx"},
		{"in fixed port", []uint8{0xE4, 0x60}, "in al, 96"},
		{"out fixed port", []uint8{0xE6, 0x60}, "out 96, al"},
		{"in via dx", []uint8{0xEC}, "in al, dx"},
		{"xlat", []uint8{0xD7}, "xlat"},
		{"lea", []uint8{0x8D, 0x00}, "lea ax, [bx+si]"},
		{"lds", []uint8{0xC5, 0x00}, "lds ax, [bx+si]"},
		{"les", []uint8{0xC4, 0x00}, "les ax, [bx+si]"},
		{"lahf", []uint8{0x9F}, "lahf"},
		{"sahf", []uint8{0x9E}, "sahf"},
		{"pushf", []uint8{0x9C}, "pushf"},
		{"popf", []uint8{0x9D}, "popf"},
		{"add r/m,reg", []uint8{0x01, 0xD8}, "add ax, bx"},
		{"add acc,imm", []uint8{0x05, 0x01, 0x00}, "add ax, 1"},
		{"add r/m imm (sign extend)", []uint8{0x83, 0xC0, 0xFF}, "add ax, -1"},
		{"add mem imm unsigned byte", []uint8{0x80, 0x00, 0x05}, "add byte [bx+si], 5"},
		{"inc reg", []uint8{0x40}, "inc ax"},
		{"dec reg", []uint8{0x48}, "dec ax"},
		{"daa", []uint8{0x27}, "daa"},
		{"das", []uint8{0x2F}, "das"},
		{"aaa", []uint8{0x37}, "aaa"},
		{"aas", []uint8{0x3F}, "aas"},
		{"cmp acc,imm", []uint8{0x3D, 0x00, 0x00}, "cmp ax, 0"},
		{"mul", []uint8{0xF7, 0xE0}, "mul ax"},
		{"imul", []uint8{0xF7, 0xE8}, "imul ax"},
		{"aam", []uint8{0xD4, 0x0A}, "aam"},
		{"aad", []uint8{0xD5, 0x0A}, "aad"},
		{"div", []uint8{0xF7, 0xF0}, "div ax"},
		{"cbw", []uint8{0x98}, "cbw"},
		{"cwd", []uint8{0x99}, "cwd"},
		{"not r/m", []uint8{0xF7, 0xD0}, "not ax"},
		{"test r/m,reg", []uint8{0x85, 0xD8}, "test ax, bx"},
		{"test acc,imm", []uint8{0xA9, 0x01, 0x00}, "test ax, 1"},
		{"shl count1", []uint8{0xD1, 0xE0}, "shl ax, 1"},
		{"shr by CL", []uint8{0xD3, 0xE8}, "shr ax, cl"},
		{"rol", []uint8{0xD1, 0xC0}, "rol ax, 1"},
		{"and r/m,reg", []uint8{0x21, 0xD8}, "and ax, bx"},
		{"or r/m,reg", []uint8{0x09, 0xD8}, "or ax, bx"},
		{"xor r/m,reg", []uint8{0x31, 0xD8}, "xor ax, bx"},
		{"movsb", []uint8{0xA4}, "movsb"},
		{"movsw", []uint8{0xA5}, "movsw"},
		{"cmpsb", []uint8{0xA6}, "cmpsb"},
		{"stosb", []uint8{0xAA}, "stosb"},
		{"lodsw", []uint8{0xAD}, "lodsw"},
		{"scasb", []uint8{0xAE}, "scasb"},
		{"call near direct", []uint8{0xE8, 0x00, 0x00}, "call $+3"},
		{"jmp near direct", []uint8{0xE9, 0x00, 0x00}, "jmp $+3"},
		{"jmp short", []uint8{0xEB, 0xFE}, "jmp $+0"},
		{"call far direct", []uint8{0x9A, 0x00, 0x01, 0x00, 0x10}, "call 4096:256"},
		{"ret near", []uint8{0xC3}, "ret"},
		{"ret near imm", []uint8{0xC2, 0x02, 0x00}, "ret 2"},
		{"retf", []uint8{0xCB}, "retf"},
		{"int3", []uint8{0xCC}, "int 3"},
		{"int imm8", []uint8{0xCD, 0x21}, "int 33"},
		{"into", []uint8{0xCE}, "into"},
		{"iret", []uint8{0xCF}, "iret"},
		{"je short", []uint8{0x74, 0x02}, "je $+4"},
		{"jne short", []uint8{0x75, 0xFE}, "jne $+0"},
		{"loop", []uint8{0xE2, 0xFD}, "loop $-1"},
		{"loopz", []uint8{0xE1, 0xFD}, "loopz $-1"},
		{"loopnz", []uint8{0xE0, 0xFD}, "loopnz $-1"},
		{"jcxz", []uint8{0xE3, 0xFD}, "jcxz $-1"},
		{"clc", []uint8{0xF8}, "clc"},
		{"cmc", []uint8{0xF5}, "cmc"},
		{"stc", []uint8{0xF9}, "stc"},
		{"cld", []uint8{0xFC}, "cld"},
		{"std", []uint8{0xFD}, "std"},
		{"cli", []uint8{0xFA}, "cli"},
		{"sti", []uint8{0xFB}, "sti"},
		{"hlt", []uint8{0xF4}, "hlt"},
		{"wait", []uint8{0x9B}, "wait"},
		{"inc r/m group5", []uint8{0xFF, 0xC0}, "inc ax"},
		{"dec r/m group5", []uint8{0xFF, 0xC8}, "dec ax"},
		{"call r/m group5", []uint8{0xFF, 0xD0}, "call ax"},
		{"jmp r/m group5", []uint8{0xFF, 0xE0}, "jmp ax"},
		{"push r/m group5", []uint8{0xFF, 0xF0}, "push ax"},
		{"call far indirect", []uint8{0xFF, 0x18}, "call far [bx+si]"},
		{"jmp far indirect", []uint8{0xFF, 0x28}, "jmp far [bx+si]"},
		{"inc r/m8 group4", []uint8{0xFE, 0xC0}, "inc al"},
		{"dec r/m8 group4", []uint8{0xFE, 0xC8}, "dec al"},
		{"esc", []uint8{0xD8, 0x00}, "esc 0, [bx+si]"},
		{"lock mov es:[bx],al", []uint8{0xF0, 0x26, 0x88, 0x07}, "lock mov es:[bx], al"},
		{"segment override ds", []uint8{0x3E, 0x88, 0x07}, "mov ds:[bx], al"},
		{"rep movsb", []uint8{0xF3, 0xA4}, "rep movsb"},
		{"repe cmpsb", []uint8{0xF3, 0xA6}, "repe cmpsb"},
		{"repne cmpsb", []uint8{0xF2, 0xA6}, "repne cmpsb"},
		{"repne scasb", []uint8{0xF2, 0xAE}, "repne scasb"},
		{"mem disp8 positive", []uint8{0x8B, 0x40, 0x04}, "mov ax, [bx+si+4]"},
		{"mem disp16 negative", []uint8{0x8B, 0x80, 0xFC, 0xFF}, "mov ax, [bx+si-4]"},
		{"direct address mod00 rm110", []uint8{0x8B, 0x06, 0x00, 0x10}, "mov ax, [4096]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeText(t, tt.data)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_InstructionLengthAndAddress(t *testing.T) {
	d := NewDecoder()
	cur := NewCursor([]uint8{0xB8, 0x01, 0x00, 0xBB, 0x02, 0x00}, 0)

	ins1, err := d.Decode(cur)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), ins1.Address)
	assert.Equal(t, 3, ins1.Length)

	ins2, err := d.Decode(cur)
	assert.NoError(t, err)
	assert.Equal(t, uint32(3), ins2.Address)
	assert.Equal(t, 3, ins2.Length)
}

func TestDecode_ShortReadReportsContext(t *testing.T) {
	d := NewDecoder()
	// MOV r/m,reg opcode with no ModR/M byte following.
	cur := NewCursor([]uint8{0x89}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestDecode_UnknownOpcode(t *testing.T) {
	d := NewDecoder()
	// 0x60 is not assigned on the base 8086.
	cur := NewCursor([]uint8{0x60}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestDecode_IllegalSubOpGroup2(t *testing.T) {
	d := NewDecoder()
	// 0xD1 /6 is reserved in the shift/rotate group.
	cur := NewCursor([]uint8{0xD1, 0xF0}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrIllegalSubOp)
}

func TestDecode_IllegalSubOpGroup3(t *testing.T) {
	d := NewDecoder()
	// 0xF7 /1 is reserved in the unary group.
	cur := NewCursor([]uint8{0xF7, 0xC8}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrIllegalSubOp)
}

func TestDecode_IllegalSubOpGroup5(t *testing.T) {
	d := NewDecoder()
	// 0xFF /7 is reserved.
	cur := NewCursor([]uint8{0xFF, 0xF8}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrIllegalSubOp)
}

func TestDecode_IllegalSegmentSelector(t *testing.T) {
	d := NewDecoder()
	// 0x8C /4 has reg > 3, illegal for a segment register selector.
	cur := NewCursor([]uint8{0x8C, 0x20}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrIllegalSegmentSelector)
}

func TestDecode_IllegalSecondByte(t *testing.T) {
	d := NewDecoder()
	cur := NewCursor([]uint8{0xD4, 0x0B}, 0)
	_, err := d.Decode(cur)
	assert.ErrorIs(t, err, ErrIllegalSecondByte)
}

func TestDecode_RepPrefixScoping(t *testing.T) {
	// REP applies to exactly the one string instruction that follows it; a
	// second decode call starts with no prefix state carried over.
	d := NewDecoder()
	cur := NewCursor([]uint8{0xF3, 0xA4, 0xA4}, 0)

	ins1, err := d.Decode(cur)
	assert.NoError(t, err)
	assert.Equal(t, Rep, ins1.Rep)

	ins2, err := d.Decode(cur)
	assert.NoError(t, err)
	assert.Equal(t, RepNone, ins2.Rep)
}

func TestDecode_LabelDisplacementFoldsInLength(t *testing.T) {
	// A short jump's label renders relative to the end of its own
	// two-byte encoding, i.e. "$+N+2" folded into one value.
	d := NewDecoder()
	cur := NewCursor([]uint8{0xEB, 0x00}, 0) // jmp $+2
	ins, err := d.Decode(cur)
	assert.NoError(t, err)
	lbl, ok := ins.Dest.(Label)
	assert.True(t, ok)
	assert.Equal(t, int16(2), lbl.Disp)
}
