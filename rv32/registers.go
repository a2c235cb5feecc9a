package rv32

// abiNames maps a register index to its conventional assembler name,
// used by the disassembler (spec §4.1).
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// RegisterABIName returns the conventional assembler name for register
// index r, masking to the valid 5-bit range.
func RegisterABIName(r uint32) string {
	return abiNames[r&0x1f]
}

// RegisterFile holds the 32 general-purpose architectural registers.
// X[0] is hard-wired to zero: writes are discarded, reads return zero.
type RegisterFile struct {
	x [32]uint32
}

// Read returns the value of register r, masked to 5 bits.
func (f *RegisterFile) Read(r uint32) uint32 {
	r &= 0x1f
	if r == 0 {
		return 0
	}
	return f.x[r]
}

// Write assigns v to register r, masked to 5 bits. Writes to X[0] are
// silently discarded.
func (f *RegisterFile) Write(r uint32, v uint32) {
	r &= 0x1f
	if r == 0 {
		return
	}
	f.x[r] = v
}

// Snapshot returns a copy of all 32 registers, for tracing and tests.
func (f *RegisterFile) Snapshot() [32]uint32 {
	return f.x
}

// Reset zeroes every register, including the already-zero X[0].
func (f *RegisterFile) Reset() {
	f.x = [32]uint32{}
}
