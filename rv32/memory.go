package rv32

import (
	"io"

	"github.com/pkg/errors"
)

// Memory is the interface the CPU mediates all traffic through (spec
// §6). Hosts implement it; the CPU never assumes a concrete backing
// store. Reads never fault: unmapped bytes read as 0xFF. Multi-byte
// accesses are little-endian, defined as byte-level reads/writes in
// ascending address order (spec §3).
type Memory interface {
	ReadByte(addr uint32) uint8
	ReadHalf(addr uint32) uint16
	ReadWord(addr uint32) uint32
	WriteByte(addr uint32, v uint8)
	WriteHalf(addr uint32, v uint16)
	WriteWord(addr uint32, v uint32)

	// IllegalInstruction transitions the host's stop flag to true; pc
	// is the offending instruction's address (spec §6, §7).
	IllegalInstruction(pc uint32)
}

// Reference memory map (spec §6).
const (
	ConsoleAddr = 0x0000_0000
	RAMBase     = 0x8000_0000
	RAMSize     = 128 * 1024 * 1024
)

// ConsoleMemory is the reference host memory implementation: a 128 MiB
// RAM window at 0x8000_0000 and a single write-only MMIO console byte
// at address 0.
type ConsoleMemory struct {
	ram []byte

	Stdout io.Writer

	Stopped   bool
	StoppedPC uint32
}

// NewConsoleMemory allocates the reference RAM window and binds it to
// stdout for console output.
func NewConsoleMemory(stdout io.Writer) *ConsoleMemory {
	return &ConsoleMemory{
		ram:    make([]byte, RAMSize),
		Stdout: stdout,
	}
}

// LoadImage copies a flat binary image into RAM starting at RAMBase.
// It is read once; RAM is volatile thereafter (spec §6 "Persisted
// state").
func (m *ConsoleMemory) LoadImage(image []byte) error {
	if len(image) > RAMSize {
		return errors.Errorf("image of %d bytes exceeds %d byte RAM window", len(image), RAMSize)
	}
	copy(m.ram, image)
	return nil
}

func (m *ConsoleMemory) inRAM(addr uint32) bool {
	return addr >= RAMBase && addr-RAMBase < RAMSize
}

func (m *ConsoleMemory) ReadByte(addr uint32) uint8 {
	if m.inRAM(addr) {
		return m.ram[addr-RAMBase]
	}
	return 0xFF
}

func (m *ConsoleMemory) ReadHalf(addr uint32) uint16 {
	lo := uint16(m.ReadByte(addr))
	hi := uint16(m.ReadByte(addr + 1))
	return lo | hi<<8
}

func (m *ConsoleMemory) ReadWord(addr uint32) uint32 {
	b0 := uint32(m.ReadByte(addr))
	b1 := uint32(m.ReadByte(addr + 1))
	b2 := uint32(m.ReadByte(addr + 2))
	b3 := uint32(m.ReadByte(addr + 3))
	return b0 | b1<<8 | b2<<16 | b3<<24
}

func (m *ConsoleMemory) WriteByte(addr uint32, v uint8) {
	switch {
	case addr == ConsoleAddr:
		if m.Stdout != nil {
			m.Stdout.Write([]byte{v})
		}
	case m.inRAM(addr):
		m.ram[addr-RAMBase] = v
	default:
		// writes to unmapped addresses are discarded
	}
}

func (m *ConsoleMemory) WriteHalf(addr uint32, v uint16) {
	m.WriteByte(addr, uint8(v))
	m.WriteByte(addr+1, uint8(v>>8))
}

func (m *ConsoleMemory) WriteWord(addr uint32, v uint32) {
	m.WriteByte(addr, uint8(v))
	m.WriteByte(addr+1, uint8(v>>8))
	m.WriteByte(addr+2, uint8(v>>16))
	m.WriteByte(addr+3, uint8(v>>24))
}

func (m *ConsoleMemory) IllegalInstruction(pc uint32) {
	m.Stopped = true
	m.StoppedPC = pc
}
