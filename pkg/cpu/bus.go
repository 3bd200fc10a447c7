package cpu

// Bus is everything the core sees of the machine around it: memory and I/O
// port address spaces, both byte-wide over 16-bit addresses, and the shared
// time base. None of the operations can fail.
//
// Tick is called at the point in an instruction where the cycles elapse, never
// batched at the end, so a bus implementation sampling its clock inside Read or
// In observes the same timing as the real machine.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	In(port uint16) uint8
	Out(port uint16, value uint8)
	Tick(cycles int)
}
