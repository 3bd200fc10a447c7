package cpu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecodeFault matches any *DecodeFault with errors.Is.
var ErrDecodeFault = errors.New("decode fault")

// DecodeFault reports an opcode, or prefix combination, with no handler.
// Addr is the address of the first byte of the instruction, prefixes
// included, and Opcode holds every byte fetched for it.
type DecodeFault struct {
	Addr   uint16
	Opcode []uint8
}

func (f *DecodeFault) Error() string {
	var sb strings.Builder
	for _, b := range f.Opcode {
		fmt.Fprintf(&sb, "%02Xh ", b)
	}
	return fmt.Sprintf("cpu: unknown opcode %sat %04Xh", sb.String(), f.Addr)
}

func (f *DecodeFault) Is(target error) bool {
	return target == ErrDecodeFault
}
