package cpu

import "strings"

// Request identifies one of the asynchronous request lines the core samples
// at instruction boundaries.
type Request uint8

const (
	RequestReset Request = iota
	RequestNMIMultiface
	RequestNMIDivMMC
	RequestIRQFrame
	RequestIRQLine
)

var requestNames = [...]string{"reset", "nmi-multiface", "nmi-divmmc", "irq-frame", "irq-line"}

func (r Request) String() string {
	if int(r) < len(requestNames) {
		return requestNames[r]
	}
	return "unknown"
}

// NMISource selects one of the two non-maskable interrupt lines.
type NMISource uint8

const (
	// NMIMultiface is the debug hardware NMI. Servicing it activates the
	// Multiface peripheral.
	NMIMultiface NMISource = iota
	NMIDivMMC
)

func (s NMISource) request() Request {
	if s == NMIMultiface {
		return RequestNMIMultiface
	}
	return RequestNMIDivMMC
}

// IRQSource selects one of the two maskable interrupt lines.
type IRQSource uint8

const (
	IRQFrame IRQSource = iota
	IRQLine
)

func (s IRQSource) request() Request {
	if s == IRQFrame {
		return RequestIRQFrame
	}
	return RequestIRQLine
}

// RequestSet is the set of pending requests.
type RequestSet uint8

func (s RequestSet) Has(r Request) bool {
	return s&(1<<r) != 0
}

func (s *RequestSet) add(r Request) {
	*s |= 1 << r
}

func (s *RequestSet) remove(r Request) {
	*s &^= 1 << r
}

// Empty reports whether no request is pending.
func (s RequestSet) Empty() bool {
	return s == 0
}

func (s RequestSet) anyNMI() bool {
	return s.Has(RequestNMIMultiface) || s.Has(RequestNMIDivMMC)
}

func (s RequestSet) anyIRQ() bool {
	return s.Has(RequestIRQFrame) || s.Has(RequestIRQLine)
}

func (s RequestSet) String() string {
	var names []string
	for r := RequestReset; r <= RequestIRQLine; r++ {
		if s.Has(r) {
			names = append(names, r.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Service is the class of request to handle at an instruction boundary.
type Service int

const (
	ServiceNone Service = iota
	ServiceReset
	ServiceNMI
	ServiceIRQ
)

func (s Service) String() string {
	switch s {
	case ServiceReset:
		return "reset"
	case ServiceNMI:
		return "nmi"
	case ServiceIRQ:
		return "irq"
	}
	return "none"
}

// Resolve picks the one class of request to service now. Reset beats NMI
// beats IRQ. A pending IRQ is only accepted when IFF1 is set and the
// post-EI accept delay has run out; otherwise the instruction executes.
func Resolve(pending RequestSet, iff1 bool, acceptDelay int) Service {
	switch {
	case pending.Has(RequestReset):
		return ServiceReset
	case pending.anyNMI():
		return ServiceNMI
	case pending.anyIRQ() && iff1 && acceptDelay == 0:
		return ServiceIRQ
	}
	return ServiceNone
}
