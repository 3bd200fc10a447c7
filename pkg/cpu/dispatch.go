package cpu

// opFunc executes one instruction after its opcode (and any prefix) has been
// fetched and charged.
type opFunc func(c *CPU)

// indexBitFunc executes a DD CB / FD CB instruction against the already
// computed address IX+d or IY+d.
type indexBitFunc func(c *CPU, addr uint16)

// Opcode tables. Every slot is filled; slots with no instruction hold
// (*CPU).undefined.
var (
	baseOps [256]opFunc
	cbOps   [256]opFunc
	edOps   [256]opFunc
	ddOps   [256]opFunc
	fdOps   [256]opFunc

	indexBitOps [256]indexBitFunc
)

const (
	prefixCB = 0xCB
	prefixDD = 0xDD
	prefixED = 0xED
	prefixFD = 0xFD
)

func init() {
	initBaseOps()
	initCBOps()
	initEDOps()
	initIndexBitOps()

	baseOps[prefixCB] = func(c *CPU) { cbOps[c.fetchOpcode()](c) }
	baseOps[prefixDD] = func(c *CPU) { ddOps[c.fetchOpcode()](c) }
	baseOps[prefixED] = func(c *CPU) { edOps[c.fetchOpcode()](c) }
	baseOps[prefixFD] = func(c *CPU) { fdOps[c.fetchOpcode()](c) }

	initIndexOps(&ddOps, func(r *Registers) *Pair { return &r.IX })
	initIndexOps(&fdOps, func(r *Registers) *Pair { return &r.IY })
	for _, t := range []*[256]opFunc{&ddOps, &fdOps} {
		t[prefixDD] = (*CPU).prefixAgain
		t[prefixED] = (*CPU).prefixAgain
		t[prefixFD] = (*CPU).prefixAgain
	}
}

func fill(table *[256]opFunc) {
	for i := range table {
		table[i] = (*CPU).undefined
	}
}

// Defined reports whether opcode has a handler in the table selected by
// prefix (0 for the base table). The base, CB, DD and FD tables are complete;
// only the ED table has holes.
func Defined(prefix, opcode uint8) bool {
	switch prefix {
	case 0, prefixCB, prefixDD, prefixFD:
		return true
	case prefixED:
		return edDefined[opcode]
	}
	return false
}

// edDefined marks the ED slots that hold an instruction. Function values
// cannot be compared so the table keeps this alongside.
var edDefined [256]bool

func defineED(op uint8, f opFunc) {
	edOps[op] = f
	edDefined[op] = true
}
