package cpu

// Harness edits the register file of one core. Only the code that built the
// core holds it; devices given the *CPU can raise requests but never write
// registers.
type Harness struct {
	c *CPU
}

// NewHarness creates a core like New and returns the Harness for it.
func NewHarness(bus Bus, cfg Config) (*CPU, *Harness) {
	c := New(bus, cfg)
	return c, &Harness{c: c}
}

// Edit calls fn with the live register file. Call it between steps only.
// Moving PC drops a prefix carried over from the last step.
func (h *Harness) Edit(fn func(r *Registers)) {
	pc := h.c.regs.PC
	fn(&h.c.regs)
	if h.c.regs.PC != pc {
		h.c.carried = false
	}
}
