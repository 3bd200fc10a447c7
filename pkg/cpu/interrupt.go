package cpu

// serviceReset restores the power-on state. Pending requests, HALT, the EI
// delay and any latched fault are all dropped.
func (c *CPU) serviceReset() {
	c.regs.reset()
	c.pending = 0
	c.acceptDelay = 0
	c.halted = false
	c.carried = false
	c.fault = nil
	c.logf("reset")
	c.tick(3)
}

// serviceNMI pushes PC, or saves it aside in stackless mode, and jumps to
// 0066h. IFF1 is saved in IFF2 so RETN can restore it. Both NMI latches clear
// together.
func (c *CPU) serviceNMI() {
	multiface := c.pending.Has(RequestNMIMultiface)
	c.pending.remove(RequestNMIMultiface)
	c.pending.remove(RequestNMIDivMMC)

	c.regs.IFF2 = c.regs.IFF1
	c.regs.IFF1 = false
	c.halted = false
	c.carried = false
	c.regs.incrementR()

	c.tick(5)
	if c.stackless() {
		c.cfg.Stackless.SaveReturn(c.regs.PC.Word())
		c.tick(6)
	} else {
		c.push(c.regs.PC.Word())
	}
	c.regs.PC.Set(0x0066)
	c.regs.WZ = c.regs.PC

	if multiface {
		c.logf("nmi (multiface)")
		if c.cfg.Multiface != nil {
			c.cfg.Multiface()
		}
	} else {
		c.logf("nmi (divmmc)")
	}
}

// serviceIRQ accepts a maskable interrupt. The line itself stays asserted;
// the device owning it is responsible for releasing it.
func (c *CPU) serviceIRQ() {
	c.regs.IFF1, c.regs.IFF2 = false, false
	c.halted = false
	c.carried = false
	c.regs.incrementR()

	c.tick(7)
	c.push(c.regs.PC.Word())

	switch c.regs.IM {
	case IM2:
		vector := uint16(c.regs.I())<<8 | 0xFF
		c.regs.PC.Set(c.readWord(vector))
	default:
		// no device drives the data bus, so IM 0 executes RST 38h like IM 1
		c.regs.PC.Set(0x0038)
	}
	c.regs.WZ = c.regs.PC
}
