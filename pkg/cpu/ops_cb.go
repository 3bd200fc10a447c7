package cpu

// initCBOps fills the CB table: rotates and shifts, BIT, RES and SET on a
// register (8 cycles) or on (HL) (15, BIT 12).
func initCBOps() {
	for op := 0; op < 256; op++ {
		op := uint8(op)
		group, n, r := op>>6, op>>3&0x07, op&0x07

		if r == 6 {
			cbOps[op] = cbMemory(group, n)
			continue
		}

		switch group {
		case 0:
			fn := rotOps[n]
			cbOps[op] = func(c *CPU) {
				c.setReg8(r, fn(c, c.reg8(r)))
			}
		case 1:
			cbOps[op] = func(c *CPU) {
				v := c.reg8(r)
				c.bit(n, v, v)
			}
		case 2:
			cbOps[op] = func(c *CPU) {
				c.setReg8(r, c.reg8(r)&^(1<<n))
			}
		case 3:
			cbOps[op] = func(c *CPU) {
				c.setReg8(r, c.reg8(r)|1<<n)
			}
		}
	}
}

func cbMemory(group, n uint8) opFunc {
	if group == 1 {
		return func(c *CPU) {
			v := c.read(c.regs.HL.Word())
			c.tick(1)
			c.bit(n, v, c.regs.WZ.Hi())
		}
	}
	return func(c *CPU) {
		hl := c.regs.HL.Word()
		v := c.read(hl)
		c.tick(1)
		c.write(hl, cbApply(c, group, n, v))
	}
}

// cbApply performs a rotate, RES or SET (groups 0, 2, 3) on v.
func cbApply(c *CPU, group, n, v uint8) uint8 {
	switch group {
	case 0:
		return rotOps[n](c, v)
	case 2:
		return v &^ (1 << n)
	}
	return v | 1<<n
}
