// Package riscv32 is the register model of the emulated riscv32 hart, as
// seen by the monitor.
package riscv32

import (
	"fmt"
	"iter"
	"maps"
	"strconv"
	"strings"

	"github.com/ezrec/sdb/internal"
)

const (
	GPR_COUNT     = 32 // General purpose registers in RV32I.
	GPR_COUNT_RVE = 16 // General purpose registers in RV32E.

	REG_A0 = 10 // Index of a0, the halt code on trap.
)

// Register names, by index.
var regs = [GPR_COUNT]string{
	"$0", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Alternate names accepted on lookup.
var aliases = map[string]int{
	"0":    0,
	"zero": 0,
	"fp":   8,
}

// Name returns the ABI name of a general purpose register.
func Name(index int) string {
	if index < 0 || index >= len(regs) {
		return ""
	}
	return regs[index]
}

// Cpu is the architectural register state of the hart.
type Cpu struct {
	RVE bool              // Set for the reduced 16 register configuration.
	Gpr [GPR_COUNT]uint32 // General purpose registers.
	Pc  uint32            // Program counter.
}

// Count returns the number of general purpose registers of the configuration.
func (cpu *Cpu) Count() int {
	if cpu.RVE {
		return GPR_COUNT_RVE
	}
	return GPR_COUNT
}

// Reset clears the registers and sets the program counter.
func (cpu *Cpu) Reset(pc uint32) {
	clear(cpu.Gpr[:])
	cpu.Pc = pc
}

// index resolves a register name to a general purpose register index.
func (cpu *Cpu) index(name string) (index int, ok bool) {
	index, ok = aliases[name]
	if !ok {
		for n, reg := range regs {
			if reg == name {
				index, ok = n, true
				break
			}
		}
	}

	if !ok && len(name) > 1 && name[0] == 'x' {
		v64, err := strconv.ParseUint(name[1:], 10, 8)
		if err == nil && strconv.FormatUint(v64, 10) == name[1:] {
			index, ok = int(v64), true
		}
	}

	if ok && index >= cpu.Count() {
		ok = false
	}

	return
}

// ValueOf returns the value of a register by name: an ABI name, an xN
// name, or "pc". Registers outside the active configuration are unknown.
func (cpu *Cpu) ValueOf(name string) (value uint32, ok bool) {
	if name == "pc" {
		return cpu.Pc, true
	}

	index, ok := cpu.index(name)
	if !ok {
		return
	}

	value = cpu.Gpr[index]
	return
}

// SetValue sets a register by name. Writes to $0 are discarded.
func (cpu *Cpu) SetValue(name string, value uint32) (ok bool) {
	if name == "pc" {
		cpu.Pc = value
		return true
	}

	index, ok := cpu.index(name)
	if ok && index != 0 {
		cpu.Gpr[index] = value
	}

	return
}

// All iterates over the general purpose registers of the configuration,
// followed by pc.
func (cpu *Cpu) All() iter.Seq2[string, uint32] {
	count := cpu.Count()
	return internal.IterSeq2Concat(
		internal.IterSeq2Zip(regs[:count], cpu.Gpr[:count]),
		maps.All(map[string]uint32{"pc": cpu.Pc}),
	)
}

// String returns the register display: one register per line, with the
// value in hex and decimal.
func (cpu *Cpu) String() string {
	var text strings.Builder
	for name, value := range cpu.All() {
		fmt.Fprintf(&text, "%-4s 0x%08x %d\n", name, value, value)
	}

	return text.String()
}
