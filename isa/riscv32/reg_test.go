package riscv32

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpuValueOf(t *testing.T) {
	assert := assert.New(t)

	cpu := &Cpu{}
	cpu.Reset(0x80000000)
	cpu.Gpr[REG_A0] = 7
	cpu.Gpr[2] = 0x80001000
	cpu.Gpr[31] = 0xdeadbeef

	table := [](struct {
		name  string
		value uint32
		ok    bool
	}){
		{"a0", 7, true},
		{"x10", 7, true},
		{"sp", 0x80001000, true},
		{"$0", 0, true},
		{"zero", 0, true},
		{"0", 0, true},
		{"pc", 0x80000000, true},
		{"t6", 0xdeadbeef, true},
		{"x31", 0xdeadbeef, true},
		{"x32", 0, false},
		{"x010", 0, false},
		{"zz", 0, false},
		{"", 0, false},
	}

	for _, entry := range table {
		value, ok := cpu.ValueOf(entry.name)
		assert.Equal(entry.ok, ok, entry.name)
		assert.Equal(entry.value, value, entry.name)
	}
}

func TestCpuRVE(t *testing.T) {
	assert := assert.New(t)

	cpu := &Cpu{RVE: true}
	assert.Equal(GPR_COUNT_RVE, cpu.Count())

	_, ok := cpu.ValueOf("a5")
	assert.True(ok)

	// a6 is register 16, absent in the reduced set.
	_, ok = cpu.ValueOf("a6")
	assert.False(ok)
	_, ok = cpu.ValueOf("t6")
	assert.False(ok)

	var names []string
	for name := range cpu.All() {
		names = append(names, name)
	}
	assert.Len(names, GPR_COUNT_RVE+1)
	assert.Equal("pc", names[len(names)-1])
}

func TestCpuSetValue(t *testing.T) {
	assert := assert.New(t)

	cpu := &Cpu{}
	assert.True(cpu.SetValue("a0", 42))
	assert.Equal(uint32(42), cpu.Gpr[REG_A0])

	assert.True(cpu.SetValue("$0", 42))
	assert.Equal(uint32(0), cpu.Gpr[0])

	assert.True(cpu.SetValue("pc", 0x80000004))
	assert.Equal(uint32(0x80000004), cpu.Pc)

	assert.False(cpu.SetValue("nope", 1))
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := &Cpu{}
	cpu.Reset(0x80000000)
	cpu.Gpr[REG_A0] = 255

	text := cpu.String()
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(lines, GPR_COUNT+1)
	assert.Equal("$0   0x00000000 0", lines[0])
	assert.Equal("a0   0x000000ff 255", lines[REG_A0])
	assert.Equal("pc   0x80000000 2147483648", lines[GPR_COUNT])

	for n := range GPR_COUNT {
		assert.True(strings.HasPrefix(lines[n], Name(n)), Name(n))
	}
	assert.Equal("", Name(GPR_COUNT))
}
