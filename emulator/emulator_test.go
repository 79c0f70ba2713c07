package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/sdb/config"
	"github.com/ezrec/sdb/isa/riscv32"
	"github.com/ezrec/sdb/memory"
)

const forever = ^uint64(0)

func newTestEmulator(t *testing.T, words []uint32) (emu *Emulator, output *bytes.Buffer) {
	cfg := config.Default()
	cfg.Memory.Size = 0x1000

	emu = NewEmulator(cfg)
	output = &bytes.Buffer{}
	emu.Output = output

	if words == nil {
		_, err := emu.LoadBuiltin()
		require.NoError(t, err)
	} else {
		_, err := emu.Memory.LoadWords(words)
		require.NoError(t, err)
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(config.Default())

	assert.False(emu.Verbose)
	assert.Equal(STATE_STOP, emu.State)
	assert.Equal(uint32(memory.MBASE), emu.Cpu.Pc)
	assert.Equal(10, emu.MaxInstToPrint)
	assert.Len(emu.Memory.Data, memory.MSIZE)
	assert.False(emu.GoodExit())

	value, ok := emu.ValueOf("pc")
	assert.True(ok)
	assert.Equal(uint32(memory.MBASE), value)
}

func TestEmulatorState(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("running", STATE_RUNNING.String())
	assert.Equal("quit", STATE_QUIT.String())
	assert.Equal("State(9)", State(9).String())
}

func TestEmulatorBuiltin(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, nil)

	err := emu.Exec(2)
	assert.NoError(err)
	assert.Equal(STATE_STOP, emu.State)
	assert.Equal(uint32(memory.MBASE+8), emu.Cpu.Pc)
	assert.Equal("0x80000000: 97 02 00 00\n0x80000004: 23 88 02 00\n", output.String())

	output.Reset()
	err = emu.Exec(forever)
	assert.NoError(err)
	assert.Equal(STATE_END, emu.State)
	assert.Equal(uint32(memory.MBASE+12), emu.HaltPc)
	assert.Equal(uint64(4), emu.Instructions)
	assert.True(emu.GoodExit())

	text := output.String()
	assert.Contains(text, "sdb: HIT GOOD TRAP at pc = 0x8000000c\n")
	assert.Contains(text, "total guest instructions = 4\n")
	assert.NotContains(text, "0x80000008:")

	err = emu.Exec(1)
	assert.ErrorIs(err, ErrEnded)
	assert.Equal(uint64(4), emu.Instructions)
}

func TestEmulatorBadTrap(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, []uint32{0x00000013, INST_EBREAK})
	emu.Cpu.Gpr[riscv32.REG_A0] = 3

	err := emu.Exec(forever)
	assert.NoError(err)
	assert.Equal(STATE_END, emu.State)
	assert.Equal(uint32(3), emu.HaltRet)
	assert.False(emu.GoodExit())

	text := output.String()
	assert.Contains(text, "    0x80000000: 13 00 00 00\n")
	assert.Contains(text, "--> 0x80000004: 73 00 10 00\n")
	assert.Contains(text, "sdb: HIT BAD TRAP at pc = 0x80000004\n")
}

func TestEmulatorAbort(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, []uint32{})
	emu.Cpu.Pc = memory.MBASE + 0x1000

	err := emu.Exec(forever)
	assert.Error(err)
	assert.ErrorIs(err, memory.ErrOutOfBound{})

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(uint32(memory.MBASE+0x1000), runtime.Pc)

	assert.Equal(STATE_ABORT, emu.State)
	assert.False(emu.GoodExit())
	assert.Contains(output.String(), "sdb: ABORT at pc = 0x80001000\n")
}

func TestEmulatorWatch(t *testing.T) {
	assert := assert.New(t)

	emu, output := newTestEmulator(t, nil)

	calls := 0
	emu.Watch = func() bool {
		calls++
		return calls == 2
	}

	err := emu.Exec(forever)
	assert.NoError(err)
	assert.Equal(STATE_STOP, emu.State)
	assert.Equal(uint32(memory.MBASE+8), emu.Cpu.Pc)
	assert.Empty(output.String())

	emu.Watch = nil
	err = emu.Exec(forever)
	assert.NoError(err)
	assert.Equal(STATE_END, emu.State)
}

func TestEmulatorTraces(t *testing.T) {
	assert := assert.New(t)

	words := make([]uint32, ITRACE_SIZE+4)
	emu, _ := newTestEmulator(t, words)

	assert.Empty(emu.Traces())

	assert.NoError(emu.Exec(uint64(len(words))))
	traces := emu.Traces()
	assert.Len(traces, ITRACE_SIZE)
	assert.Equal(uint32(memory.MBASE+4*4), traces[0].Pc)
	assert.Equal(uint32(memory.MBASE+4*(ITRACE_SIZE+3)), traces[ITRACE_SIZE-1].Pc)

	emu.Reset()
	assert.Empty(emu.Traces())
	assert.Equal(uint32(memory.MBASE), emu.Cpu.Pc)
}

func TestEmulatorQuit(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, nil)
	emu.Quit()
	assert.True(emu.GoodExit())
	assert.ErrorIs(emu.Exec(1), ErrEnded)
}

func TestEmulatorLoad(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t, []uint32{})

	size, err := emu.Load(bytes.NewReader([]byte{0x73, 0x00, 0x10, 0x00}))
	assert.NoError(err)
	assert.Equal(4, size)

	var stats strings.Builder
	assert.NoError(emu.Exec(1))
	assert.Equal(STATE_END, emu.State)
	emu.Statistic(&stats)
	assert.Contains(stats.String(), "total guest instructions = 1\n")

	_, err = emu.Load(bytes.NewReader(make([]byte, 0x1001)))
	assert.ErrorIs(err, memory.ErrImageTooLarge{Size: 0x1001, Capacity: 0x1000})
}
