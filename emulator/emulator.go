// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/sdb/config"
	"github.com/ezrec/sdb/isa/riscv32"
	"github.com/ezrec/sdb/memory"
)

//go:generate go tool stringer -linecomment -type=State

// State is the run state of the emulator.
type State int

const (
	STATE_RUNNING = State(iota) // running
	STATE_STOP                  // stop
	STATE_END                   // end
	STATE_ABORT                 // abort
	STATE_QUIT                  // quit
)

const (
	INST_EBREAK = 0x00100073 // Trap instruction; a0 holds the halt code.
	ITRACE_SIZE = 16         // Instructions kept in the trace ring.
)

// Built-in image, run when no image is loaded.
var builtinImage = []uint32{
	0x00000297, // auipc t0,0
	0x00028823, // sb    zero,16(t0)
	0x0102c503, // lbu   a0,16(t0)
	0x00100073, // ebreak
	0xdeadbeef, // data
}

var logger logrus.FieldLogger = logrus.New()

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { logger = l }

// Trace is an executed instruction.
type Trace struct {
	Pc   uint32
	Inst uint32
}

func (tr Trace) String() string {
	return fmt.Sprintf("0x%08x: %02x %02x %02x %02x", tr.Pc,
		byte(tr.Inst), byte(tr.Inst>>8), byte(tr.Inst>>16), byte(tr.Inst>>24))
}

// Emulator state. Registers, physical memory and the run state machine.
type Emulator struct {
	Verbose        bool         // If set, enables verbose logging.
	*riscv32.Cpu                // Register file.
	Memory         *memory.Pmem // Physical memory.
	State          State        // Run state.
	HaltPc         uint32       // Address of the trap or abort.
	HaltRet        uint32       // Halt code.
	Watch          func() bool  // Called after each instruction; true stops execution.
	Output         io.Writer    // Trace and report output.
	MaxInstToPrint int          // Exec traces each instruction when n is at most this.

	Instructions uint64        // Instructions executed since reset.
	Elapsed      time.Duration // Host time spent executing.

	trace     [ITRACE_SIZE]Trace
	traced    int
	printStep bool
}

// NewEmulator creates a new emulator.
func NewEmulator(cfg config.Config) (emu *Emulator) {
	emu = &Emulator{
		Cpu:            &riscv32.Cpu{RVE: cfg.Isa.RVE},
		Memory:         memory.New(cfg.Memory.Base, cfg.Memory.Size),
		Output:         os.Stdout,
		MaxInstToPrint: cfg.Monitor.MaxInstToPrint,
	}

	emu.Reset()

	return
}

// Reset the registers, run state and statistics. Memory is left intact.
func (emu *Emulator) Reset() {
	emu.Cpu.Reset(emu.Memory.Base)

	emu.State = STATE_STOP
	emu.HaltPc = 0
	emu.HaltRet = 0
	emu.Instructions = 0
	emu.Elapsed = 0
	emu.traced = 0
}

// LoadBuiltin loads the built-in image.
func (emu *Emulator) LoadBuiltin() (size int, err error) {
	size, err = emu.Memory.LoadWords(builtinImage)
	if err != nil {
		return
	}

	logger.Infof("no image is given, using the built-in image")
	return
}

// Load an image to the start of physical memory.
func (emu *Emulator) Load(image io.Reader) (size int, err error) {
	size, err = emu.Memory.Load(image)
	if err != nil {
		return
	}

	logger.Infof("image loaded, size = %d", size)
	return
}

// Traces returns the most recently executed instructions, oldest first.
func (emu *Emulator) Traces() (traces []Trace) {
	count := min(emu.traced, ITRACE_SIZE)
	for n := emu.traced - count; n < emu.traced; n++ {
		traces = append(traces, emu.trace[n%ITRACE_SIZE])
	}
	return
}

func (emu *Emulator) record(tr Trace) {
	emu.trace[emu.traced%ITRACE_SIZE] = tr
	emu.traced++
}

// Tick executes a single instruction.
func (emu *Emulator) Tick() (err error) {
	pc := emu.Cpu.Pc

	inst, err := emu.Memory.ReadWord(pc)
	if err != nil {
		emu.State = STATE_ABORT
		emu.HaltPc = pc
		emu.HaltRet = math.MaxUint32
		err = &ErrRuntime{Pc: pc, Err: err}
		return
	}

	tr := Trace{Pc: pc, Inst: inst}
	emu.record(tr)
	emu.Instructions++

	if emu.Verbose {
		logger.Debugf("itrace: %v", tr)
	}
	if emu.printStep {
		fmt.Fprintln(emu.Output, tr)
	}

	if inst == INST_EBREAK {
		emu.State = STATE_END
		emu.HaltPc = pc
		emu.HaltRet = emu.Cpu.Gpr[riscv32.REG_A0]
		return
	}

	emu.Cpu.Pc = pc + 4

	if emu.Watch != nil && emu.Watch() && emu.State == STATE_RUNNING {
		emu.State = STATE_STOP
	}

	return
}

// Exec runs up to n instructions, until the program ends or a watchpoint
// triggers.
func (emu *Emulator) Exec(n uint64) (err error) {
	switch emu.State {
	case STATE_END, STATE_ABORT, STATE_QUIT:
		err = ErrEnded
		return
	}

	emu.printStep = n <= uint64(max(emu.MaxInstToPrint, 0))
	defer func() { emu.printStep = false }()

	emu.State = STATE_RUNNING

	start := time.Now()
	for ; n > 0 && emu.State == STATE_RUNNING; n-- {
		err = emu.Tick()
		if err != nil {
			break
		}
	}
	emu.Elapsed += time.Since(start)

	switch emu.State {
	case STATE_RUNNING:
		emu.State = STATE_STOP
	case STATE_END, STATE_ABORT:
		emu.report()
	}

	return
}

func (emu *Emulator) report() {
	var status string
	switch {
	case emu.State == STATE_ABORT:
		status = "ABORT"
	case emu.HaltRet == 0:
		status = "HIT GOOD TRAP"
	default:
		status = "HIT BAD TRAP"
	}

	if status != "HIT GOOD TRAP" {
		traces := emu.Traces()
		for n, tr := range traces {
			marker := "    "
			if n == len(traces)-1 {
				marker = "--> "
			}
			fmt.Fprintf(emu.Output, "%s%v\n", marker, tr)
		}
	}

	fmt.Fprintf(emu.Output, "sdb: %s at pc = 0x%08x\n", status, emu.HaltPc)
	emu.Statistic(emu.Output)
}

// Statistic writes the run statistics to w.
func (emu *Emulator) Statistic(w io.Writer) {
	us := emu.Elapsed.Microseconds()
	fmt.Fprintf(w, "host time spent = %d us\n", us)
	fmt.Fprintf(w, "total guest instructions = %d\n", emu.Instructions)
	if us > 0 {
		fmt.Fprintf(w, "simulation frequency = %d inst/s\n", emu.Instructions*1000000/uint64(us))
	} else {
		fmt.Fprintln(w, "Finish running in less than 1 us and can not calculate the simulation frequency")
	}
}

// Quit marks the emulator as quit by the operator.
func (emu *Emulator) Quit() {
	emu.State = STATE_QUIT
}

// GoodExit returns true if the program ended with a zero halt code, or the
// operator quit.
func (emu *Emulator) GoodExit() bool {
	switch emu.State {
	case STATE_END:
		return emu.HaltRet == 0
	case STATE_QUIT:
		return true
	}
	return false
}
