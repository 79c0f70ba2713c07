// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor is the simple debugger command layer: a line oriented
// command loop over the emulator, with expression evaluation, memory
// examination and watchpoints.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/cmd"
	"github.com/sirupsen/logrus"

	"github.com/ezrec/sdb/config"
	"github.com/ezrec/sdb/emulator"
	"github.com/ezrec/sdb/expr"
	"github.com/ezrec/sdb/translate"
)

const (
	PROMPT = "(sdb) "
)

var logger logrus.FieldLogger = logrus.New()

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { logger = l }

// Monitor state.
type Monitor struct {
	Verbose   bool               // If set, enables verbose logging.
	Config    config.Config      // Limits and batch mode.
	Emulator  *emulator.Emulator // Controlled emulator.
	Evaluator expr.Evaluator     // Expression engine bound to the registers.

	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection

	free    pool
	watches []*Watchpoint
}

// NewMonitor creates a monitor over an emulator.
func NewMonitor(cfg config.Config, emu *emulator.Emulator) (m *Monitor) {
	m = &Monitor{
		Config:   cfg,
		Emulator: emu,
		Evaluator: expr.Evaluator{
			Lexer:     cfg.Lexer(),
			Registers: emu,
		},
		output: bufio.NewWriter(io.Discard),
	}

	m.free.Reset(cfg.Monitor.Watchpoints)
	emu.Watch = m.checkWatchpoints

	return
}

// EvalForPrint evaluates an expression for display.
func (m *Monitor) EvalForPrint(text string) (value expr.Word, err error) {
	return m.Evaluator.Evaluate(text)
}

// EvalForAddress evaluates an expression to a guest address. The caller
// checks that the address is readable.
func (m *Monitor) EvalForAddress(text string) (addr expr.Word, err error) {
	addr, err = m.Evaluator.Evaluate(text)
	if err == nil && m.Verbose {
		logger.Debugf("address '%v' = 0x%08x", text, addr)
	}
	return
}

// Examine reads count words starting at the address of an expression. The
// whole range is checked before anything is read.
func (m *Monitor) Examine(count uint64, text string) (words []uint32, addr uint32, err error) {
	limit := m.Config.Monitor.MaxExamine
	if count == 0 || count > uint64(limit) {
		err = ErrExamineCount{Count: count, Limit: limit}
		return
	}

	addr, err = m.EvalForAddress(text)
	if err != nil {
		return
	}

	pm := m.Emulator.Memory
	if !pm.IsReadable(addr, int(count)*4) {
		err = ErrUnreadable{Addr: addr, Words: int(count)}
		return
	}

	for n := range uint32(count) {
		var word uint32
		word, err = pm.ReadWord(addr + n*4)
		if err != nil {
			words = nil
			return
		}
		words = append(words, word)
	}

	return
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.output, format, args...)
	m.flush()
}

// tprintf writes a localized message.
func (m *Monitor) tprintf(format string, args ...any) {
	translate.Fprintf(m.output, format, args...)
	m.flush()
}

func (m *Monitor) println(args ...any) {
	fmt.Fprintln(m.output, args...)
	m.flush()
}

func (m *Monitor) flush() {
	m.output.Flush()
}

// printError renders an error, with a caret under the offending position
// of an expression.
func (m *Monitor) printError(err error) {
	var exprErr expr.ErrExpr
	if errors.As(err, &exprErr) {
		m.println(exprErr.Caret())
	}
	m.printf("sdb: %v\n", err)
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if !m.interactive {
		return
	}

	m.printf(PROMPT)
}

// RunCommands accepts monitor commands from a reader and writes the
// results to a writer. In batch mode the program is run to completion
// without reading any commands.
func (m *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive
	m.Emulator.Output = m.output
	defer m.flush()

	if m.Config.Monitor.Batch {
		_ = m.Execute("c")
		return
	}

	for {
		m.prompt()

		line, err := m.getLine()
		if err != nil {
			break
		}

		err = m.Execute(line)
		if err != nil {
			break
		}
	}
}

// Execute runs one command line. An empty line repeats the previous
// command. Only ErrQuit is returned; command failures are printed.
func (m *Monitor) Execute(line string) (err error) {
	line = strings.TrimSpace(line)

	var c cmd.Selection
	if line != "" {
		c, err = cmds.Lookup(line)
		switch {
		case errors.Is(err, cmd.ErrNotFound):
			m.tprintf("Unknown command '%s'\n", line)
			return nil
		case errors.Is(err, cmd.ErrAmbiguous):
			m.tprintf("Ambiguous command '%s'\n", line)
			return nil
		case err != nil:
			m.printError(err)
			return nil
		}
	} else if m.lastCmd != nil {
		c = *m.lastCmd
	}

	if c.Command == nil {
		return nil
	}

	m.lastCmd = &c

	if m.Verbose {
		logger.Debugf("command %v %v", c.Command.Name, c.Args)
	}

	handler := c.Command.Data.(func(*Monitor, cmd.Selection) error)
	err = handler(m, c)
	m.flush()

	switch {
	case errors.Is(err, ErrQuit):
		return
	case errors.Is(err, ErrUsage):
		m.displayUsage(c.Command)
	case err != nil:
		m.printError(err)
	}

	return nil
}

func (m *Monitor) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		m.tprintf("Usage: %s\n", c.Usage)
	}
}

func (m *Monitor) displayCommands(commands *cmd.Tree) {
	m.printf("%s commands:\n", commands.Title)
	for _, c := range commands.Commands {
		if c.Brief != "" {
			m.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
	m.println()
}
