package monitor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/ezrec/sdb/check"
)

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "sdb"})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "help",
		Brief: "Display information about all supported commands",
		Usage: "help [<command>]",
		Data:  (*Monitor).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "c",
		Brief: "Continue the execution of the program",
		Usage: "c",
		Data:  (*Monitor).cmdContinue,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "q",
		Brief: "Exit the monitor",
		Usage: "q",
		Data:  (*Monitor).cmdQuit,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "si",
		Brief:       "Step N instructions",
		Description: "Execute N instructions, one by default. Each instruction is traced when N is small.",
		Usage:       "si [N]",
		Data:        (*Monitor).cmdStep,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "info",
		Brief:       "Display registers or watchpoints",
		Description: "'info r' displays the registers. 'info w' lists the watchpoints.",
		Usage:       "info SUBCMD[r/w]",
		Data:        (*Monitor).cmdInfo,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "x",
		Brief:       "Examine N words of memory",
		Description: "Evaluate EXPR to an address, and display N consecutive words from it.",
		Usage:       "x N EXPR",
		Data:        (*Monitor).cmdExamine,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "p",
		Brief: "Print the value of an expression",
		Usage: "p EXPR",
		Data:  (*Monitor).cmdPrint,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "w",
		Brief:       "Set a watchpoint",
		Description: "Stop execution whenever the value of EXPR changes.",
		Usage:       "w EXPR",
		Data:        (*Monitor).cmdWatch,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "d",
		Brief: "Delete a watchpoint",
		Usage: "d N",
		Data:  (*Monitor).cmdDelete,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "t",
		Brief:       "Check expressions from a file",
		Description: "Each line of FILE is 'VALUE EXPR'. Report every EXPR that does not evaluate to VALUE.",
		Usage:       "t FILE",
		Data:        (*Monitor).cmdTest,
	})

	cmds = root
}

func (m *Monitor) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		m.displayCommands(cmds)
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		m.tprintf("Unknown command '%s'\n", strings.Join(c.Args, " "))
		return nil
	}

	m.displayUsage(s.Command)
	switch {
	case s.Command.Description != "":
		m.printf("%s\n", s.Command.Description)
	case s.Command.Brief != "":
		m.printf("%s.\n", s.Command.Brief)
	}
	switch {
	case len(s.Command.Shortcuts) > 1:
		m.printf("Shortcuts: %s\n", strings.Join(s.Command.Shortcuts, ", "))
	case len(s.Command.Shortcuts) == 1:
		m.printf("Shortcut: %s\n", s.Command.Shortcuts[0])
	}

	return nil
}

func (m *Monitor) cmdContinue(c cmd.Selection) error {
	return m.Emulator.Exec(^uint64(0))
}

func (m *Monitor) cmdQuit(c cmd.Selection) error {
	m.Emulator.Quit()
	return ErrQuit
}

func (m *Monitor) cmdStep(c cmd.Selection) error {
	count := uint64(1)
	switch len(c.Args) {
	case 0:
	case 1:
		var err error
		count, err = strconv.ParseUint(c.Args[0], 10, 64)
		if err != nil {
			return ErrUsage
		}
	default:
		return ErrUsage
	}

	if count > uint64(max(m.Config.Monitor.MaxInstToPrint, 0)) {
		m.tprintf("Too many instructions, not printing.\n")
	}

	return m.Emulator.Exec(count)
}

func (m *Monitor) cmdInfo(c cmd.Selection) error {
	if len(c.Args) != 1 {
		return ErrUsage
	}

	switch c.Args[0] {
	case "r":
		m.printf("%s", m.Emulator.Cpu.String())
	case "w":
		if len(m.watches) == 0 {
			m.tprintf("No watchpoints.\n")
			break
		}
		m.printf("%-8s%-24s%s\n", "Num", "Value", "What")
		for _, wp := range m.watches {
			value := fmt.Sprintf("%d (0x%08x)", wp.Value, wp.Value)
			m.printf("%-8d%-24s%s\n", wp.No, value, wp.Expr)
		}
	default:
		return ErrUsage
	}

	return nil
}

func (m *Monitor) cmdExamine(c cmd.Selection) error {
	if len(c.Args) < 2 {
		return ErrUsage
	}

	count, err := strconv.ParseUint(c.Args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	words, addr, err := m.Examine(count, strings.Join(c.Args[1:], " "))
	if err != nil {
		return err
	}

	for n, word := range words {
		m.printf("0x%08x: 0x%08x\n", addr+uint32(n)*4, word)
	}

	return nil
}

func (m *Monitor) cmdPrint(c cmd.Selection) error {
	if len(c.Args) == 0 {
		return ErrUsage
	}

	value, err := m.EvalForPrint(strings.Join(c.Args, " "))
	if err != nil {
		return err
	}

	m.printf("%d (0x%08x)\n", value, value)
	return nil
}

func (m *Monitor) cmdWatch(c cmd.Selection) error {
	if len(c.Args) == 0 {
		return ErrUsage
	}

	wp, err := m.AddWatchpoint(strings.Join(c.Args, " "))
	if err != nil {
		return err
	}

	m.printf("Watchpoint %d: %s\n", wp.No, wp.Expr)
	return nil
}

func (m *Monitor) cmdDelete(c cmd.Selection) error {
	if len(c.Args) != 1 {
		return ErrUsage
	}

	no, err := strconv.Atoi(c.Args[0])
	if err != nil {
		return ErrUsage
	}

	return m.DeleteWatchpoint(no)
}

func (m *Monitor) cmdTest(c cmd.Selection) error {
	if len(c.Args) != 1 {
		return ErrUsage
	}

	inf, err := os.Open(c.Args[0])
	if err != nil {
		return err
	}
	defer inf.Close()

	cases, err := check.Parse(inf)
	if err != nil {
		return err
	}

	ch := &check.Checker{Verbose: m.Verbose, Evaluator: &m.Evaluator}
	results, err := ch.Run(cases)
	if err != nil {
		return err
	}

	rep := check.Summarize(results)
	rep.Write(m.output)
	return nil
}
