// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/sdb/check"
	"github.com/ezrec/sdb/config"
	"github.com/ezrec/sdb/emulator"
	"github.com/ezrec/sdb/expr"
	"github.com/ezrec/sdb/monitor"
)

func main() {
	var configFile string
	var batch bool
	var logFile string
	var verbose bool
	var testFile string

	flag.StringVar(&configFile, "c", "", ".toml configuration file")
	flag.BoolVar(&batch, "b", false, "Batch mode: run the program without commands")
	flag.StringVar(&logFile, "l", "", "Log output file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&testFile, "t", "", "Check 'VALUE EXPR' lines from a file, then exit")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}
	if batch {
		cfg.Monitor.Batch = true
	}

	logs := logrus.New()
	if verbose {
		logs.SetLevel(logrus.DebugLevel)
	}
	if len(logFile) != 0 {
		ouf, err := os.Create(logFile)
		if err != nil {
			log.Fatalf("%v: %v", logFile, err)
		}
		defer ouf.Close()
		logs.SetOutput(ouf)
	}
	expr.SetLogger(logs)
	emulator.SetLogger(logs)
	monitor.SetLogger(logs)
	check.SetLogger(logs)

	emu := emulator.NewEmulator(cfg)
	emu.Verbose = verbose

	if flag.NArg() == 1 {
		image := flag.Arg(0)
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		_, err = emu.Load(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	} else {
		_, err := emu.LoadBuiltin()
		if err != nil {
			log.Fatal(err)
		}
	}

	mon := monitor.NewMonitor(cfg, emu)
	mon.Verbose = verbose

	if len(testFile) != 0 {
		os.Exit(runCheck(&mon.Evaluator, testFile, verbose))
	}

	interactive := false
	if info, err := os.Stdin.Stat(); err == nil {
		interactive = (info.Mode() & os.ModeCharDevice) != 0
	}

	if !cfg.Monitor.Batch {
		fmt.Println("Welcome to riscv32-sdb!")
		fmt.Println("For help, type \"help\"")
	}

	mon.RunCommands(os.Stdin, os.Stdout, interactive)

	if !emu.GoodExit() {
		os.Exit(1)
	}
}

func runCheck(ev *expr.Evaluator, path string, verbose bool) (code int) {
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	cases, err := check.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	ch := &check.Checker{Verbose: verbose, Evaluator: ev}
	results, err := ch.Run(cases)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	rep := check.Summarize(results)
	rep.Write(os.Stdout)
	if rep.Failed() != 0 {
		code = 1
	}

	return
}
