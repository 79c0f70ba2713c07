package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ezrec/sdb/oracle"
)

func main() {
	var seed uint64
	var depth int
	var tokens int

	flag.Uint64Var(&seed, "s", uint64(time.Now().UnixNano()), "Random seed")
	flag.IntVar(&depth, "d", oracle.MAX_DEPTH, "Maximum expression depth")
	flag.IntVar(&tokens, "n", 0, "Maximum tokens per expression, engine default if zero")

	flag.Parse()

	count := 1
	switch flag.NArg() {
	case 0:
	case 1:
		var err error
		count, err = strconv.Atoi(flag.Arg(0))
		if err != nil || count < 0 {
			log.Fatalf("%v: invalid count '%v'", os.Args[0], flag.Arg(0))
		}
	default:
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	gen := oracle.NewGenerator(seed)
	gen.MaxDepth = depth
	gen.MaxTokens = tokens

	for range count {
		text, value, err := gen.Generate()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d %s\n", value, text)
	}
}
