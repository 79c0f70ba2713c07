// Package config loads the monitor configuration from TOML.
package config

import (
	"errors"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/sdb/expr"
	"github.com/ezrec/sdb/memory"
	"github.com/ezrec/sdb/translate"
)

var f = translate.From

var (
	ErrMemorySize = errors.New(f("memory size must be non-zero"))
	ErrMemoryWrap = errors.New(f("memory wraps around the address space"))
	ErrExamine    = errors.New(f("max_examine must be positive"))
	ErrWatchpoint = errors.New(f("watchpoints must be positive"))
)

// ErrUnknownKey indicates keys in the configuration that are not understood.
type ErrUnknownKey []string

func (err ErrUnknownKey) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}

// Memory configures physical memory.
type Memory struct {
	Base uint32 `toml:"base"`
	Size uint32 `toml:"size"`
}

// Isa configures the register model.
type Isa struct {
	RVE bool `toml:"rve"`
}

// Expr configures the expression engine limits.
type Expr struct {
	MaxTokens int `toml:"max_tokens"`
	MaxDigits int `toml:"max_digits"`
}

// Monitor configures the command layer.
type Monitor struct {
	MaxExamine     int  `toml:"max_examine"`
	MaxInstToPrint int  `toml:"max_inst_to_print"`
	Watchpoints    int  `toml:"watchpoints"`
	Batch          bool `toml:"batch"`
}

// Config is the complete monitor configuration.
type Config struct {
	Memory  Memory  `toml:"memory"`
	Isa     Isa     `toml:"isa"`
	Expr    Expr    `toml:"expr"`
	Monitor Monitor `toml:"monitor"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Memory: Memory{
			Base: memory.MBASE,
			Size: memory.MSIZE,
		},
		Expr: Expr{
			MaxTokens: expr.MAX_TOKENS,
			MaxDigits: expr.MAX_DIGITS,
		},
		Monitor: Monitor{
			MaxExamine:     10,
			MaxInstToPrint: 10,
			Watchpoints:    32,
		},
	}
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return
	}

	err = finish(md, &cfg)
	return
}

// Load decodes a TOML file over the defaults.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return
	}

	err = finish(md, &cfg)
	return
}

func finish(md toml.MetaData, cfg *Config) (err error) {
	undecoded := md.Undecoded()
	if len(undecoded) != 0 {
		var keys ErrUnknownKey
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		err = keys
		return
	}

	err = cfg.Validate()
	return
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() (err error) {
	if cfg.Memory.Size == 0 {
		return ErrMemorySize
	}
	if uint64(cfg.Memory.Base)+uint64(cfg.Memory.Size) > 1<<32 {
		return ErrMemoryWrap
	}
	if cfg.Monitor.MaxExamine <= 0 {
		return ErrExamine
	}
	if cfg.Monitor.Watchpoints <= 0 {
		return ErrWatchpoint
	}

	return
}

// Lexer returns the expression tokenizer limits.
func (cfg *Config) Lexer() expr.Lexer {
	return expr.Lexer{
		MaxTokens: cfg.Expr.MaxTokens,
		MaxDigits: cfg.Expr.MaxDigits,
	}
}
