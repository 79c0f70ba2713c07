package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/sdb/expr"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Validate())
	assert.Equal(uint32(0x80000000), cfg.Memory.Base)
	assert.Equal(uint32(0x8000000), cfg.Memory.Size)
	assert.False(cfg.Isa.RVE)
	assert.Equal(expr.MAX_TOKENS, cfg.Expr.MaxTokens)
	assert.Equal(expr.MAX_DIGITS, cfg.Expr.MaxDigits)
	assert.Equal(10, cfg.Monitor.MaxExamine)
	assert.Equal(10, cfg.Monitor.MaxInstToPrint)
	assert.Equal(32, cfg.Monitor.Watchpoints)
	assert.False(cfg.Monitor.Batch)

	assert.Equal(expr.Lexer{MaxTokens: 32, MaxDigits: 9}, cfg.Lexer())
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse(`
[memory]
base = 0x10000000
size = 0x1000

[isa]
rve = true

[expr]
max_tokens = 64

[monitor]
watchpoints = 4
batch = true
`)
	assert.NoError(err)
	assert.Equal(uint32(0x10000000), cfg.Memory.Base)
	assert.Equal(uint32(0x1000), cfg.Memory.Size)
	assert.True(cfg.Isa.RVE)
	assert.Equal(64, cfg.Expr.MaxTokens)
	assert.Equal(expr.MAX_DIGITS, cfg.Expr.MaxDigits)
	assert.Equal(4, cfg.Monitor.Watchpoints)
	assert.Equal(10, cfg.Monitor.MaxExamine)
	assert.True(cfg.Monitor.Batch)
}

func TestParseErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		err  error
	}){
		{"size", "[memory]\nsize = 0\n", ErrMemorySize},
		{"wrap", "[memory]\nbase = 0xfffff000\nsize = 0x2000\n", ErrMemoryWrap},
		{"examine", "[monitor]\nmax_examine = 0\n", ErrExamine},
		{"watchpoints", "[monitor]\nwatchpoints = -1\n", ErrWatchpoint},
		{"unknown", "[monitor]\nbogus = 1\n", ErrUnknownKey{"monitor.bogus"}},
	}

	for _, entry := range table {
		_, err := Parse(entry.text)
		assert.Equal(entry.err, err, entry.name)
	}

	_, err := Parse("[memory")
	assert.Error(err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "sdb.toml")
	require.NoError(t, os.WriteFile(path, []byte("[monitor]\nmax_examine = 4\n"), 0o644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(4, cfg.Monitor.MaxExamine)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}
