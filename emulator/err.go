package emulator

import (
	"errors"

	"github.com/ezrec/sdb/translate"
)

var f = translate.From

var (
	ErrEnded = errors.New(f("program execution has ended; to restart the program, exit and run again"))
)

// ErrRuntime indicates the guest address of a runtime error.
type ErrRuntime struct {
	Pc  uint32
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%08x: %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
