package monitor

import (
	"errors"

	"github.com/ezrec/sdb/translate"
)

var f = translate.From

var (
	ErrQuit           = errors.New(f("quit"))
	ErrWatchpointFull = errors.New(f("no free watchpoint"))
	ErrUsage          = errors.New(f("invalid arguments"))
)

// ErrExamineCount indicates a word count outside (0, Limit].
type ErrExamineCount struct {
	Count uint64
	Limit int
}

func (err ErrExamineCount) Error() string {
	return f("N is limited to 0 < N <= %v, got %v", err.Limit, err.Count)
}

// ErrUnreadable indicates an examine range outside physical memory.
type ErrUnreadable struct {
	Addr  uint32
	Words int
}

func (err ErrUnreadable) Error() string {
	return f("cannot examine %v words at 0x%08x: out of memory bound", err.Words, err.Addr)
}

func (err ErrUnreadable) Is(target error) (ok bool) {
	_, ok = target.(ErrUnreadable)
	return
}

// ErrNoWatchpoint indicates a watchpoint number that is not in use.
type ErrNoWatchpoint struct {
	No int
}

func (err ErrNoWatchpoint) Error() string {
	return f("no watchpoint number %v", err.No)
}
