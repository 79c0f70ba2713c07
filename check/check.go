// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package check verifies lines of "EXPECTED EXPR" against the expression
// engine, in parallel.
package check

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/ezrec/sdb/expr"
	"github.com/ezrec/sdb/translate"
)

var f = translate.From

var (
	ErrNoEvaluator = errors.New(f("no evaluator"))
)

// ErrSyntax indicates a malformed check line.
type ErrSyntax struct {
	LineNo int
	Line   string
}

func (err ErrSyntax) Error() string {
	return f("line %v: expected 'VALUE EXPR', got '%v'", err.LineNo, err.Line)
}

func (err ErrSyntax) Is(target error) (ok bool) {
	_, ok = target.(ErrSyntax)
	return
}

var logger logrus.FieldLogger = logrus.New()

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { logger = l }

// Case is a single expression and its expected value.
type Case struct {
	LineNo   int
	Expected expr.Word
	Expr     string
}

// Result is the outcome of a Case.
type Result struct {
	Case
	Value expr.Word
	Err   error
}

// Ok returns true if the expression evaluated to the expected value.
func (res *Result) Ok() bool {
	return res.Err == nil && res.Value == res.Expected
}

// Parse reads cases, one per line. Blank lines and lines starting with '#'
// are skipped.
func Parse(r io.Reader) (cases []Case, err error) {
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		value, text, found := strings.Cut(line, " ")
		text = strings.TrimSpace(text)
		if !found || len(text) == 0 {
			err = ErrSyntax{LineNo: lineno, Line: line}
			return
		}

		var v64 uint64
		v64, err = strconv.ParseUint(value, 0, 32)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line}
			return
		}

		cases = append(cases, Case{LineNo: lineno, Expected: expr.Word(v64), Expr: text})
	}

	err = scanner.Err()
	return
}

// Checker evaluates cases on a worker pool.
type Checker struct {
	Verbose   bool            // If set, log every case.
	Workers   int             // Pool size, GOMAXPROCS if zero.
	Evaluator *expr.Evaluator // Engine under test.
}

// Run evaluates all cases. Results are in the order of cases.
func (ch *Checker) Run(cases []Case) (results []Result, err error) {
	if ch.Evaluator == nil {
		err = ErrNoEvaluator
		return
	}

	workers := ch.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return
	}
	defer pool.Release()

	results = make([]Result, len(cases))

	wg := new(sync.WaitGroup)
	for n, c := range cases {
		res := &results[n]
		res.Case = c

		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			res.Value, res.Err = ch.Evaluator.Evaluate(res.Expr)
			if ch.Verbose {
				logger.WithField("line", res.LineNo).Debugf("'%v' = %v (%v)", res.Expr, res.Value, res.Err)
			}
		})
		if err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()

	if err != nil {
		results = nil
	}

	return
}

// Report summarizes results.
type Report struct {
	Passed   int
	Failures []Result
}

// Summarize results into a report.
func Summarize(results []Result) (rep Report) {
	for _, res := range results {
		if res.Ok() {
			rep.Passed++
		} else {
			rep.Failures = append(rep.Failures, res)
		}
	}
	return
}

// Failed returns the number of failed cases.
func (rep *Report) Failed() int {
	return len(rep.Failures)
}

// Write the failures, in input order, then the totals.
func (rep *Report) Write(w io.Writer) {
	for _, res := range rep.Failures {
		if res.Err != nil {
			fmt.Fprintf(w, "line %d: %v\n", res.LineNo, res.Err)
		} else {
			fmt.Fprintf(w, "line %d: '%s' = %d, expected %d\n", res.LineNo, res.Expr, res.Value, res.Expected)
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed\n", rep.Passed, rep.Failed())
}
