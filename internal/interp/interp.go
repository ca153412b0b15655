// Package interp executes register-machine programs over [apint.Int] values.
//
// A program is line oriented:
//
//	2             number of registers
//	UINT64        register 0 from a decimal uint64
//	255
//	HEX_STRING    register 1 from hexadecimal digits
//	01
//	ADD 0 0 1     operations, until END
//	DUMP
//	END
//
// Operands of an operation may follow the keyword on the same line or
// stand alone on the next line.
package interp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/govalues/apint"
)

// Command keywords.
const (
	cmdUint64    = "UINT64"
	cmdHexString = "HEX_STRING"
	cmdClone     = "CLONE"
	cmdDump      = "DUMP"
	cmdShl       = "SHL"
	cmdAdd       = "ADD"
	cmdMulUint64 = "MUL_UINT64"
	cmdMulApint  = "MUL_APINT"
	cmdPow       = "POW"
	cmdCmp       = "CMP"
	cmdEnd       = "END"
)

// arity is the number of operands of each operation.
var arity = map[string]int{
	cmdDump:      0,
	cmdShl:       3,
	cmdAdd:       3,
	cmdMulUint64: 3,
	cmdMulApint:  3,
	cmdPow:       3,
	cmdCmp:       2,
	cmdEnd:       0,
}

// maxLineLen fits the longest hexadecimal string apint accepts.
const maxLineLen = 2*apint.MaxLen + 1024

// Stats describes a finished run.
type Stats struct {
	Registers int            `yaml:"registers"`  // size of the register file
	Commands  int            `yaml:"commands"`   // operations executed, END excluded
	ByCommand map[string]int `yaml:"by_command"` // operations executed per keyword
}

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithLogger sets the logger used for debug tracing.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(it *Interpreter) {
		if l != nil {
			it.log = l
		}
	}
}

// Interpreter runs programs. It holds no state between runs,
// but a single Interpreter must not execute two runs at the same time
// on the same output.
type Interpreter struct {
	log *slog.Logger
}

// New returns an interpreter configured with opts.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// session is the state of a single run.
type session struct {
	ctx   context.Context
	log   *slog.Logger
	in    *bufio.Scanner
	out   *bufio.Writer
	line  int
	regs  *Registers
	stats Stats
}

// Run executes the program read from r and writes its output to w.
// Output produced before a failure is still written to w.
// A failing operation leaves its destination register untouched
// and aborts the run.
func (it *Interpreter) Run(ctx context.Context, r io.Reader, w io.Writer) (stats Stats, err error) {
	in := bufio.NewScanner(r)
	in.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	s := &session{
		ctx:   ctx,
		log:   it.log,
		in:    in,
		out:   bufio.NewWriter(w),
		stats: Stats{ByCommand: make(map[string]int)},
	}
	defer func() {
		if ferr := s.out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("writing output: %w", ferr)
		}
	}()

	if err := s.header(); err != nil {
		return s.stats, err
	}
	for i := 0; i < s.regs.Len(); i++ {
		if err := s.init(i); err != nil {
			return s.stats, err
		}
	}
	if err := s.exec(); err != nil {
		return s.stats, err
	}
	it.log.Debug("run finished",
		"registers", s.stats.Registers,
		"commands", s.stats.Commands,
	)
	return s.stats, nil
}

// next returns the next input line without surrounding white space.
func (s *session) next() (string, error) {
	if !s.in.Scan() {
		err := s.in.Err()
		switch {
		case err == nil:
			return "", s.errorf("%w", ErrUnexpectedEOF)
		case errors.Is(err, bufio.ErrTooLong):
			return "", s.errorf("line longer than %v bytes: %w", maxLineLen, ErrMalformedLine)
		default:
			return "", fmt.Errorf("reading input: %w", err)
		}
	}
	s.line++
	return strings.TrimSpace(s.in.Text()), nil
}

// errorf annotates an error with the current line number.
func (s *session) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: "+format, append([]any{s.line}, args...)...)
}

func (s *session) uint64(field string) (uint64, error) {
	u, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, s.errorf("invalid number %q: %w", field, ErrMalformedLine)
	}
	return u, nil
}

func (s *session) header() error {
	line, err := s.next()
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return s.errorf("invalid register count %q: %w", line, ErrMalformedLine)
	}
	regs, err := NewRegisters(n)
	if err != nil {
		return s.errorf("%w", err)
	}
	s.regs = regs
	s.stats.Registers = n
	return nil
}

// init reads the initialization block of register i.
func (s *session) init(i int) error {
	kw, err := s.next()
	if err != nil {
		return err
	}
	switch kw {
	case cmdUint64, cmdHexString, cmdClone:
	default:
		return s.errorf("initializing register %d with %q: %w", i, kw, ErrInvalidCommand)
	}
	arg, err := s.next()
	if err != nil {
		return err
	}

	var x apint.Int
	switch kw {
	case cmdUint64:
		u, err := s.uint64(arg)
		if err != nil {
			return err
		}
		x = apint.New(u)
	case cmdHexString:
		x, err = apint.ParseHex(arg)
		if err != nil {
			return s.errorf("%w", err)
		}
	case cmdClone:
		k, err := s.uint64(arg)
		if err != nil {
			return err
		}
		if k >= uint64(i) {
			return s.errorf("cloning register %d into register %d: %w", k, i, ErrRegisterIndex)
		}
		src, err := s.regs.Get(int(k))
		if err != nil {
			return s.errorf("%w", err)
		}
		x = src.Clone()
	}
	s.log.Debug("register initialized", "line", s.line, "register", i, "kind", kw, "len", x.Len())
	return s.regs.Set(i, x)
}

// operands returns the operands of an operation, reading them from
// the next line if none follow the keyword.
func (s *session) operands(kw string, fields []string) ([]uint64, error) {
	n := arity[kw]
	if len(fields) == 0 && n > 0 {
		line, err := s.next()
		if err != nil {
			return nil, err
		}
		fields = strings.Fields(line)
	}
	if len(fields) != n {
		return nil, s.errorf("%s expects %d operand(s), got %d: %w", kw, n, len(fields), ErrMalformedLine)
	}
	args := make([]uint64, n)
	for i, f := range fields {
		u, err := s.uint64(f)
		if err != nil {
			return nil, err
		}
		args[i] = u
	}
	return args, nil
}

// reg returns the value of the register with index u.
func (s *session) reg(u uint64) (apint.Int, error) {
	if u >= uint64(s.regs.Len()) {
		return apint.Int{}, s.errorf("register %d of %d: %w", u, s.regs.Len(), ErrRegisterIndex)
	}
	return s.regs.Get(int(u))
}

// store checks the destination register index, then computes
// its new value with f.
func (s *session) store(dst uint64, f func() (apint.Int, error)) error {
	if dst >= uint64(s.regs.Len()) {
		return s.errorf("register %d of %d: %w", dst, s.regs.Len(), ErrRegisterIndex)
	}
	x, err := f()
	if err != nil {
		return err
	}
	return s.regs.Set(int(dst), x)
}

// exec executes operations until END.
func (s *session) exec() error {
	for {
		if err := s.ctx.Err(); err != nil {
			return s.errorf("%w", err)
		}
		line, err := s.next()
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return s.errorf("empty line: %w", ErrMalformedLine)
		}
		kw := fields[0]
		if _, ok := arity[kw]; !ok {
			return s.errorf("%q: %w", kw, ErrInvalidCommand)
		}
		args, err := s.operands(kw, fields[1:])
		if err != nil {
			return err
		}
		if kw == cmdEnd {
			return nil
		}
		s.log.Debug("executing", "line", s.line, "op", kw, "args", args)
		if err := s.op(kw, args); err != nil {
			return err
		}
		s.stats.Commands++
		s.stats.ByCommand[kw]++
	}
}

// op executes a single operation.
func (s *session) op(kw string, args []uint64) error {
	switch kw {
	case cmdDump:
		return s.regs.Dump(s.out)

	case cmdCmp:
		x, err := s.reg(args[0])
		if err != nil {
			return err
		}
		y, err := s.reg(args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(s.out, "%d\n", x.Cmp(y))
		return err

	case cmdShl, cmdMulUint64, cmdPow:
		x, err := s.reg(args[1])
		if err != nil {
			return err
		}
		k := args[2]
		return s.store(args[0], func() (apint.Int, error) {
			var z apint.Int
			switch kw {
			case cmdShl:
				z, err = x.Lsh(k)
			case cmdMulUint64:
				z, err = x.MulUint64(k)
			default:
				z, err = x.Pow(k)
			}
			if err != nil {
				return apint.Int{}, s.errorf("%s: %w", kw, err)
			}
			return z, nil
		})

	case cmdAdd, cmdMulApint:
		x, err := s.reg(args[1])
		if err != nil {
			return err
		}
		y, err := s.reg(args[2])
		if err != nil {
			return err
		}
		return s.store(args[0], func() (apint.Int, error) {
			var z apint.Int
			if kw == cmdAdd {
				z, err = x.Add(y)
			} else {
				z, err = x.Mul(y)
			}
			if err != nil {
				return apint.Int{}, s.errorf("%s: %w", kw, err)
			}
			return z, nil
		})
	}
	return s.errorf("%q: %w", kw, ErrInvalidCommand)
}
