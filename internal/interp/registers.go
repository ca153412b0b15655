package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/govalues/apint"
)

// MaxRegisters is the exclusive upper bound of the register count.
const MaxRegisters = 10_000

// Registers is a fixed-size, index-addressed file of integers.
// A slot is only ever replaced as a whole, so a value read with Get
// stays valid after the slot is overwritten.
type Registers struct {
	vals []apint.Int
}

// NewRegisters returns a register file of n zero-valued registers.
// It returns [ErrRegisterCount] unless 1 <= n < [MaxRegisters].
func NewRegisters(n int) (*Registers, error) {
	if n < 1 || n >= MaxRegisters {
		return nil, fmt.Errorf("%d: %w", n, ErrRegisterCount)
	}
	return &Registers{vals: make([]apint.Int, n)}, nil
}

// Len returns the number of registers.
func (r *Registers) Len() int {
	return len(r.vals)
}

func (r *Registers) check(i int) error {
	if i < 0 || i >= len(r.vals) {
		return fmt.Errorf("register %d of %d: %w", i, len(r.vals), ErrRegisterIndex)
	}
	return nil
}

// Get returns the value of register i.
func (r *Registers) Get(i int) (apint.Int, error) {
	if err := r.check(i); err != nil {
		return apint.Int{}, err
	}
	return r.vals[i], nil
}

// Set replaces the value of register i, dropping the previous one.
func (r *Registers) Set(i int, x apint.Int) error {
	if err := r.check(i); err != nil {
		return err
	}
	r.vals[i] = x
	return nil
}

// Dump writes every register in index order, one per line,
// followed by an empty line.
func (r *Registers) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, x := range r.vals {
		bw.WriteString(x.String())
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
