package apint

import "fmt"

// MustAdd is like [Int.Add] but panics if computing error.
func (x Int) MustAdd(y Int) Int {
	z, err := x.Add(y)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", y, err))
	}
	return z
}

// MustShl1 is like [Int.Shl1] but panics if computing error.
func (x Int) MustShl1() Int {
	z, err := x.Shl1()
	if err != nil {
		panic(fmt.Sprintf("MustShl1() failed: %v", err))
	}
	return z
}

// MustLsh is like [Int.Lsh] but panics if computing error.
func (x Int) MustLsh(shift uint64) Int {
	z, err := x.Lsh(shift)
	if err != nil {
		panic(fmt.Sprintf("MustLsh(%v) failed: %v", shift, err))
	}
	return z
}

// MustMul is like [Int.Mul] but panics if computing error.
func (x Int) MustMul(y Int) Int {
	z, err := x.Mul(y)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", y, err))
	}
	return z
}

// MustMulUint64 is like [Int.MulUint64] but panics if computing error.
func (x Int) MustMulUint64(u uint64) Int {
	z, err := x.MulUint64(u)
	if err != nil {
		panic(fmt.Sprintf("MustMulUint64(%v) failed: %v", u, err))
	}
	return z
}

// MustPow is like [Int.Pow] but panics if computing error.
func (x Int) MustPow(exp uint64) Int {
	z, err := x.Pow(exp)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", exp, err))
	}
	return z
}
