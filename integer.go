package apint

import "math/bits"

// bnat (Byte NATural) is a little-endian magnitude, where x[0] is
// the least significant byte.
// A normalized bnat has a non-zero most significant byte,
// except for zero, which is represented as bnat{0}.
type bnat []byte

// bzero returns a fresh zero.
func bzero() bnat {
	return bnat{0}
}

// bone returns a fresh one.
func bone() bnat {
	return bnat{1}
}

// clone returns a copy of x with its own backing array.
func (x bnat) clone() bnat {
	z := make(bnat, len(x))
	copy(z, x)
	return z
}

// norm removes high zero bytes from x, but never shrinks
// it below a single byte.
func (x bnat) norm() bnat {
	i := len(x)
	for i > 1 && x[i-1] == 0 {
		i--
	}
	if i == 0 {
		return bzero()
	}
	return x[:i]
}

// isZero returns true if every byte of x is 0.
// Unlike checking for bnat{0}, it also handles unnormalized zeros.
func (x bnat) isZero() bool {
	for _, b := range x {
		if b != 0 {
			return false
		}
	}
	return true
}

func (x bnat) isOdd() bool {
	return len(x) > 0 && x[0]&1 != 0
}

// bitLen returns the number of significant bits of x, which must be normalized.
func (x bnat) bitLen() int {
	return (len(x)-1)*8 + bits.Len8(x[len(x)-1])
}

// cmp compares x and y, which must be normalized, and returns -1, 0 or +1.
func (x bnat) cmp(y bnat) int {
	// Special cases
	switch {
	case len(x) > len(y):
		return 1
	case len(x) < len(y):
		return -1
	}
	// General case
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] > y[i]:
			return 1
		case x[i] < y[i]:
			return -1
		}
	}
	return 0
}

// add calculates x + y.
// The result has the length of the longer operand, plus one byte
// if a carry leaves its most significant byte.
func (x bnat) add(y bnat) bnat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(bnat, len(x), len(x)+1)
	var carry byte
	i := 0
	// Overlapping bytes
	for ; i < len(y); i++ {
		s := x[i] + y[i]
		c := s < x[i] // first sum wrapped
		s += carry
		if carry != 0 && s == 0 { // second sum wrapped
			c = true
		}
		z[i] = s
		carry = 0
		if c {
			carry = 1
		}
	}
	// Carry propagation along the longer operand
	for ; i < len(x); i++ {
		s := x[i] + carry
		z[i] = s
		if s >= x[i] {
			carry = 0
		}
	}
	if carry != 0 {
		z = append(z, 1)
	}
	return z
}

// shl1 (Shift Left by 1) calculates x * 2.
func (x bnat) shl1() bnat {
	z := make(bnat, len(x), len(x)+1)
	var carry byte
	for i, b := range x {
		w := uint16(b)<<1 + uint16(carry)
		z[i] = byte(w)
		carry = byte(w >> 8)
	}
	if carry != 0 {
		z = append(z, 1)
	}
	return z
}

// shr1 (Shift Right by 1) calculates ⌊x / 2⌋.
// The result is normalized.
func (x bnat) shr1() bnat {
	z := make(bnat, len(x))
	var carry byte
	for i := len(x) - 1; i >= 0; i-- {
		z[i] = x[i]>>1 | carry<<7
		carry = x[i] & 1
	}
	return z.norm()
}

// mul calculates x * y using binary long multiplication.
// x and y are never modified; the loop works on private copies that
// are doubled and halved until the multiplier runs out of bits.
// The result is normalized.
func (x bnat) mul(y bnat) bnat {
	// Special case
	if x.isZero() || y.isZero() {
		return bzero()
	}
	// General case
	if len(x) < len(y) {
		x, y = y, x // iterate over the bits of the shorter operand
	}
	a := x.clone() // multiplicand
	b := y.clone() // multiplier
	z := bzero()
	for !b.isZero() {
		if b.isOdd() {
			z = z.add(a)
		}
		a = a.shl1()
		b = b.shr1()
	}
	return z.norm()
}

// uint64 returns the low 64 bits of x and reports whether
// any non-zero byte was discarded.
func (x bnat) uint64() (u uint64, exact bool) {
	exact = true
	for i := len(x) - 1; i >= 0; i-- {
		if i >= 8 {
			if x[i] != 0 {
				exact = false
			}
			continue
		}
		u = u<<8 | uint64(x[i])
	}
	return u, exact
}

// buint64 converts u into a normalized bnat.
func buint64(u uint64) bnat {
	z := make(bnat, 8)
	for i := range z {
		z[i] = byte(u)
		u >>= 8
	}
	return z.norm()
}
