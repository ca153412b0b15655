package apint

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Int type is a representation of an arbitrary-precision unsigned integer.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// The magnitude is stored as a little-endian sequence of bytes:
// the first byte is the least significant one.
// Every Int has its own byte buffer, which is never shared with another Int,
// and no method ever modifies it.
// Operations that change the value return a new Int instead.
//
// Values produced by constructors and arithmetic operations are normalized,
// that is, they have no redundant high zero bytes.
// The only exception is [ParseHex], which preserves the width of its input.
type Int struct {
	abs bnat // the magnitude, nil is treated as 0
}

const (
	MaxLen    = math.MaxUint16 // maximum length of the magnitude in bytes
	maxHexLen = 2 * MaxLen     // maximum number of hexadecimal digits
)

var (
	errLengthOverflow = errors.New("length overflow")
	errInvalidHex     = errors.New("invalid hexadecimal string")
)

func newInt(abs bnat) (Int, error) {
	if len(abs) > MaxLen {
		return Int{}, fmt.Errorf("%T can have at most %v bytes, but the result has %v bytes: %w", Int{}, MaxLen, len(abs), errLengthOverflow)
	}
	return Int{abs: abs}, nil
}

// New returns an integer equal to u.
func New(u uint64) Int {
	return Int{abs: buint64(u)}
}

// NewFromBytes returns an integer with the given little-endian magnitude.
// The bytes are copied and high zero bytes are removed.
//
// NewFromBytes returns an error if the normalized magnitude is longer
// than [MaxLen] bytes.
func NewFromBytes(b []byte) (Int, error) {
	if len(b) == 0 {
		return Int{abs: bzero()}, nil
	}
	return newInt(bnat(b).clone().norm())
}

// mag returns the magnitude of x, substituting 0 for the zero value.
func (x Int) mag() bnat {
	if len(x.abs) == 0 {
		return bnat{0}
	}
	return x.abs
}

// ParseHex converts a string of hexadecimal digits to an integer.
// The input string must not have a "0x" prefix and may contain
// both lowercase and uppercase digits:
//
//	ff
//	1A2b
//	0100
//
// Pairs of digits are mapped to bytes starting from the end of the string.
// If the number of digits is odd, the string is treated as if it had
// an extra leading '0'.
//
// ParseHex does not remove leading zero bytes, so "00ff" produces
// an integer of length 2.
// Use [Int.Trim] to obtain the normalized form.
//
// ParseHex returns an error:
//   - if the string is empty or contains a character that is not a hexadecimal digit.
//   - if the string has more than 2 * [MaxLen] digits.
func ParseHex(s string) (Int, error) {
	width := len(s)
	switch {
	case width == 0:
		return Int{}, fmt.Errorf("no digits: %w", errInvalidHex)
	case width > maxHexLen:
		return Int{}, fmt.Errorf("%T can have at most %v digits, but the string has %v digits: %w", Int{}, maxHexLen, width, errLengthOverflow)
	}
	z := make(bnat, (width+1)/2)
	for i := 0; i < width; i++ {
		pos := width - 1 - i // position of the digit in s
		n, ok := unhex(s[pos])
		if !ok {
			return Int{}, fmt.Errorf("invalid character %q at position %v: %w", s[pos], pos, errInvalidHex)
		}
		if i%2 == 1 {
			n <<= 4
		}
		z[i/2] |= n
	}
	return Int{abs: z}, nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// MustParseHex is like [ParseHex] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding integers.
func MustParseHex(s string) Int {
	x, err := ParseHex(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseHex(%q) failed: %v", s, err))
	}
	return x
}

const hexDigits = "0123456789abcdef"

// String method implements the [fmt.Stringer] interface and returns
// a hexadecimal representation of the integer.
// Every byte is rendered as exactly two lowercase digits, starting from
// the most significant byte, and the result is prefixed with "0x":
//
//	0x00
//	0x0a
//	0xfe01
//
// The number of digits is always 2 * [Int.Len].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Int) String() string {
	abs := x.mag()
	buf := make([]byte, 2+2*len(abs))
	buf[0], buf[1] = '0', 'x'
	pos := len(buf) - 1
	for _, b := range abs {
		buf[pos] = hexDigits[b&0x0f]
		buf[pos-1] = hexDigits[b>>4]
		pos -= 2
	}
	return string(buf)
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Unlike [ParseHex], it accepts an optional "0x" or "0X" prefix,
// so it can decode the output of [Int.MarshalText].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (x *Int) UnmarshalText(text []byte) error {
	s := string(text)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	var err error
	*x, err = ParseHex(s)
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Int.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: 0xfe01
//	%q:    "0xfe01"
//	%x:     fe01
//	%X:     FE01
//
// The '-' flag and width are supported by all verbs.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (x Int) Format(state fmt.State, verb rune) {
	var s string
	switch verb {
	case 's', 'v':
		s = x.String()
	case 'q':
		s = `"` + x.String() + `"`
	case 'x':
		s = x.String()[2:]
	case 'X':
		s = strings.ToUpper(x.String()[2:])
	default:
		fmt.Fprintf(state, "%%!%c(apint.Int=%s)", verb, x.String())
		return
	}
	width, ok := state.Width()
	if !ok || width <= len(s) {
		fmt.Fprint(state, s)
		return
	}
	pad := strings.Repeat(" ", width-len(s))
	if state.Flag('-') {
		fmt.Fprint(state, s, pad)
	} else {
		fmt.Fprint(state, pad, s)
	}
}

// Uint64 returns the low 64 bits of the integer.
// Bytes beyond the 8th are silently discarded, so for integers
// wider than 64 bits the conversion is lossy.
// Also see method [Int.Uint64Exact].
func (x Int) Uint64() uint64 {
	u, _ := x.mag().uint64()
	return u
}

// Uint64Exact is like [Int.Uint64], but it also reports whether
// the integer fits into 64 bits without loss.
func (x Int) Uint64Exact() (uint64, bool) {
	return x.mag().uint64()
}

// Len returns the length of the magnitude in bytes.
// The length of 0 is 1.
func (x Int) Len() int {
	return len(x.mag())
}

// Bytes returns a copy of the little-endian magnitude of the integer.
func (x Int) Bytes() []byte {
	return x.mag().clone()
}

// Clone returns a deep copy of the integer, which has exactly
// the same bytes but does not share the buffer with x.
func (x Int) Clone() Int {
	return Int{abs: x.mag().clone()}
}

// Trim returns the normalized form of the integer,
// with all redundant high zero bytes removed.
func (x Int) Trim() Int {
	return Int{abs: x.mag().clone().norm()}
}

// IsNorm returns true if the integer has no redundant high zero bytes.
func (x Int) IsNorm() bool {
	abs := x.mag()
	return len(abs) == 1 || abs[len(abs)-1] != 0
}

// IsZero returns true if the integer is equal to 0.
func (x Int) IsZero() bool {
	return x.mag().isZero()
}

// IsOdd returns true if the integer is odd.
func (x Int) IsOdd() bool {
	return x.mag().isOdd()
}

// Cmp compares x and y numerically and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
//
// Cmp compares values rather than representations,
// so integers produced by [ParseHex] with leading zero bytes are
// ordered correctly.
func (x Int) Cmp(y Int) int {
	return x.mag().norm().cmp(y.mag().norm())
}

// Add returns the sum of x and y.
//
// Add returns an error if the sum is longer than [MaxLen] bytes.
func (x Int) Add(y Int) (Int, error) {
	z := x.mag().add(y.mag())
	return newInt(z.norm())
}

// Shl1 returns x * 2.
//
// Shl1 returns an error if the result is longer than [MaxLen] bytes.
func (x Int) Shl1() (Int, error) {
	z := x.mag().shl1()
	return newInt(z.norm())
}

// Shr1 returns ⌊x / 2⌋.
func (x Int) Shr1() Int {
	return Int{abs: x.mag().shr1()}
}

// Lsh returns x * 2^shift, computed as shift consecutive doublings.
// The running time is linear in shift.
//
// Lsh returns an error if the result is longer than [MaxLen] bytes.
func (x Int) Lsh(shift uint64) (Int, error) {
	// Special case
	if x.IsZero() {
		return Int{abs: bzero()}, nil
	}
	// General case
	z := x.mag().clone().norm()
	if shift/8 > uint64(MaxLen-len(z)) {
		return Int{}, fmt.Errorf("%T can have at most %v bytes: %w", Int{}, MaxLen, errLengthOverflow)
	}
	for ; shift > 0; shift-- {
		z = z.shl1()
		if len(z) > MaxLen {
			return newInt(z)
		}
	}
	return Int{abs: z}, nil
}

// Mul returns the product of x and y.
// The product is computed by binary long multiplication:
// x is doubled and y is halved until y becomes 0, and every time
// y is odd the current x is added to the product.
//
// Mul returns an error if the product is longer than [MaxLen] bytes.
func (x Int) Mul(y Int) (Int, error) {
	xabs, yabs := x.mag().norm(), y.mag().norm()
	if !fitsMul(xabs, yabs) {
		return Int{}, fmt.Errorf("%T can have at most %v bytes: %w", Int{}, MaxLen, errLengthOverflow)
	}
	return newInt(xabs.mul(yabs))
}

// fitsMul returns false if the product of x and y, which must be normalized,
// is certainly longer than MaxLen bytes.
// The product of an m-byte and an n-byte number has at least m+n-1 bytes.
func fitsMul(x, y bnat) bool {
	return len(x)+len(y)-1 <= MaxLen
}

// MulUint64 returns the product of x and u.
// It is equivalent to x.Mul(New(u)).
//
// MulUint64 returns an error if the product is longer than [MaxLen] bytes.
func (x Int) MulUint64(u uint64) (Int, error) {
	return x.Mul(New(u))
}

// Pow returns x raised to the power of exp.
// The result is computed by multiplying 1 by x exactly exp times,
// so the running time is linear in exp.
// 0^0 is defined as 1.
//
// Pow returns an error if the result is longer than [MaxLen] bytes.
func (x Int) Pow(exp uint64) (Int, error) {
	base := x.mag().norm()

	// Special cases
	switch {
	case exp == 0:
		return Int{abs: bone()}, nil
	case base.isZero():
		return Int{abs: bzero()}, nil
	case base.cmp(bnat{1}) == 0:
		return Int{abs: bone()}, nil
	}

	// The result has at least (n-1)*exp+1 bits,
	// where n > 1 is the bit length of the base.
	if n := base.bitLen(); exp > uint64(8*MaxLen-1)/uint64(n-1) {
		return Int{}, fmt.Errorf("%T can have at most %v bytes: %w", Int{}, MaxLen, errLengthOverflow)
	}

	// General case
	z := bone()
	for ; exp > 0; exp-- {
		if !fitsMul(z, base) {
			return Int{}, fmt.Errorf("%T can have at most %v bytes: %w", Int{}, MaxLen, errLengthOverflow)
		}
		z = z.mul(base)
		if len(z) > MaxLen {
			return newInt(z)
		}
	}
	return Int{abs: z}, nil
}
