/*
Package apint implements immutable arbitrary-precision unsigned integers.
It favors simple byte-at-a-time algorithms over speed, which makes every
step of the arithmetic easy to follow and to verify.

# Representation

[Int] stores the magnitude of a number as a little-endian sequence of bytes:
the first byte is the least significant one.
For example, the number 65025 (0xfe01) is stored as the two bytes 0x01, 0xfe.

An integer is normalized if its most significant byte is not zero.
The only exception is the number 0, which is represented by a single zero byte.
[New], [NewFromBytes], and all arithmetic operations return normalized integers.

# Constraints

The length of an integer is limited by [MaxLen] bytes, which allows numbers
up to 2^524280 - 1.
Operations that would produce a longer result return an error instead.

# Conversions

The package provides methods for converting integers:

  - from/to uint64:
    [New], [Int.Uint64], [Int.Uint64Exact].
  - from/to hexadecimal string:
    [ParseHex], [Int.String], [Int.Format].
  - from/to bytes:
    [NewFromBytes], [Int.Bytes].

[Int.Uint64] keeps only the lowest 8 bytes of an integer and discards the rest
without reporting an error.

[ParseHex] does not normalize its result: the string "00ff" produces an integer
of length 2, which is printed back as "0x00ff".
[Int.Cmp] compares such integers by value, and [Int.Trim] returns their
normalized form.

# Operations

  - [Int.Add] adds two integers byte by byte, propagating the carry.
  - [Int.Shl1] and [Int.Shr1] shift an integer by a single bit.
    [Int.Lsh] repeats [Int.Shl1] the requested number of times.
  - [Int.Mul] multiplies two integers using binary long multiplication,
    [Int.MulUint64] multiplies an integer by a uint64.
  - [Int.Pow] raises an integer to a power by repeated multiplication.
  - [Int.Cmp] compares two integers.

The running time of [Int.Lsh] and [Int.Pow] is linear in their argument.
Arguments that certainly lead to an overflow are rejected before any work is done.

# Errors

All methods are pure and, except for the Must* family, panic-free.
Errors are returned in the following cases:

  - Invalid Hexadecimal String.
    [ParseHex] returns an error if the string is empty or contains a character
    that is not a hexadecimal digit.

  - Overflow.
    Arithmetic operations return an error if the result is longer than
    [MaxLen] bytes.
*/
package apint
