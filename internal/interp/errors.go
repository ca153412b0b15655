package interp

import "errors"

var (
	// ErrRegisterCount indicates a register count outside [1, MaxRegisters).
	ErrRegisterCount = errors.New("interp: register count out of range")

	// ErrRegisterIndex indicates a reference to a register that does not exist
	// or, for CLONE, has not been initialized yet.
	ErrRegisterIndex = errors.New("interp: register index out of range")

	// ErrInvalidCommand indicates an unrecognized command keyword.
	ErrInvalidCommand = errors.New("interp: invalid command")

	// ErrMalformedLine indicates a line that cannot be decoded,
	// such as a bad decimal number or a wrong number of operands.
	ErrMalformedLine = errors.New("interp: malformed line")

	// ErrUnexpectedEOF indicates that the input ended before END.
	ErrUnexpectedEOF = errors.New("interp: unexpected end of input")
)
