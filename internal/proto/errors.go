// Package proto implements the inbound 5250 command/order dispatcher and
// the outer record framing that wraps it: record header parsing, the
// top-level command table (Clear Unit, Write-To-Display, Read*, Save/
// Restore Screen, ...), the order stream a Write-To-Display runs (SBA,
// SF, RA, EA, IC, SOH, ...), and the combined screen+field save stack.
// It drives internal/screen and internal/field through their capability
// interfaces rather than owning buffer state itself, the way
// stlalpha-vision3's ANSIParser drives a screen.Manager one byte at a
// time without owning the screen buffer either.
package proto

import "fmt"

// BadHeaderError reports a malformed SOH order (length byte out of [1..7]).
type BadHeaderError struct{ Length byte }

func (e *BadHeaderError) Error() string {
	return fmt.Sprintf("proto: SOH length byte 0x%02X out of range [1..7]", e.Length)
}

// BadCommandError reports an unrecognized top-level command byte.
type BadCommandError struct{ Cmd byte }

func (e *BadCommandError) Error() string {
	return fmt.Sprintf("proto: unrecognized command byte 0x%02X", e.Cmd)
}

// BadOrderError reports an unrecognized order byte inside a WTD stream.
type BadOrderError struct{ Order byte }

func (e *BadOrderError) Error() string {
	return fmt.Sprintf("proto: unrecognized order byte 0x%02X", e.Order)
}

// AddressOutOfRangeError is a non-fatal diagnostic: an addressing order
// named a row/column outside the screen's bounds. The dispatcher still
// clamps the address and keeps running; this is surfaced through
// Dispatcher.Diagnostics for the session controller to log or report,
// not returned as a processing error.
type AddressOutOfRangeError struct {
	Order    byte
	Row, Col int
}

func (e *AddressOutOfRangeError) Error() string {
	return fmt.Sprintf("proto: order 0x%02X addressed (%d,%d) outside the screen, clamped", e.Order, e.Row, e.Col)
}

// UnsupportedFeatureError reports a recognized but unimplemented
// structured field or order.
type UnsupportedFeatureError struct{ What string }

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("proto: unsupported feature: %s", e.What)
}

// SaveStackOverflowError reports a Save Screen beyond the stack's bound.
type SaveStackOverflowError struct{ Depth int }

func (e *SaveStackOverflowError) Error() string {
	return fmt.Sprintf("proto: save stack overflow at depth %d", e.Depth)
}

// SaveStackUnderflowError reports a Restore Screen with nothing saved.
type SaveStackUnderflowError struct{}

func (e *SaveStackUnderflowError) Error() string { return "proto: save stack underflow" }

// TruncatedRecordError reports a record too short to hold its declared
// header or an order's argument bytes.
type TruncatedRecordError struct{ Want, Got int }

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("proto: truncated record: want %d bytes, got %d", e.Want, e.Got)
}
