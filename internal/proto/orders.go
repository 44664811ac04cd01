package proto

import (
	"github.com/ibm5250/tn5250/internal/field"
	"github.com/ibm5250/tn5250/internal/screen"
)

// Order bytes recognized inside a Write-To-Display stream.
const (
	orderSBA  byte = 0x11
	orderIC   byte = 0x13
	orderRA   byte = 0x02
	orderEA   byte = 0x03
	orderSF   byte = 0x1D
	orderSOH  byte = 0x01
	orderTD   byte = 0x10
	orderMC   byte = 0x14
	orderWEA  byte = 0x28
	orderWEA2 byte = 0x29
	orderSRC  byte = 0x2B
	orderSF3  byte = 0xF3 // structured field, distinct byte-space from the cmdWriteErrorCode 0xF3
)

// runWTD runs the order stream that follows a Write-To-Display command's
// control-character pair until data is exhausted. Any byte that is not a
// recognized order code is literal display data: decoded via d.codec and
// written at the current buffer address, which then advances by one
// (wrapping at the end of the buffer).
func (d *Dispatcher) runWTD(data []byte) error {
	i := 0
	for i < len(data) {
		b := data[i]
		switch b {
		case orderSBA:
			if i+2 >= len(data) {
				return &TruncatedRecordError{Want: i + 3, Got: len(data)}
			}
			row, col := int(data[i+1]), int(data[i+2])
			d.checkAddrRange(orderSBA, row, col)
			d.addr = d.screen.ClampRowCol(row, col)
			i += 3
		case orderIC:
			if err := d.screen.MoveCursor(d.addr); err != nil {
				return err
			}
			if err := d.screen.SetHome(d.addr); err != nil {
				return err
			}
			i++
		case orderRA:
			if i+3 >= len(data) {
				return &TruncatedRecordError{Want: i + 4, Got: len(data)}
			}
			d.checkAddrRange(orderRA, int(data[i+1]), int(data[i+2]))
			dest := d.screen.ClampRowCol(int(data[i+1]), int(data[i+2]))
			r := d.codec.Decode(data[i+3])
			if err := d.screen.FillRange(d.addr, dest, r); err != nil {
				return err
			}
			d.addr = dest
			i += 4
		case orderEA:
			if i+2 >= len(data) {
				return &TruncatedRecordError{Want: i + 3, Got: len(data)}
			}
			d.checkAddrRange(orderEA, int(data[i+1]), int(data[i+2]))
			dest := d.screen.ClampRowCol(int(data[i+1]), int(data[i+2]))
			if err := d.screen.EraseRange(d.addr, dest); err != nil {
				return err
			}
			d.addr = dest
			i += 3
		case orderSF:
			n, err := d.runSF(data[i+1:])
			if err != nil {
				return err
			}
			i += 1 + n
		case orderSOH:
			h, n, err := ParseSOH(data[i+1:])
			if err != nil {
				if _, ok := err.(*BadHeaderError); ok {
					d.diagnostics = append(d.diagnostics, err)
					i += 1 + n
					continue // invariant 9: no state change beyond the BadHeader signal
				}
				return err
			}
			h.ClampErrorRow(d.screen.Size().Rows)
			d.header = h
			i += 1 + n
		case orderTD:
			if i+1 >= len(data) {
				return &TruncatedRecordError{Want: i + 2, Got: len(data)}
			}
			n := int(data[i+1])
			if i+2+n > len(data) {
				return &TruncatedRecordError{Want: i + 2 + n, Got: len(data)}
			}
			for _, raw := range data[i+2 : i+2+n] {
				d.writeLiteral(raw)
			}
			i += 2 + n
		case orderMC:
			if i+2 >= len(data) {
				return &TruncatedRecordError{Want: i + 3, Got: len(data)}
			}
			d.checkAddrRange(orderMC, int(data[i+1]), int(data[i+2]))
			d.addr = d.screen.ClampRowCol(int(data[i+1]), int(data[i+2]))
			i += 3
		case orderWEA, orderWEA2:
			if i+1 >= len(data) {
				return &TruncatedRecordError{Want: i + 2, Got: len(data)}
			}
			if err := d.screen.SetExtended(d.addr, data[i+1]); err != nil {
				return err
			}
			i += 2
		case orderSRC:
			if i+2 >= len(data) {
				return &TruncatedRecordError{Want: i + 3, Got: len(data)}
			}
			// Set reference coordinate: records a logical origin for
			// subsequent relative addressing. This module has no relative
			// addressing orders yet, so it is accepted and ignored.
			i += 3
		case orderSF3:
			return &UnsupportedFeatureError{What: "structured field"}
		default:
			d.writeLiteral(b)
			i++
		}
	}
	d.finalizeFieldLengths()
	return nil
}

// finalizeFieldLengths corrects each field's length to the distance to
// the next field's attribute byte, or the remainder of the buffer for
// the last field. Start Field installs a field with a provisional length
// (whatever the buffer looked like at that moment); later Start Field
// orders in the same stream can move that boundary, so lengths are
// settled once the whole order stream has run.
func (d *Dispatcher) finalizeFieldLengths() {
	fields := d.fields.CollectAll()
	if len(fields) == 0 {
		return
	}
	size := d.screen.Size()
	total := size.Rows * size.Cols
	for i, f := range fields {
		var length int
		if i+1 < len(fields) {
			length = int(fields[i+1].AttrPos) - int(f.Start)
		} else {
			length = total - int(f.Start)
		}
		if length < 0 {
			length += total
		}
		f.Resize(length)
	}
}

// checkAddrRange records a non-fatal AddressOutOfRangeError diagnostic
// when an addressing order's row/col fall outside the screen: the caller
// still clamps and continues running.
func (d *Dispatcher) checkAddrRange(order byte, row, col int) {
	size := d.screen.Size()
	if row < 1 || row > size.Rows || col < 1 || col > size.Cols {
		d.diagnostics = append(d.diagnostics, &AddressOutOfRangeError{Order: order, Row: row, Col: col})
	}
}

// writeLiteral decodes one EBCDIC byte and writes it at the current
// buffer address, advancing the address by one with wraparound.
func (d *Dispatcher) writeLiteral(raw byte) {
	r := d.codec.Decode(raw)
	_ = d.screen.SetChar(d.addr, r)
	d.addr = d.advance(d.addr)
}

func (d *Dispatcher) advance(pos screen.Pos) screen.Pos {
	size := d.screen.Size()
	n := screen.Pos(size.Rows * size.Cols)
	next := pos + 1
	if next >= n {
		next = 0
	}
	return next
}

// runSF parses a Start Field order's attribute byte and its four FFW/FCW
// flag bytes (`1D 20 03 00 00 00` is SF, attr, FFW1, FFW2, FCW1, FCW2 in
// full every time — this module does not treat the flag bytes as
// conditionally present), installs the field, and returns the number of
// bytes consumed from data (not counting the leading SF code byte itself,
// already consumed by the caller).
func (d *Dispatcher) runSF(data []byte) (int, error) {
	const n = 5 // attr + FFW1 + FFW2 + FCW1 + FCW2
	if len(data) < n {
		return 0, &TruncatedRecordError{Want: n, Got: len(data)}
	}
	attrByte := data[0]
	ffw1, ffw2, fcw1, fcw2 := data[1], data[2], data[3], data[4]
	attrCode := attrByte & 0x3F

	attrPos := d.addr
	if err := d.screen.SetAttribute(attrPos, attrCode); err != nil {
		return 0, err
	}
	start := d.advance(attrPos)
	length := defaultFieldLength(d.screen, start)

	f := field.NewField(start, length, ffw1, ffw2, fcw1, fcw2, attrPos, attrCode)
	d.fields.AddField(f)
	d.addr = start
	return n, nil
}

// defaultFieldLength finds the next attribute byte from start onward and
// returns the distance to it, treating the remainder of the screen as
// the field's length if no further attribute byte exists.
func defaultFieldLength(scr screen.Ops, start screen.Pos) int {
	size := scr.Size()
	total := screen.Pos(size.Rows * size.Cols)
	for p := start; p != start-1; p++ {
		if p >= total {
			break
		}
		isAttr, err := scr.IsAttr(p)
		if err != nil || isAttr {
			return int(p - start)
		}
	}
	return int(total - start)
}
