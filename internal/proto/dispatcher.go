package proto

import (
	"github.com/ibm5250/tn5250/internal/codec"
	"github.com/ibm5250/tn5250/internal/field"
	"github.com/ibm5250/tn5250/internal/screen"
)

// RequestKind identifies an outbound action a processed record asked for
// — the dispatcher never writes to the transport itself; it hands these
// back to the session controller, which drives internal/outbound and the
// framer (one of the Read*/Save/Restore commands).
type RequestKind int

const (
	RequestReadInputFields RequestKind = iota
	RequestReadMDTFields
	RequestReadScreenImmediate
	RequestReadImmediate
	RequestSaveScreenResponse
	RequestRestoreScreenResponse
	RequestScreenToPrinter
)

// Request is one outbound action queued by ProcessRecord.
type Request struct {
	Kind RequestKind
}

// Dispatcher runs the top-level command loop and the Write-To-Display
// order stream over a screen.Ops and field.Table it does not own,
// generalizing stlalpha-vision3's ANSIParser dispatch shape from ANSI
// CSI bytes to 5250 command/order bytes.
type Dispatcher struct {
	screen screen.Ops
	fields *field.Table
	codec  *codec.Codec

	addr      screen.Pos
	header    Header
	saveStack SaveStack

	// diagnostics accumulates non-fatal events from the record currently
	// being processed: an out-of-range SBA is clamped, not rejected, but
	// still reported.
	diagnostics []error

	// StrictMode controls propagation policy for malformed inbound data:
	// true disconnects the session, false discards the offending record
	// and continues. The dispatcher itself only reports the error; the
	// session controller applies the policy.
	StrictMode bool
}

// New returns a Dispatcher driving scr and tbl, decoding literal display
// data with c.
func New(scr screen.Ops, tbl *field.Table, c *codec.Codec) *Dispatcher {
	return &Dispatcher{screen: scr, fields: tbl, codec: c}
}

// Header returns the current SOH header state.
func (d *Dispatcher) Header() Header { return d.header }

// SaveDepth reports how many screens are on the combined save stack.
func (d *Dispatcher) SaveDepth() int { return d.saveStack.Depth() }

// Diagnostics returns the non-fatal events the most recent ProcessRecord
// call produced, such as an addressing order clamped into range.
func (d *Dispatcher) Diagnostics() []error { return d.diagnostics }

// ProcessRecord runs one inbound 5250 record (already Telnet-unescaped
// and EOR-stripped) through the record header and top-level command
// dispatch, returning any outbound actions the host requested. Non-fatal
// events from the run are collected separately; see Diagnostics.
func (d *Dispatcher) ProcessRecord(data []byte) ([]Request, error) {
	d.diagnostics = nil
	_, body, err := ParseRecordHeader(data)
	if err != nil {
		return nil, err
	}
	return d.runCommands(body)
}

func (d *Dispatcher) runCommands(data []byte) ([]Request, error) {
	var requests []Request
	i := 0
	for i < len(data) {
		cmd := data[i]
		i++
		switch cmd {
		case cmdClearUnit:
			d.clearUnit()
		case cmdClearFormatTable:
			d.fields.ClearAll()
		case cmdWriteToDisplay:
			if i+2 > len(data) {
				return requests, &TruncatedRecordError{Want: i + 2, Got: len(data)}
			}
			i += 2 // CC1, CC2: the write control character pair
			if err := d.runWTD(data[i:]); err != nil {
				return requests, err
			}
			i = len(data)
		case cmdWriteErrorCode:
			if i+2 > len(data) {
				return requests, &TruncatedRecordError{Want: i + 2, Got: len(data)}
			}
			i += 2 // CC1, CC2
			d.writeErrorCode(data[i:])
			i = len(data)
		case cmdReadInputFields:
			requests = append(requests, Request{Kind: RequestReadInputFields})
		case cmdReadMDTFields:
			requests = append(requests, Request{Kind: RequestReadMDTFields})
		case cmdReadScreenImmediate:
			requests = append(requests, Request{Kind: RequestReadScreenImmediate})
		case cmdReadImmediate:
			requests = append(requests, Request{Kind: RequestReadImmediate})
		case cmdEscape:
			// no-op, marks a command boundary
		case cmdSaveScreen:
			if err := d.saveStack.Push(d.screen, d.fields); err != nil {
				return requests, err
			}
			requests = append(requests, Request{Kind: RequestSaveScreenResponse})
		case cmdRestoreScreen:
			if err := d.saveStack.Pop(d.screen, d.fields); err != nil {
				return requests, err
			}
			requests = append(requests, Request{Kind: RequestRestoreScreenResponse})
		case cmdReadScreenToPrinter:
			requests = append(requests, Request{Kind: RequestScreenToPrinter})
		case cmdWriteStructuredField:
			return requests, &UnsupportedFeatureError{What: "structured field"}
		default:
			return requests, &BadCommandError{Cmd: cmd}
		}
	}
	return requests, nil
}

func (d *Dispatcher) clearUnit() {
	d.screen.ClearUnit()
	d.fields.ClearAll()
	d.header.Reset()
	d.saveStack.Clear()
	d.addr = 0
}

// writeErrorCode implements the Write Error Code command: save the
// current error line, write the message at the bottom row, and lock the
// keyboard with a prog-check reason.
func (d *Dispatcher) writeErrorCode(message []byte) {
	row := d.screen.Size().Rows
	_ = d.screen.SaveErrorLine(row)
	pos, err := d.screen.RowCol(row, 1)
	if err != nil {
		return
	}
	text := make([]rune, 0, len(message))
	for _, b := range message {
		text = append(text, d.codec.Decode(b))
	}
	total := screen.Pos(d.screen.Size().Rows * d.screen.Size().Cols)
	for i, r := range text {
		p := pos + screen.Pos(i)
		if p >= total {
			break
		}
		_ = d.screen.SetChar(p, r)
	}
	d.screen.Inhibit(screen.InhibitedProgCheck, string(text))
}
