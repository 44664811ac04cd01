package proto

// Opcode is the inbound record header's byte 5.
type Opcode byte

const (
	OpcodeNoOp          Opcode = 0x00
	OpcodeInvite        Opcode = 0x01
	OpcodeOutputOnly    Opcode = 0x02
	OpcodePutGet        Opcode = 0x03
	OpcodeSave          Opcode = 0x04
	OpcodeRestore       Opcode = 0x05
	OpcodeReadImmediate Opcode = 0x06
	OpcodeReadScreenImm Opcode = 0x07
	OpcodeCancelInvite  Opcode = 0x08
)

// RecordHeader is the 7-byte envelope every inbound (and outbound) 5250
// record carries ahead of its command stream:
//
//	bytes 0-1: total record length (big-endian, includes these 2 bytes)
//	byte  2-3: reserved / sequence number
//	byte  4  : header flags
//	byte  5  : opcode
//	byte  6  : header length (always 3, counting bytes 4-6)
type RecordHeader struct {
	Length    int
	Sequence  uint16
	Flags     byte
	Opcode    Opcode
	HeaderLen byte
}

const recordHeaderSize = 7

// ParseRecordHeader reads the 7-byte header from the front of data and
// returns it along with the command-stream bytes that follow.
func ParseRecordHeader(data []byte) (RecordHeader, []byte, error) {
	if len(data) < recordHeaderSize {
		return RecordHeader{}, nil, &TruncatedRecordError{Want: recordHeaderSize, Got: len(data)}
	}
	h := RecordHeader{
		Length:    int(data[0])<<8 | int(data[1]),
		Sequence:  uint16(data[2])<<8 | uint16(data[3]),
		Flags:     data[4],
		Opcode:    Opcode(data[5]),
		HeaderLen: data[6],
	}
	return h, data[recordHeaderSize:], nil
}

// BuildRecordHeader renders an outbound record header with the given
// opcode and command bytes. Unlike an inbound header's reserved bytes 2-3,
// an outbound header's bytes 2-3 carry the wrapping 0..255 sequence number
// as a little-endian pair (high byte always 0x00) — sequence is a plain
// byte for exactly that reason, so it cannot be asked to carry a value the
// wire format has no room for.
func BuildRecordHeader(sequence byte, opcode Opcode, command []byte) []byte {
	total := recordHeaderSize + len(command)
	out := make([]byte, 0, total)
	out = append(out, byte(total>>8), byte(total&0xFF))
	out = append(out, sequence, 0x00)
	out = append(out, 0x00) // flags
	out = append(out, byte(opcode))
	out = append(out, 0x03) // header length
	out = append(out, command...)
	return out
}
