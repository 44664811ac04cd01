// Package outbound builds the host-bound response body an AID key (or a
// host-initiated Read command) produces: the AID byte, the cursor
// position, and whatever field content the collection mode asks for. It
// composes screen.Ops and field.Table the same way internal/proto does,
// leaving record framing (sequence numbers, the 7-byte header) to the
// caller via proto.BuildRecordHeader, grounded on go3270/screen.go's
// sba/sf/getpos byte-builders generalized from 3270's 6-bit buffer
// addresses to 5250's plain row/col bytes.
package outbound

// AID identifies which key or host request produced a response.
type AID byte

// AID byte values.
const (
	AIDEnter    AID = 0xF1
	AIDHelp     AID = 0xF3
	AIDPageUp   AID = 0xF4
	AIDPageDown AID = 0xF5
	AIDPrint    AID = 0xF6
	AIDClear    AID = 0xBD

	AIDPF1  AID = 0x31
	AIDPF2  AID = 0x32
	AIDPF3  AID = 0x33
	AIDPF4  AID = 0x34
	AIDPF5  AID = 0x35
	AIDPF6  AID = 0x36
	AIDPF7  AID = 0x37
	AIDPF8  AID = 0x38
	AIDPF9  AID = 0x39
	AIDPF10 AID = 0x3A
	AIDPF11 AID = 0x3B
	AIDPF12 AID = 0x3C

	AIDPF13 AID = 0xB1
	AIDPF14 AID = 0xB2
	AIDPF15 AID = 0xB3
	AIDPF16 AID = 0xB4
	AIDPF17 AID = 0xB5
	AIDPF18 AID = 0xB6
	AIDPF19 AID = 0xB7
	AIDPF20 AID = 0xB8
	AIDPF21 AID = 0xB9
	AIDPF22 AID = 0xBA
	AIDPF23 AID = 0xBB
	AIDPF24 AID = 0xBC
)

// PF returns the AID byte for PF key n (1-24).
func PF(n int) AID {
	switch {
	case n >= 1 && n <= 12:
		return AID(0x31 + n - 1)
	case n >= 13 && n <= 24:
		return AID(0xB1 + n - 13)
	default:
		return 0
	}
}

// Format selects how much field data rides along with an AID response.
type Format int

const (
	// FormatShort carries only the AID and cursor position.
	FormatShort Format = iota
	// FormatLong prefixes each collected field's content with an SBA
	// order positioning the host to the field's start.
	FormatLong
	// FormatStructured prefixes each collected field's content with an
	// extended-attribute location tag and a length byte.
	FormatStructured
)

// CollectionMode selects which fields a long/structured response includes.
type CollectionMode int

const (
	// CollectNone carries no field data regardless of format.
	CollectNone CollectionMode = iota
	// CollectModified carries only fields with MDT set.
	CollectModified
	// CollectAll carries every field in table order.
	CollectAll
)

// sbaOrder is the order byte a long-format response uses to position the
// host at each field's start, matching internal/proto's WTD order byte.
const sbaOrder byte = 0x11

// structuredTagBase is the first byte of the extended-attribute location
// tag range a structured response uses ahead of each field (0xC0..0xCF).
const structuredTagBase byte = 0xC0
