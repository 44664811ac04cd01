package outbound

import (
	"github.com/ibm5250/tn5250/internal/codec"
	"github.com/ibm5250/tn5250/internal/field"
	"github.com/ibm5250/tn5250/internal/screen"
)

// BuildResponse renders an AID response body: the AID byte, the 0-based
// cursor row and column clamped into range at encode time (row clamped to
// [0..R-1], col to [0..C-1] — a 0-based convention distinct from the
// 1-based row/col the order stream uses),
// and whatever field content mode and format select. It does not frame
// the body into a record; the caller wraps it with proto.BuildRecordHeader.
func BuildResponse(aid AID, format Format, mode CollectionMode, scr screen.Ops, tbl *field.Table, c *codec.Codec) []byte {
	out := []byte{byte(aid)}
	out = append(out, encodeCursor(scr)...)

	if format == FormatShort || mode == CollectNone {
		return out
	}

	var fields []*field.Field
	switch mode {
	case CollectModified:
		fields = tbl.CollectModified()
	case CollectAll:
		fields = tbl.CollectAll()
	}

	for _, f := range fields {
		row, col := scr.ToRowCol(f.StartPos())
		row, col = clampRowCol0(scr, row-1, col-1)
		content := c.EncodeString(f.GetText())
		switch format {
		case FormatLong:
			out = append(out, sbaOrder, byte(row), byte(col))
			out = append(out, content...)
		case FormatStructured:
			out = append(out, structuredTagBase)
			out = append(out, byte(len(content)))
			out = append(out, content...)
		}
	}
	return out
}

// encodeCursor returns the 0-based cursor row/col, clamped into range.
func encodeCursor(scr screen.Ops) []byte {
	row, col := scr.CursorRowCol()
	row, col = clampRowCol0(scr, row-1, col-1)
	return []byte{byte(row), byte(col)}
}

// clampRowCol0 clamps 0-based row/col into [0,R) / [0,C).
func clampRowCol0(scr screen.Ops, row, col int) (int, int) {
	size := scr.Size()
	if row < 0 {
		row = 0
	}
	if row >= size.Rows {
		row = size.Rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= size.Cols {
		col = size.Cols - 1
	}
	return row, col
}

// ClearErrorState applies the side effect emitting any AID response has
// on the OIA: the pending error state clears and the saved error line,
// if any, is discarded rather than restored.
func ClearErrorState(scr screen.Ops) {
	scr.ClearInhibit()
	scr.DiscardErrorLine()
}
