package proto

import (
	"testing"

	"github.com/ibm5250/tn5250/internal/screen"
)

func TestProcessRecordClearUnitResetsEverything(t *testing.T) {
	d, scr, tbl := newTestDispatcher(t)

	if err := d.saveStack.Push(scr, tbl); err != nil {
		t.Fatalf("Push: %v", err)
	}
	d.header = Header{ErrorRow: 3}
	d.addr = 5

	cmd := []byte{cmdClearUnit}
	rec := BuildRecordHeader(1, OpcodeOutputOnly, cmd)
	if _, err := d.ProcessRecord(rec); err != nil {
		t.Fatalf("ProcessRecord: %v", err)
	}
	if d.SaveDepth() != 0 {
		t.Errorf("SaveDepth = %d, want 0", d.SaveDepth())
	}
	if d.header != (Header{}) {
		t.Errorf("header = %+v, want zero value", d.header)
	}
	if d.addr != 0 {
		t.Errorf("addr = %d, want 0", d.addr)
	}
	if tbl.Len() != 0 {
		t.Errorf("fields = %d, want 0", tbl.Len())
	}
}

func TestProcessRecordUnknownCommandIsBadCommandError(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	rec := BuildRecordHeader(1, OpcodeOutputOnly, []byte{0xEE})
	_, err := d.ProcessRecord(rec)
	if _, ok := err.(*BadCommandError); !ok {
		t.Fatalf("err = %v, want *BadCommandError", err)
	}
}

func TestProcessRecordWriteStructuredFieldIsUnsupportedFeature(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	rec := BuildRecordHeader(1, OpcodeOutputOnly, []byte{cmdWriteStructuredField, 0x00, 0x06, 0xD9, 0x70, 0x00})
	_, err := d.ProcessRecord(rec)
	if _, ok := err.(*UnsupportedFeatureError); !ok {
		t.Fatalf("err = %v, want *UnsupportedFeatureError", err)
	}
}

func TestProcessRecordReadInputFieldsQueuesRequest(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	rec := BuildRecordHeader(1, OpcodeOutputOnly, []byte{cmdReadInputFields})
	reqs, err := d.ProcessRecord(rec)
	if err != nil {
		t.Fatalf("ProcessRecord: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Kind != RequestReadInputFields {
		t.Fatalf("reqs = %+v, want one RequestReadInputFields", reqs)
	}
}

func TestProcessRecordSaveThenRestoreScreen(t *testing.T) {
	d, scr, _ := newTestDispatcher(t)
	pos, _ := scr.RowCol(1, 1)
	_ = scr.SetChar(pos, 'X')

	saveRec := BuildRecordHeader(1, OpcodeOutputOnly, []byte{cmdSaveScreen})
	reqs, err := d.ProcessRecord(saveRec)
	if err != nil {
		t.Fatalf("ProcessRecord(save): %v", err)
	}
	if len(reqs) != 1 || reqs[0].Kind != RequestSaveScreenResponse {
		t.Fatalf("reqs = %+v, want RequestSaveScreenResponse", reqs)
	}
	if d.SaveDepth() != 1 {
		t.Fatalf("SaveDepth = %d, want 1", d.SaveDepth())
	}

	_ = scr.SetChar(pos, 'Y')

	restoreRec := BuildRecordHeader(2, OpcodeOutputOnly, []byte{cmdRestoreScreen})
	reqs, err = d.ProcessRecord(restoreRec)
	if err != nil {
		t.Fatalf("ProcessRecord(restore): %v", err)
	}
	if len(reqs) != 1 || reqs[0].Kind != RequestRestoreScreenResponse {
		t.Fatalf("reqs = %+v, want RequestRestoreScreenResponse", reqs)
	}
	r, _ := scr.CharAt(pos)
	if r != 'X' {
		t.Errorf("CharAt after restore = %q, want 'X'", r)
	}
}

func TestProcessRecordRestoreWithNothingSavedIsUnderflow(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	rec := BuildRecordHeader(1, OpcodeOutputOnly, []byte{cmdRestoreScreen})
	_, err := d.ProcessRecord(rec)
	if _, ok := err.(*SaveStackUnderflowError); !ok {
		t.Fatalf("err = %v, want *SaveStackUnderflowError", err)
	}
}

func TestWriteErrorCodeLocksKeyboardWithMessage(t *testing.T) {
	d, scr, _ := newTestDispatcher(t)
	msg := []byte{0xC8, 0xC5, 0xD3, 0xD3, 0xD6} // EBCDIC "HELLO"
	cmd := append([]byte{cmdWriteErrorCode, 0x00, 0x00}, msg...)
	rec := BuildRecordHeader(1, OpcodeOutputOnly, cmd)
	if _, err := d.ProcessRecord(rec); err != nil {
		t.Fatalf("ProcessRecord: %v", err)
	}
	oia := scr.OIAState()
	if oia.Inhibited != screen.InhibitedProgCheck {
		t.Errorf("Inhibited = %v, want InhibitedProgCheck", oia.Inhibited)
	}
	if oia.Message != "HELLO" {
		t.Errorf("Message = %q, want %q", oia.Message, "HELLO")
	}
}

func TestProcessRecordWriteToDisplayRunsOrderStream(t *testing.T) {
	d, scr, _ := newTestDispatcher(t)
	cmd := []byte{cmdWriteToDisplay, 0x00, 0x00, 0xC8} // CC1, CC2, literal 'H'
	rec := BuildRecordHeader(1, OpcodeOutputOnly, cmd)
	if _, err := d.ProcessRecord(rec); err != nil {
		t.Fatalf("ProcessRecord: %v", err)
	}
	r, err := scr.CharAt(0)
	if err != nil {
		t.Fatalf("CharAt: %v", err)
	}
	if r != 'H' {
		t.Errorf("CharAt(0) = %q, want 'H'", r)
	}
}

func TestProcessRecordTruncatedRecordHeader(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	_, err := d.ProcessRecord([]byte{0x00, 0x01})
	if _, ok := err.(*TruncatedRecordError); !ok {
		t.Fatalf("err = %v, want *TruncatedRecordError", err)
	}
}
