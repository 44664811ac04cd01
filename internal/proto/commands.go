package proto

// Top-level 5250 command bytes.
const (
	cmdClearUnit            byte = 0x40
	cmdClearFormatTable     byte = 0x4F
	cmdWriteToDisplay       byte = 0x11
	cmdWriteErrorCode       byte = 0xF3
	cmdReadInputFields      byte = 0xF1
	cmdReadMDTFields        byte = 0xF2
	cmdReadScreenImmediate  byte = 0x62
	cmdReadImmediate        byte = 0x6B
	cmdEscape               byte = 0x04
	cmdSaveScreen           byte = 0xF0
	cmdRestoreScreen        byte = 0xF5
	cmdReadScreenToPrinter  byte = 0x12
	cmdWriteStructuredField byte = 0xD0
)
