package screen

// Size is a screen's row/column geometry. The two sizes a 5250 host ever
// asks for are Size24x80 and Size27x132.
type Size struct {
	Rows, Cols int
}

var (
	Size24x80  = Size{Rows: 24, Cols: 80}
	Size27x132 = Size{Rows: 27, Cols: 132}
)

func (s Size) cells() int { return s.Rows * s.Cols }

// Pos is a 0-based linear buffer address: row*Cols + col.
type Pos int

// Planes holds the parallel per-cell arrays that make up a 5250 display
// buffer: the displayed glyph, its attribute byte, whether the cell itself
// is a (non-displayed) attribute cell, an extended-attribute byte, and the
// derived color/GUI hint pair a renderer reads instead of recomputing from
// the attribute byte on every paint. A Dirty plane tracks which cells have
// changed since the last ClearDirty, the way a double-buffered renderer
// needs (grounded on kungfusheep-glyph's plane-per-concern buffer split).
type Planes struct {
	size Size

	char     []rune
	attr     []byte
	isAttr   []bool
	extended []byte
	color    []Color
	guiHint  []GUIHint
	dirty    []bool
}

func newPlanes(size Size) Planes {
	n := size.cells()
	return Planes{
		size:     size,
		char:     make([]rune, n),
		attr:     make([]byte, n),
		isAttr:   make([]bool, n),
		extended: make([]byte, n),
		color:    make([]Color, n),
		guiHint:  make([]GUIHint, n),
		dirty:    make([]bool, n),
	}
}

func (p *Planes) fillBlank() {
	for i := range p.char {
		p.char[i] = ' '
		p.attr[i] = 0
		p.isAttr[i] = false
		p.extended[i] = 0
		p.color[i] = ColorGreen
		p.guiHint[i] = GUIHint{}
	}
}

// RowCol converts 1-based row/col (as orders like SBA address the screen)
// into a linear Pos, returning NotOnScreenError if out of bounds.
func (p *Planes) RowCol(row, col int) (Pos, error) {
	if row < 1 || row > p.size.Rows || col < 1 || col > p.size.Cols {
		return 0, &NotOnScreenError{Row: row, Col: col, Rows: p.size.Rows, Cols: p.size.Cols}
	}
	return Pos((row-1)*p.size.Cols + (col - 1)), nil
}

// ClampRowCol clamps 1-based row/col into range instead of erroring, the
// behavior SBA requires: row 0 and column 0 clamp both to [1..R] and
// [1..C] rather than rejecting the order.
func (p *Planes) ClampRowCol(row, col int) Pos {
	if row < 1 {
		row = 1
	}
	if row > p.size.Rows {
		row = p.size.Rows
	}
	if col < 1 {
		col = 1
	}
	if col > p.size.Cols {
		col = p.size.Cols
	}
	return Pos((row-1)*p.size.Cols + (col - 1))
}

// ToRowCol converts a linear Pos back to 1-based row/col.
func (p *Planes) ToRowCol(pos Pos) (row, col int) {
	row = int(pos)/p.size.Cols + 1
	col = int(pos)%p.size.Cols + 1
	return
}

func (p *Planes) valid(pos Pos) error {
	if pos < 0 || int(pos) >= len(p.char) {
		row, col := 0, 0
		if p.size.Cols > 0 {
			row = int(pos)/p.size.Cols + 1
			col = int(pos)%p.size.Cols + 1
		}
		return &NotOnScreenError{Row: row, Col: col, Rows: p.size.Rows, Cols: p.size.Cols}
	}
	return nil
}

// Size returns the plane's geometry.
func (p *Planes) Size() Size { return p.size }

// CharAt returns the glyph at pos, or an error if pos is off-screen.
func (p *Planes) CharAt(pos Pos) (rune, error) {
	if err := p.valid(pos); err != nil {
		return 0, err
	}
	return p.char[pos], nil
}

// SetChar writes a data glyph at pos, clearing any attribute-cell flag and
// marking the cell dirty.
func (p *Planes) SetChar(pos Pos, r rune) error {
	if err := p.valid(pos); err != nil {
		return err
	}
	p.char[pos] = r
	p.isAttr[pos] = false
	p.dirty[pos] = true
	return nil
}

// AttrAt returns the raw attribute byte governing pos (its own, if pos is
// an attribute cell; otherwise that of the nearest attribute cell before
// it, wrapping at the start of the buffer), or 0 if the screen has none.
func (p *Planes) AttrAt(pos Pos) (byte, error) {
	if err := p.valid(pos); err != nil {
		return 0, err
	}
	n := len(p.isAttr)
	for i := 0; i < n; i++ {
		q := (int(pos) - i + n) % n
		if p.isAttr[q] {
			return p.attr[q], nil
		}
	}
	return 0, nil
}

// IsAttr reports whether pos holds an attribute byte rather than a
// displayed glyph.
func (p *Planes) IsAttr(pos Pos) (bool, error) {
	if err := p.valid(pos); err != nil {
		return false, err
	}
	return p.isAttr[pos], nil
}

// SetAttribute turns pos into an attribute cell carrying code, deriving
// its color/GUI hint and forcing its displayed glyph to a space — an
// attribute position never shows its own byte value: an is-attr cell
// always displays as a blank.
func (p *Planes) SetAttribute(pos Pos, code byte) error {
	if err := p.valid(pos); err != nil {
		return err
	}
	p.attr[pos] = code
	p.isAttr[pos] = true
	p.char[pos] = ' '
	p.color[pos], p.guiHint[pos] = deriveColorAndHint(code)
	p.dirty[pos] = true
	return nil
}

// ColorAt and GUIHintAt return the derived rendering hints for pos.
func (p *Planes) ColorAt(pos Pos) (Color, error) {
	if err := p.valid(pos); err != nil {
		return 0, err
	}
	return p.color[pos], nil
}

func (p *Planes) GUIHintAt(pos Pos) (GUIHint, error) {
	if err := p.valid(pos); err != nil {
		return GUIHint{}, err
	}
	return p.guiHint[pos], nil
}

// ExtendedAt and SetExtended carry the extended-attribute byte (CCSID,
// column separator, etc.) a structured field can attach to a position.
func (p *Planes) ExtendedAt(pos Pos) (byte, error) {
	if err := p.valid(pos); err != nil {
		return 0, err
	}
	return p.extended[pos], nil
}

func (p *Planes) SetExtended(pos Pos, b byte) error {
	if err := p.valid(pos); err != nil {
		return err
	}
	p.extended[pos] = b
	p.dirty[pos] = true
	return nil
}

// Dirty reports whether pos has changed since the last ClearDirty.
func (p *Planes) Dirty(pos Pos) (bool, error) {
	if err := p.valid(pos); err != nil {
		return false, err
	}
	return p.dirty[pos], nil
}

// ClearDirty resets every cell's dirty flag, typically after a renderer
// has drawn a frame.
func (p *Planes) ClearDirty() {
	for i := range p.dirty {
		p.dirty[i] = false
	}
}

// DirtyPositions returns every currently-dirty position in ascending order.
func (p *Planes) DirtyPositions() []Pos {
	var out []Pos
	for i, d := range p.dirty {
		if d {
			out = append(out, Pos(i))
		}
	}
	return out
}

// FillRange repeats r across [from, to), wrapping past the end of the
// buffer back to the start when to < from — Repeat to Address's
// wraparound behavior. to itself is never written: RA(to=from) is a
// no-op, and an ordinary RA leaves its destination cell untouched for
// whatever comes next to set.
func (p *Planes) FillRange(from, to Pos, r rune) error {
	if err := p.valid(from); err != nil {
		return err
	}
	if err := p.valid(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	n := len(p.char)
	for i := int(from); Pos(i) != to; i = (i + 1) % n {
		p.char[i] = r
		p.isAttr[i] = false
		p.dirty[i] = true
	}
	return nil
}

// EraseRange blanks [from, to), wrapping like FillRange.
func (p *Planes) EraseRange(from, to Pos) error {
	return p.FillRange(from, to, ' ')
}
