package x86

// Cursor is a little-endian byte-stream reader with a sticky short-read
// error: once a read runs past the end of the stream, every subsequent
// read returns a zero value without consuming bytes.
type Cursor struct {
	data []uint8
	pos  int
	err  error
}

// NewCursor creates a cursor reading from data starting at pos.
func NewCursor(data []uint8, pos int) *Cursor {
	return &Cursor{data: data, pos: pos}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Err returns the sticky short-read error, or nil if every read so far
// succeeded.
func (c *Cursor) Err() error {
	return c.err
}

// PeekU8 returns the next byte without consuming it. ok is false at
// end-of-stream or once the sticky error is set; no error is recorded in
// that case since peeking is not itself a read.
func (c *Cursor) PeekU8() (uint8, bool) {
	if !c.HasBytes(1) {
		return 0, false
	}
	return c.data[c.pos], true
}

// HasBytes reports whether at least n more bytes remain.
func (c *Cursor) HasBytes(n int) bool {
	return c.err == nil && c.pos+n <= len(c.data)
}

func (c *Cursor) fail() {
	if c.err == nil {
		c.err = ErrShortRead
	}
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() uint8 {
	if !c.HasBytes(1) {
		c.fail()
		return 0
	}
	v := c.data[c.pos]
	c.pos++
	return v
}

// ReadI8 reads one signed byte.
func (c *Cursor) ReadI8() int8 {
	return int8(c.ReadU8())
}

// ReadU16 reads a little-endian unsigned word.
func (c *Cursor) ReadU16() uint16 {
	if !c.HasBytes(2) {
		c.fail()
		return 0
	}
	v := uint16(c.data[c.pos]) | uint16(c.data[c.pos+1])<<8
	c.pos += 2
	return v
}

// ReadI16 reads a little-endian signed word.
func (c *Cursor) ReadI16() int16 {
	return int16(c.ReadU16())
}
