package nrbfprim

import (
	"encoding/binary"
	"math"
)

// Writer writes little-endian primitives to a growable byte buffer,
// mirroring Reader's method surface.
type Writer struct {
	buf []byte

	// StrictChar mirrors Reader.StrictChar: when true, Char values are
	// written as two bytes instead of one.
	StrictChar bool
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteBool writes a boolean as a single byte (1 or 0).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteByte writes an unsigned 8-bit integer.
func (w *Writer) WriteByte(v byte) error {
	w.buf = append(w.buf, v)
	return nil
}

// WriteSByte writes a signed 8-bit integer.
func (w *Writer) WriteSByte(v int8) {
	w.buf = append(w.buf, byte(v))
}

// WriteInt16 writes a little-endian signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteUint16 writes a little-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt32 writes a little-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteUint32 writes a little-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt64 writes a little-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteUint64 writes a little-endian unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteFloat32 writes a little-endian IEEE-754 single-precision float.
func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes a little-endian IEEE-754 double-precision float.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteChar writes a Char value, one byte unless StrictChar is set.
func (w *Writer) WriteChar(v rune) {
	if w.StrictChar {
		w.WriteUint16(uint16(v))
		return
	}
	w.buf = append(w.buf, byte(v))
}

// WriteDecimalBytes writes the 16 raw bytes of a Decimal value verbatim.
func (w *Writer) WriteDecimalBytes(v [16]byte) {
	w.buf = append(w.buf, v[:]...)
}

// WriteTicks writes the 64-bit raw tick value backing DateTime/TimeSpan.
func (w *Writer) WriteTicks(v int64) {
	w.WriteInt64(v)
}

// WriteVarInt writes n as a 7-bit variable-length integer. Callers must
// ensure n <= 2^31-1 (the decoder rejects anything larger).
func (w *Writer) WriteVarInt(n uint32) {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			w.buf = append(w.buf, b|0x80)
		} else {
			w.buf = append(w.buf, b)
			return
		}
	}
}

// WriteString writes a variable-length integer byte count followed by
// the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) {
	w.WriteVarInt(uint32(len(s)))
	w.buf = append(w.buf, s...)
}
