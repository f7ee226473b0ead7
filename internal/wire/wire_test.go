package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	w := NewWriter(8)
	if err := w.WriteUint8(0xab); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteUint16(0x0102); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteUint16(0xfffe); err != nil {
		t.Fatal(err)
	}

	want := []byte{0xab, 0x01, 0x02, 0xff, 0xfe}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("Bytes() = %v, want %v", w.Bytes(), want)
	}

	r := NewReader(w.Bytes())
	if v, err := r.ReadUint8(); err != nil || v != 0xab {
		t.Fatalf("ReadUint8 = (%#x, %v), want (0xab, nil)", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0x0102 {
		t.Fatalf("ReadUint16 = (%#x, %v), want (0x0102, nil)", v, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0xfffe {
		t.Fatalf("ReadUint16 = (%#x, %v), want (0xfffe, nil)", v, err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after reading everything, want 0", r.Len())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadUint16(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("ReadUint16 on 1 byte: err = %v, want ErrShortBuffer", err)
	}
	if _, err := r.ReadUint8(); err != nil {
		t.Fatalf("ReadUint8: %v", err)
	}
	if _, err := r.ReadUint8(); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("ReadUint8 past end: err = %v, want ErrShortBuffer", err)
	}
}

func TestWriterShortBuffer(t *testing.T) {
	w := NewWriter(2)
	if err := w.WriteUint16(0x0102); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteUint8(0); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("WriteUint8 past end: err = %v, want ErrShortBuffer", err)
	}
	if err := w.WriteUint16(0); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("WriteUint16 past end: err = %v, want ErrShortBuffer", err)
	}
}

func TestReaderPos(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if r.Pos() != 0 || r.Len() != 3 {
		t.Fatalf("new reader Pos/Len = %d/%d, want 0/3", r.Pos(), r.Len())
	}
	r.ReadUint16()
	if r.Pos() != 2 || r.Len() != 1 {
		t.Fatalf("after ReadUint16 Pos/Len = %d/%d, want 2/1", r.Pos(), r.Len())
	}
}
