package texture

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/bodgit/texture16/color16"
)

// The debug layout is self-describing: the pixels carry their own 64-bit
// count and the key is an option tag after them.
//
//	u32 width, u32 height, u64 count, u16[count] pixels, u8 tag, [u16 key]
//
// Nothing but this package reads it.

type debugHeader struct {
	Width  uint32
	Height uint32
	Count  uint64
}

// EncodeDebug writes t to w using the debug layout.
func EncodeDebug(w io.Writer, t *Texture) error {
	if t.Width <= 0 || t.Height <= 0 || t.Width*t.Height != len(t.Pix) {
		return errBadTexture
	}

	bw := bufio.NewWriter(w)

	h := debugHeader{uint32(t.Width), uint32(t.Height), uint64(len(t.Pix))}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.LittleEndian, t.Pix); err != nil {
		return err
	}

	if key, ok := t.Transparent(); ok {
		if err := bw.WriteByte(1); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, key); err != nil {
			return err
		}
	} else if err := bw.WriteByte(0); err != nil {
		return err
	}

	return bw.Flush()
}

// DecodeDebug reads a texture written by EncodeDebug from r.
func DecodeDebug(r io.Reader) (*Texture, error) {
	var h debugHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, notEnough(err)
	}

	if h.Width == 0 || h.Height == 0 || uint64(h.Width)*uint64(h.Height) != h.Count || h.Count > MaxPixels {
		return nil, ErrBadSize
	}

	t := New(int(h.Width), int(h.Height))
	if err := binary.Read(r, binary.LittleEndian, t.Pix); err != nil {
		return nil, notEnough(err)
	}

	var tag [1]byte
	if err := readFull(r, tag[:]); err != nil {
		return nil, notEnough(err)
	}

	switch tag[0] {
	case 0:
	case 1:
		var key color16.Color
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, notEnough(err)
		}
		t.Key = &key
	default:
		return nil, ErrBadKeyFlag
	}

	return t, nil
}

func notEnough(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrNotEnough
	}
	return err
}
