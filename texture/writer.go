package texture

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var errBadTexture = errors.New("texture: pixel count does not match dimensions")

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) writeHeader(t *Texture) error {
	var tmp [headerSize + keySize]byte
	binary.LittleEndian.PutUint32(tmp[0:], uint32(t.Width))
	binary.LittleEndian.PutUint32(tmp[4:], uint32(t.Height))

	n := headerSize
	if key, ok := t.Transparent(); ok {
		tmp[8] = 1
		binary.LittleEndian.PutUint16(tmp[9:], uint16(key))
		n += keySize
	}

	_, err := e.w.Write(tmp[:n])
	return err
}

func (e *encoder) writePixels(t *Texture) error {
	var tmp [pixelSize]byte
	for _, c := range t.Pix {
		binary.LittleEndian.PutUint16(tmp[:], uint16(c))
		if _, err := e.w.Write(tmp[:]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encode(t *Texture) error {
	if t.Width <= 0 || t.Height <= 0 || t.Width*t.Height != len(t.Pix) {
		return errBadTexture
	}

	if err := e.writeHeader(t); err != nil {
		return err
	}

	if err := e.writePixels(t); err != nil {
		return err
	}

	return e.w.Flush()
}

// Encode writes the texture t to w.
func Encode(w io.Writer, t *Texture) error {
	e := encoder{w: bufio.NewWriter(w)}
	return e.encode(t)
}

// MarshalBinary encodes the texture into binary form and returns the result.
func (t *Texture) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(t.Size())
	if err := Encode(b, t); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
