package texture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"io"

	"github.com/bodgit/texture16/color16"
)

var (
	// ErrNotEnough is returned when the input ends before the texture does.
	ErrNotEnough = errors.New("texture: not enough data")
	// ErrTooMuch is returned when there is data after the last pixel.
	ErrTooMuch = errors.New("texture: too much data")
	// ErrBadKeyFlag is returned when the key flag is neither 0 nor 1.
	ErrBadKeyFlag = errors.New("texture: invalid key flag")
	// ErrBadSize is returned for zero or absurdly large dimensions.
	ErrBadSize = errors.New("texture: invalid size")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width, height int
	key           *color16.Color

	pix []color16.Color

	tmp [headerSize + keySize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:headerSize]); err != nil {
		return err
	}

	w := binary.LittleEndian.Uint32(d.tmp[0:])
	h := binary.LittleEndian.Uint32(d.tmp[4:])
	if w == 0 || h == 0 || uint64(w)*uint64(h) > MaxPixels {
		return ErrBadSize
	}
	d.width, d.height = int(w), int(h)

	switch d.tmp[8] {
	case 0:
	case 1:
		if err := readFull(d.r, d.tmp[headerSize:]); err != nil {
			return err
		}
		key := color16.Color(binary.LittleEndian.Uint16(d.tmp[headerSize:]))
		d.key = &key
	default:
		return ErrBadKeyFlag
	}

	return nil
}

func (d *decoder) readPixels() error {
	// Let the buffer grow with the input rather than trusting the header
	size := int64(d.width) * int64(d.height) * pixelSize
	b := new(bytes.Buffer)
	n, err := io.CopyN(b, d.r, size)
	if err != nil && err != io.EOF {
		return err
	}
	if n != size {
		return io.ErrUnexpectedEOF
	}

	d.pix = make([]color16.Color, d.width*d.height)
	raw := b.Bytes()
	for i := range d.pix {
		d.pix[i] = color16.Color(binary.LittleEndian.Uint16(raw[i*pixelSize:]))
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrNotEnough
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return ErrNotEnough
	}

	switch n, err := r.Read(d.tmp[:1]); {
	case n != 0:
		return ErrTooMuch
	case err != nil && err != io.EOF:
		return err
	}

	return nil
}

// Decode reads a texture from r.
func Decode(r io.Reader) (*Texture, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &Texture{
		Width:  d.width,
		Height: d.height,
		Pix:    d.pix,
		Key:    d.key,
	}, nil
}

// DecodeConfig returns the color model and dimensions of a texture without
// decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color16.Model,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

// UnmarshalBinary decodes the texture from binary form.
func (t *Texture) UnmarshalBinary(b []byte) error {
	m, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*t = *m
	return nil
}
