package texture16

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/go-errors/errors"

	"github.com/bodgit/texture16/texture"
)

// keyQuantizer leaves room in the palette for a transparent entry.
type keyQuantizer struct {
	quantize.MedianCutQuantizer
}

func (q keyQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	p = q.MedianCutQuantizer.Quantize(p[:0:cap(p)-1], m)
	return append(p, color.Transparent)
}

// Preview decodes the texture in file in and writes it out as a PNG image,
// or a GIF if out has a .gif extension. Pixels matching the transparent key
// are written as transparent.
func Preview(in, out string) (err error) {
	r, err := os.Open(in)
	if err != nil {
		return errors.WrapPrefix(err, in, 0)
	}
	defer r.Close()

	t, err := texture.Decode(r)
	if err != nil {
		return errors.WrapPrefix(err, in, 0)
	}

	w, err := os.Create(out)
	if err != nil {
		return errors.WrapPrefix(err, out, 0)
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = errors.WrapPrefix(cerr, out, 0)
		}
	}()

	m := t.Image()

	if strings.ToLower(filepath.Ext(out)) == ".gif" {
		var q draw.Quantizer = quantize.MedianCutQuantizer{}
		if _, ok := t.Transparent(); ok {
			q = keyQuantizer{}
		}
		if err := gif.Encode(w, m, &gif.Options{NumColors: 256, Quantizer: q}); err != nil {
			return errors.WrapPrefix(err, out, 0)
		}
		return nil
	}

	if err := png.Encode(w, m); err != nil {
		return errors.WrapPrefix(err, out, 0)
	}
	return nil
}
