package texture16

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	"github.com/go-errors/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bodgit/texture16/dither"
	"github.com/bodgit/texture16/texture"
)

// OutputPath returns the path of the texture written for the image in file.
func OutputPath(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + Extension
}

// Cache key for the options that affect the output
func (o Options) key() string {
	return fmt.Sprintf("method=%s transparent=%t precision=%s allocator=%v resize=%dx%d",
		o.Method, o.Transparent, o.Precision, o.allocator(), o.Resize.X, o.Resize.Y)
}

func (c *Converter) resize(m image.Image) image.Image {
	if c.options.Resize == (image.Point{}) {
		return m
	}
	g := gift.New(gift.Resize(c.options.Resize.X, c.options.Resize.Y, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

// ConvertImage converts m using the converter options.
func (c *Converter) ConvertImage(m image.Image) (*texture.Texture, error) {
	return dither.Convert(c.resize(m), c.options.Options)
}

func (c *Converter) convertBytes(name string, b []byte) (*texture.Texture, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(b))
	key := c.options.key()

	if c.cache != nil {
		t, err := c.cache.Find(sha, key)
		if err != nil {
			return nil, err
		}
		if t != nil {
			c.logger.Printf("Using cached texture for \"%s\"\n", name)
			return t, nil
		}
	}

	m, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Converting \"%s\" (%s, %dx%d) using %s\n", name, format, m.Bounds().Dx(), m.Bounds().Dy(), c.options.Method)

	t, err := c.ConvertImage(m)
	if err != nil {
		return nil, err
	}
	if k, ok := t.Transparent(); ok {
		c.logger.Printf("Transparent key for \"%s\" is %s\n", name, k)
	}

	if c.cache != nil {
		if err := c.cache.Store(sha, key, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func writeTexture(file string, t *texture.Texture) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return texture.Encode(f, t)
}

// ConvertFile converts the image in file in and writes the texture to out.
func (c *Converter) ConvertFile(in, out string) error {
	b, err := os.ReadFile(in)
	if err != nil {
		return errors.WrapPrefix(err, in, 0)
	}

	t, err := c.convertBytes(in, b)
	if err != nil {
		return errors.WrapPrefix(err, in, 0)
	}

	if err := writeTexture(out, t); err != nil {
		return errors.WrapPrefix(err, out, 0)
	}

	return nil
}
