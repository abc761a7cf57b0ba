/*
Package texture16 is a library for converting images to 16-bit textures for
displays with a fixed 5-6-5 palette.
*/
package texture16

import (
	"image"
	"io"
	"log"

	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/dither"
)

// Extension is the file extension used for textures.
const Extension = ".tex"

const defaultWorkers = 4

// Options controls how images are converted.
type Options struct {
	dither.Options

	// Resize scales the source image before conversion. A zero
	// dimension preserves the aspect ratio, a zero value disables it.
	Resize image.Point

	// Workers is the number of images converted at once by Scan.
	Workers int
}

func (o Options) allocator() background.Allocator {
	if o.Allocator == nil {
		return background.Default
	}
	return o.Allocator
}

// Converter converts images to textures, optionally caching the results.
type Converter struct {
	cache   *Cache
	logger  *log.Logger
	options Options
}

// New returns a converter. cache may be nil to always convert and logger may
// be nil to discard any output.
func New(cache *Cache, logger *log.Logger, options Options) *Converter {
	if options.Workers <= 0 {
		options.Workers = defaultWorkers
	}
	options.Allocator = options.allocator()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Converter{
		cache:   cache,
		logger:  logger,
		options: options,
	}
}

// Close closes the cache, if any.
func (c *Converter) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}
