package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bodgit/texture16"
	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/dither"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var conversionFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "transparent",
		Aliases: []string{"t"},
		Usage:   "replace pixels with alpha below 128 with a key color",
	},
	&cli.StringFlag{
		Name:    "dithering",
		Aliases: []string{"d"},
		Value:   dither.None.String(),
		Usage:   "dithering method; none, floyd-steinberg, ordered-4x4 or ordered-8x8",
	},
	&cli.StringFlag{
		Name:  "allocator",
		Value: "priority",
		Usage: "key color search; priority or maximin",
	},
	&cli.StringFlag{
		Name:  "precision",
		Value: dither.Integer.String(),
		Usage: "error diffusion arithmetic; integer or float",
	},
	&cli.StringFlag{
		Name:  "resize",
		Usage: "resize the image to WxH first, either may be 0 to keep the aspect ratio",
	},
	&cli.StringFlag{
		Name:    "cache",
		EnvVars: []string{"TEXTURE16_CACHE"},
		Usage:   "path to conversion cache database",
	},
}

func parseSize(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("size %q not WxH", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return image.Point{}, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return image.Point{}, err
	}
	if w < 0 || h < 0 || w == 0 && h == 0 {
		return image.Point{}, fmt.Errorf("invalid size %q", s)
	}
	return image.Pt(w, h), nil
}

func options(c *cli.Context) (texture16.Options, error) {
	var (
		o   texture16.Options
		err error
	)

	if o.Method, err = dither.ParseMethod(c.String("dithering")); err != nil {
		return o, err
	}
	if o.Precision, err = dither.ParsePrecision(c.String("precision")); err != nil {
		return o, err
	}
	if o.Allocator, err = background.ByName(c.String("allocator")); err != nil {
		return o, err
	}
	if o.Resize, err = parseSize(c.String("resize")); err != nil {
		return o, err
	}
	o.Transparent = c.Bool("transparent")
	o.Workers = c.Int("workers")

	return o, nil
}

func newConverter(c *cli.Context) (*texture16.Converter, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	o, err := options(c)
	if err != nil {
		return nil, err
	}

	var cache *texture16.Cache
	if file := c.String("cache"); file != "" {
		if cache, err = texture16.NewCache(file); err != nil {
			return nil, err
		}
	}

	return texture16.New(cache, logger, o), nil
}

func exitError(c *cli.Context, err error) error {
	if stack, ok := err.(interface{ ErrorStack() string }); ok && c.Bool("debug") {
		fmt.Fprintln(os.Stderr, stack.ErrorStack())
	}
	return cli.NewExitError(err, 1)
}

func main() {
	app := cli.NewApp()

	app.Name = "texture16"
	app.Usage = "16-bit texture conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "print error stack traces",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image to a texture",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output path, defaults to FILE with a " + texture16.Extension + " extension",
				},
			}, conversionFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return exitError(c, err)
				}
				defer m.Close()

				in := c.Args().First()
				out := c.String("output")
				if out == "" {
					out = texture16.OutputPath(in)
				}

				if err := m.ConvertFile(in, out); err != nil {
					return exitError(c, err)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image in a directory tree",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					EnvVars: []string{"TEXTURE16_WORKERS"},
					Value:   4,
					Usage:   "number of images to convert at once",
				},
			}, conversionFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return exitError(c, err)
				}
				defer m.Close()

				if err := m.Scan(c.Args().First()); err != nil {
					return exitError(c, err)
				}

				return nil
			},
		},
		{
			Name:        "preview",
			Usage:       "Write a texture out as a PNG or GIF image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output path, defaults to FILE with a .png extension",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in := c.Args().First()
				out := c.String("output")
				if out == "" {
					out = strings.TrimSuffix(in, texture16.Extension) + ".png"
				}

				if err := texture16.Preview(in, out); err != nil {
					return exitError(c, err)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
