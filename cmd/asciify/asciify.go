// Command asciify prints an image as text art sized for a terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wbrown/img2ascii"
	"golang.org/x/term"
)

type options struct {
	input      string
	output     string
	pngFile    string
	model      string
	configFile string
	height     int
	charFactor int
	ramp       string
	resize     bool
	fontPath   string
	fontSize   float64
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "",
		"Path to the input image file (prompted for when omitted on a terminal)")
	flag.StringVar(&opts.output, "output", "",
		"Path to save the text (if not specified, prints to stdout)")
	flag.StringVar(&opts.pngFile, "png", "",
		"Also rasterize the text to this PNG file")
	flag.StringVar(&opts.model, "model", "",
		"Brightness model: average (1), lightness (2) or luminosity (3)")
	flag.StringVar(&opts.configFile, "config", "",
		"Path to a YAML configuration file")
	flag.IntVar(&opts.height, "height", 0,
		"Working height in rows (default 300)")
	flag.IntVar(&opts.charFactor, "charfactor", 0,
		"Horizontal repeat factor per glyph (default 3)")
	flag.StringVar(&opts.ramp, "ramp", "",
		"Character ramp, lightest glyph first")
	flag.BoolVar(&opts.resize, "resize", false,
		"Ask the terminal to resize to fit the output")
	flag.StringVar(&opts.fontPath, "font", "",
		"TrueType font for -png (default: embedded Go Mono)")
	flag.Float64Var(&opts.fontSize, "fontsize", 8,
		"Font size in points for -png")
	flag.BoolVar(&opts.verbose, "v", false,
		"Verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(opts, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("asciify failed", "err", err)
		os.Exit(1)
	}
}

// resolveConfig layers command-line flags over the configuration file
// over the built-in defaults.
func resolveConfig(opts options) (img2ascii.Config, error) {
	cfg := img2ascii.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = img2ascii.LoadConfig(opts.configFile); err != nil {
			return cfg, err
		}
	}
	if opts.height != 0 {
		cfg.StdHeight = opts.height
	}
	if opts.charFactor != 0 {
		cfg.CharFactor = opts.charFactor
	}
	if opts.ramp != "" {
		cfg.Ramp = opts.ramp
	}
	if opts.resize {
		cfg.ResizeTerminal = true
	}
	if opts.model != "" {
		m, err := img2ascii.ParseModel(opts.model)
		if err != nil {
			return cfg, err
		}
		cfg.Model = m
	}
	return cfg, cfg.Validate()
}

func run(opts options, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	conv := img2ascii.NewConverter(append(cfg.Options(), img2ascii.WithLogger(logger))...)
	model := cfg.Model

	interactive := opts.input == "" && isTerminal(stdin)
	switch {
	case interactive:
		fmt.Fprintln(stdout, "Welcome to asciify")
		in := bufio.NewScanner(stdin)
		if err := promptLoad(conv, in, stdout, cfg.DefaultImage); err != nil {
			return err
		}
		if model, err = promptModel(in, stdout, logger); err != nil {
			return err
		}
	default:
		path := opts.input
		if path == "" {
			path = cfg.DefaultImage
		}
		if path == "" {
			flag.PrintDefaults()
			return errors.New("no input image: use -input or set default_image in the config")
		}
		if err := conv.Load(path); err != nil {
			return err
		}
	}

	begin := time.Now()
	if _, err := conv.Render(model); err != nil {
		return err
	}
	art := conv.Art()
	logger.Debug("conversion finished", "elapsed", time.Since(begin),
		"rows", art.Height, "cols", art.Columns())

	if err := writeText(opts.output, art, cfg.ResizeTerminal, stdout); err != nil {
		return err
	}
	if opts.pngFile != "" {
		err := img2ascii.SavePNG(art, opts.pngFile, img2ascii.ExportOptions{
			FontPath: opts.fontPath,
			FontSize: opts.fontSize,
		})
		if err != nil {
			return fmt.Errorf("error writing PNG: %w", err)
		}
		logger.Info("PNG output written", "path", opts.pngFile)
	}
	return nil
}

func writeText(path string, art *img2ascii.AsciiArtGrid, resize bool, stdout io.Writer) error {
	if path == "" {
		return img2ascii.Fprint(stdout, art, img2ascii.PrintOptions{ResizeTerminal: resize})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}
	defer f.Close()
	if err := img2ascii.Fprint(f, art, img2ascii.PrintOptions{}); err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}
	return f.Close()
}

// promptLoad asks for image paths until one loads. A blank answer selects
// fallback when it is set. Path and decode failures re-prompt; anything
// else is returned.
func promptLoad(conv *img2ascii.Converter, in *bufio.Scanner, out io.Writer, fallback string) error {
	for {
		if fallback != "" {
			fmt.Fprintf(out, "Path to image [%s]: ", fallback)
		} else {
			fmt.Fprint(out, "Path to image: ")
		}
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		path := strings.TrimSpace(in.Text())
		if path == "" {
			path = fallback
		}

		err := conv.Load(path)
		var pathErr *img2ascii.PathError
		var decodeErr *img2ascii.DecodeError
		switch {
		case err == nil:
			meta := conv.Metadata()
			fmt.Fprintf(out, "Image %s has been successfully loaded!\n", meta.Name)
			fmt.Fprintf(out, "Some image metadata:\n- Size: (%d, %d)\n- Format: %s\n- Mode: %s\n",
				meta.Width, meta.Height, meta.Format, meta.Mode)
			return nil
		case errors.As(err, &pathErr), errors.As(err, &decodeErr):
			fmt.Fprintf(out, "%v\n", err)
		default:
			return err
		}
	}
}

// promptModel asks for a brightness model until a valid one is given.
func promptModel(in *bufio.Scanner, out io.Writer, logger *slog.Logger) (img2ascii.Model, error) {
	for {
		fmt.Fprint(out, "Brightness model: 1) average 2) lightness 3) luminosity [3]: ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return 0, err
			}
			return img2ascii.DefaultModel, nil
		}
		m, err := img2ascii.ParseModel(in.Text())
		if err == nil {
			return m, nil
		}
		logger.Debug("rejected model", "input", in.Text())
		fmt.Fprintf(out, "%v\n", err)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
