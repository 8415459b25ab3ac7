package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/podnet-hungary/boxify"
	"github.com/podnet-hungary/boxify/imageutil"
)

var (
	verbosity   int
	outputFile  string
	paletteName string
	columns     int
	colorMode   string
	legacyName  string
	frameName   string
	aspect      float64
	grayscale   bool
	invert      bool
	emptyGlyph  string
	fullGlyph   string

	rootCmd = &cobra.Command{
		Use:   "boxify <image>",
		Short: "Render raster images as Unicode block-glyph text",
		Long: `boxify converts a raster image into a grid of Unicode block-drawing
glyphs, optionally colorized with ANSI escape sequences, suitable for
terminals, text files and markup.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&outputFile, "output", "o", "",
		"Write output to a file instead of stdout")
	flags.StringVarP(&paletteName, "palette", "p", "quadrants",
		"Glyph palette: halves, quadrants, sextants, braille, blocks, ascii")
	flags.IntVarP(&columns, "width", "w", 80,
		"Output width in character columns")
	flags.StringVar(&colorMode, "color", "auto",
		"Color mode: auto, always, never, legacy")
	flags.StringVar(&legacyName, "legacy-palette", "vga",
		"16-color palette for legacy mode: vga, term")
	flags.StringVar(&frameName, "frame", "",
		"Draw a border: box, ascii")
	flags.Float64Var(&aspect, "aspect", imageutil.DefaultCellAspect,
		"Terminal cell height/width ratio")
	flags.BoolVar(&grayscale, "grayscale", false,
		"Convert the image to grayscale before rendering")
	flags.BoolVar(&invert, "invert", false,
		"Invert image colors before rendering")
	flags.StringVar(&emptyGlyph, "empty", "",
		"Replacement glyph for all-unset blocks (e.g. a non-breaking space)")
	flags.StringVar(&fullGlyph, "full", "",
		"Replacement glyph for all-set blocks")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
}

func run(cmd *cobra.Command, args []string) error {
	palette, err := lookupPalette(paletteName)
	if err != nil {
		return err
	}

	img, err := imageutil.Load(args[0])
	if err != nil {
		return err
	}
	log.Info().
		Str("path", args[0]).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("image loaded")

	prepared := imageutil.Prepare(img, columns,
		palette.BlockWidth(), palette.BlockHeight(), aspect)
	if grayscale {
		prepared = imageutil.Grayscale(prepared)
	}
	if invert {
		prepared = imageutil.Invert(prepared)
	}

	opts := []boxify.RendererOption{
		boxify.WithPalette(palette),
	}
	if colorizer, err := pickColorizer(); err != nil {
		return err
	} else if colorizer != nil {
		opts = append(opts, boxify.WithColorizer(colorizer))
	}
	if frame, err := lookupFrame(frameName); err != nil {
		return err
	} else if frame != nil {
		opts = append(opts, boxify.WithFrame(frame))
	}
	if emptyGlyph != "" {
		opts = append(opts, boxify.WithEmptyGlyph(emptyGlyph))
	}
	if fullGlyph != "" {
		opts = append(opts, boxify.WithFullGlyph(fullGlyph))
	}

	renderer := boxify.NewRenderer(opts...)
	out, err := renderer.Render(boxify.NewImageSource(prepared))
	if err != nil {
		return err
	}

	if outputFile != "" {
		log.Debug().Str("path", outputFile).Msg("writing output file")
		return os.WriteFile(outputFile, []byte(out), 0o644)
	}
	_, err = os.Stdout.WriteString(out)
	return err
}

func lookupPalette(name string) (*boxify.Palette, error) {
	switch name {
	case "halves":
		return boxify.Halves, nil
	case "quadrants":
		return boxify.Quadrants, nil
	case "sextants":
		return boxify.Sextants, nil
	case "braille":
		return boxify.Braille, nil
	case "blocks":
		return boxify.Blocks, nil
	case "ascii":
		return boxify.ASCIIRamp, nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

func lookupFrame(name string) (*boxify.Frame, error) {
	switch name {
	case "":
		return nil, nil
	case "box":
		return boxify.BoxFrame, nil
	case "ascii":
		return boxify.ASCIIFrame, nil
	}
	return nil, fmt.Errorf("unknown frame %q", name)
}

func legacyPalette() (*boxify.LegacyPalette, error) {
	switch legacyName {
	case "vga":
		return boxify.VGAPalette, nil
	case "term":
		return boxify.TermPalette, nil
	}
	return nil, fmt.Errorf("unknown legacy palette %q", legacyName)
}

// pickColorizer decides how to colorize based on the color mode flag and,
// in auto mode, on whether stdout is a terminal and which color profile it
// advertises.
func pickColorizer() (boxify.Colorizer, error) {
	switch colorMode {
	case "never":
		return nil, nil
	case "always":
		return boxify.NewCCC(), nil
	case "legacy":
		p, err := legacyPalette()
		if err != nil {
			return nil, err
		}
		return boxify.NewLegacyCCC(p), nil
	case "auto":
	default:
		return nil, fmt.Errorf("unknown color mode %q", colorMode)
	}

	if outputFile != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		log.Debug().Msg("output is not a terminal, rendering monochrome")
		return nil, nil
	}
	profile := termenv.NewOutput(os.Stdout).ColorProfile()
	log.Debug().Int("profile", int(profile)).Msg("detected color profile")
	switch profile {
	case termenv.TrueColor:
		return boxify.NewCCC(), nil
	case termenv.ANSI256, termenv.ANSI:
		p, err := legacyPalette()
		if err != nil {
			return nil, err
		}
		return boxify.NewLegacyCCC(p), nil
	}
	return nil, nil
}
