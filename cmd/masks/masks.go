package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/labstack/gommon/log"

	"github.com/tmpim/pagepack"
	"github.com/tmpim/pagepack/config"
)

var logger = log.New("masks")

func main() {
	if err := config.Load(); err != nil {
		logger.Warn("Failed to load .env: ", err)
	}

	var (
		format      = flag.String("f", config.String(config.Format, "c"), "output format (c, go or bin)")
		pkg         = flag.String("pkg", "masks", "package name for go output")
		outputPath  = flag.String("o", "masks.h", "set location of output file")
		previewPath = flag.String("preview", "", "write a preview of both planes to this PNG or BMP file")
		verbose     = flag.Bool("v", false, "dump the composed masks as braille")
	)
	flag.Parse()

	logger.SetHeader("${prefix}: ${level}")
	logger.SetLevel(log.INFO)
	if *verbose {
		logger.SetLevel(log.DEBUG)
	}

	input := flag.Arg(0)
	if input == "" {
		input = config.String(config.Mask, "")
	}

	if input == "" {
		fmt.Fprintln(os.Stderr, "Usage: masks [options] mask_file.txt")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "masks converts a 128x64 text drawing into the OLED AND/OR mask tables.")
		fmt.Fprintln(os.Stderr, "'X' forces a pixel off, '+' forces it on, anything else leaves it alone.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	emitter, err := pagepack.EmitterFor(*format, *pkg)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	lines, err := pagepack.ReadMaskFile(input)
	if err != nil {
		logger.Fatal(err)
	}

	masks := pagepack.BuildMasks(lines)

	if *verbose {
		var blank, lit pagepack.Frame
		for i := range lit {
			lit[i] = 0xff
		}
		blank.Compose(masks)
		lit.Compose(masks)
		logger.Debugf("Composed over a blank screen:\n%s", pagepack.Braille(blank.Grid()))
		logger.Debugf("Composed over a lit screen:\n%s", pagepack.Braille(lit.Grid()))
	}

	func() {
		out, err := os.Create(*outputPath)
		if err != nil {
			logger.Fatal("Failed to create output file: ", err)
		}
		defer out.Close()

		if err := emitter.EmitMasks(out, masks); err != nil {
			out.Close()
			os.Remove(*outputPath)
			logger.Fatal("Failed to write masks: ", err)
		}
	}()

	if *previewPath != "" {
		if err := writePreview(*previewPath, masks); err != nil {
			logger.Warn("Failed to write preview: ", err)
		}
	}

	logger.Infof("Done! Masks from %q written to %q.", input, *outputPath)
}

func writePreview(path string, masks *pagepack.Masks) error {
	img, err := pagepack.MaskImage(masks, pagepack.DefaultPreviewOptions)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return pagepack.EncodeImage(f, img, pagepack.ImageFormat(path))
}
