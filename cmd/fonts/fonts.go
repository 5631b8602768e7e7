package main

import (
	"flag"
	"os"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/tmpim/pagepack"
	"github.com/tmpim/pagepack/bdf"
	"github.com/tmpim/pagepack/config"
)

var logger = log.New("fonts")

func main() {
	if err := config.Load(); err != nil {
		logger.Warn("Failed to load .env: ", err)
	}

	var (
		dir         = flag.String("dir", config.String(config.FontDir, "spleen_font"), "directory holding the BDF fonts")
		pattern     = flag.String("pattern", config.String(config.FontPattern, "spleen-%s.bdf"), "font file name pattern, %s is replaced by the size")
		sizes       = flag.String("sizes", config.String(config.FontSizes, "5x8,8x16,12x24,16x32"), "comma separated font sizes, smallest first")
		format      = flag.String("f", config.String(config.Format, "c"), "output format (c, go or bin)")
		pkg         = flag.String("pkg", "fonts", "package name for go output")
		outputPath  = flag.String("o", "fonts.h", "set location of output file")
		previewPath = flag.String("preview", "", "write a sheet of every font to this PNG or BMP file")
		verbose     = flag.Bool("v", false, "log every font as it is processed")
	)
	flag.Parse()

	logger.SetHeader("${prefix}: ${level}")
	logger.SetLevel(log.INFO)
	if *verbose {
		logger.SetLevel(log.DEBUG)
	}

	emitter, err := pagepack.EmitterFor(*format, *pkg)
	if err != nil {
		logger.Error(err)
		flag.Usage()
		os.Exit(1)
	}

	sizeList := config.List(*sizes)
	if len(sizeList) == 0 {
		logger.Error("At least one font size must be given.")
		flag.Usage()
		os.Exit(1)
	}

	start := time.Now()

	specs, err := bdf.OpenSpecs(*dir, *pattern, sizeList)
	if err != nil {
		logger.Fatal("Failed to open font: ", err)
	}

	for _, spec := range specs {
		w, h := spec.Source.Bounds()
		logger.Debugf("Processing %d pixel tall font %s (%d wide)...", h, spec.Name, w)
	}

	set, err := pagepack.BuildFontSet(specs)
	if err != nil {
		logger.Fatal("Failed to build font tables: ", err)
	}

	for _, t := range set.Tables {
		fallbacks := 0
		for _, g := range t.Glyphs {
			if g.Fallback {
				fallbacks++
			}
		}
		if fallbacks > 0 {
			logger.Debugf("Font %s: %d glyphs replaced with space", t.Name, fallbacks)
		}
	}

	func() {
		out, err := os.Create(*outputPath)
		if err != nil {
			logger.Fatal("Failed to create output file: ", err)
		}
		defer out.Close()

		if err := emitter.EmitFonts(out, set); err != nil {
			out.Close()
			os.Remove(*outputPath)
			logger.Fatal("Failed to write fonts: ", err)
		}
	}()

	if *previewPath != "" {
		if err := writeSheets(*previewPath, set); err != nil {
			logger.Warn("Failed to write preview: ", err)
		}
	}

	logger.Infof("Done! Wrote %d fonts (widths %v) to %q in %s.",
		len(set.Tables), set.Widths(), *outputPath, time.Since(start))
}

// writeSheets stacks the sheet of every font into one preview image.
func writeSheets(path string, set *pagepack.FontSet) error {
	var sheets []*pagepack.Grid
	width, height := 0, 0
	for _, t := range set.Tables {
		sheet, err := pagepack.FontSheet(t, 16)
		if err != nil {
			return err
		}

		sheets = append(sheets, sheet)
		if sheet.Width() > width {
			width = sheet.Width()
		}
		height += sheet.Height()
	}

	stacked, err := pagepack.NewGrid(width, height, func(x, y int) bool {
		for _, sheet := range sheets {
			if y < sheet.Height() {
				return sheet.At(x, y)
			}
			y -= sheet.Height()
		}
		return false
	})
	if err != nil {
		return err
	}

	img, err := pagepack.RenderImage(stacked, pagepack.DefaultPreviewOptions)
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
