package main

import (
	"flag"

	"github.com/labstack/gommon/log"

	"github.com/tmpim/pagepack"
	"github.com/tmpim/pagepack/bdf"
	"github.com/tmpim/pagepack/config"
	"github.com/tmpim/pagepack/server"
)

var logger = log.New("previewserver")

func main() {
	if err := config.Load(); err != nil {
		logger.Warn("Failed to load .env: ", err)
	}

	var (
		addr    = flag.String("addr", config.String(config.Addr, ":9999"), "address to listen on")
		dir     = flag.String("dir", config.String(config.FontDir, "spleen_font"), "directory holding the BDF fonts")
		pattern = flag.String("pattern", config.String(config.FontPattern, "spleen-%s.bdf"), "font file name pattern, %s is replaced by the size")
		sizes   = flag.String("sizes", config.String(config.FontSizes, "5x8,8x16,12x24,16x32"), "comma separated font sizes, smallest first")
		mask    = flag.String("mask", config.String(config.Mask, ""), "optional mask text file to compose over frames")
		scale   = flag.Int("scale", config.Int(config.Scale, pagepack.DefaultPreviewOptions.Scale), "preview pixel scale")
	)
	flag.Parse()

	logger.SetHeader("${prefix}: ${level}")
	logger.SetLevel(log.INFO)

	specs, err := bdf.OpenSpecs(*dir, *pattern, config.List(*sizes))
	if err != nil {
		logger.Fatal("Failed to open font: ", err)
	}

	set, err := pagepack.BuildFontSet(specs)
	if err != nil {
		logger.Fatal("Failed to build font tables: ", err)
	}

	var masks *pagepack.Masks
	if *mask != "" {
		lines, err := pagepack.ReadMaskFile(*mask)
		if err != nil {
			logger.Fatal(err)
		}
		masks = pagepack.BuildMasks(lines)
	}

	opts := pagepack.DefaultPreviewOptions
	opts.Scale = *scale

	e := server.New(server.Config{
		Fonts:   set,
		Masks:   masks,
		Preview: opts,
	})

	logger.Infof("Serving %d fonts on %s", len(set.Tables), *addr)
	logger.Fatal(e.Start(*addr))
}
