// Package server serves previews of encoded font and mask tables over HTTP.
package server

import (
	"bytes"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"github.com/tmpim/pagepack"
)

const sheetColumns = 16

// Config holds the tables to serve. Masks may be nil.
type Config struct {
	Fonts   *pagepack.FontSet
	Masks   *pagepack.Masks
	Preview pagepack.PreviewOptions
}

// FontInfo describes one font table.
type FontInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pages  int    `json:"pages"`
	Bytes  int    `json:"bytes"`
}

// GlyphInfo describes one encoded glyph.
type GlyphInfo struct {
	Char   string `json:"char"`
	Code   int    `json:"code"`
	Offset int    `json:"offset"`
	Data   []int  `json:"data"`
}

type handler struct {
	cfg Config
}

// New returns an echo instance serving cfg.
func New(cfg Config) *echo.Echo {
	h := &handler{cfg: cfg}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())

	api := e.Group("/api")
	api.GET("/fonts", h.listFonts)
	api.GET("/fonts/:index/sheet.png", h.fontSheet)
	api.GET("/fonts/:index/glyphs/:code", h.glyph)
	api.GET("/masks/preview.png", h.maskPreview)
	api.GET("/frame.png", h.frame)

	return e
}

func (h *handler) listFonts(c echo.Context) error {
	fonts := make([]FontInfo, 0, len(h.cfg.Fonts.Tables))
	for i, t := range h.cfg.Fonts.Tables {
		fonts = append(fonts, FontInfo{
			Index:  i,
			Name:   t.Name,
			Width:  t.Width,
			Height: t.Height,
			Pages:  t.Pages(),
			Bytes:  len(t.Data),
		})
	}

	return c.JSON(http.StatusOK, fonts)
}

func (h *handler) table(c echo.Context) (*pagepack.FontTable, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid font index")
	}

	t, ok := h.cfg.Fonts.Table(index)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "no such font")
	}

	return t, nil
}

func (h *handler) fontSheet(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}

	sheet, err := pagepack.FontSheet(t, sheetColumns)
	if err != nil {
		return err
	}

	img, err := pagepack.RenderImage(sheet, h.cfg.Preview)
	if err != nil {
		return err
	}

	return writePNG(c, img)
}

func (h *handler) glyph(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}

	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code < pagepack.FirstChar || code > pagepack.LastChar {
		return echo.NewHTTPError(http.StatusBadRequest, "character code must be between 32 and 126")
	}

	r := rune(code)
	glyph := t.Glyph(r)
	data := make([]int, len(glyph))
	for i, b := range glyph {
		data[i] = int(b)
	}

	return c.JSON(http.StatusOK, GlyphInfo{
		Char:   string(r),
		Code:   code,
		Offset: t.Offset(r),
		Data:   data,
	})
}

func (h *handler) maskPreview(c echo.Context) error {
	if h.cfg.Masks == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no mask loaded")
	}

	img, err := pagepack.MaskImage(h.cfg.Masks, h.cfg.Preview)
	if err != nil {
		return err
	}

	return writePNG(c, img)
}

// frame draws the text query, one line per "\n", with the font of the size
// query (in pages) and composes the masks on top.
func (h *handler) frame(c echo.Context) error {
	size := 1
	if s := c.QueryParam("size"); s != "" {
		var err error
		size, err = strconv.Atoi(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid size")
		}
	}

	t, ok := h.cfg.Fonts.ForSize(size)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no font of that size")
	}

	var frame pagepack.Frame
	for i, line := range strings.Split(c.QueryParam("text"), "\n") {
		frame.DrawString(0, i*t.Height, t, line)
	}

	if h.cfg.Masks != nil {
		frame.Compose(h.cfg.Masks)
	}

	img, err := pagepack.RenderImage(frame.Grid(), h.cfg.Preview)
	if err != nil {
		return err
	}

	return writePNG(c, img)
}

func writePNG(c echo.Context, img image.Image) error {
	var buf bytes.Buffer
	if err := pagepack.EncodeImage(&buf, img, "png"); err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
