package pagepack

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func TestRenderImage(t *testing.T) {
	g := mustGrid(t, 3, 8, func(x, y int) bool { return x == 1 && y == 2 })

	opts := DefaultPreviewOptions
	opts.Scale = 3
	opts.On = "#ffffff"
	opts.Off = "#000000"

	img, err := RenderImage(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	b := img.Bounds()
	if b.Dx() != 9 || b.Dy() != 24 {
		t.Fatalf("expected 9x24 image, got %dx%d", b.Dx(), b.Dy())
	}

	white := color.RGBAModel.Convert(color.White)
	for _, p := range [][2]int{{3, 6}, {5, 8}, {4, 7}} {
		if c := color.RGBAModel.Convert(img.At(b.Min.X+p[0], b.Min.Y+p[1])); c != white {
			t.Errorf("expected lit pixel at %v, got %v", p, c)
		}
	}
	if c := color.RGBAModel.Convert(img.At(b.Min.X, b.Min.Y)); c == white {
		t.Error("expected unlit pixel at the origin")
	}
}

func TestPreviewOptionsValidation(t *testing.T) {
	g := mustGrid(t, 1, 8, nil)

	for _, opts := range []PreviewOptions{
		{Scale: 0, On: "#fff000", Off: "#000000", And: "#ff0000", Or: "#00ff00"},
		{Scale: 65, On: "#fff000", Off: "#000000", And: "#ff0000", Or: "#00ff00"},
		{Scale: 1, On: "blue", Off: "#000000", And: "#ff0000", Or: "#00ff00"},
	} {
		if _, err := RenderImage(g, opts); err == nil {
			t.Errorf("expected error for options %+v", opts)
		}
	}
}

func TestMaskImage(t *testing.T) {
	lines := setCell(setCell(blankLines(), 0, 0, 'X'), 1, 0, '+')

	opts := DefaultPreviewOptions
	opts.Scale = 1
	opts.And = "#ff0000"
	opts.Or = "#00ff00"
	opts.Off = "#000000"

	img, err := MaskImage(BuildMasks(lines), opts)
	if err != nil {
		t.Fatal(err)
	}

	for x, expected := range []color.RGBA{
		{R: 0xff, A: 0xff},
		{G: 0xff, A: 0xff},
		{A: 0xff},
	} {
		if c := color.RGBAModel.Convert(img.At(x, 0)); c != expected {
			t.Errorf("pixel %d: expected %v, got %v", x, expected, c)
		}
	}
}

func TestFontSheet(t *testing.T) {
	table, err := BuildFontTable("bars", digitSource(t, 4, 8))
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := FontSheet(table, 16)
	if err != nil {
		t.Fatal(err)
	}

	if sheet.Width() != 64 || sheet.Height() != 48 {
		t.Fatalf("expected 64x48 sheet, got %dx%d", sheet.Width(), sheet.Height())
	}

	// '0' is glyph 16: first column of the second row
	if !sheet.At(0, 8) || !sheet.At(0, 15) || sheet.At(1, 8) {
		t.Fatal("expected '0' bar at the start of row 1")
	}
	if sheet.At(0, 0) {
		t.Fatal("expected space at the start of row 0")
	}

	if _, err := FontSheet(table, 0); err == nil {
		t.Fatal("expected error for zero columns")
	}
}

func TestEncodeImage(t *testing.T) {
	img, err := RenderImage(mustGrid(t, 2, 8, nil), DefaultPreviewOptions)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, "png"); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("invalid png: %s", err)
	}

	buf.Reset()
	if err := EncodeImage(&buf, img, ImageFormat("sheet.BMP")); err != nil {
		t.Fatal(err)
	}
	decoded, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("invalid bmp: %s", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 32 {
		t.Fatalf("unexpected bmp size %v", decoded.Bounds())
	}

	if err := EncodeImage(&buf, img, "gif"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if ImageFormat("sheet.png") != "png" || ImageFormat("sheet") != "png" {
		t.Fatal("expected png as the default format")
	}
}
