package sprite_test

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"thumbtrack/internal/sprite"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]sprite.Format{
		"webp": sprite.FormatWebP,
		"WEBP": sprite.FormatWebP,
		"jpg":  sprite.FormatJPEG,
		"jpeg": sprite.FormatJPEG,
		"png":  sprite.FormatPNG,
	}
	for input, want := range cases {
		got, err := sprite.ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := sprite.ParseFormat("gif"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFormatExt(t *testing.T) {
	if sprite.FormatWebP.Ext() != "webp" || sprite.FormatJPEG.Ext() != "jpg" || sprite.FormatPNG.Ext() != "png" {
		t.Fatal("unexpected extension mapping")
	}
}

func TestEncodeRoundTripsDimensions(t *testing.T) {
	img := imaging.New(12, 7, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	for _, format := range []sprite.Format{sprite.FormatJPEG, sprite.FormatPNG, sprite.FormatWebP} {
		var buf bytes.Buffer
		if err := sprite.Encode(&buf, img, format, 90); err != nil {
			t.Fatalf("Encode %s: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("Encode %s produced no bytes", format)
		}
		if format == sprite.FormatWebP {
			// x/image provides no webp decoder; byte output is enough here.
			continue
		}
		decoded, err := imaging.Decode(&buf)
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		if decoded.Bounds().Dx() != 12 || decoded.Bounds().Dy() != 7 {
			t.Fatalf("decode %s: unexpected size %v", format, decoded.Bounds())
		}
	}
}
