package render

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"lbx/internal/models"
)

func TestRenderer(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		t.Run("renders headers and rows", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf, 0, nil)

			r.Table("Watchlist", []string{"Name", "Year"}, [][]string{
				{"The Thing", "1982"},
				{"Alien", "1979"},
			})

			out := buf.String()
			for _, want := range []string{"Watchlist", "Name", "Year", "The Thing", "1982", "Alien"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q", want)
				}
			}
		})

		t.Run("short rows are padded", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf, 0, nil)

			r.Table("", []string{"Name", "Year", "Rating"}, [][]string{{"The Thing"}})
			if !strings.Contains(buf.String(), "The Thing") {
				t.Error("expected row to render")
			}
		})

		t.Run("no headers renders nothing", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf, 0, nil)

			r.Table("Empty", nil, nil)
			if buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
		})
	})

	t.Run("Details", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, 0, nil)

		r.Details([]Pair{
			{Key: "Title", Value: "The Thing"},
			{Key: "Runtime", Value: "109 min"},
		})

		out := buf.String()
		if !strings.Contains(out, "The Thing") || !strings.Contains(out, "109 min") {
			t.Errorf("expected detail values in output, got %q", out)
		}
	})

	t.Run("FilmDetails", func(t *testing.T) {
		t.Run("drops a matching original title", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf, 0, nil)

			r.FilmDetails(models.FilmDetails{Title: "The Thing", OriginalTitle: "The Thing"})
			if strings.Contains(buf.String(), "Original Title") {
				t.Error("expected matching original title to be dropped")
			}
		})

		t.Run("keeps a differing original title", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf, 0, nil)

			r.FilmDetails(models.FilmDetails{Title: "Stalker", OriginalTitle: "Сталкер"})
			if !strings.Contains(buf.String(), "Сталкер") {
				t.Error("expected original title in output")
			}
		})
	})

	t.Run("Poster with zero columns is a no-op", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, 0, nil)

		if err := r.Poster("https://example.com/poster.jpg"); err != nil {
			t.Fatalf("expected no-op, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

func TestASCIIArt(t *testing.T) {
	gradient := image.NewGray(image.Rect(0, 0, 100, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 100; x++ {
			gradient.Set(x, y, color.Gray{Y: uint8(y)})
		}
	}

	t.Run("output has the requested width", func(t *testing.T) {
		art := asciiArt(gradient, 20)
		lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
		if len(lines) == 0 {
			t.Fatal("expected output lines")
		}
		for _, line := range lines {
			if len(line) != 20 {
				t.Errorf("expected 20 columns, got %d", len(line))
			}
		}
	})

	t.Run("dark rows map to lighter glyphs than bright rows", func(t *testing.T) {
		art := asciiArt(gradient, 10)
		lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
		if len(lines) < 2 {
			t.Fatalf("expected at least 2 rows, got %d", len(lines))
		}

		first := strings.IndexByte(asciiRamp, lines[0][0])
		last := strings.IndexByte(asciiRamp, lines[len(lines)-1][0])
		if first >= last {
			t.Errorf("expected ramp density to increase with luminance: %d vs %d", first, last)
		}
	})

	t.Run("columns wider than the image are clamped", func(t *testing.T) {
		tiny := image.NewGray(image.Rect(0, 0, 4, 8))
		art := asciiArt(tiny, 100)
		lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
		if len(lines[0]) != 4 {
			t.Errorf("expected 4 columns, got %d", len(lines[0]))
		}
	})

	t.Run("empty image", func(t *testing.T) {
		if art := asciiArt(image.NewGray(image.Rect(0, 0, 0, 0)), 10); art != "" {
			t.Errorf("expected empty output, got %q", art)
		}
	})
}

func TestAverageLuminance(t *testing.T) {
	white := image.NewGray(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			white.Set(x, y, color.Gray{Y: 255})
		}
	}

	if lum := averageLuminance(white, 0, 0, 2, 2); lum < 0.99 {
		t.Errorf("expected white to be ~1, got %v", lum)
	}

	black := image.NewGray(image.Rect(0, 0, 2, 2))
	if lum := averageLuminance(black, 0, 0, 2, 2); lum > 0.01 {
		t.Errorf("expected black to be ~0, got %v", lum)
	}
}
