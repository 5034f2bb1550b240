package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"
)

// asciiRamp maps luminance to density, darkest first.
const asciiRamp = " .:-=+*#%@"

// Poster downloads a poster image and renders it as ASCII art at the
// configured column width. A zero width disables poster rendering.
func (r *Renderer) Poster(posterURL string) error {
	if r.posterColumns <= 0 || posterURL == "" {
		return nil
	}

	img, err := downloadImage(posterURL)
	if err != nil {
		return err
	}

	fmt.Fprint(r.out, asciiArt(img, r.posterColumns))
	return nil
}

// downloadImage fetches and decodes a poster image.
func downloadImage(url string) (image.Image, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// asciiArt downsamples an image to the given column width and maps
// cell luminance onto the density ramp. Cells cover twice as many
// source rows as columns since terminal glyphs are roughly twice as
// tall as they are wide.
func asciiArt(img image.Image, columns int) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return ""
	}

	if columns > width {
		columns = width
	}
	cellW := float64(width) / float64(columns)
	cellH := cellW * 2
	rows := int(float64(height) / cellH)
	if rows < 1 {
		rows = 1
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			x0 := bounds.Min.X + int(float64(col)*cellW)
			y0 := bounds.Min.Y + int(float64(row)*cellH)
			x1 := bounds.Min.X + int(float64(col+1)*cellW)
			y1 := bounds.Min.Y + int(float64(row+1)*cellH)

			lum := averageLuminance(img, x0, y0, x1, y1)
			idx := int(lum * float64(len(asciiRamp)-1))
			sb.WriteByte(asciiRamp[idx])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// averageLuminance returns the mean luminance of a pixel block in [0, 1].
func averageLuminance(img image.Image, x0, y0, x1, y1 int) float64 {
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	var sum float64
	var count int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma coefficients
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			sum += lum / 65535.0
			count++
		}
	}
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}
