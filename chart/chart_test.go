package chart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/malick97/Rental-Profit/models"
)

func sampleSweep() models.OptimizationResult {
	return models.OptimizationResult{
		PriceGrid:           []float64{100, 110, 120, 130},
		ProfitByPrice:       []float64{1660, 1840, 1820, 1700},
		BookedNightsByPrice: []int{24, 22, 21, 19},
		OptimalPrice:        110,
		OptimalBookedNights: 22,
		MaxProfit:           1840,
	}
}

var pointsAttr = regexp.MustCompile(`class="(profit|nights)" points="([^"]*)"`)

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sampleSweep(), Size{Width: 600, Height: 400}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, `width="600"`) {
		t.Errorf("unexpected svg header:\n%s", out)
	}
	for _, want := range []string{
		profitColor,
		nightsColor,
		`stroke-dasharray="6 4"`,
		`class="optimal"`,
		"optimal € 110.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	matches := pointsAttr.FindAllStringSubmatch(out, -1)
	if len(matches) != 2 {
		t.Fatalf("expected two polylines, got %d", len(matches))
	}
	for _, m := range matches {
		if n := len(strings.Fields(m[2])); n != 4 {
			t.Errorf("%s line has %d points, want 4", m[1], n)
		}
	}
}

func TestWriteSVGSweepDisabled(t *testing.T) {
	var buf bytes.Buffer
	opt := models.OptimizationResult{SweepDisabled: true, PriceGrid: []float64{}}
	if err := WriteSVG(&buf, opt, Size{}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Price sweep disabled") {
		t.Error("expected placeholder text")
	}
	if strings.Contains(out, "polyline") {
		t.Error("disabled sweep should draw no lines")
	}
	if !strings.Contains(out, `width="900"`) {
		t.Error("zero size should fall back to DefaultSize")
	}
}

func TestBuildHTML(t *testing.T) {
	page, err := BuildHTML(sampleSweep(), DefaultSize)
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") || !strings.Contains(page, "<svg") || !strings.HasSuffix(page, "</html>") {
		t.Errorf("unexpected page:\n%s", page)
	}
}

func TestScale(t *testing.T) {
	s := newScale(100, 200, 50, 450)
	if got := s.at(100); got != 50 {
		t.Errorf("at(lo) = %v, want 50", got)
	}
	if got := s.at(200); got != 450 {
		t.Errorf("at(hi) = %v, want 450", got)
	}
	if got := s.at(150); got != 250 {
		t.Errorf("at(mid) = %v, want 250", got)
	}

	// inverted pixel range, as used for y axes
	y := newScale(0, 10, 400, 0)
	if got := y.at(10); got != 0 {
		t.Errorf("inverted at(hi) = %v, want 0", got)
	}

	flat := newScale(5, 5, 0, 100)
	if got := flat.at(5); got != 50 {
		t.Errorf("flat range should center, got %v", got)
	}
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	thumb, err := Thumbnail(buf.Bytes(), 100)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("thumbnail size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	same, err := Thumbnail(buf.Bytes(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	img, _ = png.Decode(bytes.NewReader(same))
	if img.Bounds().Dx() != 400 {
		t.Errorf("narrow image should not be upscaled, width %d", img.Bounds().Dx())
	}

	if _, err := Thumbnail([]byte("not an image"), 100); err == nil {
		t.Error("expected decode error")
	}
}

func TestThumbPath(t *testing.T) {
	tests := map[string]string{
		"output/pricing_chart.png": "output/pricing_chart_thumb.png",
		"chart":                    "chart_thumb",
	}
	for in, want := range tests {
		if got := ThumbPath(in); got != want {
			t.Errorf("ThumbPath(%q) = %q, want %q", in, got, want)
		}
	}
}
