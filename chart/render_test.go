package chart

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/malick97/Rental-Profit/utils"
)

func TestRenderPNGMissingChrome(t *testing.T) {
	r := NewRenderer(RendererConfig{
		Size:       Size{Width: 320, Height: 200},
		Timeout:    10 * time.Second,
		MaxRetries: 1,
		ExecPath:   filepath.Join(t.TempDir(), "no-such-chrome"),
	}, utils.NewLoggerTo(io.Discard, utils.LevelError))

	out := filepath.Join(t.TempDir(), "chart.png")
	if _, err := r.RenderFile(context.Background(), sampleSweep(), out); err == nil {
		t.Fatal("expected an error without a Chrome binary")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no chart file should be written on failure, stat err = %v", err)
	}
}

// TestRenderFileWithChrome needs a real browser: CHROME_PATH=/usr/bin/chromium go test ./chart
func TestRenderFileWithChrome(t *testing.T) {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("CHROME_PATH not set")
	}

	r := NewRenderer(RendererConfig{
		Size:       Size{Width: 640, Height: 360},
		ThumbWidth: 160,
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		ExecPath:   chromePath,
	}, utils.NewLoggerTo(io.Discard, utils.LevelError))

	out := filepath.Join(t.TempDir(), "chart.png")
	thumbPath, err := r.RenderFile(context.Background(), sampleSweep(), out)
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("chart is not a PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Errorf("empty screenshot %v", img.Bounds())
	}

	if thumbPath != ThumbPath(out) {
		t.Errorf("thumb path = %q, want %q", thumbPath, ThumbPath(out))
	}
	thumb, err := os.ReadFile(thumbPath)
	if err != nil {
		t.Fatal(err)
	}
	timg, err := png.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail is not a PNG: %v", err)
	}
	if timg.Bounds().Dx() != 160 {
		t.Errorf("thumbnail width = %d, want 160", timg.Bounds().Dx())
	}
}
