package chart

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"

	"github.com/malick97/Rental-Profit/models"
	"github.com/malick97/Rental-Profit/utils"
)

// RendererConfig controls PNG rendering
type RendererConfig struct {
	Size       Size
	ThumbWidth int // 0 disables the thumbnail
	Timeout    time.Duration
	MaxRetries int
	MinDelayMs int    // minimum gap between Chrome launches
	ExecPath   string // Chrome binary; empty means chromedp's lookup
}

// Renderer screenshots the chart SVG in headless Chrome
type Renderer struct {
	cfg         RendererConfig
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
}

// NewRenderer creates a new Renderer
func NewRenderer(cfg RendererConfig, logger *utils.Logger) *Renderer {
	if cfg.Size.Width <= 0 || cfg.Size.Height <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Renderer{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: utils.NewRateLimiter(cfg.MinDelayMs),
	}
}

// newContext creates a fresh chromedp context (one browser, one tab)
func (r *Renderer) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.WindowSize(r.cfg.Size.Width, r.cfg.Size.Height),
	)
	if r.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// RenderPNG returns the chart as PNG bytes. Each attempt launches its own
// browser and is bounded by the configured timeout.
func (r *Renderer) RenderPNG(ctx context.Context, opt models.OptimizationResult) ([]byte, error) {
	page, err := BuildHTML(opt, r.cfg.Size)
	if err != nil {
		return nil, err
	}
	pageURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(page))

	var png []byte
	err = utils.RetryWithBackoff(ctx, r.cfg.MaxRetries, func(ctx context.Context) error {
		if err := r.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		browserCtx, cancel := r.newContext(ctx)
		defer cancel()
		browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.cfg.Timeout)
		defer cancelTimeout()

		var buf []byte
		if err := chromedp.Run(browserCtx,
			chromedp.EmulateViewport(int64(r.cfg.Size.Width), int64(r.cfg.Size.Height)),
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible("svg", chromedp.ByQuery),
			chromedp.CaptureScreenshot(&buf),
		); err != nil {
			return fmt.Errorf("capture chart screenshot: %w", err)
		}
		if len(buf) == 0 {
			return fmt.Errorf("capture chart screenshot: empty image")
		}
		png = buf
		return nil
	}, r.logger)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return png, nil
}

// RenderFile writes the chart PNG to path and, when a thumbnail width is
// configured, a resized copy next to it with a "_thumb" suffix.
// It returns the thumbnail path, or "" when none was written.
func (r *Renderer) RenderFile(ctx context.Context, opt models.OptimizationResult, path string) (string, error) {
	png, err := r.RenderPNG(ctx, opt)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	r.logger.Info("Chart written to: %s", path)

	if r.cfg.ThumbWidth <= 0 {
		return "", nil
	}
	thumb, err := Thumbnail(png, r.cfg.ThumbWidth)
	if err != nil {
		return "", err
	}
	thumbPath := ThumbPath(path)
	if err := os.WriteFile(thumbPath, thumb, 0644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}
	r.logger.Info("Thumbnail written to: %s", thumbPath)
	return thumbPath, nil
}

// Thumbnail scales a PNG down to width pixels, keeping the aspect ratio.
// Images already narrower than width are re-encoded unchanged.
func Thumbnail(png []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("decode chart image: %w", err)
	}

	var out image.Image = img
	if img.Bounds().Dx() > width {
		out = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ThumbPath derives the thumbnail file name: "chart.png" becomes "chart_thumb.png".
func ThumbPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
