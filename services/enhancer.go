package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

// Enhancer downloads remote images and re-encodes them to bounded JPEGs.
// Each fetch is a single attempt; a failed image is reported back as an
// error and simply has no local copy.
type Enhancer struct {
	client  *http.Client
	maxW    int
	maxH    int
	quality int
}

// NewEnhancer creates an Enhancer constraining images to maxW×maxH.
func NewEnhancer(maxW, maxH, quality int) *Enhancer {
	return &Enhancer{
		client:  &http.Client{Timeout: 30 * time.Second},
		maxW:    maxW,
		maxH:    maxH,
		quality: quality,
	}
}

// FetchAndSave downloads url, fits the decoded image inside the bounding
// box (aspect ratio preserved, smaller sources are not upscaled) and writes
// it to savePath as JPEG.
func (e *Enhancer) FetchAndSave(ctx context.Context, url, savePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("enhance: build request: %w", err)
	}
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("enhance: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("enhance: fetch %s: status %s", url, resp.Status)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return fmt.Errorf("enhance: decode %s: %w", url, err)
	}

	fitted := imaging.Fit(img, e.maxW, e.maxH, imaging.Lanczos)
	if err := imaging.Save(fitted, savePath, imaging.JPEGQuality(e.quality)); err != nil {
		return fmt.Errorf("enhance: save %s: %w", savePath, err)
	}
	return nil
}
