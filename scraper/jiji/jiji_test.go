package jiji

import (
	"os"
	"path/filepath"
	"testing"

	"jiji-catalog/config"
	"jiji-catalog/models"
	"jiji-catalog/storage"
	"jiji-catalog/utils"
)

func TestFilterResumedSkipsCompletedAds(t *testing.T) {
	dir := t.TempDir()
	imagesDir := filepath.Join(dir, "images")
	logPath := filepath.Join(dir, "ads.json")

	// Prior run: "iPhone 12" is logged and has a cached main image.
	log, err := storage.OpenAdLog(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := log.Append(&models.Ad{Title: "iPhone 12", Price: "KSh 1", Link: "https://x/1", MainImage: "https://img/1.jpg"}); err != nil {
		t.Fatal(err)
	}
	folder := filepath.Join(imagesDir, utils.Sanitize("iPhone 12"))
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "main.jpg"), []byte("jpg"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{ImagesDir: imagesDir, AdsJSONPath: logPath}
	s := New(cfg, utils.NewLogger())
	s.log, err = storage.OpenAdLog(logPath)
	if err != nil {
		t.Fatal(err)
	}

	ads := []*models.Ad{
		{Title: "iPhone 12", Price: "KSh 1", Link: "https://x/1", MainImage: "https://img/1.jpg"},
		{Title: "Sofa", Price: "KSh 2", Link: "https://x/2", MainImage: "https://img/2.jpg"},
	}

	remaining := s.filterResumed(ads)
	if len(remaining) != 1 || remaining[0].Title != "Sofa" {
		t.Errorf("remaining = %v; want only the Sofa ad", remaining)
	}
}

func TestFilterResumedKeepsLoggedAdWithoutImage(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ads.json")

	log, err := storage.OpenAdLog(logPath)
	if err != nil {
		t.Fatal(err)
	}
	// Logged, but the image folder was never written (crashed mid-download).
	if _, err := log.Append(&models.Ad{Title: "iPhone 12", Price: "KSh 1", Link: "https://x/1", MainImage: "https://img/1.jpg"}); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{ImagesDir: filepath.Join(dir, "images"), AdsJSONPath: logPath}
	s := New(cfg, utils.NewLogger())
	s.log = log

	ads := []*models.Ad{{Title: "iPhone 12", Price: "KSh 1", Link: "https://x/1", MainImage: "https://img/1.jpg"}}
	if remaining := s.filterResumed(ads); len(remaining) != 1 {
		t.Errorf("remaining = %d ads; want 1 (incomplete download must re-run)", len(remaining))
	}
}
