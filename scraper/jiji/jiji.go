package jiji

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"jiji-catalog/config"
	"jiji-catalog/models"
	"jiji-catalog/services"
	"jiji-catalog/storage"
	"jiji-catalog/utils"
)

// adCardSelector matches one rendered ad node on the seller listing page.
const adCardSelector = ".b-list-advert-base.b-list-advert-base--list.qa-advert-list-item"

// Scraper harvests a Jiji seller page: scroll the listing to exhaustion,
// expand each ad's image set from its detail page, cache re-encoded images
// locally and persist progress to the ad log after every completed ad.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	enhancer *services.Enhancer
	log      *storage.AdLog

	mu     sync.Mutex
	report models.HarvestReport
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		enhancer: services.NewEnhancer(cfg.ImageMaxWidth, cfg.ImageMaxHeight, cfg.JPEGQuality),
	}
}

// Run executes a full harvest and returns the run report. Interrupted runs
// are safe to repeat: ads already in the log with a cached main image are
// skipped.
func (s *Scraper) Run(ctx context.Context) (*models.HarvestReport, error) {
	s.logger.Info("[jiji] Opening seller page: %s", s.cfg.SellerURL)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1366, 768),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, time.Duration(s.cfg.SellerTimeoutSec)*time.Second)
	defer cancelNav()
	if err := chromedp.Run(navCtx, chromedp.Navigate(s.cfg.SellerURL)); err != nil {
		return nil, fmt.Errorf("navigate seller page: %w", err)
	}

	s.logger.Info("[jiji] Scrolling seller page...")
	counter := &pageCounter{ctx: browserCtx, selector: adCardSelector}
	total, err := WaitForListingEnd(browserCtx, counter,
		s.cfg.ScrollStableRounds, time.Duration(s.cfg.ScrollPollMs)*time.Millisecond, s.logger)
	if err != nil {
		return nil, fmt.Errorf("scroll seller page: %w", err)
	}
	s.logger.Info("[jiji] Finished scrolling. Total: %d", total)

	ads, err := s.extractListing(browserCtx)
	if err != nil {
		return nil, fmt.Errorf("extract listing: %w", err)
	}
	s.logger.Info("[jiji] Found %d ads in listing", len(ads))
	s.report.Listed = len(ads)

	if err := os.MkdirAll(s.cfg.ImagesDir, 0755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	s.log, err = storage.OpenAdLog(s.cfg.AdsJSONPath)
	if err != nil {
		return nil, err
	}
	if n := s.log.Len(); n > 0 {
		s.logger.Info("[jiji] Loaded %d previously scraped ads from %s", n, s.cfg.AdsJSONPath)
	}

	toScrape := s.filterResumed(ads)
	s.report.Resumed = len(ads) - len(toScrape)
	s.logger.Info("[jiji] %d ads remaining to scrape after resume", len(toScrape))

	for _, batch := range utils.Chunk(toScrape, s.cfg.BatchSize) {
		s.logger.Info("[jiji] Processing %d ads in parallel...", len(batch))
		pool := utils.NewWorkerPool(s.cfg.BatchSize, 0)
		for _, ad := range batch {
			ad := ad
			pool.Submit(func() { s.processAd(browserCtx, ad) })
		}
		pool.Wait()
	}

	if err := s.exportCSV(); err != nil {
		return nil, err
	}

	s.logger.Info("[jiji] All scraping done with concurrency = %d", s.cfg.BatchSize)
	return &s.report, nil
}

// extractListing pulls structured fields from every rendered ad node. Ads
// missing title, price, link or image are malformed and dropped here.
func (s *Scraper) extractListing(browserCtx context.Context) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := chromedp.Run(browserCtx, chromedp.Evaluate(`
		(function() {
			var ads = [];
			document.querySelectorAll(`+fmt.Sprintf("%q", adCardSelector)+`).forEach(function(el) {
				var text = function(sel) {
					var n = el.querySelector(sel);
					return n && n.textContent ? n.textContent.trim() : '';
				};
				var title = text('.b-advert-title-inner');
				var price = text('.qa-advert-price');
				var description = text('.b-list-advert-base__description-text');
				var location = text('.b-list-advert__region__text');
				var anchor = el.closest('a');
				var link = anchor ? anchor.href : '';
				var img = el.querySelector('img');
				var main_image = img ? (img.getAttribute('src') || '') : '';
				if (title && price && link && main_image) {
					ads.push({
						title: title,
						price: price,
						description: description,
						location: location,
						link: link,
						main_image: main_image,
						other_images: []
					});
				}
			});
			return ads;
		})()
	`, &ads))
	if err != nil {
		return nil, err
	}
	return ads, nil
}

// filterResumed drops ads already harvested by a previous run: the dedup
// key is in the log AND the per-ad folder already holds a main image.
// Title collisions across distinct listings are therefore conflated; link
// identity is only applied later, at reconciliation time.
func (s *Scraper) filterResumed(ads []*models.Ad) []*models.Ad {
	var out []*models.Ad
	for _, ad := range ads {
		key := utils.DedupKey(ad.Title)
		mainPath := filepath.Join(s.cfg.ImagesDir, utils.Sanitize(ad.Title), "main.jpg")
		if s.log.Contains(key) {
			if _, err := os.Stat(mainPath); err == nil {
				continue
			}
		}
		out = append(out, ad)
	}
	return out
}

// processAd runs the per-ad pipeline inside one batch slot: detail-page
// image expansion, image download/re-encode, then an immediate log append.
func (s *Scraper) processAd(browserCtx context.Context, ad *models.Ad) {
	folder := filepath.Join(s.cfg.ImagesDir, utils.Sanitize(ad.Title))
	if err := os.MkdirAll(folder, 0755); err != nil {
		s.logger.Error("[jiji] Create folder for %q: %v", ad.Title, err)
		s.bumpFailures()
		return
	}

	if imgs := s.collectDetailImages(browserCtx, ad.Link); len(imgs) > 0 {
		ad.MainImage = imgs[0]
		ad.OtherImages = imgs[1:]
	}

	mainPath := filepath.Join(folder, "main.jpg")
	if err := s.enhancer.FetchAndSave(browserCtx, ad.MainImage, mainPath); err != nil {
		s.logger.Warn("[jiji] Main image failed for %q: %v", ad.Title, err)
	} else {
		ad.MainImageLocal = mainPath
		s.bumpImagesSaved()
	}

	var localExtras []string
	for i, imgURL := range ad.OtherImages {
		extraPath := filepath.Join(folder, fmt.Sprintf("extra_%d.jpg", i+1))
		if err := s.enhancer.FetchAndSave(browserCtx, imgURL, extraPath); err == nil {
			localExtras = append(localExtras, extraPath)
			s.bumpImagesSaved()
		}
		time.Sleep(time.Duration(s.cfg.ImageDelayMs) * time.Millisecond)
	}
	ad.OtherImages = localExtras

	added, err := s.log.Append(ad)
	if err != nil {
		s.logger.Error("[jiji] Persist failed for %q: %v", ad.Title, err)
		s.bumpFailures()
		return
	}
	if added {
		s.mu.Lock()
		s.report.Scraped++
		done := s.report.Resumed + s.report.Scraped
		s.mu.Unlock()
		s.logger.Info("[jiji] Done [%d/%d] - %s", done, s.report.Listed, ad.Title)
	}
}

func (s *Scraper) exportCSV() error {
	w, err := storage.NewCSVWriter(s.cfg.AdsCSVPath)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.WriteAds(s.log.Ads()); err != nil {
		return err
	}
	s.logger.Info("[jiji] Exported %d ads to %s", s.log.Len(), s.cfg.AdsCSVPath)
	return nil
}

func (s *Scraper) bumpImagesSaved() {
	s.mu.Lock()
	s.report.ImagesSaved++
	s.mu.Unlock()
}

func (s *Scraper) bumpFailures() {
	s.mu.Lock()
	s.report.Failures++
	s.mu.Unlock()
}

// findChromeBinary locates the Chrome/Chromium binary, preferring an
// explicit override.
func findChromeBinary(override string) string {
	if override != "" {
		return override
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
