package jiji

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// collectDetailImages opens the ad's detail page in a fresh tab and returns
// every plausible content image URL, primary first. A failed navigation
// yields an empty set; the ad is then persisted with whatever the listing
// page provided.
func (s *Scraper) collectDetailImages(browserCtx context.Context, url string) []string {
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	ctx, cancelTimeout := context.WithTimeout(tabCtx, time.Duration(s.cfg.DetailTimeoutSec)*time.Second)
	defer cancelTimeout()

	headers := map[string]interface{}{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}

	var html string
	err := chromedp.Run(ctx,
		network.SetExtraHTTPHeaders(network.Headers(headers)),
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		s.logger.Warn("[jiji] Detail page failed for %s: %v", url, err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Warn("[jiji] Detail page parse failed for %s: %v", url, err)
		return nil
	}

	return filterImageURLs(doc)
}

// filterImageURLs collects content image sources from a detail page,
// dropping badges, placeholders, inline SVG and data URIs, stripping query
// strings and de-duplicating while preserving document order.
func filterImageURLs(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var urls []string

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || !strings.HasPrefix(src, "https") {
			return
		}
		if strings.Contains(src, "badge") ||
			strings.Contains(src, "placeholder") ||
			strings.Contains(src, "svg") ||
			strings.Contains(src, "data:image") {
			return
		}
		if i := strings.Index(src, "?"); i >= 0 {
			src = src[:i]
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		urls = append(urls, src)
	})

	return urls
}
