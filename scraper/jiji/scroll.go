package jiji

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"jiji-catalog/utils"
)

// AdCounter abstracts the infinite listing page for the scroll loop: one
// scroll gesture plus a count of currently rendered ad nodes. The chromedp
// implementation lives in pageCounter; tests drive the loop with a stub.
type AdCounter interface {
	ScrollToBottom() error
	CountAds() (int, error)
}

// WaitForListingEnd scrolls until the rendered ad count has been unchanged
// for stableRounds consecutive polls, then returns the final count. This is
// a convergence heuristic, not a guarantee: pages with lazy-loading jitter
// can terminate early or loop long, which is why both knobs are injectable.
func WaitForListingEnd(ctx context.Context, counter AdCounter, stableRounds int, poll time.Duration, logger *utils.Logger) (int, error) {
	previous := 0
	stable := 0

	for stable < stableRounds {
		if err := counter.ScrollToBottom(); err != nil {
			return previous, fmt.Errorf("scroll: %w", err)
		}

		select {
		case <-ctx.Done():
			return previous, ctx.Err()
		case <-time.After(poll):
		}

		n, err := counter.CountAds()
		if err != nil {
			return previous, fmt.Errorf("count ads: %w", err)
		}
		logger.Debug("[jiji] Loaded ads: %d", n)

		if n == previous {
			stable++
		} else {
			previous = n
			stable = 0
		}
	}

	return previous, nil
}

// pageCounter is the chromedp-backed AdCounter bound to the seller-page tab.
type pageCounter struct {
	ctx      context.Context
	selector string
}

func (p *pageCounter) ScrollToBottom() error {
	return chromedp.Run(p.ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil))
}

func (p *pageCounter) CountAds() (int, error) {
	var n int
	err := chromedp.Run(p.ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, p.selector), &n))
	return n, err
}
