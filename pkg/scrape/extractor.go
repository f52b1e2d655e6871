package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// landmarkSelector marks the profile content the page renders client-side.
const landmarkSelector = `h1, [data-test="provider-name"]`

// stealthScript masks the usual headless fingerprints before any page
// script runs. Profile hosts serve bot traffic an empty shell otherwise.
const stealthScript = `
Object.defineProperty(navigator, "webdriver", { get: () => false });
Object.defineProperty(navigator, "plugins", { get: () => [1, 2, 3] });
window.chrome = { runtime: {} };
`

// Options tunes the headless browser session.
type Options struct {
	NavigateTimeout time.Duration // whole-page budget, default 30s
	LandmarkTimeout time.Duration // best-effort wait for profile content, default 8s
}

func (o *Options) applyDefaults() {
	if o.NavigateTimeout <= 0 {
		o.NavigateTimeout = 30 * time.Second
	}
	if o.LandmarkTimeout <= 0 {
		o.LandmarkTimeout = 8 * time.Second
	}
}

// Extractor drives a headless browser to render a profile page and pull its
// fields into a ProfileRecord.
type Extractor struct {
	opts Options
	now  func() time.Time
}

// NewExtractor builds an extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	opts.applyDefaults()
	return &Extractor{opts: opts, now: time.Now}
}

// Extract renders the page and extracts a profile record. It fails with
// ErrScrapingFailed when navigation breaks or the page yields no usable
// content at all.
func (e *Extractor) Extract(ctx context.Context, profileURL string) (domain.ProfileRecord, error) {
	html, err := e.fetchHTML(ctx, profileURL)
	if err != nil {
		return domain.ProfileRecord{}, fmt.Errorf("%w: %v", domain.ErrScrapingFailed, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.ProfileRecord{}, fmt.Errorf("%w: parse html: %v", domain.ErrScrapingFailed, err)
	}

	record := extractRecord(doc, profileURL, e.now())
	if record.Empty() {
		return domain.ProfileRecord{}, fmt.Errorf("%w: page yielded no profile content", domain.ErrScrapingFailed)
	}
	slog.Info("scrape.extracted", "url", profileURL, "name_found", record.Name != "", "specialties", len(record.Specialties))
	return record, nil
}

func (e *Extractor) fetchHTML(ctx context.Context, profileURL string) (string, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, e.opts.NavigateTimeout)
	defer cancelRun()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		chromedp.Navigate(profileURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Best effort: the content landmark may never appear on a
			// blocked or reshuffled page, but the scrape still proceeds.
			waitCtx, cancel := context.WithTimeout(ctx, e.opts.LandmarkTimeout)
			defer cancel()
			if err := chromedp.WaitReady(landmarkSelector, chromedp.ByQuery).Do(waitCtx); err != nil {
				slog.Warn("scrape.landmark_missing", "url", profileURL)
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("navigate %s: %w", profileURL, err)
	}
	return html, nil
}
