package site

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

// pagePaths maps each kind to its listing page on the hotel website.
var pagePaths = map[models.Kind]string{
	models.KindRoom:  "/rooms",
	models.KindSpa:   "/spa",
	models.KindEvent: "/events",
	models.KindHall:  "/meeting-halls",
}

// BrowserSource reads catalogs from the rendered hotel website. It is used
// when the REST API is unreachable from the host but the site is not.
type BrowserSource struct {
	siteURL   string
	chromeBin string
	timeout   time.Duration
	logger    *utils.Logger
}

// NewBrowserSource creates a BrowserSource. An empty chromeBin triggers a
// lookup of the usual Chrome and Chromium locations.
func NewBrowserSource(siteURL, chromeBin string, logger *utils.Logger) *BrowserSource {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &BrowserSource{
		siteURL:   strings.TrimRight(siteURL, "/"),
		chromeBin: chromeBin,
		timeout:   90 * time.Second,
		logger:    logger,
	}
}

// card is one catalog card as extracted from the page.
type card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    string   `json:"capacity"`
	Price       string   `json:"price"`
	OldPrice    string   `json:"oldPrice"`
	Badge       string   `json:"badge"`
	Category    string   `json:"category"`
	Specialist  string   `json:"specialist"`
	Images      []string `json:"images"`
}

// FetchCatalog implements fetcher.CatalogSource.
func (b *BrowserSource) FetchCatalog(ctx context.Context, kind models.Kind) ([]*models.RawItem, error) {
	path, ok := pagePaths[kind]
	if !ok {
		return nil, fmt.Errorf("site: no page for kind %q", kind)
	}
	pageURL := b.siteURL + path
	b.logger.Info("[site] Rendering %s (browser: %s)", pageURL, b.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(b.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, b.timeout)
	defer cancelTimeout()

	var cards []card
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(`[data-testid="catalog-grid"], [data-testid="empty-state"]`, chromedp.ByQuery),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(time.Second),
		chromedp.Evaluate(extractCardsJS, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("site: render %s: %w", pageURL, err)
	}

	items := cardsToRaw(kind, cards, b.logger)
	b.logger.Info("[site] %s: %d cards, %d usable", kind, len(cards), len(items))
	return items, nil
}

// cardsToRaw converts extracted cards into raw items, skipping cards without
// an id and repeated ids.
func cardsToRaw(kind models.Kind, cards []card, logger *utils.Logger) []*models.RawItem {
	seen := utils.NewSet[string]()
	items := make([]*models.RawItem, 0, len(cards))
	for _, c := range cards {
		if c.ID == "" {
			continue
		}
		if !seen.Add(c.ID) {
			logger.Debug("[site] Skipping duplicate card: %s", c.ID)
			continue
		}
		items = append(items, &models.RawItem{
			ID:          c.ID,
			Kind:        kind,
			Name:        c.Name,
			Description: c.Description,
			Capacity:    c.Capacity,
			Price:       listPrice(c),
			Discount:    cardDiscount(c),
			Category:    c.Category,
			Specialist:  c.Specialist,
			Images:      c.Images,
		})
	}
	return items
}

// listPrice is the undiscounted price. A discounted card shows it struck
// through in OldPrice.
func listPrice(c card) string {
	if c.OldPrice != "" {
		return c.OldPrice
	}
	return c.Price
}

// cardDiscount rebuilds a published discount from the card badge, which the
// site renders as "20% off" or "$25 off". Cards only show published discounts.
func cardDiscount(c card) *models.Discount {
	badge := strings.TrimSpace(strings.ToLower(c.Badge))
	if badge == "" || c.OldPrice == "" {
		return nil
	}
	badge = strings.TrimSpace(strings.TrimSuffix(badge, "off"))

	d := &models.Discount{Active: true, PublishWebsite: true}
	if strings.HasSuffix(badge, "%") {
		d.Type = models.DiscountPercentage
		badge = strings.TrimSuffix(badge, "%")
	} else {
		d.Type = models.DiscountFixed
		badge = strings.TrimLeft(badge, "$€£ ")
	}
	if _, err := fmt.Sscanf(strings.ReplaceAll(badge, ",", ""), "%g", &d.Value); err != nil {
		return nil
	}
	return d
}

const extractCardsJS = `
(function() {
	var results = [];
	var cards = document.querySelectorAll('[data-testid="catalog-card"]');
	for (var i = 0; i < cards.length; i++) {
		var card = cards[i];
		var text = function(sel) {
			var el = card.querySelector(sel);
			return el ? el.innerText.trim() : '';
		};
		var images = [];
		var imgs = card.querySelectorAll('img');
		for (var j = 0; j < imgs.length; j++) {
			if (imgs[j].src) images.push(imgs[j].src);
		}
		results.push({
			id:          card.getAttribute('data-id') || '',
			name:        text('[data-testid="card-title"]') || text('h3'),
			description: text('[data-testid="card-description"]'),
			capacity:    text('[data-testid="card-capacity"]'),
			price:       text('[data-testid="card-price"]'),
			oldPrice:    text('[data-testid="card-old-price"]') || text('s, del'),
			badge:       text('[data-testid="card-discount"]'),
			category:    card.getAttribute('data-category') || '',
			specialist:  card.getAttribute('data-specialist') || '',
			images:      images
		});
	}
	return results;
})()
`

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
