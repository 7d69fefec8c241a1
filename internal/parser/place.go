package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Place is what could be recovered from a shared map link.
type Place struct {
	Name     string
	Address  string
	Category string
	URL      string
}

var placeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`place/(\d+)`),
	regexp.MustCompile(`restaurant/(\d+)`),
	regexp.MustCompile(`id=(\d+)`),
	regexp.MustCompile(`pinId=(\d+)`),
}

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"

// PlaceParser resolves shared Naver map links (including the short
// naver.me form) to a restaurant name and address. Short links redirect
// to a URL carrying the place id; the mobile place page then exposes the
// details through og:title and JSON-LD.
type PlaceParser struct {
	httpClient *http.Client
	mobileBase string
}

func NewPlaceParser() *PlaceParser {
	return &PlaceParser{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		mobileBase: "https://m.place.naver.com",
	}
}

// SetMobileBase overrides the place-page host. Used by tests.
func (p *PlaceParser) SetMobileBase(base string) {
	p.mobileBase = base
}

// ParsePlaceURL follows the link's redirect chain, extracts the place id
// and scrapes the mobile place page. Returns nil when no place could be
// identified.
func (p *PlaceParser) ParsePlaceURL(ctx context.Context, rawURL string) (*Place, error) {
	finalURL, err := p.resolveRedirects(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("resolving place url: %w", err)
	}

	placeID := extractPlaceID(finalURL)
	if placeID == "" {
		return nil, nil
	}

	place, err := p.scrapePlacePage(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil || place.Name == "" {
		return nil, nil
	}
	place.URL = rawURL
	return place, nil
}

func (p *PlaceParser) resolveRedirects(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", mobileUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return resp.Request.URL.String(), nil
}

func extractPlaceID(u string) string {
	for _, pattern := range placeIDPatterns {
		if m := pattern.FindStringSubmatch(u); m != nil {
			return m[1]
		}
	}
	return ""
}

func (p *PlaceParser) scrapePlacePage(ctx context.Context, placeID string) (*Place, error) {
	pageURL := fmt.Sprintf("%s/restaurant/%s/home", p.mobileBase, placeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", mobileUserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching place page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing place page: %w", err)
	}

	place := &Place{}

	// og:title reads like "부민옥 : 네이버".
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		place.Name = strings.TrimSpace(strings.SplitN(title, ":", 2)[0])
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var ld struct {
			Type          string `json:"@type"`
			Name          string `json:"name"`
			ServesCuisine string `json:"servesCuisine"`
			Address       struct {
				StreetAddress string `json:"streetAddress"`
			} `json:"address"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			return true
		}
		switch ld.Type {
		case "Restaurant", "CafeOrCoffeeShop", "Place":
			if place.Name == "" {
				place.Name = ld.Name
			}
			if place.Category == "" {
				place.Category = ld.ServesCuisine
			}
			if place.Address == "" {
				place.Address = ld.Address.StreetAddress
			}
		}
		return place.Name == "" || place.Category == "" || place.Address == ""
	})

	// og:description carries "address | extra" when JSON-LD is absent.
	if place.Address == "" {
		if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			if idx := strings.Index(desc, "|"); idx >= 0 {
				place.Address = strings.TrimSpace(desc[:idx])
			}
		}
	}

	return place, nil
}
