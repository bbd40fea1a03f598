// Package news fetches and scores market headlines. Sources are Google News
// RSS (queried with per-instrument search terms) and the Alpaca marketdata
// news API; the Source type funnels both into one scored signal per decision
// cycle.
package news

import (
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// Article is a single headline from any source, before scoring.
type Article struct {
	Time     time.Time
	Source   string
	Headline string
	URL      string
	Content  string
}

// queryTerms maps an instrument to the search terms used against Google News.
// Unknown instruments fall back to the lowercased instrument name.
var queryTerms = map[string][]string{
	"EUR_USD": {"eurusd", "euro dollar", "ecb", "eurozone inflation"},
	"GBP_USD": {"gbpusd", "pound dollar", "bank of england", "uk inflation"},
	"USD_JPY": {"usdjpy", "yen", "bank of japan", "japan inflation"},
	"XAU_USD": {"xauusd", "gold price", "gold"},
}

// QueryTerms returns the news search terms for an instrument.
func QueryTerms(instrument string) []string {
	if qs, ok := queryTerms[instrument]; ok {
		return qs
	}
	return []string{strings.ToLower(strings.ReplaceAll(instrument, "_", " "))}
}

// --- HTTP client ---

var httpClient = &http.Client{Timeout: 10 * time.Second}

// googleNewsBase is a variable so tests can point the fetcher at a local
// server.
var googleNewsBase = "https://news.google.com/rss/search"

// --- Google News RSS ---

type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Desc    string `xml:"description"`
}

// FetchGoogleNews fetches headlines from Google News RSS for one query term,
// keeping only items published inside [start, end].
func FetchGoogleNews(query string, start, end time.Time) ([]Article, error) {
	u := googleNewsBase + "?q=" + url.QueryEscape(query) + "&hl=en-US&gl=US&ceid=US:en"

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news status %d", resp.StatusCode)
	}

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("decoding rss: %w", err)
	}

	var articles []Article
	for _, item := range rss.Channel.Items {
		t, err := time.Parse(time.RFC1123Z, item.PubDate)
		if err != nil {
			t, err = time.Parse(time.RFC1123, item.PubDate)
			if err != nil {
				continue
			}
		}
		if t.Before(start) || t.After(end) {
			continue
		}
		headline := item.Title
		// Google suffixes " - Publisher" onto every title.
		if idx := strings.LastIndex(headline, " - "); idx > 0 {
			headline = headline[:idx]
		}
		articles = append(articles, Article{
			Time:     t,
			Source:   "google",
			Headline: headline,
			URL:      item.Link,
			Content:  StripHTML(item.Desc),
		})
	}
	return articles, nil
}

// --- Alpaca ---

// FetchAlpacaNews fetches general market news from the Alpaca marketdata API.
// Forex instruments have no Alpaca symbol, so the request is symbol-less and
// returns broad market coverage.
func FetchAlpacaNews(mdc *marketdata.Client, start, end time.Time) ([]Article, error) {
	alpacaNews, err := mdc.GetNews(marketdata.GetNewsRequest{
		Start:      start,
		End:        end,
		TotalLimit: 50,
		Sort:       marketdata.SortDesc,
	})
	if err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(alpacaNews))
	for _, a := range alpacaNews {
		body := a.Summary
		if body == "" {
			body = StripHTML(a.Content)
		}
		articles = append(articles, Article{
			Time:     a.CreatedAt,
			Source:   "alpaca",
			Headline: a.Headline,
			URL:      a.URL,
			Content:  body,
		})
	}
	return articles, nil
}

// --- HTML helpers ---

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags and normalizes whitespace.
func StripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
