// Package wiki checks whether a title exists on the Japanese and English
// Wikipedia editions and generates the wiki templates that link to it.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/germanamz/scorer/pkg/modeladapter"
	"golang.org/x/sync/errgroup"
)

// Lang is a Wikipedia language edition.
type Lang string

const (
	Japanese Lang = "ja"
	English  Lang = "en"
)

// userAgent identifies the client to the Wikimedia API, which rejects
// anonymous agents.
const userAgent = "scorer/1.0 (article scoring CLI)"

// CheckResult describes one title lookup.
type CheckResult struct {
	Lang             Lang
	Title            string // Requested title, or the normalized title when no redirect applied.
	Exists           bool
	IsRedirect       bool
	IsDisambiguation bool
	RedirectTarget   string // Set when IsRedirect.
}

// Resolved returns the title a link should point at.
func (r CheckResult) Resolved() string {
	if r.RedirectTarget != "" {
		return r.RedirectTarget
	}

	return r.Title
}

// Client queries the MediaWiki API of each edition.
type Client struct {
	// BaseURL builds the API origin for a language. Defaults to
	// https://{lang}.wikipedia.org.
	BaseURL func(lang Lang) string

	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client. A nil httpClient uses the adapter default.
func New(httpClient *http.Client, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		BaseURL:    func(lang Lang) string { return fmt.Sprintf("https://%s.wikipedia.org", lang) },
		httpClient: httpClient,
		log:        log,
	}
}

type queryResponse struct {
	Query *struct {
		Redirects []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"redirects"`
		Pages map[string]apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	Title     string          `json:"title"`
	Missing   json.RawMessage `json:"missing"` // Present, with any value, when the page does not exist.
	PageProps map[string]any  `json:"pageprops"`
}

// Check looks title up on the given edition, following redirects.
func (c *Client) Check(ctx context.Context, lang Lang, title string) (CheckResult, error) {
	adapter := modeladapter.New(c.BaseURL(lang), modeladapter.Auth{}, c.httpClient)
	adapter.Headers = map[string]string{"User-Agent": userAgent}

	q := url.Values{
		"action":    {"query"},
		"titles":    {title},
		"redirects": {"1"},
		"prop":      {"pageprops"},
		"ppprop":    {"disambiguation"},
		"format":    {"json"},
	}

	var resp queryResponse
	if err := adapter.GetJSON(ctx, "", "/w/api.php?"+q.Encode(), &resp); err != nil {
		return CheckResult{}, fmt.Errorf("wiki: %s: %w", lang, err)
	}

	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return CheckResult{}, fmt.Errorf("wiki: %s: response has no pages", lang)
	}

	// A single title yields a single page.
	var (
		pageID string
		page   apiPage
	)
	for id, p := range resp.Query.Pages {
		pageID, page = id, p
		break
	}

	result := CheckResult{Lang: lang, Title: title}

	if pageID == "-1" || page.Missing != nil {
		return result, nil
	}

	result.Exists = true
	_, result.IsDisambiguation = page.PageProps["disambiguation"]

	if len(resp.Query.Redirects) > 0 {
		result.IsRedirect = true
		result.RedirectTarget = page.Title
		return result, nil
	}

	result.Title = page.Title

	return result, nil
}

// Both holds the outcome of a lookup on both editions. Each side succeeds or
// fails on its own.
type Both struct {
	JA    CheckResult
	EN    CheckResult
	JAErr error
	ENErr error
}

// Err returns an error only when both lookups failed.
func (b Both) Err() error {
	if b.JAErr != nil && b.ENErr != nil {
		return errors.Join(b.JAErr, b.ENErr)
	}

	return nil
}

// CheckBoth looks title up on the Japanese and English editions concurrently.
func (c *Client) CheckBoth(ctx context.Context, title string) Both {
	var b Both

	// Neither goroutine returns an error so that one failure never cancels
	// the other lookup.
	var g errgroup.Group
	g.Go(func() error {
		b.JA, b.JAErr = c.Check(ctx, Japanese, title)
		return nil
	})
	g.Go(func() error {
		b.EN, b.ENErr = c.Check(ctx, English, title)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{b.JAErr, b.ENErr} {
		if err != nil {
			c.log.Warn("wikipedia lookup failed", "title", title, "error", err)
		}
	}

	return b
}
