// Package enrich fetches optional perfume metadata from the Fragrantica
// catalog. It is strictly best-effort: nothing in inventory or order state
// ever depends on it, and a failure only leaves metadata fields blank.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodySize = 2 << 20
)

var ErrUnsupportedURL = errors.New("not a fragrantica link")

// Result is what a catalog page yields. Any field may come back empty.
type Result struct {
	Brand    string `json:"brand"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch pulls the catalog page and scrapes brand, name and bottle image from
// its OpenGraph tags. The page title ends with the house name, so the last
// word becomes the brand and the rest the perfume name.
func (c *Client) Fetch(ctx context.Context, pageURL string) (Result, error) {
	pageURL = strings.TrimSpace(pageURL)
	if !strings.Contains(pageURL, "fragrantica.") {
		return Result{}, ErrUnsupportedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch catalog page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("catalog page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Result{}, fmt.Errorf("read catalog page: %w", err)
	}

	return parsePage(string(body)), nil
}

func parsePage(html string) Result {
	var r Result
	title := metaContent(html, "og:title")
	if fields := strings.Fields(title); len(fields) > 1 {
		r.Brand = fields[len(fields)-1]
		r.Name = strings.Join(fields[:len(fields)-1], " ")
	} else {
		r.Name = title
	}
	r.ImageURL = metaContent(html, "og:image")
	return r
}

// metaContent scans for <meta property="..." content="...">. A full HTML
// parser would be overkill for two OpenGraph tags on a page we do not
// control anyway.
func metaContent(html, property string) string {
	for rest := html; ; {
		i := strings.Index(rest, "<meta")
		if i < 0 {
			return ""
		}
		end := strings.Index(rest[i:], ">")
		if end < 0 {
			return ""
		}
		tag := rest[i : i+end]
		rest = rest[i+end:]

		if attrValue(tag, "property") != property && attrValue(tag, "name") != property {
			continue
		}
		return attrValue(tag, "content")
	}
}

func attrValue(tag, attr string) string {
	for _, quote := range []string{`"`, `'`} {
		marker := attr + `=` + quote
		i := strings.Index(tag, marker)
		if i < 0 {
			continue
		}
		rest := tag[i+len(marker):]
		if j := strings.Index(rest, quote); j >= 0 {
			return rest[:j]
		}
	}
	return ""
}
