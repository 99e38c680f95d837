package metadata

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// page holds the fields recovered from a document. Empty means not found.
type page struct {
	Title       string
	Description string
	ImageURL    string
	FaviconURL  string
}

// meta returns the content of the first <meta> whose property or name
// attribute equals key, case-insensitively.
func meta(doc *goquery.Document, key string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"property", "name"} {
			if v, ok := s.Attr(attr); ok && strings.EqualFold(strings.TrimSpace(v), key) {
				content = strings.TrimSpace(s.AttrOr("content", ""))
				if content != "" {
					return false
				}
			}
		}
		return true
	})
	return content
}

// firstMeta walks keys in order and returns the first non-empty content.
func firstMeta(doc *goquery.Document, keys ...string) string {
	for _, k := range keys {
		if v := meta(doc, k); v != "" {
			return v
		}
	}
	return ""
}

// favicon returns the href of the first <link rel="icon"> or
// <link rel="shortcut icon">.
func favicon(doc *goquery.Document) string {
	var href string
	doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.ToLower(strings.Join(strings.Fields(s.AttrOr("rel", "")), " "))
		if rel == "icon" || rel == "shortcut icon" {
			href = s.AttrOr("href", "")
			return strings.TrimSpace(href) == ""
		}
		return true
	})
	return href
}

// parsePage runs the fallback chains over doc. base resolves relative
// image and favicon references. Character references were already decoded
// once by the tokenizer, so values are used as parsed.
func parsePage(doc *goquery.Document, base *url.URL) page {
	var p page

	p.Title = firstMeta(doc, "og:title", "twitter:title")
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	p.Description = firstMeta(doc, "og:description", "twitter:description", "description")

	if img := firstMeta(doc, "og:image", "twitter:image"); img != "" {
		p.ImageURL = resolve(base, img)
	}
	if icon := favicon(doc); icon != "" {
		p.FaviconURL = resolve(base, icon)
	}

	return p
}
