// Package importer reads watchlists out of browser bookmark exports.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
	"github.com/Xuni-Dizan/phimdex/internal/search"
	"github.com/Xuni-Dizan/phimdex/internal/storage"
)

// Ref is one anchor pulled from a bookmarks HTML file.
type Ref struct {
	Title   string
	URL     string
	AddedAt time.Time
}

// ParseHTML parses Netscape bookmark HTML and returns every anchor as
// a Ref. Folder structure is flattened; a watchlist has no hierarchy.
func ParseHTML(r io.Reader) ([]Ref, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var refs []Ref

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := getAttr(n, "href")
			if href == "" {
				// Skip anchors without URL
				return
			}

			title := getTextContent(n)
			if title == "" {
				title = href // fallback to URL as title
			}

			addedAt := time.Now()
			if addDate := getAttr(n, "add_date"); addDate != "" {
				if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
					addedAt = time.Unix(ts, 0)
				}
			}

			refs = append(refs, Ref{Title: title, URL: href, AddedAt: addedAt})
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return refs, nil
}

// Match resolves refs against the catalog by normalized title and
// builds watchlist entries for the hits. Unmatched refs come back
// separately so the caller can report them.
func Match(refs []Ref, items []catalog.Item) (entries []storage.Entry, unmatched []Ref) {
	byTitle := make(map[string]catalog.Item, len(items))
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		byTitle[search.Normalize(it.Title)] = it
	}

	for _, ref := range refs {
		it, ok := byTitle[search.Normalize(ref.Title)]
		if !ok {
			unmatched = append(unmatched, ref)
			continue
		}
		e := storage.NewEntry(it)
		e.AddedAt = ref.AddedAt
		entries = append(entries, e)
	}
	return entries, unmatched
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
