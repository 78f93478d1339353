// Package exporter writes the watchlist as Netscape bookmark HTML so
// browsers and other managers can read it back.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xuni-Dizan/phimdex/internal/search"
	"github.com/Xuni-Dizan/phimdex/internal/storage"
)

// SiteBase prefixes the detail routes in exported links. The catalog
// site is static, so the routes match its pages/ layout.
const SiteBase = "https://webphim.example/"

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/phimdex-watchlist-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("phimdex-watchlist-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the watchlist to Netscape bookmark HTML.
func ExportHTML(entries []storage.Entry) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Watchlist</TITLE>\n")
	b.WriteString("<H1>Watchlist</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, e := range entries {
		url := SiteBase + search.DetailURL(e.ItemID, e.Type, "")
		fmt.Fprintf(&b,
			"    <DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			url, e.AddedAt.Unix(), html.EscapeString(e.Title))
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}
