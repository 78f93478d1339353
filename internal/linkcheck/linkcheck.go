// Package linkcheck verifies that catalog poster URLs still resolve.
// The catalog ships as static JSON with hotlinked images, so posters
// rot; this finds them before users do.
package linkcheck

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
)

// Status represents the health status of a poster URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
	Missing                   // item has no poster URL at all
)

// Result holds the check result for a single item.
type Result struct {
	Item       *catalog.Item
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
// completed is the number of items checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// CheckPosters checks every item's poster URL concurrently and returns
// results in item order. excludeDomains lists hosts where 404s should
// be treated as possibly-gated rather than dead.
func CheckPosters(items []catalog.Item, concurrency int, timeout time.Duration, excludeDomains []string, onProgress ProgressFunc) []Result {
	if len(items) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	excludeMap := make(map[string]bool)
	for _, domain := range excludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	results := make([]Result, len(items))
	jobs := make(chan int, len(items))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow redirects but limit to 10
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkPoster(client, &items[idx], excludeMap)

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(items))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// checkPoster checks a single item's poster URL and returns the result.
func checkPoster(client *http.Client, it *catalog.Item, excludeMap map[string]bool) Result {
	result := Result{Item: it}

	if it.Poster == "" {
		result.Status = Missing
		return result
	}

	// Try HEAD first (faster, less bandwidth)
	resp, err := client.Head(it.Poster)
	if err != nil {
		// HEAD failed, try GET as fallback (some servers don't support HEAD)
		resp, err = client.Get(it.Poster)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		if isExcludedDomain(it.Poster, excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly gated (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// Other errors (500, 403, etc.) - could be temporary server
		// issues or hotlink protection
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

// isExcludedDomain checks if the URL's domain is in the exclude list.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	if excludeMap[host] {
		return true
	}
	// Check if host ends with excluded domain (cdn.example.com matches example.com)
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) || host == domain {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
