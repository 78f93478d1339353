package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Xuni-Dizan/phimdex/internal/catalog"
	"github.com/Xuni-Dizan/phimdex/internal/exporter"
	"github.com/Xuni-Dizan/phimdex/internal/filter"
	"github.com/Xuni-Dizan/phimdex/internal/importer"
	"github.com/Xuni-Dizan/phimdex/internal/linkcheck"
	"github.com/Xuni-Dizan/phimdex/internal/picker"
	"github.com/Xuni-Dizan/phimdex/internal/search"
	"github.com/Xuni-Dizan/phimdex/internal/storage"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "filter":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: phimdex filter \"<query string>\"\n")
				os.Exit(1)
			}
			runFilter(os.Args[2])
			return
		case "watch":
			runWatch(os.Args[2:])
			return
		case "version":
			runVersion(os.Args[2:])
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: phimdex import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run the live-search picker
	runPicker()
}

func printHelp() {
	help := `phimdex - catalog search for the WebPhim static site

Usage:
  phimdex                      Open live-search picker
  phimdex <query>              One-shot ranked search
  phimdex filter "<params>"    Filter the catalog with grid-page URL params
                               (genres=Action,Drama&minYear=2000&sort=rating_desc)
  phimdex watch add|rm <id>    Add/remove a catalog item on the watchlist
  phimdex watch ls             Show the watchlist
  phimdex version <id> [name]  Show or set the preferred playback version
  phimdex import <file.html>   Import a watchlist from bookmarks HTML
  phimdex export [path]        Export the watchlist to bookmarks HTML
  phimdex check                Check poster URLs for dead links
  phimdex help                 Show this help

Configuration:
  ~/.config/phimdex/config.json   catalogDir, suggestionLimit, namespace
  ~/.config/phimdex/phimdex.json  watchlist + preferences (or phimdex.db)
`
	fmt.Print(help)
}

// loadConfig loads the config, falling back to defaults on error.
func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigFilePath()
	if err != nil {
		cfg := storage.DefaultConfig()
		return &cfg
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// loadCatalog loads the combined catalog from the configured directory.
func loadCatalog(cfg *storage.Config) []catalog.Item {
	items, err := catalog.LoadDir(cfg.CatalogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog from %s: %v\n", cfg.CatalogDir, err)
		os.Exit(1)
	}
	return items
}

func openStorage() storage.Storage {
	store, err := storage.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	return store
}

// runPicker runs the interactive live-search picker.
func runPicker() {
	cfg := loadConfig()
	items := loadCatalog(cfg)

	opts := search.Options{MaxResults: cfg.SuggestionLimit}
	p := picker.New(items, opts, exporter.SiteBase)
	program := tea.NewProgram(p)
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
		os.Exit(1)
	}

	finalPicker := finalModel.(picker.Picker)
	if finalPicker.Cancelled() {
		os.Exit(0)
	}

	result := finalPicker.Selected()
	if result == nil {
		os.Exit(0)
	}

	url := exporter.SiteBase + search.DetailURL(result.Item.ID, result.Type, "")
	fmt.Printf("Opening: %s\n", result.Item.Title)
	openURL(url)
}

// runQuickSearch prints a one-shot ranked search.
func runQuickSearch(query string) {
	cfg := loadConfig()
	items := loadCatalog(cfg)

	results := search.Search(items, query, search.Options{MaxResults: cfg.SuggestionLimit})
	if len(results) == 0 {
		fmt.Printf("No titles found for '%s'\n", query)
		os.Exit(0)
	}

	suggestions := search.Suggest(results, query, "")
	for i, s := range suggestions {
		line := fmt.Sprintf("%d. %s (%s) %s", i+1, results[i].Item.Title, s.Year, s.TypeLabel)
		if s.Rating != "" {
			line += " ★" + s.Rating
		}
		fmt.Println(line)
		fmt.Printf("   %s%s\n", exporter.SiteBase, s.DetailURL)
	}
}

// runFilter applies grid-page URL parameters to the catalog.
func runFilter(queryString string) {
	cfg := loadConfig()
	items := loadCatalog(cfg)

	st, err := filter.ParseQueryString(queryString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing filter params: %v\n", err)
		os.Exit(1)
	}

	// Warn about genre tags the catalog doesn't know; fuzzy-suggest the
	// closest real tag for typos.
	known := catalog.Genres(items)
	for _, g := range st.Genres {
		if containsString(known, g) {
			continue
		}
		if suggestion, ok := catalog.SuggestGenre(known, g); ok {
			fmt.Fprintf(os.Stderr, "Warning: unknown genre %q (did you mean %q?)\n", g, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: unknown genre %q\n", g)
		}
	}

	filtered := filter.Apply(items, st)
	if len(filtered) == 0 {
		fmt.Println("No titles match the active filters")
		return
	}

	for _, it := range filtered {
		year := "N/A"
		if it.ReleaseYear != nil {
			year = strconv.Itoa(*it.ReleaseYear)
		}
		line := fmt.Sprintf("%4d  %s (%s)", it.ID, it.Title, year)
		if it.Rating != nil {
			line += fmt.Sprintf(" ★%.1f", *it.Rating)
		}
		fmt.Println(line)
	}
	fmt.Printf("%d titles · params: %s\n", len(filtered), st.Query().Encode())
}

// runWatch handles the watchlist subcommands.
func runWatch(args []string) {
	if len(args) == 0 {
		args = []string{"ls"}
	}

	store := openStorage()
	data, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlist: %v\n", err)
		os.Exit(1)
	}

	switch args[0] {
	case "ls":
		if len(data.Watchlist) == 0 {
			fmt.Println("Watchlist is empty")
			return
		}
		for _, e := range data.Watchlist {
			label, _ := search.TypeBadge(e.Type)
			fmt.Printf("%4d  %s (%s, added %s)\n", e.ItemID, e.Title, label, e.AddedAt.Format("2006-01-02"))
		}

	case "add":
		id := parseItemID(args)
		cfg := loadConfig()
		items := loadCatalog(cfg)
		it := catalog.ByID(items, id)
		if it == nil {
			fmt.Fprintf(os.Stderr, "No catalog item with id %d\n", id)
			os.Exit(1)
		}
		if !data.AddWatch(storage.NewEntry(*it)) {
			fmt.Printf("%s is already on the watchlist\n", it.Title)
			return
		}
		saveData(store, data)
		fmt.Printf("Added %s\n", it.Title)

	case "rm":
		id := parseItemID(args)
		if !data.RemoveWatch(id) {
			fmt.Fprintf(os.Stderr, "Item %d is not on the watchlist\n", id)
			os.Exit(1)
		}
		saveData(store, data)
		fmt.Printf("Removed item %d\n", id)

	default:
		fmt.Fprintf(os.Stderr, "Usage: phimdex watch add|rm <id> | phimdex watch ls\n")
		os.Exit(1)
	}
}

// runVersion shows or sets the preferred playback version for an item.
func runVersion(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: phimdex version <id> [name]\n")
		os.Exit(1)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid item id %q\n", args[0])
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStorage()

	if len(args) >= 2 {
		storage.SaveVersion(store, cfg.Namespace, id, args[1])
		fmt.Printf("Preferred version for item %d set to %s\n", id, args[1])
		return
	}

	if v := storage.Version(store, cfg.Namespace, id); v != "" {
		fmt.Println(v)
	} else {
		fmt.Printf("No preferred version recorded for item %d\n", id)
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	cfg := loadConfig()
	items := loadCatalog(cfg)

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	refs, err := importer.ParseHTML(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	entries, unmatched := importer.Match(refs, items)

	store := openStorage()
	data, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlist: %v\n", err)
		os.Exit(1)
	}

	added := 0
	for _, e := range entries {
		if data.AddWatch(e) {
			added++
		}
	}
	saveData(store, data)

	fmt.Printf("Imported %d titles", added)
	if skipped := len(entries) - added; skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
	for _, ref := range unmatched {
		fmt.Printf("  not in catalog: %s\n", ref.Title)
	}
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	store := openStorage()
	data, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlist: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(data.Watchlist)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d titles to %s\n", len(data.Watchlist), outputPath)
}

// runCheck checks poster URLs for dead links.
func runCheck() {
	cfg := loadConfig()
	items := loadCatalog(cfg)

	results := linkcheck.CheckPosters(items, 8, 10*time.Second, nil, func(completed, total int) {
		fmt.Printf("\rChecking posters %d/%d", completed, total)
	})
	fmt.Println()

	dead, unreachable, missing := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case linkcheck.Dead:
			dead++
			fmt.Printf("DEAD       %4d  %s (%d)\n", r.Item.ID, r.Item.Title, r.StatusCode)
		case linkcheck.Unreachable:
			unreachable++
			fmt.Printf("UNREACHABLE %3d  %s (%s)\n", r.Item.ID, r.Item.Title, r.Error)
		case linkcheck.Missing:
			missing++
		}
	}
	fmt.Printf("%d posters checked: %d dead, %d unreachable, %d missing\n",
		len(results), dead, unreachable, missing)
}

func saveData(store storage.Storage, data *storage.Data) {
	if err := store.Save(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving watchlist: %v\n", err)
		os.Exit(1)
	}
}

func parseItemID(args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: phimdex watch %s <id>\n", args[0])
		os.Exit(1)
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid item id %q\n", args[1])
		os.Exit(1)
	}
	return id
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
