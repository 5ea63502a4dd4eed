// Package filesystem loads extracted source documents from a directory
// tree. Each first-level subdirectory is one project; files inside it
// follow the "{year}_{author}_{title}" naming convention and may be
// accompanied by a manifest.json that supplies canonical titles and
// links.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
	"github.com/relato-labs/relato-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.CorpusLoader = (*Loader)(nil)

// manifestName is the per-project sidecar file with document metadata.
const manifestName = "manifest.json"

// manifestEntry describes one document in a project manifest. Entries
// are matched to files by (year, author).
type manifestEntry struct {
	Year   string `json:"year"`
	Author string `json:"author"`
	Title  string `json:"title"`
	Link   string `json:"link"`
}

// Loader walks a corpus directory and produces source documents.
type Loader struct {
	extractors []driven.TextExtractor
}

// NewLoader creates a corpus loader dispatching to the given
// extractors. The first extractor that supports a file wins.
func NewLoader(extractors ...driven.TextExtractor) *Loader {
	return &Loader{extractors: extractors}
}

// Load reads every supported file under root. Files whose extension no
// extractor supports are skipped with a debug log; files that fail
// extraction or name parsing degrade to a warning rather than aborting
// the whole corpus.
func (l *Loader) Load(ctx context.Context, root string) ([]domain.SourceDocument, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read corpus root: %w", err)
	}

	var docs []domain.SourceDocument
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project := entry.Name()
		projectDocs, err := l.loadProject(ctx, filepath.Join(root, project), project)
		if err != nil {
			return nil, fmt.Errorf("load project %q: %w", project, err)
		}
		docs = append(docs, projectDocs...)
	}
	return docs, nil
}

// loadProject reads one project directory.
func (l *Loader) loadProject(ctx context.Context, dir, project string) ([]domain.SourceDocument, error) {
	manifest := l.loadManifest(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}
	// Deterministic ingestion order regardless of filesystem.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []domain.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == manifestName {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, entry.Name())
		extractor := l.extractorFor(path)
		if extractor == nil {
			logger.Debug("Skipping unsupported file: %s", path)
			continue
		}

		doc := parseFileName(entry.Name())
		doc.Project = project
		doc.Source = path

		if meta, ok := manifest[manifestKey(doc.Year, doc.Author)]; ok {
			if meta.Title != "" {
				doc.Title = meta.Title
			}
			doc.Link = meta.Link
		} else if len(manifest) > 0 {
			logger.Warn("No manifest entry for %s, using file name metadata", entry.Name())
		}

		pages, err := extractor.Extract(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			continue
		}
		if len(pages) == 0 {
			logger.Debug("Skipping empty file: %s", path)
			continue
		}
		doc.Pages = pages
		docs = append(docs, doc)
	}
	return docs, nil
}

// loadManifest reads the project's manifest.json if present. A missing
// or malformed manifest degrades to file-name metadata.
func (l *Loader) loadManifest(dir string) map[string]manifestEntry {
	path := filepath.Join(dir, manifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Cannot read %s: %v", path, err)
		}
		return nil
	}

	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("Malformed manifest %s: %v", path, err)
		return nil
	}

	manifest := make(map[string]manifestEntry, len(entries))
	for _, e := range entries {
		manifest[manifestKey(e.Year, e.Author)] = e
	}
	return manifest
}

func (l *Loader) extractorFor(path string) driven.TextExtractor {
	for _, e := range l.extractors {
		if e.Supports(path) {
			return e
		}
	}
	return nil
}

func manifestKey(year, author string) string {
	return year + "|" + strings.ToLower(author)
}

// parseFileName derives provenance from a "{year}_{author}_{title}"
// file name. Names that do not follow the convention degrade to a
// title-only document.
func parseFileName(name string) domain.SourceDocument {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(base, "_", 3)
	if len(parts) < 3 {
		logger.Warn("File name %q does not follow year_author_title convention", name)
		return domain.SourceDocument{Title: strings.ReplaceAll(base, "_", " ")}
	}
	return domain.SourceDocument{
		Year:   parts[0],
		Author: parts[1],
		Title:  strings.ReplaceAll(parts[2], "-", " "),
	}
}
