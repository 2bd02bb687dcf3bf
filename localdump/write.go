package localdump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/adamwolf/export-help-scout-docs/helpscout"
)

// Keep slugs comfortably under filesystem name limits.
const maxSlugLength = 100

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeSlug turns an article slug or title into something safe to use as
// a filename: lowercase, alphanumeric runs joined by hyphens, truncated.
// Returns "" if nothing usable remains.
func sanitizeSlug(title string) string {
	str := nonAlphanumeric.ReplaceAllString(title, " ")
	str = strings.ToLower(str)
	str = strings.Join(strings.Fields(str), "-")

	if len(str) > maxSlugLength {
		str = str[:maxSlugLength]
	}

	return strings.Trim(str, "-")
}

// assignFilenames derives one unique "<slug>.json" filename per article, in
// listing order.  Collisions get a "-1", "-2", ... suffix so two articles
// both slugged "faq" never overwrite each other.  Assigning names up front,
// before any fetching starts, keeps the on-disk outcome identical whether
// articles are then fetched sequentially or in parallel.
func assignFilenames(storePath string, refs []helpscout.ArticleRef) map[string]string {
	names := make(map[string]string, len(refs))
	taken := make(map[string]bool, len(refs))

	for _, ref := range refs {
		base := sanitizeSlug(ref.Slug)
		if base == "" {
			base = sanitizeSlug(ref.Name)
		}
		if base == "" {
			base = ref.ID
		}

		filename := base + ".json"
		counter := 1
		for taken[filename] || fileExists(path.Join(storePath, filename)) {
			filename = fmt.Sprintf("%s-%d.json", base, counter)
			counter++
		}

		taken[filename] = true
		names[ref.ID] = filename
	}

	return names
}

func fileExists(abs string) bool {
	_, err := os.Stat(abs)
	return err == nil
}

// WriteArticleIntoLocal materializes one fetched article as pretty-printed
// JSON under the store path.  The payload goes to a temporary file first and
// is renamed into place, so a reader never sees a truncated article.
func (exporter *Exporter) WriteArticleIntoLocal(article *helpscout.Article, filename string) (string, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, article.Raw, "", "  "); err != nil {
		return "", fmt.Errorf("%w: couldn't format article %s: %v", ErrWrite, article.ID, err)
	}
	pretty.WriteByte('\n')

	abs := path.Join(exporter.StorePath, filename)

	tmp, err := os.CreateTemp(exporter.StorePath, ".article-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: couldn't create temp file in %s: %v", ErrWrite, exporter.StorePath, err)
	}

	if _, err := tmp.Write(pretty.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: couldn't write to %s: %v", ErrWrite, tmp.Name(), err)
	}

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: couldn't chmod %s: %v", ErrWrite, tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: couldn't close %s: %v", ErrWrite, tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), abs); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: couldn't rename into %s: %v", ErrWrite, abs, err)
	}

	return abs, nil
}
