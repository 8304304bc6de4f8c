package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chenyg/ytpl-downloader/internal/model"
)

// keywordMatchThreshold is the fraction of significant keywords that
// must overlap for the fuzzy phase to accept a file. High enough to
// avoid cross-matching unrelated items, low enough to tolerate
// punctuation drift between enumeration passes.
const keywordMatchThreshold = 0.7

// knownExtensions is the probe order for exact matches. WAV first
// because it is the preferred format.
var knownExtensions = []string{".wav", ".mp3", ".m4a", ".webm", ".opus"}

var nonKeywordChars = regexp.MustCompile(`[^\w\s]`)

// Resolution is the answer to "was this item already downloaded?".
type Resolution struct {
	// Exists reports whether an acceptable file was found.
	Exists bool

	// Path is the matched file, valid when Exists is true.
	Path string

	// Format is the upper-cased extension label of the matched file
	// ("WAV", "MP3", ...), or "UNKNOWN" for an extension-less match.
	Format string
}

// Resolve determines whether the item with the given ordinal and title
// was already materialized in dir, in any acceptable format.
//
// Exact stems ("NN - <sanitized title>" and "NN - <raw title>") are
// probed first across the known extensions. If none hit, filenames
// starting with the "NN -" prefix are matched fuzzily: the significant
// keywords of the title and of the filename must each overlap the
// other side at a 70% ratio. The check is bidirectional so that a
// short title does not accidentally claim a longer, unrelated
// filename that merely contains it.
//
// Resolve never fails: filesystem errors during the fuzzy phase are
// treated as "no match", since the check is an optimization rather
// than a correctness requirement.
func Resolve(dir string, ordinal int, title string) Resolution {
	clean := model.SanitizeTitle(title)

	stems := []string{
		model.ItemStem(ordinal, clean),
		model.ItemStem(ordinal, title),
	}
	for _, stem := range stems {
		for _, ext := range knownExtensions {
			path := filepath.Join(dir, stem+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return Resolution{Exists: true, Path: path, Format: formatLabel(ext)}
			}
		}
	}

	return fuzzyResolve(dir, ordinal, clean)
}

// fuzzyResolve scans dir for files with the ordinal prefix whose names
// share most of their significant keywords with the title.
func fuzzyResolve(dir string, ordinal int, cleanTitle string) Resolution {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Resolution{}
	}

	prefix := fmt.Sprintf("%02d -", ordinal)
	titleKeywords := significantKeywords(cleanTitle)
	if len(titleKeywords) == 0 {
		return Resolution{}
	}
	normTitle := normalize(cleanTitle)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		ext := filepath.Ext(entry.Name())
		stem := strings.TrimSuffix(entry.Name(), ext)
		normStem := normalize(stem)

		fileKeywords := significantKeywords(strings.TrimPrefix(stem, prefix))
		if len(fileKeywords) == 0 {
			continue
		}

		if keywordRatio(titleKeywords, normStem) >= keywordMatchThreshold &&
			keywordRatio(fileKeywords, normTitle) >= keywordMatchThreshold {
			return Resolution{
				Exists: true,
				Path:   filepath.Join(dir, entry.Name()),
				Format: formatLabel(ext),
			}
		}
	}

	return Resolution{}
}

// keywordRatio returns the fraction of keywords present as substrings
// of the normalized haystack.
func keywordRatio(keywords []string, haystack string) float64 {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

// significantKeywords lower-cases the text, strips non-word
// characters, and keeps whitespace-separated tokens longer than two
// characters.
func significantKeywords(text string) []string {
	var keywords []string
	for _, token := range strings.Fields(normalize(text)) {
		if len([]rune(token)) > 2 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

// normalize lower-cases text and strips everything except word
// characters and whitespace.
func normalize(text string) string {
	return nonKeywordChars.ReplaceAllString(strings.ToLower(text), "")
}

// formatLabel maps an extension to its display label: ".wav" → "WAV",
// "" → "UNKNOWN".
func formatLabel(ext string) string {
	if ext == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}
