package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/danielsohn/chronica/internal/cache"
	"github.com/danielsohn/chronica/internal/model"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/unicode/norm"
)

// ExpectedBooks is the number of recognized book files a complete corpus has
const ExpectedBooks = 66

// ErrCorpusIncomplete is returned when fewer than 66 books are found
var ErrCorpusIncomplete = errors.New("corpus incomplete")

var (
	// filenameRE matches "<testament>-<order><book name>.txt",
	// e.g. "1-01창세기.txt" or "2-05사도행전.txt"
	filenameRE = regexp.MustCompile(`^([12])-(\d{2})(.+)\.txt$`)

	// verseRE matches "<book abbrev><chapter>:<verse> <text>"
	verseRE = regexp.MustCompile(`^([^\d]+?)(\d+):(\d+)\s+(.*)$`)
)

// Reader parses the per-book text corpus. Files are cp949-encoded; a decode
// failure anywhere invalidates the whole build.
type Reader struct {
	cache cache.Cache // nil disables caching
}

// NewReader creates a corpus reader with an optional parse cache
func NewReader(c cache.Cache) *Reader {
	return &Reader{cache: c}
}

// Load parses every recognized book file under dir and returns the corpus
// with books in canonical order and verses sorted by (chapter, verse).
func (r *Reader) Load(dir string) (*model.Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	type bookFile struct {
		testamentMark int
		order         int
		name          string
		path          string
	}

	var files []bookFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		m := filenameRE.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		mark, _ := strconv.Atoi(m[1])
		order, _ := strconv.Atoi(m[2])
		files = append(files, bookFile{
			testamentMark: mark,
			order:         order,
			name:          normalizeText(m[3]),
			path:          filepath.Join(dir, entry.Name()),
		})
	}

	if len(files) < ExpectedBooks {
		return nil, fmt.Errorf("%w: found %d of %d books in %s", ErrCorpusIncomplete, len(files), ExpectedBooks, dir)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].testamentMark != files[j].testamentMark {
			return files[i].testamentMark < files[j].testamentMark
		}
		return files[i].order < files[j].order
	})

	corpus := &model.Corpus{Books: make([]model.Book, 0, len(files))}
	for _, f := range files {
		testament := model.TestamentOld
		canonical := f.order
		if f.testamentMark == 2 {
			testament = model.TestamentNew
			canonical = 39 + f.order
		}

		verses, err := r.loadBook(f.path, f.name, testament, canonical)
		if err != nil {
			return nil, err
		}

		sort.SliceStable(verses, func(i, j int) bool {
			if verses[i].Chapter != verses[j].Chapter {
				return verses[i].Chapter < verses[j].Chapter
			}
			return verses[i].Verse < verses[j].Verse
		})

		corpus.Books = append(corpus.Books, model.Book{
			Testament:      testament,
			CanonicalOrder: canonical,
			Name:           f.name,
			Verses:         verses,
		})
	}

	return corpus, nil
}

// loadBook parses one book file, consulting the cache first
func (r *Reader) loadBook(path, name string, testament model.Testament, canonical int) ([]model.Verse, error) {
	key, err := cacheKey(path)
	if r.cache != nil && err == nil {
		if data, ok := r.cache.Get(key); ok {
			var verses []model.Verse
			if jsonErr := json.Unmarshal(data, &verses); jsonErr == nil {
				return verses, nil
			}
		}
	}

	verses, err := parseBook(path, name, testament, canonical)
	if err != nil {
		return nil, err
	}

	if r.cache != nil && key != "" {
		if data, jsonErr := json.Marshal(verses); jsonErr == nil {
			_ = r.cache.Set(key, data, 0)
		}
	}

	return verses, nil
}

// parseBook decodes a cp949 file and extracts its verse lines
func parseBook(path, name string, testament model.Testament, canonical int) ([]model.Verse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return nil, fmt.Errorf("decode %s: invalid cp949 byte sequence", filepath.Base(path))
	}

	var verses []model.Verse
	for _, rawLine := range strings.Split(string(decoded), "\n") {
		line := normalizeText(rawLine)
		if line == "" {
			continue
		}
		m := verseRE.FindStringSubmatch(line)
		if m == nil {
			continue // titles, page markers, blank structure
		}

		chapter, _ := strconv.Atoi(m[2])
		verse, _ := strconv.Atoi(m[3])
		verses = append(verses, model.Verse{
			Testament:      testament,
			CanonicalOrder: canonical,
			BookName:       name,
			BookAbbr:       normalizeText(m[1]),
			Chapter:        chapter,
			Verse:          verse,
			Text:           normalizeText(m[4]),
		})
	}

	return verses, nil
}

// cacheKey derives a cache key that changes when the file changes
func cacheKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("verses-%s-%d-%d", sanitizeKey(filepath.Base(path)), info.Size(), info.ModTime().Unix()), nil
}

func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// normalizeText trims whitespace and applies Unicode NFC, matching how the
// corpus files mix composed and decomposed Hangul.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
