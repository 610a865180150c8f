// Package dict is the dictionary service: it decides whether a word is
// spelled correctly and ranks replacement suggestions, and it owns the
// run-wide set of excluded words.
package dict

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sajari/fuzzy"

	"sourcespell/internal/logging"
)

//go:embed data/words.txt
var embeddedFS embed.FS

// SystemWordLists are consulted, first match wins, when no explicit word
// list replaces the defaults.
var SystemWordLists = []string{
	"/usr/share/dict/words",
	"/usr/share/dict/american-english",
	"/usr/share/dict/british-english",
	"/usr/dict/words",
}

// Checker reports whether a word is spelled correctly and, if not, returns
// replacement suggestions ordered best first.
type Checker interface {
	Check(word string) (bool, []string)
}

// Fuzzy is a Checker backed by a sajari/fuzzy model.
type Fuzzy struct {
	model *fuzzy.Model
	known map[string]struct{}
}

// depthLimit keeps the deletion index small for large word lists; edit
// distance 2 is only affordable for small vocabularies.
const depthLimit = 40000

// suggestionPool is how many candidates are asked from the model before
// ranking; the collector applies the user-facing cap.
const suggestionPool = 64

// NewFuzzy trains a model on words. Blank and malformed entries are skipped.
func NewFuzzy(words []string) *Fuzzy {
	f := &Fuzzy{known: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if _, err := validateEntry(w); err != nil {
			continue
		}
		f.known[normalize(w)] = struct{}{}
	}

	model := fuzzy.NewModel()
	if len(f.known) > depthLimit {
		model.SetDepth(1)
	} else {
		model.SetDepth(2)
	}
	model.SetThreshold(1)
	model.SetUseAutocomplete(false)
	terms := make([]string, 0, len(f.known))
	for w := range f.known {
		terms = append(terms, w)
	}
	sort.Strings(terms)
	for _, w := range terms {
		model.TrainWord(w)
	}
	f.model = model
	return f
}

// Size returns the number of distinct known words.
func (f *Fuzzy) Size() int { return len(f.known) }

// Check reports whether word is known. Unknown words get suggestions ranked
// by edit distance, ties broken alphabetically, with the capitalisation of
// word applied.
func (f *Fuzzy) Check(word string) (bool, []string) {
	if f.Known(word) {
		return true, nil
	}
	w := normalize(word)
	raw := f.model.SpellCheckSuggestions(w, suggestionPool)
	type ranked struct {
		term string
		dist int
	}
	cands := make([]ranked, 0, len(raw))
	seen := map[string]struct{}{}
	for _, s := range raw {
		if s == "" || s == w {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		cands = append(cands, ranked{term: s, dist: fuzzy.Levenshtein(&w, &s)})
	}
	// model scores are term counts, which tie for plain word lists
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].term < cands[j].term
	})
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = matchCase(word, c.term)
	}
	return false, out
}

// Known reports whether word is in the vocabulary. Single letters and
// possessives of known words are accepted.
func (f *Fuzzy) Known(word string) bool {
	w := normalize(word)
	if utf8.RuneCountInString(w) <= 1 {
		return true
	}
	if _, ok := f.known[w]; ok {
		return true
	}
	if base, ok := strings.CutSuffix(w, "'s"); ok {
		if _, ok := f.known[base]; ok {
			return true
		}
	}
	return false
}

// Load builds a Fuzzy from the embedded list, the first system word list
// found and every extra list in paths.
func Load(paths ...string) (*Fuzzy, error) {
	log := logging.Named("dict")
	words, err := readEmbedded()
	if err != nil {
		return nil, err
	}
	for _, p := range SystemWordLists {
		ws, err := ReadWordList(p)
		if err != nil {
			continue
		}
		log.Debug().Str("path", p).Int("words", len(ws)).Msg("loaded system word list")
		words = append(words, ws...)
		break
	}
	for _, p := range paths {
		ws, err := ReadWordList(p)
		if err != nil {
			return nil, fmt.Errorf("reading word list %s: %w", p, err)
		}
		log.Debug().Str("path", p).Int("words", len(ws)).Msg("loaded word list")
		words = append(words, ws...)
	}
	f := NewFuzzy(words)
	log.Debug().Int("words", f.Size()).Msg("trained dictionary")
	return f, nil
}

func readEmbedded() ([]string, error) {
	file, err := embeddedFS.Open("data/words.txt")
	if err != nil {
		return nil, fmt.Errorf("opening embedded dictionary: %w", err)
	}
	defer file.Close()
	return readWords(file)
}

// ReadWordList reads one word per line, skipping blank lines.
func ReadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// normalize lower-cases word and folds typographic apostrophes.
func normalize(word string) string {
	return strings.ToLower(strings.ReplaceAll(word, "’", "'"))
}

// matchCase gives suggestion the capitalisation shape of word.
func matchCase(word, suggestion string) string {
	letters, upper := 0, 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	switch {
	case letters > 1 && upper == letters:
		return strings.ToUpper(suggestion)
	case upper > 0:
		if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
			s, n := utf8.DecodeRuneInString(suggestion)
			return string(unicode.ToUpper(s)) + suggestion[n:]
		}
	}
	return suggestion
}

// validateEntry checks a word-list or excluded-word entry. Entries with
// whitespace inside, invalid UTF-8 or no letters at all are malformed.
func validateEntry(raw string) (string, error) {
	w := strings.TrimSpace(raw)
	if w == "" {
		return "", errBlank
	}
	if !utf8.ValidString(w) {
		return "", fmt.Errorf("invalid UTF-8")
	}
	hasLetter := false
	for _, r := range w {
		if unicode.IsSpace(r) {
			return "", fmt.Errorf("contains whitespace")
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return "", fmt.Errorf("contains no letters")
	}
	return w, nil
}
