package command

import (
	"regexp"
	"strings"
)

// Kind says which retrieval lookup a token resolves against.
type Kind string

const (
	KindTemplate  Kind = "template"   // /vorlage <name>, /template <name>
	KindTextBlock Kind = "text_block" // /einfügen <code>, /insert <code>
)

// Match is a single command token extracted from the notes.
type Match struct {
	Kind        Kind
	Name        string // The referenced entry name, matched case-sensitively
	Position    int    // Byte offset of the token in the original notes
	OriginalRaw string // The original matched text
}

// ParseResult contains all parsed command tokens and the cleaned notes.
type ParseResult struct {
	Matches    []Match
	CleanNotes string // Notes with all command tokens removed
	HasTokens  bool
}

// Token patterns:
//   /vorlage "Some Name"   - quoted name (may contain spaces)
//   /vorlage Name          - plain single-word name
//   /einfügen CODE         - text block shorthand
// English aliases /template and /insert are accepted alongside the
// German commands the original product documents.
var (
	templateQuotedPattern  = regexp.MustCompile(`/(?:vorlage|template)\s+"([^"]+)"`)
	templatePlainPattern   = regexp.MustCompile(`/(?:vorlage|template)\s+(\S+)`)
	textBlockQuotedPattern = regexp.MustCompile(`/(?:einfügen|insert)\s+"([^"]+)"`)
	textBlockPlainPattern  = regexp.MustCompile(`/(?:einfügen|insert)\s+(\S+)`)
)

// Parse extracts every command token from the notes. The returned names are
// untouched: lookups against the store are case-sensitive on the stored name.
func Parse(notes string) *ParseResult {
	result := &ParseResult{
		Matches:    make([]Match, 0),
		CleanNotes: notes,
	}

	var allRaw []string

	collect := func(kind Kind, quoted, plain *regexp.Regexp) {
		working := result.CleanNotes

		// Quoted names first so the plain pattern never eats a quote.
		for _, loc := range quoted.FindAllStringSubmatchIndex(working, -1) {
			raw := working[loc[0]:loc[1]]
			name := working[loc[2]:loc[3]]
			result.Matches = append(result.Matches, Match{
				Kind:        kind,
				Name:        name,
				Position:    strings.Index(notes, raw),
				OriginalRaw: raw,
			})
			allRaw = append(allRaw, raw)
		}
		for _, raw := range allRaw {
			working = strings.ReplaceAll(working, raw, "")
		}

		for _, loc := range plain.FindAllStringSubmatchIndex(working, -1) {
			raw := working[loc[0]:loc[1]]
			name := working[loc[2]:loc[3]]
			result.Matches = append(result.Matches, Match{
				Kind:        kind,
				Name:        name,
				Position:    strings.Index(notes, raw),
				OriginalRaw: raw,
			})
			allRaw = append(allRaw, raw)
		}
	}

	collect(KindTemplate, templateQuotedPattern, templatePlainPattern)
	collect(KindTextBlock, textBlockQuotedPattern, textBlockPlainPattern)

	clean := notes
	for _, raw := range allRaw {
		clean = strings.ReplaceAll(clean, raw, "")
	}
	result.CleanNotes = normalizeWhitespace(clean)
	result.HasTokens = len(result.Matches) > 0

	return result
}

// Templates returns only the template matches, in notes order.
func (r *ParseResult) Templates() []Match {
	return r.byKind(KindTemplate)
}

// TextBlocks returns only the text block matches, in notes order.
func (r *ParseResult) TextBlocks() []Match {
	return r.byKind(KindTextBlock)
}

func (r *ParseResult) byKind(kind Kind) []Match {
	out := make([]Match, 0)
	for _, m := range r.Matches {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// normalizeWhitespace collapses the holes token removal leaves behind
// without disturbing intentional line structure.
var multiSpacePattern = regexp.MustCompile(`[ \t]{2,}`)

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(multiSpacePattern.ReplaceAllString(line, " "), " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
