package repl

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tmpl/lang"
)

// commands are the REPL commands, entered with a leading ':'.
var commands = []string{"help", "vars", "set", "edit", "clear", "quit"}

// isWordBoundary reports whether r delimits a completion word: whitespace,
// the member-access dot, parentheses, operators, and the command prefix.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t', '(', ')', '+', '-', '*', '/', '=', ':', '"':
		return true
	}

	return false
}

// wordBounds returns the word at cursor and its byte boundaries within input.
// The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the dotted path leading up to the word starting at
// wordStart. For "x + user.address.ci" and the word "ci", it is
// "user.address". It is empty for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// childCandidates returns the names completing a word below parent: the
// top-level names of data for an empty parent, or the keys of the object
// parent resolves to.
func childCandidates(data lang.Context, parent string) []string {
	if parent == "" {
		return data.Names()
	}

	v, err := data.Lookup(parent)
	if err != nil {
		return nil
	}

	if obj, ok := v.(lang.Object); ok {
		return slices.Sorted(maps.Keys(obj))
	}

	return nil
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best-first, with the word's boundaries. An empty top-level word has
// no matches so the hint line stays visible; an empty word after a dot
// matches every child.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var candidates []string

	switch {
	case isCommand(input) && wordStart == 1:
		candidates = commands

	case isCommand(input):
		// Arguments of :set complete like expressions.
		if !strings.HasPrefix(input, ":set ") {
			return nil, wordStart, wordEnd
		}

		fallthrough

	default:
		parent := parentPath(input, wordStart)
		candidates = childCandidates(m.data, parent)

		if word == "" {
			if parent == "" {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 || word == "" {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate uses the selected style while
// tab-cycling.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && i < len(matches)-1 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// formatPreview returns a short description of v for the :vars listing.
func formatPreview(v lang.ContextValue) string {
	switch v := v.(type) {
	case lang.Object:
		return fmt.Sprintf("{ %d keys }", len(v))

	case lang.List:
		return fmt.Sprintf("[ %d items ]", len(v))

	case lang.String:
		s := fmt.Sprintf("%q", string(v))
		if len(s) > 40 {
			s = s[:37] + "..."
		}

		return s

	case lang.Value:
		return lang.FormatValue(v) + " (" + v.Kind().String() + ")"

	default:
		return "<nil>"
	}
}
