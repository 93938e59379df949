package cleaners

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// CleanExtraWhitespace collapses carriage returns, non-breaking spaces and
// newlines to plain spaces, then collapses any run of 2+ spaces into one,
// then trims the result. \r and \r\n are normalized to \n before collapsing
// (REDESIGN FLAGS: \r treated as \n).
func CleanExtraWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanLigatures expands each ligature in ligaturePairs to its expanded
// ASCII form, in table order.
func CleanLigatures(text string) string {
	for _, lig := range ligaturePairs {
		text = strings.ReplaceAll(text, lig.from, lig.to)
	}
	return text
}

// CleanNonASCIIChars drops every byte of the UTF-8 encoding above 0x7F,
// mirroring encode("ascii", "ignore") on the reference side: any rune with
// a multi-byte encoding disappears entirely, since all of its bytes are
// non-ASCII.
func CleanNonASCIIChars(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] <= 0x7F {
			out = append(out, text[i])
		}
	}
	return string(out)
}

// CleanBullets removes a single leading bullet character and the
// whitespace after it, but only when the bullet is not immediately
// followed by another bullet (a doubled bullet leaves the text
// untouched).
func CleanBullets(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || !bulletSet[r] {
		return text
	}
	rest := text[size:]
	if next, nsize := utf8.DecodeRuneInString(rest); nsize > 0 && bulletSet[next] {
		return text
	}
	return strings.TrimSpace(rest)
}

// GroupBulletParagraph splits a single paragraph into one piece per bullet
// item: a bare "e" at the start of a line (a common OCR misread of a
// bullet glyph) is normalized to "·" first, then the paragraph is split
// right before each bullet character, and intra-paragraph whitespace
// surrounding a newline is collapsed to a single space within each piece.
func GroupBulletParagraph(paragraph string) []string {
	paragraph = eBulletLineStartRe.ReplaceAllString(paragraph, "·$1")
	paragraph = strings.TrimSpace(paragraph)

	pieces := splitOnBullets(paragraph)
	cleaned := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p == "" {
			continue
		}
		cleaned = append(cleaned, paragraphBoundaryRe.ReplaceAllString(p, " "))
	}
	return cleaned
}

// splitOnBullets splits s into pieces starting at each bullet-character
// occurrence, keeping the bullet at the start of the piece it introduces.
// Any text before the first bullet becomes its own leading piece.
func splitOnBullets(s string) []string {
	var bulletIdx []int
	for i, r := range s {
		if bulletSet[r] {
			bulletIdx = append(bulletIdx, i)
		}
	}
	if len(bulletIdx) == 0 {
		return []string{s}
	}
	pieces := make([]string, 0, len(bulletIdx)+1)
	if bulletIdx[0] > 0 {
		pieces = append(pieces, s[:bulletIdx[0]])
	}
	for i, start := range bulletIdx {
		end := len(s)
		if i+1 < len(bulletIdx) {
			end = bulletIdx[i+1]
		}
		pieces = append(pieces, s[start:end])
	}
	return pieces
}

// GroupBrokenParagraphs splits text on double-paragraph boundaries, then
// repairs each paragraph that looks like it was broken across lines by a
// layout process: a bulleted paragraph is exploded via GroupBulletParagraph,
// a paragraph whose every line is short (fewer than 5 whitespace-separated
// tokens) is kept as separate lines, and everything else has its internal
// line breaks collapsed into a single paragraph.
func GroupBrokenParagraphs(text string) string {
	var out []string
	for _, paragraph := range doubleParagraphRe.Split(text, -1) {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}

		switch {
		case startsWithBullet(trimmed) || startsWithEBullet(trimmed):
			out = append(out, GroupBulletParagraph(paragraph)...)
		case allLinesShort(paragraph):
			for _, line := range paragraphBoundaryRe.Split(paragraph, -1) {
				if strings.TrimSpace(line) != "" {
					out = append(out, line)
				}
			}
		default:
			out = append(out, paragraphBoundaryRe.ReplaceAllString(paragraph, " "))
		}
	}
	return strings.Join(out, "\n\n")
}

// BlankLineGrouper is an alias for GroupBrokenParagraphs, kept distinct so
// the fixed CleanerPipeline can name both pipeline positions explicitly.
func BlankLineGrouper(text string) string {
	return GroupBrokenParagraphs(text)
}

func allLinesShort(paragraph string) bool {
	for _, line := range paragraphBoundaryRe.Split(paragraph, -1) {
		if len(strings.Fields(strings.TrimSpace(line))) >= 5 {
			return false
		}
	}
	return true
}

func startsWithBullet(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && bulletSet[r]
}

func startsWithEBullet(s string) bool {
	if !strings.HasPrefix(s, "e") || len(s) < 2 {
		return false
	}
	next, size := utf8.DecodeRuneInString(s[1:])
	return size > 0 && unicode.IsSpace(next)
}

// NewLineGrouper splits text right after each newline, drops any resulting
// blank piece, and rejoins the survivors with a blank line between them.
func NewLineGrouper(text string) string {
	pieces := splitAfterNewline(text)
	kept := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// splitAfterNewline splits text into pieces that each end right after a
// '\n' (the final piece holds whatever follows the last newline, possibly
// empty). A text with no newline yields a single-element slice; an empty
// text yields one empty element, matching re.split on a pattern that
// cannot match within an empty string.
func splitAfterNewline(text string) []string {
	var pieces []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			pieces = append(pieces, text[start:i+1])
			start = i + 1
		}
	}
	return append(pieces, text[start:])
}

// AutoParagraphGrouper inspects up to the first 2000 newline-delimited
// lines: if fewer than 10% of them are blank, the text is treated as
// already hard-wrapped and handed to NewLineGrouper; otherwise it is
// treated as loosely paragraphed and handed to BlankLineGrouper.
func AutoParagraphGrouper(text string) string {
	lines := splitAfterNewline(text)
	sample := lines
	if len(sample) > 2000 {
		sample = sample[:2000]
	}
	empty := 0
	for _, l := range sample {
		if strings.TrimSpace(l) == "" {
			empty++
		}
	}
	if float64(empty)/float64(len(sample)) < 0.1 {
		return NewLineGrouper(text)
	}
	return BlankLineGrouper(text)
}

// CleanerPipeline is the fixed, ordered sequence of cleaners CleanDocument
// applies. The order matches the reference's UNSTRUCTURED_POST_PROCESSORS
// list, including BlankLineGrouper and GroupBrokenParagraphs both appearing
// (they are the same function, invoked at two different pipeline stages).
var CleanerPipeline = []func(string) string{
	CleanExtraWhitespace,
	CleanLigatures,
	CleanNonASCIIChars,
	BlankLineGrouper,
	NewLineGrouper,
	GroupBrokenParagraphs,
	AutoParagraphGrouper,
}

// Clean runs content through the fixed CleanerPipeline in order.
func Clean(content string) string {
	for _, fn := range CleanerPipeline {
		content = fn(content)
	}
	return content
}

// CleanDocument rewrites doc.Content in place by running it through Clean.
// Metadata is untouched.
func CleanDocument(doc *domain.Document) {
	doc.Content = Clean(doc.Content)
}
