// Package cleaners implements the engine's text-cleaning stage: pure
// string transforms, the fixed ordered CleanerPipeline of them that Clean
// applies to a Document's content, and the compiled regex and table assets
// they share.
package cleaners

import (
	"regexp"
	"sync"
)

// bulletRunes is the fixed bullet-character set, reproduced code-point for
// code-point from the reference implementation's constants module. The
// duplicate U+0095 entry (it also appears encoded as \x95 in the reference)
// and the bare '-'/'*' entries are kept as-is: the reference relies on both,
// and spec does not ask for a change (see REDESIGN FLAGS in SPEC_FULL.md).
var bulletRunes = []rune{
	'\u0095', '•', '‣', '⁃', 'ㅤ', '⁌', '⁍',
	'∙', '○', '●', '◘', '◦', '☙', '❥',
	'❧', '⦾', '⦿', '-', '*', '\u0095', '·',
}

// ligaturePairs is the fixed ligature-expansion table, in replacement order,
// reproduced from the reference implementation's constants module.
var ligaturePairs = []struct{ from, to string }{
	{"ﬀ", "ff"},  // ﬀ
	{"ﬁ", "fi"},  // ﬁ
	{"ﬂ", "fl"},  // ﬂ
	{"ﬃ", "ffi"}, // ﬃ
	{"ﬄ", "ffl"}, // ﬄ
	{"ﬅ", "ft"},  // ﬅ
	{"ﬆ", "st"},  // ﬆ
	{"æ", "ae"},  // æ
	{"Æ", "AE"},  // Æ
	{"œ", "oe"},  // œ
	{"Œ", "OE"},  // Œ
	{"ʦ", "ts"},  // ʦ
	{"ȹ", "qp"},  // ȹ
	{"ʪ", "ls"},  // ʪ
}

var (
	bulletSet          map[rune]bool
	paragraphBoundaryRe *regexp.Regexp
	doubleParagraphRe   *regexp.Regexp
	multiSpaceRe        *regexp.Regexp
	eBulletLineStartRe  *regexp.Regexp
	assetsOnce          sync.Once
)

// compileAssets builds the package's compiled regex and lookup-table assets
// exactly once per process, regardless of how many goroutines call into the
// cleaners package concurrently. Grounded on the teacher's registry pattern
// (internal/normalisers/registry.go, internal/postprocessors/pipeline.go),
// simplified: this module assigns its assets once and never registers more
// at runtime, so a sync.Once replaces the teacher's mutex-guarded slice.
func compileAssets() {
	assetsOnce.Do(func() {
		bulletSet = make(map[rune]bool, len(bulletRunes))
		for _, r := range bulletRunes {
			bulletSet[r] = true
		}
		paragraphBoundaryRe = regexp.MustCompile(`\s*\n\s*`)
		doubleParagraphRe = regexp.MustCompile(`(?:\s*\n\s*){2}`)
		multiSpaceRe = regexp.MustCompile(`[ ]{2,}`)
		eBulletLineStartRe = regexp.MustCompile(`(?m)^e(\s)`)
	})
}

func init() {
	compileAssets()
}
