package mukhtar

import "strings"

// diacritics are the Arabic harakat stripped before skeleton comparison:
// fathatan, dammatan, kasratan, fatha, damma, kasra, shadda, sukun and the
// dagger alef.
const diacritics = "ًٌٍَُِّْٰ"

// isDiacritic reports whether r is a combining mark handled by this package.
func isDiacritic(r rune) bool {
	return strings.ContainsRune(diacritics, r)
}

// RemoveDiacritics strips all harakat from s.
func RemoveDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isDiacritic(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unifyReplacer folds spelling variants to a single representative letter:
// the hamza family to أ, alef wasla to ا, and taa marbuta to ت.
var unifyReplacer = strings.NewReplacer(
	"ء", "أ", // ء → أ
	"إ", "أ", // إ → أ
	"آ", "أ", // آ → أ
	"ٱ", "ا", // ٱ → ا
	"ة", "ت", // ة → ت
)

// quranicMarks are the Quranic annotation signs, small letters and extended
// letters removed outright during normalization: the U+06D6 annotation range
// (small high seen, end-of-ayah, sajdah, the small high/low meem family and
// related marks) plus the wavy-hamza and Koranic letter forms ٲ through
// ٿ and ۮ, ۯ.
const quranicMarks = "ۖۗۘۙۚۛۜ۝۞" +
	"ۣ۟۠ۡۢۤۥۦۧۨ۩" +
	"۪ۭ۫۬" +
	"ٲٳٴٵٶٷٸٹٺٻټٽپٿ" +
	"ۮۯ"

// Normalize prepares a raw word for analysis: it removes harakat and Quranic
// annotation marks, then unifies hamza, alef and taa-marbuta variants. The
// engine applies it to every input word, and loaders are expected to apply
// it to pattern and affix literals so both sides compare equal.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDiacritic(r) || strings.ContainsRune(quranicMarks, r) {
			continue
		}
		b.WriteRune(r)
	}
	return unifyReplacer.Replace(b.String())
}

// GroupLetters splits a possibly diacritized word into base letters, each
// carrying its trailing harakat. Leading diacritics with no base letter are
// dropped. This keeps a diacritized stem alignable against a bare pattern
// skeleton slot-for-slot.
func GroupLetters(s string) []string {
	var groups []string
	for _, r := range s {
		if isDiacritic(r) {
			if len(groups) > 0 {
				groups[len(groups)-1] += string(r)
			}
			continue
		}
		groups = append(groups, string(r))
	}
	return groups
}

// baseLetter returns the base rune of a letter group produced by GroupLetters.
func baseLetter(group string) rune {
	for _, r := range group {
		return r
	}
	return 0
}

// isArabicLetter reports whether r falls in the basic Arabic letter block,
// the range accepted for root-slot letters.
func isArabicLetter(r rune) bool {
	return r >= 'ء' && r <= 'ي'
}
