package mukhtar

// classify assigns a grammatical tag to a (pattern, affix signature)
// combination. The affix-specific entry wins over the pattern-only entry, so
// a prefix/suffix combination can change a word's tag even when the stem
// pattern is unchanged. TagUnknown is returned when neither level has an
// entry; it is a classification outcome, not an error.
func (l *Lexicon) classify(pattern, signature string) string {
	if signature != "" {
		if tag, ok := l.tags[tagKey{pattern: pattern, signature: signature}]; ok {
			return tag
		}
	}
	if tag, ok := l.tags[tagKey{pattern: pattern}]; ok {
		return tag
	}
	return TagUnknown
}
