package mukhtar

// convert applies the conversion rules whose source form equals pattern.
// With an empty target every declared alternate form is returned, in
// declaration order and deduplicated; otherwise only targets equal to the
// requested form survive. An empty result means "not convertible"; rules
// are directional, so the absence of a reverse rule is expected, never an
// error.
func (l *Lexicon) convert(pattern, target string) []string {
	targets := l.conversions[pattern]
	if len(targets) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(targets))
	var out []string
	for _, to := range targets {
		if target != "" && to != target {
			continue
		}
		if seen[to] {
			continue
		}
		seen[to] = true
		out = append(out, to)
	}
	return out
}
