package game

// RevealNext fixes exactly one character of current toward target: the first
// position where they diverge, or the position just past the end of current.
// Every other position is left as typed.
func RevealNext(target, current string) string {
	want := []rune(target)
	have := []rune(current)

	pos := -1
	for i := range want {
		if i >= len(have) || have[i] != want[i] {
			pos = i
			break
		}
	}
	switch {
	case pos == -1:
		// current already starts with the whole target
		return current
	case pos < len(have):
		have[pos] = want[pos]
	default:
		have = append(have, want[pos])
	}
	return string(have)
}
