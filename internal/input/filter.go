package input

// MaxLength is the maximum number of characters the input field holds.
const MaxLength = 16

// Filter removes the characters a kind does not accept while typing and
// truncates the result to MaxLength characters.
//
// Price keeps ASCII digits and the first '.'; Quantity keeps ASCII digits;
// Search keeps everything. Filter is idempotent.
func Filter(kind Kind, text string) string {
	out := make([]rune, 0, min(len(text), MaxLength))
	seenDot := false

	for _, r := range text {
		if len(out) == MaxLength {
			break
		}

		switch kind {
		case KindPrice:
			if r == '.' {
				if seenDot {
					continue
				}

				seenDot = true
			} else if !isDigit(r) {
				continue
			}
		case KindQuantity:
			if !isDigit(r) {
				continue
			}
		}

		out = append(out, r)
	}

	return string(out)
}

// Allowed reports whether text passes the live filter unchanged.
func Allowed(kind Kind, text string) bool {
	return Filter(kind, text) == text
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
