package cards

import "errors"

// ErrMalformedList is returned by ParseHand for unbalanced or stray input.
var ErrMalformedList = errors.New("cards: malformed card list")

// ParseHand decodes a bracketed list of quoted card codes such as
// ["QH","2C"]. Unknown codes are skipped. Malformed input returns an empty
// hand and ErrMalformedList.
func ParseHand(s string) (Hand, error) {
	var codes []string
	brackets := 0
	start := -1
	quotes := false
	escape := false

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			if !escape {
				brackets++
			}
		case ']':
			if !escape {
				brackets--
			}
		case '\\':
			escape = !escape
		case ',':
			escape = false
			quotes = false
			start = -1
		case ' ':
		case '"':
			if !escape {
				quotes = !quotes
				if quotes {
					start = i + 1
				} else if brackets < 1 || start < 0 {
					return nil, ErrMalformedList
				} else {
					codes = append(codes, s[start:i])
				}
			}
			escape = false
		default:
			if !quotes {
				return nil, ErrMalformedList
			}
		}
	}
	if brackets != 0 || quotes {
		return nil, ErrMalformedList
	}
	return fromCodes(codes), nil
}
