package price

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pricelens/pricelens/internal/ocr"
)

// Candidate is a price parsed out of a single recognized word.
//
// Value is the numeric amount in the (implicit) base currency. Bounds is
// copied verbatim from the word the price was found in, so every candidate
// traces back to exactly one OCR word.
type Candidate struct {
	Value  float64    `json:"value"`
	Bounds ocr.Bounds `json:"bounds"`
}

// currencySymbols are the symbols treated as optional price prefixes.
// The symbol is context only; it is never interpreted as source-currency info.
const currencySymbols = "$£€"

// Parse scans text for the leftmost price-like token and returns its numeric
// value.
//
// The accepted shape is: an optional currency symbol ($, £ or €), an optional
// single whitespace rune, one or more digits, and optionally a decimal
// separator ('.' or ',') followed by one or two fractional digits. A ','
// separator is normalized to '.' before the numeric parse.
//
// OCR output is noisy, so almost-prices are common and a non-match is not an
// error: Parse simply reports ok=false. Notable edge cases:
//
//   - "10" matches (bare integers are prices)
//   - "$" alone does not match (no digits)
//   - "1.234" matches as 1.23 (at most two fractional digits are consumed;
//     the rest of the word is ignored)
//   - "10," matches as 10 (a separator with no following digit is not consumed)
func Parse(text string) (float64, bool) {
	runes := []rune(text)
	for start := 0; start < len(runes); start++ {
		if literal, ok := matchAt(runes[start:]); ok {
			value, err := strconv.ParseFloat(literal, 64)
			if err != nil {
				// Unreachable for the shapes matchAt produces, but OCR
				// has surprised us before; treat it as a plain non-match.
				continue
			}
			return value, true
		}
	}
	return 0, false
}

// Extract applies Parse to a recognized word and pairs the result with the
// word's bounding box.
func Extract(word ocr.Word) (Candidate, bool) {
	value, ok := Parse(word.Text)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{Value: value, Bounds: word.Bounds}, true
}

// matchAt attempts to match a price token anchored at the start of runes and
// returns the normalized numeric literal ('.' separator, at most two
// fractional digits).
func matchAt(runes []rune) (string, bool) {
	i := 0

	// Optional currency symbol.
	if i < len(runes) && strings.ContainsRune(currencySymbols, runes[i]) {
		i++
	}

	// Optional single whitespace between symbol and digits.
	if i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}

	// Integer part: one or more digits.
	digitStart := i
	for i < len(runes) && isASCIIDigit(runes[i]) {
		i++
	}
	if i == digitStart {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(string(runes[digitStart:i]))

	// Optional fraction: separator plus one or two digits. A separator with
	// no digit behind it stays outside the match.
	if i+1 < len(runes) && (runes[i] == '.' || runes[i] == ',') && isASCIIDigit(runes[i+1]) {
		sb.WriteByte('.')
		i++
		for n := 0; n < 2 && i < len(runes) && isASCIIDigit(runes[i]); n++ {
			sb.WriteRune(runes[i])
			i++
		}
	}

	return sb.String(), true
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
