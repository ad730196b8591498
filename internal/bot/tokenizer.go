package bot

import (
	"strings"
)

// scanState is the tokenizer's current mode. The scanner is an explicit
// state machine so the precedence between quoted phrases, time tokens and
// plain runs stays auditable.
type scanState int

const (
	// stateDefault skips whitespace and scans plain runs.
	stateDefault scanState = iota
	// stateInDoubleQuote collects everything up to the closing double quote.
	stateInDoubleQuote
	// stateInSingleQuote collects everything up to the closing single quote.
	stateInSingleQuote
	// stateInTimeToken scans the word after "run + single space", which
	// joins the run into one token when it is an AM/PM marker.
	stateInTimeToken
)

// inputNormalizer rewrites "smart" typographic characters phones substitute
// into the ASCII forms the scanner understands. This must happen before
// tokenization.
var inputNormalizer = strings.NewReplacer(
	"“", `"`, // left curly double quote
	"”", `"`, // right curly double quote
	"‘", "'", // left curly single quote
	"’", "'", // right curly single quote
	" ", " ", // non-breaking space
)

// Tokenize splits a raw message into an ordered argument list. Double- and
// single-quoted phrases become single tokens with the quotes stripped, and a
// run immediately followed by a space and an AM/PM marker becomes a single
// token preserving the internal space ("7:00 PM"). Quoted forms take
// priority over the time-token form, which takes priority over plain runs.
//
// Empty input yields an empty list. The only way to produce an empty-string
// token is an explicit empty quoted pair.
func Tokenize(raw string) []string {
	s := inputNormalizer.Replace(raw)

	var (
		tokens  []string
		cur     []byte
		pending string // completed run that may join a meridiem marker
		state   = stateDefault
	)

	for i := 0; i <= len(s); i++ {
		var c byte
		eof := i == len(s)
		if !eof {
			c = s[i]
		}

		switch state {
		case stateDefault:
			switch {
			case eof:
				if len(cur) > 0 {
					tokens = append(tokens, string(cur))
				}
			case isSpace(c):
				if len(cur) > 0 {
					if c == ' ' {
						pending = string(cur)
						cur = nil
						state = stateInTimeToken
					} else {
						tokens = append(tokens, string(cur))
						cur = nil
					}
				}
			case c == '"' && len(cur) == 0:
				state = stateInDoubleQuote
			case c == '\'' && len(cur) == 0:
				state = stateInSingleQuote
			default:
				cur = append(cur, c)
			}

		case stateInDoubleQuote:
			switch {
			case c == '"':
				tokens = append(tokens, string(cur))
				cur = nil
				state = stateDefault
			case eof:
				// Unterminated quote: the collected text stands as a token.
				if len(cur) > 0 {
					tokens = append(tokens, string(cur))
				}
			default:
				cur = append(cur, c)
			}

		case stateInSingleQuote:
			switch {
			case c == '\'':
				tokens = append(tokens, string(cur))
				cur = nil
				state = stateDefault
			case eof:
				if len(cur) > 0 {
					tokens = append(tokens, string(cur))
				}
			default:
				cur = append(cur, c)
			}

		case stateInTimeToken:
			switch {
			case eof || isSpace(c):
				switch {
				case len(cur) == 0:
					// Consecutive whitespace after the run; no candidate.
					tokens = append(tokens, pending)
					pending = ""
					state = stateDefault
				case isMeridiem(string(cur)):
					tokens = append(tokens, pending+" "+string(cur))
					pending = ""
					cur = nil
					state = stateDefault
				default:
					tokens = append(tokens, pending)
					if !eof && c == ' ' {
						// The candidate stands alone but may itself
						// precede a meridiem marker.
						pending = string(cur)
						cur = nil
					} else {
						tokens = append(tokens, string(cur))
						pending = ""
						cur = nil
						state = stateDefault
					}
				}
			case (c == '"' || c == '\'') && len(cur) == 0:
				// Quoted forms take priority over the time-token form.
				tokens = append(tokens, pending)
				pending = ""
				if c == '"' {
					state = stateInDoubleQuote
				} else {
					state = stateInSingleQuote
				}
			default:
				cur = append(cur, c)
			}
		}
	}

	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isMeridiem reports whether a word is a case-insensitive AM/PM marker.
func isMeridiem(word string) bool {
	if len(word) != 2 {
		return false
	}
	lower := strings.ToLower(word)
	return lower == "am" || lower == "pm"
}
