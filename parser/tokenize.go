/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package parser tokenizes a terminal command line's argument remainder
// (spec §4.2). The grammar is deliberately minimal: space-separated tokens,
// two quote styles that nest only with their own kind, no backslash
// escaping, and silent discard of empty tokens.
package parser

// Tokenize splits s into argument tokens per spec §4.2:
//   - unquoted runs are split on ASCII space
//   - a "..." or '...' region reads verbatim until its matching close quote
//     (the other quote character is literal inside it)
//   - an unterminated quote runs to end-of-input
//   - empty tokens are discarded
func Tokenize(s string) []string {
	var (
		tokens []string
		cur    []rune
		inTok  bool
		quote  rune // 0 when not inside a quoted region
	)

	flush := func() {
		if inTok {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			inTok = false
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur = append(cur, r)
			}
		case r == '"' || r == '\'':
			quote = r
			inTok = true
		case r == ' ':
			flush()
		default:
			cur = append(cur, r)
			inTok = true
		}
	}
	flush()

	return tokens
}

// SplitNameAndRemainder splits a command line at the first space or '='
// (whichever comes first), per the registry's overload-resolution algorithm
// (spec §4.1 step 1). delim is 0 if the line has no space or '='.
func SplitNameAndRemainder(line string) (name string, delim byte, remainder string) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			return line[:i], ' ', line[i+1:]
		case '=':
			if i == 0 {
				continue // '=' at position 0 is not a delimiter (spec §4.1)
			}
			return line[:i], '=', line[i+1:]
		}
	}
	return line, 0, ""
}
