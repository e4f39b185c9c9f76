package libpsm

import (
	"strconv"
)

// renderTokens returns the normalized rendering of the given significant tokens.
// Each particle replica becomes a count of "1" followed by its name, and counted {...} groups are written out in full.
func renderTokens(toks []token, sig []int) []string {
	r := tokenRenderer{
		toks: toks,
		sig:  sig,
	}
	r.renderRange(0, len(sig))
	return r.out
}

type tokenRenderer struct {
	toks []token
	sig  []int
	out  []string
}

func (r *tokenRenderer) at(j int) *token {
	return &r.toks[r.sig[j]]
}

func (r *tokenRenderer) renderRange(lo, hi int) {
	for j := lo; j < hi; j++ {
		tok := r.at(j)
		switch tok.kind {
		case tokParticle:
			n := tok.replicas()
			if n == 0 {
				r.out = append(r.out, "0", tok.name)
			}
			for i := 0; i < n; i++ {
				if i > 0 {
					r.out = append(r.out, "-")
				}
				r.out = append(r.out, "1", tok.name)
			}

		case tokOpen:
			if !tok.hasCount() {
				r.out = append(r.out, openBrackets[tok.bracket])
				continue
			}
			if tok.bracket != curlyBracket {
				r.out = append(r.out, tok.text[:len(tok.text)-1], openBrackets[tok.bracket])
				continue
			}
			end := r.matchCurly(j, hi)
			if end < 0 {
				r.out = append(r.out, openBrackets[curlyBracket])
				continue
			}
			for i := 0; i < tok.count; i++ {
				r.out = append(r.out, openBrackets[curlyBracket])
				r.renderRange(j+1, end)
				r.out = append(r.out, closeBrackets[curlyBracket])
			}
			j = end

		case tokClose:
			r.out = append(r.out, closeBrackets[tok.bracket])
		case tokConnector:
			r.out = append(r.out, "-")
		case tokRing:
			r.out = append(r.out, "["+strconv.Itoa(tok.value)+"]")
		case tokTag:
			r.out = append(r.out, "["+tok.tag.String()+"]")
		default:
			r.out = append(r.out, tok.text)
		}
	}
}

// matchCurly returns the position of the '}' closing the '{' at j, or -1.
func (r *tokenRenderer) matchCurly(j, hi int) int {
	depth := 0
	for k := j; k < hi; k++ {
		tok := r.at(k)
		switch {
		case tok.isOpen(curlyBracket):
			depth++
		case tok.isClose(curlyBracket):
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}

// particleOffsets returns the offset of each particle or monomer name within the concatenation of rendered,
// where an attribute tag counts as a single character.
func particleOffsets(rendered []string) []int {
	var offsets []int
	pos := 0
	for _, s := range rendered {
		switch {
		case isTagText(s):
			pos++
			continue
		case isNameText(s):
			offsets = append(offsets, pos)
		}
		pos += len(s)
	}
	return offsets
}

func isTagText(s string) bool {
	return len(s) > 2 && s[0] == '[' && isLetter(s[1])
}

func isNameText(s string) bool {
	return len(s) > 0 && (s[0] == '#' || isLetter(s[0]))
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
