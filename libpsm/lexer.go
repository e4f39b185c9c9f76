package libpsm

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// tokKind classifies a token of notation text.
type tokKind int8

const (
	tokParticle tokKind = iota // name with an optional leading count
	tokMonomer                 // #Name
	tokNumber                  // digit run not attached to anything
	tokConnector               // -
	tokOpen                    // ( { < with an optional leading count
	tokClose                   // ) } >
	tokRing                    // [n]
	tokBackbone                // 'n'
	tokApostrophe              // lone '
	tokTag                     // [HEAD] [TAIL] [START] [END]
	tokSquareOpen              // [ not forming a ring or tag
	tokSquareClose             // ] not forming a ring or tag
	tokSpace
	tokInvalid
)

type bracketKind int8

const (
	normalBracket bracketKind = iota
	curlyBracket
	angleBracket
	numBracketKinds
)

type tagKind int8

const (
	tagHead tagKind = iota
	tagTail
	tagStart
	tagEnd
)

var tagNames = [...]string{"HEAD", "TAIL", "START", "END"}

func (tag tagKind) String() string {
	return tagNames[tag]
}

// token is one lexeme of notation text.
type token struct {
	kind    tokKind
	offset  int         // byte offset into the input
	text    string      // source text, including any count
	name    string      // particle or monomer name
	count   int         // leading count; -1 if absent
	bracket bracketKind // for tokOpen / tokClose
	tag     tagKind     // for tokTag
	value   int         // ring index or backbone index value
}

func (tok *token) hasCount() bool {
	return tok.count >= 0
}

// replicas returns how many times the unit starting at tok is repeated.
func (tok *token) replicas() int {
	if tok.count < 0 {
		return 1
	}
	return tok.count
}

func (tok *token) isOpen(kind bracketKind) bool {
	return tok.kind == tokOpen && tok.bracket == kind
}

func (tok *token) isClose(kind bracketKind) bool {
	return tok.kind == tokClose && tok.bracket == kind
}

var sNotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Tag", `\[(?i:HEAD|TAIL|START|END)\]`},
	{"Ring", `\[[0-9]+\]`},
	{"Backbone", `'[0-9A-Za-z]*'`},
	{"Apostrophe", `'`},
	{"Monomer", `#[A-Za-z0-9]*`},
	{"Name", `[A-Za-z][A-Za-z0-9]*`},
	{"Number", `[0-9]+`},
	{"Punct", `[-(){}<>\[\]]`},
	{"Space", `\s+`},
	{"Invalid", `.`},
})

var sSymbols = sNotationLexer.Symbols()

// lexNotation splits input into raw lexemes.  Since the final rule matches any rune, the lexer itself never fails.
func lexNotation(input string) ([]lexer.Token, error) {
	lex, err := sNotationLexer.LexString("", input)
	if err != nil {
		return nil, err
	}
	var raw []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		raw = append(raw, tok)
	}
	return raw, nil
}

// tokenize classifies the lexemes of input, folding a leading digit run into the particle or bracket it precedes.
func tokenize(input string) ([]token, error) {
	raw, err := lexNotation(input)
	if err != nil {
		return nil, err
	}

	toks := make([]token, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		lx := raw[i]
		tok := token{
			offset: lx.Pos.Offset,
			text:   lx.Value,
			count:  -1,
		}

		switch lx.Type {
		case sSymbols["Tag"]:
			tok.kind = tokTag
			switch strings.ToUpper(lx.Value[1 : len(lx.Value)-1]) {
			case "HEAD":
				tok.tag = tagHead
			case "TAIL":
				tok.tag = tagTail
			case "START":
				tok.tag = tagStart
			default:
				tok.tag = tagEnd
			}
		case sSymbols["Ring"]:
			tok.kind = tokRing
			tok.value, _ = strconv.Atoi(lx.Value[1 : len(lx.Value)-1])
		case sSymbols["Backbone"]:
			tok.kind = tokBackbone
			tok.name = lx.Value[1 : len(lx.Value)-1]
			tok.value = -1
			if isDigits(tok.name) {
				tok.value, _ = strconv.Atoi(tok.name)
			}
		case sSymbols["Apostrophe"]:
			tok.kind = tokApostrophe
		case sSymbols["Monomer"]:
			tok.kind = tokMonomer
			tok.name = lx.Value
		case sSymbols["Name"]:
			tok.kind = tokParticle
			tok.name = lx.Value
		case sSymbols["Number"]:
			tok.kind = tokNumber
			tok.value, _ = strconv.Atoi(lx.Value)
			if i+1 < len(raw) {
				next := raw[i+1]
				switch {
				case next.Type == sSymbols["Name"]:
					tok.kind = tokParticle
					tok.count = tok.value
					tok.name = next.Value
					tok.text += next.Value
					i++
				case next.Type == sSymbols["Punct"] && strings.ContainsAny(next.Value, "({<"):
					tok.kind = tokOpen
					tok.count = tok.value
					tok.bracket = bracketOf(next.Value[0])
					tok.text += next.Value
					i++
				}
			}
		case sSymbols["Punct"]:
			switch c := lx.Value[0]; c {
			case '-':
				tok.kind = tokConnector
			case '(', '{', '<':
				tok.kind = tokOpen
				tok.bracket = bracketOf(c)
			case ')', '}', '>':
				tok.kind = tokClose
				tok.bracket = bracketOf(c)
			case '[':
				tok.kind = tokSquareOpen
			case ']':
				tok.kind = tokSquareClose
			}
		case sSymbols["Space"]:
			tok.kind = tokSpace
		default:
			tok.kind = tokInvalid
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func bracketOf(c byte) bracketKind {
	switch c {
	case '(', ')':
		return normalBracket
	case '{', '}':
		return curlyBracket
	}
	return angleBracket
}

var openBrackets = [numBracketKinds]string{"(", "{", "<"}
var closeBrackets = [numBracketKinds]string{")", "}", ">"}

func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
