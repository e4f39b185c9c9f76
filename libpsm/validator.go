package libpsm

import (
	"unicode"

	"github.com/2x3systems/psmiles/psm"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// validator checks a token sequence in a fixed series of passes.  Each pass scans left to right and the first
// violation found ends validation.
type validator struct {
	toks []token
	sig  []int // indices into toks of every non-space token
	dict map[string]struct{}
}

type bracketErrs struct {
	missingOpen  psm.ErrorKind
	missingClose psm.ErrorKind
	empty        psm.ErrorKind
}

var bracketErrKinds = [numBracketKinds]bracketErrs{
	normalBracket: {psm.MissingOpeningNormalBracket, psm.MissingClosingNormalBracket, psm.EmptyNormalBrackets},
	curlyBracket:  {psm.MissingOpeningCurlyBracket, psm.MissingClosingCurlyBracket, psm.EmptyCurlyBrackets},
	angleBracket:  {psm.MissingOpeningAngleBracket, psm.MissingClosingAngleBracket, psm.EmptyAngleBrackets},
}

func newValidator(toks []token, particles []string) *validator {
	v := &validator{
		toks: toks,
	}
	for i := range toks {
		if toks[i].kind != tokSpace {
			v.sig = append(v.sig, i)
		}
	}
	if len(particles) > 0 {
		v.dict = make(map[string]struct{}, len(particles))
		for _, name := range particles {
			v.dict[name] = struct{}{}
		}
	}
	return v
}

// at returns the j-th significant token or nil if j is out of range.
func (v *validator) at(j int) *token {
	if j < 0 || j >= len(v.sig) {
		return nil
	}
	return &v.toks[v.sig[j]]
}

func fail(kind psm.ErrorKind, tok *token) *psm.ParseError {
	err := &psm.ParseError{
		Kind: kind,
	}
	if tok != nil {
		err.Offset = tok.offset
	}
	return err
}

// validate runs every pass in order.
func (v *validator) validate() *psm.ParseError {
	passes := []func() *psm.ParseError{
		v.checkLexemes,
		v.checkNumbers,
		v.checkBoundaries,
		v.checkSquareBrackets,
		v.checkBalance,
		v.checkParts,
		v.checkRings,
		v.checkMonomers,
		v.checkSequence,
	}
	for _, pass := range passes {
		if err := pass(); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) checkLexemes() *psm.ParseError {
	if len(v.sig) == 0 {
		return fail(psm.NoTokens, nil)
	}
	for j := range v.sig {
		if tok := v.at(j); tok.kind == tokInvalid {
			return fail(psm.InvalidCharacter, tok)
		}
	}
	return nil
}

// checkNumbers rejects digit runs that are not a count.  A number followed by a connector, a closing normal
// bracket or a backbone index is left for checkSequence, which reports it by what precedes that token.
func (v *validator) checkNumbers() *psm.ParseError {
	for j := range v.sig {
		tok := v.at(j)
		if tok.kind != tokNumber {
			continue
		}
		if len(v.sig) == 1 {
			return fail(psm.InvalidParticlename, tok)
		}
		if next := v.at(j + 1); next != nil {
			switch {
			case next.kind == tokConnector, next.kind == tokBackbone, next.isClose(normalBracket):
				continue
			}
		}
		return fail(psm.MissingParticleAfterNumber, tok)
	}
	return nil
}

func (v *validator) checkBoundaries() *psm.ParseError {
	first := v.at(0)
	switch first.kind {
	case tokConnector, tokClose, tokRing, tokBackbone, tokApostrophe, tokTag, tokSquareOpen, tokSquareClose:
		return fail(psm.InvalidFirstCharacterOfStructure, first)
	case tokParticle:
		if first.count == 0 {
			return fail(psm.InvalidFirstCharacterOfStructure, first)
		}
	}

	last := v.at(len(v.sig) - 1)
	switch last.kind {
	case tokConnector, tokSquareOpen:
		return fail(psm.InvalidLastCharacterOfStructure, last)
	case tokOpen:
		// a trailing '<' is reported as unbalanced
		if last.bracket != angleBracket {
			return fail(psm.InvalidLastCharacterOfStructure, last)
		}
	}
	return nil
}

// checkSquareBrackets reports any [ or ] that does not belong to a ring index or attribute tag.
func (v *validator) checkSquareBrackets() *psm.ParseError {
	for j := range v.sig {
		tok := v.at(j)
		switch tok.kind {
		case tokSquareClose:
			return fail(psm.MissingOpeningAngularBracket, tok)
		case tokSquareOpen:
			for k := j + 1; k < len(v.sig); k++ {
				switch v.at(k).kind {
				case tokSquareClose:
					return fail(psm.InvalidCharacterBetweenAngularBrackets, tok)
				case tokSquareOpen, tokRing, tokTag:
					return fail(psm.MissingClosingAngularBracket, tok)
				}
			}
			return fail(psm.MissingClosingAngularBracket, tok)
		}
	}
	return nil
}

// checkBalance pairs each bracket kind on its own stack.
func (v *validator) checkBalance() *psm.ParseError {
	var stacks [numBracketKinds]*arraystack.Stack
	for i := range stacks {
		stacks[i] = arraystack.New()
	}

	for j := range v.sig {
		tok := v.at(j)
		switch tok.kind {
		case tokOpen:
			stacks[tok.bracket].Push(j)
		case tokClose:
			opened, ok := stacks[tok.bracket].Pop()
			if !ok {
				return fail(bracketErrKinds[tok.bracket].missingOpen, tok)
			}
			if opened.(int) == j-1 {
				return fail(bracketErrKinds[tok.bracket].empty, v.at(j-1))
			}
		}
	}

	// Report the earliest bracket left open
	var unclosed *token
	var kind psm.ErrorKind
	for i, stack := range stacks {
		for _, val := range stack.Values() {
			if tok := v.at(val.(int)); unclosed == nil || tok.offset < unclosed.offset {
				unclosed = tok
				kind = bracketErrKinds[i].missingClose
			}
		}
	}
	if unclosed != nil {
		return fail(kind, unclosed)
	}
	return nil
}

// checkParts requires that <...> parts are only preceded and followed by other parts.
func (v *validator) checkParts() *psm.ParseError {
	for j := range v.sig {
		if tok := v.at(j); tok.isOpen(angleBracket) {
			if prev := v.at(j - 1); prev != nil && !prev.isClose(angleBracket) {
				return fail(psm.InvalidCharacterPriorAngularBracket, tok)
			}
		}
	}
	for j := range v.sig {
		if tok := v.at(j); tok.isClose(angleBracket) {
			if next := v.at(j + 1); next != nil && !next.isOpen(angleBracket) {
				return fail(psm.InvalidParticleAfterAngleClosingBracket, next)
			}
		}
	}
	return nil
}

// checkRings requires each ring index to occur exactly twice within a part.
func (v *validator) checkRings() *psm.ParseError {
	seen := make(map[int][]*token)

	endPart := func() *psm.ParseError {
		var single *token
		for _, sightings := range seen {
			if len(sightings) == 1 && (single == nil || sightings[0].offset < single.offset) {
				single = sightings[0]
			}
		}
		for k := range seen {
			delete(seen, k)
		}
		if single != nil {
			return fail(psm.MissingRingClosure, single)
		}
		return nil
	}

	for j := range v.sig {
		tok := v.at(j)
		switch {
		case tok.kind == tokRing:
			seen[tok.value] = append(seen[tok.value], tok)
			if len(seen[tok.value]) > 2 {
				return fail(psm.TooManyRingClosures, tok)
			}
		case tok.isClose(angleBracket):
			if err := endPart(); err != nil {
				return err
			}
		}
	}
	return endPart()
}

// monomerScope tallies the HEAD and TAIL tags of one {...} group.
type monomerScope struct {
	heads int
	tails int
}

// checkMonomers applies the rules for HEAD and TAIL tags and for what a {...} group may contain.
func (v *validator) checkMonomers() *psm.ParseError {
	scopes := arraystack.New()

	for j := range v.sig {
		tok := v.at(j)
		prev, next := v.at(j-1), v.at(j+1)
		inMonomer := !scopes.Empty()

		switch tok.kind {
		case tokOpen:
			if tok.bracket != curlyBracket {
				continue
			}
			if inMonomer {
				return fail(psm.MonomerInMonomer, tok)
			}
			switch next.kind {
			case tokConnector, tokClose, tokRing, tokBackbone, tokApostrophe, tokTag:
				return fail(psm.InvalidFirstCharacterOfMonomer, next)
			case tokParticle:
				if next.count == 0 {
					return fail(psm.InvalidFirstCharacterOfMonomer, next)
				}
			}
			scopes.Push(&monomerScope{})

		case tokClose:
			if tok.bracket != curlyBracket {
				continue
			}
			switch prev.kind {
			case tokConnector, tokOpen:
				return fail(psm.InvalidLastCharacterOfMonomer, prev)
			}
			top, _ := scopes.Pop()
			if scope := top.(*monomerScope); scope.heads == 0 || scope.tails == 0 {
				return fail(psm.MissingHeadAttribute, tok)
			}

		case tokTag:
			if tok.tag == tagStart || tok.tag == tagEnd {
				if !inMonomer {
					continue
				}
				if tok.tag == tagStart {
					return fail(psm.StartAttributeInMonomer, tok)
				}
				return fail(psm.EndAttributeInMonomer, tok)
			}
			if !inMonomer {
				return fail(psm.IllegalUsingOfHeadOrTail, tok)
			}
			switch prev.kind {
			case tokParticle, tokRing, tokBackbone, tokTag:
			case tokConnector:
				return fail(psm.MissingParticleBetweenConnectionAndHeadOrTail, tok)
			default:
				return fail(psm.MissingAParticlePriorHeadOrTail, tok)
			}
			if next != nil {
				switch next.kind {
				case tokConnector, tokRing, tokTag:
				case tokMonomer:
					return fail(psm.MonomerAfterHeadOrTail, next)
				case tokOpen, tokClose:
					if next.bracket == angleBracket || next.hasCount() {
						return fail(psm.MissingAConnectionAfterHeadOrTail, next)
					}
				default:
					return fail(psm.MissingAConnectionAfterHeadOrTail, next)
				}
			}
			top, _ := scopes.Peek()
			scope := top.(*monomerScope)
			if tok.tag == tagHead {
				if scope.heads++; scope.heads > 1 {
					return fail(psm.TooManyHead, tok)
				}
			} else {
				if scope.tails++; scope.tails > 1 {
					return fail(psm.TooManyTail, tok)
				}
			}

		case tokBackbone, tokApostrophe:
			if inMonomer {
				return fail(psm.BackboneIndexInMonomer, tok)
			}

		case tokMonomer:
			if inMonomer {
				return fail(psm.MonomerInMonomer, tok)
			}
		}
	}
	return nil
}

// partState tracks what checkSequence needs to know about the part being scanned.
type partState struct {
	start *token
	end   *token
}

func isAtomic(tok *token) bool {
	switch tok.kind {
	case tokParticle, tokMonomer, tokNumber, tokRing, tokBackbone, tokApostrophe, tokTag:
		return true
	}
	return false
}

func isAttachable(tok *token) bool {
	switch tok.kind {
	case tokParticle, tokRing, tokBackbone, tokTag:
		return true
	}
	return false
}

// checkSequence is the main adjacency scan.
func (v *validator) checkSequence() *psm.ParseError {
	var part partState
	fragments := arraystack.New() // for each open normal bracket, whether it starts a fragment
	closedFragment := false       // set if the most recent ')' closed a fragment
	nextBackbone := 1

	endPart := func() *psm.ParseError {
		defer func() { part = partState{} }()
		if part.start != nil && part.end == nil {
			return fail(psm.MissingEndAttribute, part.start)
		}
		if part.end != nil && part.start == nil {
			return fail(psm.MissingStartAttribute, part.end)
		}
		return nil
	}

	for j := range v.sig {
		tok := v.at(j)
		prev, next := v.at(j-1), v.at(j+1)

		if prev != nil && v.sig[j]-v.sig[j-1] > 1 && isAtomic(prev) && isAtomic(tok) {
			return fail(psm.InvalidWhiteSpace, &v.toks[v.sig[j]-1])
		}

		partStart := prev == nil || prev.isOpen(angleBracket)

		switch tok.kind {
		case tokParticle:
			if err := v.checkName(tok); err != nil {
				return err
			}
			if tok.count == 0 {
				return fail(psm.IllegalFrequency, tok)
			}
			if err := v.checkAfterClose(tok, prev, closedFragment); err != nil {
				return err
			}

		case tokMonomer:
			name := tok.name[1:]
			if len(name) == 0 || !unicode.IsUpper(rune(name[0])) {
				return fail(psm.InvalidParticlename, tok)
			}
			if prev != nil && prev.kind == tokMonomer {
				return fail(psm.MonomerAfterMonomer, tok)
			}
			if err := v.checkAfterClose(tok, prev, closedFragment); err != nil {
				return err
			}

		case tokConnector:
			switch {
			case partStart:
				return fail(psm.InvalidFirstCharacterOfStructure, tok)
			case prev.isOpen(normalBracket):
				return fail(psm.MissingAParticlePriorConnection, tok)
			case prev.isOpen(curlyBracket):
				return fail(psm.InvalidFirstCharacterOfMonomer, tok)
			case prev.kind == tokNumber:
				return fail(psm.MissingParticlePriorConnection, tok)
			case prev.isClose(normalBracket) && closedFragment:
				return fail(psm.InvalidParticleAfterNormalClosingBracket, tok)
			}
			switch {
			case next.kind == tokConnector:
				return fail(psm.MissingParticleBetweenTwoConnections, tok)
			case next.isClose(angleBracket):
				return fail(psm.InvalidLastCharacterOfStructure, tok)
			case next.isClose(curlyBracket):
				return fail(psm.InvalidLastCharacterOfMonomer, tok)
			case next.isClose(normalBracket):
				return fail(psm.MissingParticleBetweenConnectionAndNormalClosingBracket, tok)
			case next.isOpen(normalBracket):
				return fail(psm.MissingParticleBetweenConnectionAndNormalOpeningBracket, tok)
			case next.kind == tokRing:
				return fail(psm.MissingParticleBetweenConnectionAndRingClosure, tok)
			case next.kind == tokTag && (next.tag == tagHead || next.tag == tagTail):
				return fail(psm.MissingParticleBetweenConnectionAndHeadOrTail, tok)
			case next.kind == tokTag:
				return fail(psm.InvalidParticleAfterConnection, tok)
			case next.kind == tokBackbone, next.kind == tokApostrophe:
				return fail(psm.InvalidPositionOfBackboneIndex, next)
			}

		case tokOpen:
			switch tok.bracket {
			case normalBracket:
				if tok.hasCount() {
					return fail(psm.InvalidParticlePriorNormalBracket, tok)
				}
				fragment := false
				switch {
				case partStart:
					fragment = true
				case prev.isOpen(normalBracket):
					return fail(psm.InSeriesOfNormalOpeningBrackets, tok)
				case prev.isOpen(curlyBracket):
					fragment = true
				case prev.isClose(normalBracket):
					fragment = closedFragment
				case prev.kind == tokMonomer, prev.isClose(curlyBracket):
					return fail(psm.InvalidParticlePriorNormalBracket, tok)
				}
				fragments.Push(fragment)

			case curlyBracket:
				if !partStart {
					switch {
					case prev.kind == tokConnector, prev.isOpen(normalBracket), prev.isClose(curlyBracket):
					default:
						return fail(psm.MissingAConnectionPriorCurlyOpeningBracket, tok)
					}
				}

			case angleBracket:
				part = partState{}
				closedFragment = false
			}

		case tokClose:
			switch tok.bracket {
			case normalBracket:
				if prev.kind == tokNumber {
					return fail(psm.MissingAParticlePriorNormalClosingBracket, tok)
				}
				top, _ := fragments.Pop()
				closedFragment = top.(bool)
			case angleBracket:
				if err := endPart(); err != nil {
					return err
				}
			}

		case tokRing:
			if !isAttachable(prev) {
				return fail(psm.MissingAParticlePriorRingClosure, tok)
			}

		case tokBackbone:
			switch {
			case len(tok.name) == 0:
				return fail(psm.IllegalBackboneIndexFormat, tok)
			case tok.value < 0:
				return fail(psm.TooLessBackboneindex, tok)
			case prev.kind != tokParticle && prev.kind != tokRing && prev.kind != tokTag:
				return fail(psm.InvalidPositionOfBackboneIndex, tok)
			case next != nil && next.kind == tokParticle:
				return fail(psm.MissingAConnectionAfterBackboneIndex, tok)
			case tok.value == 0:
				return fail(psm.ZeroInBackboneindex, tok)
			case tok.value < nextBackbone:
				return fail(psm.RedundancyOfBackboneIndices, tok)
			case tok.value > nextBackbone:
				return fail(psm.MissingBackboneIndex, tok)
			}
			nextBackbone++

		case tokApostrophe:
			return fail(psm.MissingBackboneIndex, tok)

		case tokTag:
			if tok.tag == tagHead || tok.tag == tagTail {
				continue
			}
			switch {
			case partStart:
				return fail(psm.InvalidFirstCharacterOfStructure, tok)
			case prev.kind == tokConnector:
				return fail(psm.InvalidParticleAfterConnection, tok)
			case !isAttachable(prev):
				return fail(psm.MissingAParticlePriorHeadOrTail, tok)
			}
			if next != nil {
				switch next.kind {
				case tokParticle, tokNumber, tokMonomer:
					return fail(psm.InvalidParticleAfterStartEnd, next)
				case tokOpen:
					if next.bracket == curlyBracket {
						return fail(psm.InvalidParticleAfterStartEnd, next)
					}
				}
			}
			if tok.tag == tagStart {
				if part.start != nil {
					return fail(psm.TooManyStartTag, tok)
				}
				part.start = tok
			} else {
				if part.end != nil {
					return fail(psm.TooManyEndTag, tok)
				}
				part.end = tok
			}
		}
	}

	if first := v.at(0); !first.isOpen(angleBracket) {
		return endPart()
	}
	return nil
}

// checkAfterClose applies the rules for a particle or monomer name directly following a closing bracket.
func (v *validator) checkAfterClose(tok, prev *token, closedFragment bool) *psm.ParseError {
	if prev == nil || prev.kind != tokClose {
		return nil
	}
	switch prev.bracket {
	case normalBracket:
		if closedFragment {
			return fail(psm.InvalidParticleAfterNormalClosingBracket, tok)
		}
		return fail(psm.MissingAConnectionAfterNormalClosingBracket, tok)
	case curlyBracket:
		return fail(psm.MissingConnection, tok)
	}
	return fail(psm.InvalidParticleAfterAngleClosingBracket, tok)
}

func (v *validator) checkName(tok *token) *psm.ParseError {
	name := tok.name
	if len(name) > psm.MaxParticleNameLen || !unicode.IsUpper(rune(name[0])) {
		return fail(psm.InvalidParticlename, tok)
	}
	if v.dict != nil {
		if _, ok := v.dict[name]; !ok {
			return fail(psm.InvalidParticlename, tok)
		}
	}
	return nil
}

// checkMonomerMode requires that the whole structure is one {...} group, optionally with a count.
func (v *validator) checkMonomerMode() *psm.ParseError {
	first := v.at(0)
	if !first.isOpen(curlyBracket) {
		return fail(psm.NoMonomer, first)
	}
	depth := 0
	for j := range v.sig {
		tok := v.at(j)
		switch {
		case tok.isOpen(curlyBracket):
			depth++
		case tok.isClose(curlyBracket):
			depth--
			if depth == 0 && j != len(v.sig)-1 {
				return fail(psm.NoMonomer, first)
			}
		}
	}
	return nil
}
