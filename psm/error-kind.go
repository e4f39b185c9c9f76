package psm

import "fmt"

// ErrorKind identifies the first structural or lexical defect found in a notation string.
//
// The String() form of each kind is stable and is the key an external message catalog uses.
type ErrorKind int32

const (
	Valid ErrorKind = iota

	// lexical
	NoTokens
	InvalidCharacter
	InvalidWhiteSpace
	InvalidParticlename
	MissingParticleAfterNumber
	IllegalFrequency

	// boundaries
	InvalidFirstCharacterOfStructure
	InvalidLastCharacterOfStructure
	InvalidFirstCharacterOfMonomer
	InvalidLastCharacterOfMonomer

	// bracket balance
	MissingOpeningNormalBracket
	MissingClosingNormalBracket
	EmptyNormalBrackets
	MissingOpeningCurlyBracket
	MissingClosingCurlyBracket
	EmptyCurlyBrackets
	MissingOpeningAngleBracket
	MissingClosingAngleBracket
	EmptyAngleBrackets
	MissingOpeningAngularBracket
	MissingClosingAngularBracket
	InvalidCharacterBetweenAngularBrackets

	// parts
	InvalidCharacterPriorAngularBracket
	InvalidParticleAfterAngleClosingBracket
	MissingConnection

	// adjacency
	MissingParticleBetweenTwoConnections
	MissingParticlePriorConnection
	MissingAParticlePriorConnection
	MissingParticleBetweenConnectionAndNormalOpeningBracket
	MissingParticleBetweenConnectionAndNormalClosingBracket
	MissingParticleBetweenConnectionAndRingClosure
	MissingParticleBetweenConnectionAndHeadOrTail
	MissingAParticlePriorNormalClosingBracket
	MissingAParticlePriorRingClosure
	MissingAParticlePriorHeadOrTail
	MissingAConnectionAfterNormalClosingBracket
	MissingAConnectionPriorCurlyOpeningBracket
	MissingAConnectionAfterHeadOrTail
	MissingAConnectionAfterBackboneIndex
	InvalidParticlePriorNormalBracket
	InvalidParticleAfterNormalClosingBracket
	InvalidParticleAfterConnection
	InvalidParticleAfterStartEnd
	InSeriesOfNormalOpeningBrackets

	// rings
	MissingRingClosure
	TooManyRingClosures

	// monomers
	NoMonomer
	MissingHeadAttribute
	TooManyHead
	TooManyTail
	IllegalUsingOfHeadOrTail
	StartAttributeInMonomer
	EndAttributeInMonomer
	BackboneIndexInMonomer
	MonomerInMonomer
	MonomerAfterMonomer
	MonomerAfterHeadOrTail

	// START / END
	TooManyStartTag
	TooManyEndTag
	MissingStartAttribute
	MissingEndAttribute

	// backbone indices
	IllegalBackboneIndexFormat
	TooLessBackboneindex
	ZeroInBackboneindex
	MissingBackboneIndex
	RedundancyOfBackboneIndices
	InvalidPositionOfBackboneIndex

	NumErrorKinds
)

var errorKindNames = [NumErrorKinds]string{
	Valid:                                   "Valid",
	NoTokens:                                "NoTokens",
	InvalidCharacter:                        "InvalidCharacter",
	InvalidWhiteSpace:                       "InvalidWhiteSpace",
	InvalidParticlename:                     "InvalidParticlename",
	MissingParticleAfterNumber:              "MissingParticleAfterNumber",
	IllegalFrequency:                        "IllegalFrequency",
	InvalidFirstCharacterOfStructure:        "InvalidFirstCharacterOfStructure",
	InvalidLastCharacterOfStructure:         "InvalidLastCharacterOfStructure",
	InvalidFirstCharacterOfMonomer:          "InvalidFirstCharacterOfMonomer",
	InvalidLastCharacterOfMonomer:           "InvalidLastCharacterOfMonomer",
	MissingOpeningNormalBracket:             "MissingOpeningNormalBracket",
	MissingClosingNormalBracket:             "MissingClosingNormalBracket",
	EmptyNormalBrackets:                     "EmptyNormalBrackets",
	MissingOpeningCurlyBracket:              "MissingOpeningCurlyBracket",
	MissingClosingCurlyBracket:              "MissingClosingCurlyBracket",
	EmptyCurlyBrackets:                      "EmptyCurlyBrackets",
	MissingOpeningAngleBracket:              "MissingOpeningAngleBracket",
	MissingClosingAngleBracket:              "MissingClosingAngleBracket",
	EmptyAngleBrackets:                      "EmptyAngleBrackets",
	MissingOpeningAngularBracket:            "MissingOpeningAngularBracket",
	MissingClosingAngularBracket:            "MissingClosingAngularBracket",
	InvalidCharacterBetweenAngularBrackets:  "InvalidCharacterBetweenAngularBrackets",
	InvalidCharacterPriorAngularBracket:     "InvalidCharacterPriorAngularBracket",
	InvalidParticleAfterAngleClosingBracket: "InvalidParticleAfterAngleClosingBracket",
	MissingConnection:                       "MissingConnection",

	MissingParticleBetweenTwoConnections:                    "MissingParticleBetweenTwoConnections",
	MissingParticlePriorConnection:                          "MissingParticlePriorConnection",
	MissingAParticlePriorConnection:                         "MissingAParticlePriorConnection",
	MissingParticleBetweenConnectionAndNormalOpeningBracket: "MissingParticleBetweenConnectionAndNormalOpeningBracket",
	MissingParticleBetweenConnectionAndNormalClosingBracket: "MissingParticleBetweenConnectionAndNormalClosingBracket",
	MissingParticleBetweenConnectionAndRingClosure:          "MissingParticleBetweenConnectionAndRingClosure",
	MissingParticleBetweenConnectionAndHeadOrTail:           "MissingParticleBetweenConnectionAndHeadOrTail",
	MissingAParticlePriorNormalClosingBracket:               "MissingAParticlePriorNormalClosingBracket",
	MissingAParticlePriorRingClosure:                        "MissingAParticlePriorRingClosure",
	MissingAParticlePriorHeadOrTail:                         "MissingAParticlePriorHeadOrTail",
	MissingAConnectionAfterNormalClosingBracket:             "MissingAConnectionAfterNormalClosingBracket",
	MissingAConnectionPriorCurlyOpeningBracket:              "MissingAConnectionPriorCurlyOpeningBracket",
	MissingAConnectionAfterHeadOrTail:                       "MissingAConnectionAfterHeadOrTail",
	MissingAConnectionAfterBackboneIndex:                    "MissingAConnectionAfterBackboneIndex",
	InvalidParticlePriorNormalBracket:                       "InvalidParticlePriorNormalBracket",
	InvalidParticleAfterNormalClosingBracket:                "InvalidParticleAfterNormalClosingBracket",
	InvalidParticleAfterConnection:                          "InvalidParticleAfterConnection",
	InvalidParticleAfterStartEnd:                            "InvalidParticleAfterStartEnd",
	InSeriesOfNormalOpeningBrackets:                         "InSeriesOfNormalOpeningBrackets",

	MissingRingClosure:  "MissingRingClosure",
	TooManyRingClosures: "TooManyRingClosures",

	NoMonomer:                "NoMonomer",
	MissingHeadAttribute:     "MissingHeadAttribute",
	TooManyHead:              "TooManyHead",
	TooManyTail:              "TooManyTail",
	IllegalUsingOfHeadOrTail: "IllegalUsingOfHeadOrTail",
	StartAttributeInMonomer:  "StartAttributeInMonomer",
	EndAttributeInMonomer:    "EndAttributeInMonomer",
	BackboneIndexInMonomer:   "BackboneIndexInMonomer",
	MonomerInMonomer:         "MonomerInMonomer",
	MonomerAfterMonomer:      "MonomerAfterMonomer",
	MonomerAfterHeadOrTail:   "MonomerAfterHeadOrTail",

	TooManyStartTag:       "TooManyStartTag",
	TooManyEndTag:         "TooManyEndTag",
	MissingStartAttribute: "MissingStartAttribute",
	MissingEndAttribute:   "MissingEndAttribute",

	IllegalBackboneIndexFormat:     "IllegalBackboneIndexFormat",
	TooLessBackboneindex:           "TooLessBackboneindex",
	ZeroInBackboneindex:            "ZeroInBackboneindex",
	MissingBackboneIndex:           "MissingBackboneIndex",
	RedundancyOfBackboneIndices:    "RedundancyOfBackboneIndices",
	InvalidPositionOfBackboneIndex: "InvalidPositionOfBackboneIndex",
}

func (kind ErrorKind) String() string {
	if kind >= 0 && kind < NumErrorKinds {
		return errorKindNames[kind]
	}
	return fmt.Sprintf("ErrorKind(%d)", int32(kind))
}

// ErrorKindByName returns the ErrorKind whose String() is name.
func ErrorKindByName(name string) (ErrorKind, bool) {
	for kind, str := range errorKindNames {
		if str == name {
			return ErrorKind(kind), true
		}
	}
	return Valid, false
}

// ParseError is the single defect reported for a notation string: what went wrong and the byte offset where it was found.
type ParseError struct {
	Kind   ErrorKind
	Offset int
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d", err.Kind, err.Offset)
}
