package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2012
	SynUnexpectedTopLevel Code = 2101
	SynExpectIdentifier   Code = 2102
	SynExpectRightBracket Code = 2201
	SynExpectType         Code = 2202
	SynExpectColon        Code = 2204

	// Семантические
	SemaInfo                 Code = 3000
	SemaDuplicateName        Code = 3002
	SemaUnresolvedIdentifier Code = 3005
	SemaWrongKind            Code = 3006
	SemaAbstractTypeMisuse   Code = 3007
	SemaUnsizedType          Code = 3008
	SemaDependencyCycle      Code = 3009

	// I/O
	IOFailure Code = 4001

	// Импорты
	ProjInfo        Code = 5000
	ProjImportCycle Code = 5004

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexUnterminatedString:    "Unterminated string",
	LexBadNumber:             "Bad number",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynExpectSemicolon:       "Expect semicolon",
	SynUnexpectedTopLevel:    "Unexpected top level",
	SynExpectIdentifier:      "Expect identifier",
	SynExpectRightBracket:    "Expect right bracket",
	SynExpectType:            "Expect type",
	SynExpectColon:           "Expect colon",
	SemaInfo:                 "Semantic information",
	SemaDuplicateName:        "Duplicate name",
	SemaUnresolvedIdentifier: "Unresolved identifier",
	SemaWrongKind:            "Wrong kind of declaration",
	SemaAbstractTypeMisuse:   "Abstract type used by value",
	SemaUnsizedType:          "Unsized type",
	SemaDependencyCycle:      "Layout dependency cycle",
	IOFailure:                "I/O failure",
	ProjInfo:                 "Import information",
	ProjImportCycle:          "Import cycle detected",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
