package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an unsigned integer literal (array lengths).
	IntLit
	// StringLit represents a quoted string literal (import paths).
	StringLit

	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwClosure represents the 'closure' keyword.
	KwClosure // closure
	// KwOwned represents the 'owned' keyword.
	KwOwned // owned
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwString represents the 'string' keyword.
	KwString // string
	// Primitive represents one of the built-in scalar names (bool, i8 .. usize).
	Primitive

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Colon     // :
	Comma     // ,
	Semicolon // ;
	Star      // *
	Arrow     // ->
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	StringLit:  "StringLit",
	KwImport:   "import",
	KwStruct:   "struct",
	KwFunction: "function",
	KwFn:       "fn",
	KwClosure:  "closure",
	KwOwned:    "owned",
	KwConst:    "const",
	KwMut:      "mut",
	KwString:   "string",
	Primitive:  "Primitive",
	LBrace:     "{",
	RBrace:     "}",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	Colon:      ":",
	Comma:      ",",
	Semicolon:  ";",
	Star:       "*",
	Arrow:      "->",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
