package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"struct", KwStruct, true},
		{"function", KwFunction, true},
		{"closure", KwClosure, true},
		{"usize", Primitive, true},
		{"bool", Primitive, true},
		{"Struct", Invalid, false},
		{"Point", Invalid, false},
	}
	for _, c := range cases {
		got, ok := LookupKeyword(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("LookupKeyword(%q) = %v,%v; want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if Arrow.String() != "->" || KwOwned.String() != "owned" || EOF.String() != "EOF" {
		t.Fatalf("unexpected kind names: %s %s %s", Arrow, KwOwned, EOF)
	}
}

func TestDocs(t *testing.T) {
	tok := Token{Kind: KwStruct, Leading: []Trivia{
		{Kind: TriviaLineComment, Text: "// skip"},
		{Kind: TriviaDocLine, Text: "first"},
		{Kind: TriviaNewline},
		{Kind: TriviaDocLine, Text: "second"},
	}}
	docs := tok.Docs()
	if len(docs) != 2 || docs[0] != "first" || docs[1] != "second" {
		t.Fatalf("unexpected docs: %#v", docs)
	}
	if !tok.IsItemStart() || !tok.IsKeyword() {
		t.Fatalf("struct must start an item")
	}
}
