package token

var keywords = map[string]Kind{
	"import":   KwImport,
	"struct":   KwStruct,
	"function": KwFunction,
	"fn":       KwFn,
	"closure":  KwClosure,
	"owned":    KwOwned,
	"const":    KwConst,
	"mut":      KwMut,
	"string":   KwString,
}

var primitives = map[string]struct{}{
	"bool":  {},
	"i8":    {},
	"i16":   {},
	"i32":   {},
	"i64":   {},
	"isize": {},
	"u8":    {},
	"u16":   {},
	"u32":   {},
	"u64":   {},
	"usize": {},
}

// LookupKeyword возвращает тип и bool если это ключевое слово или примитив.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	if _, ok := primitives[ident]; ok {
		return Primitive, true
	}
	return Invalid, false
}

// IsPrimitiveName reports whether name spells a built-in scalar type.
func IsPrimitiveName(name string) bool {
	_, ok := primitives[name]
	return ok
}
