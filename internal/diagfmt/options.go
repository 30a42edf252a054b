package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8
	PathMode PathMode
	Width    uint8 // максимальная ширина строки, 0 - не ограничено
	// ShowNotes печатает Notes и Details под основным сниппетом.
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}
