package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every schema file read during one compilation run.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 4),
		index: make(map[string]FileID),
	}
}

// SetBaseDir sets the directory that relative display paths are computed from.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the display base directory, defaulting to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores already normalized bytes and returns a fresh FileID.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", path, err))
	}
	id := FileID(n)
	normalized := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a BOM, normalizes CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Lookup returns the latest FileID registered for path.
func (fileSet *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// DisplayPath renders the file path relative to the set's base directory.
func (fileSet *FileSet) DisplayPath(id FileID) string {
	f := fileSet.Get(id)
	if f == nil {
		return "<unknown>"
	}
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	if rel, err := RelativePath(f.Path, fileSet.BaseDir()); err == nil {
		return rel
	}
	return f.Path
}

// GetLine returns line lineNum (1-based) without its trailing newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lineCount, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	if lineNum > lineCount+1 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content))
	if lineNum-1 < lineCount {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path for display. mode is one of "absolute",
// "relative", "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case "relative":
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// короткий или относительный путь как есть, иначе basename
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}
