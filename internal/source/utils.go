package source

import (
	"path/filepath"
	"slices"
)

// normalizeCRLF заменяет \r\n на \n, одиночные \r остаются как есть.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			changed = true
			continue
		}
		out = append(out, content[i])
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: число переводов строки строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo + 1), Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns target relative to baseDir, or the normalized absolute
// target when it lies outside baseDir.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", err
	}
	if rel == ".." || len(rel) > 3 && rel[:3] == ".."+string(filepath.Separator) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}
