package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит ключ сборки: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным (порядок загрузки файлов).
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DigestString hashes s, e.g. a rendered option set.
func DigestString(s string) Digest {
	return sha256.Sum256([]byte(s))
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
