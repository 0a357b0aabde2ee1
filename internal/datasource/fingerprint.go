package datasource

import (
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// Fingerprint is the xxh3 digest of a source's full content.
type Fingerprint uint64

// String renders the fingerprint as 16 hex digits.
func (f Fingerprint) String() string { return fmt.Sprintf("%016x", uint64(f)) }

// FingerprintReader hashes everything read through it. The digest covers the
// whole input only after the consumer has read to EOF.
type FingerprintReader struct {
	r io.Reader
	h *xxh3.Hasher
}

// NewFingerprintReader wraps r.
func NewFingerprintReader(r io.Reader) *FingerprintReader {
	return &FingerprintReader{r: r, h: xxh3.New()}
}

func (f *FingerprintReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if n > 0 {
		_, _ = f.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the digest of the bytes read so far.
func (f *FingerprintReader) Sum() Fingerprint { return Fingerprint(f.h.Sum64()) }

// Duplicates groups labels whose fingerprints collide. The result maps the
// first label seen for a digest to every later label with the same digest.
func Duplicates(labels []string, sums []Fingerprint) map[string][]string {
	first := make(map[Fingerprint]string, len(sums))
	out := map[string][]string{}
	for i, s := range sums {
		if i >= len(labels) {
			break
		}
		if owner, ok := first[s]; ok {
			out[owner] = append(out[owner], labels[i])
			continue
		}
		first[s] = labels[i]
	}
	return out
}
