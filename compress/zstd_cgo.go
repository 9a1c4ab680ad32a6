//go:build nobuild

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data using cgo zstd. Disabled by the nobuild tag: the
// archive envelope ships on the pure-Go klauspost/compress/zstd path above
// so this package has no cgo build requirement.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
