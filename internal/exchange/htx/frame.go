package htx

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// decodeFrame decompresses one raw transport frame. HTX gzips every stream
// message, including pings.
func decodeFrame(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("gzip frame: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip frame: %w", err)
	}
	return payload, nil
}
