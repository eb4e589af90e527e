package htx

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func gzipBytes(t *testing.T, payload string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(payload)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeFrame(t *testing.T) {
	raw := gzipBytes(t, `{"ping":123}`)

	payload, err := decodeFrame(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"ping":123}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestDecodeFrameInvalidGzip(t *testing.T) {
	if _, err := decodeFrame([]byte("not gzip at all")); err == nil {
		t.Fatal("expected error for invalid gzip frame")
	}
}
