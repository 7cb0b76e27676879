package sse

import (
	"io"
	"strings"
	"testing"
)

type chunkReader struct {
	data []byte
	size int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}

	n := min(r.size, len(r.data), len(p))

	copy(p, r.data[:n])
	r.data = r.data[n:]

	return n, nil
}

func decodeAll(t *testing.T, r io.Reader) []string {
	t.Helper()

	decoder := NewDecoder(r)

	var payloads []string

	for {
		data, err := decoder.Next()

		if err == io.EOF {
			return payloads
		}

		if err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}

		payloads = append(payloads, string(data))
	}
}

func TestDecoder(t *testing.T) {
	stream := "data: {\"stage\": \"render_page\"}\n\ndata: {\"stage\": \"validate\"}\n\ndata: {\"status\": \"complete\"}\n\n"

	payloads := decodeAll(t, strings.NewReader(stream))

	want := []string{
		`{"stage": "render_page"}`,
		`{"stage": "validate"}`,
		`{"status": "complete"}`,
	}

	if len(payloads) != len(want) {
		t.Fatalf("expected %d payloads, got %d: %v", len(want), len(payloads), payloads)
	}

	for i, p := range payloads {
		if p != want[i] {
			t.Errorf("payload %d: got %q, want %q", i, p, want[i])
		}
	}
}

func TestDecoderChunkInvariance(t *testing.T) {
	stream := "data: {\"stage\": \"render_page\"}\n\n: keep-alive\n\ndata: {\"stage\": \"fetch_streams\"}\n\ndata: {\"status\": \"complete\", \"session_id\": \"abc\"}\n\n"

	want := decodeAll(t, strings.NewReader(stream))

	if len(want) != 3 {
		t.Fatalf("expected 3 payloads from whole stream, got %d", len(want))
	}

	for size := 1; size <= len(stream); size++ {
		payloads := decodeAll(t, &chunkReader{data: []byte(stream), size: size})

		if len(payloads) != len(want) {
			t.Fatalf("chunk size %d: expected %d payloads, got %d", size, len(want), len(payloads))
		}

		for i, p := range payloads {
			if p != want[i] {
				t.Errorf("chunk size %d, payload %d: got %q, want %q", size, i, p, want[i])
			}
		}
	}
}

func TestDecoderSkipsRecordsWithoutData(t *testing.T) {
	stream := ": comment\n\nevent: ping\n\ndata: {\"stage\": \"ocr\"}\n\n"

	payloads := decodeAll(t, strings.NewReader(stream))

	if len(payloads) != 1 || payloads[0] != `{"stage": "ocr"}` {
		t.Fatalf("expected single data payload, got %v", payloads)
	}
}

func TestDecoderTrailingRecordWithoutDelimiter(t *testing.T) {
	stream := "data: {\"stage\": \"a\"}\n\ndata: {\"stage\": \"b\"}"

	payloads := decodeAll(t, strings.NewReader(stream))

	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d: %v", len(payloads), payloads)
	}

	if payloads[1] != `{"stage": "b"}` {
		t.Errorf("trailing payload: got %q", payloads[1])
	}
}

func TestDecoderMultilineRecord(t *testing.T) {
	stream := "event: stage\nid: 7\ndata: {\"stage\": \"align_segments\"}\nretry: 100\n\n"

	payloads := decodeAll(t, strings.NewReader(stream))

	if len(payloads) != 1 || payloads[0] != `{"stage": "align_segments"}` {
		t.Fatalf("expected data line of record, got %v", payloads)
	}
}
