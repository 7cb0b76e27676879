// Package sse decodes server-sent event records from a byte stream. Records
// are separated by a blank line; the payload is the line prefixed "data: ".
// Framing is independent of how the transport fragments the stream.
package sse

import (
	"bufio"
	"bytes"
	"io"
)

const dataPrefix = "data: "

type Decoder struct {
	scanner *bufio.Scanner
}

func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), 1024*1024)
	scanner.Split(splitRecords)

	return &Decoder{
		scanner: scanner,
	}
}

// Next returns the payload of the next data-carrying record. Records without
// a data line (comments, keep-alives) are skipped. Returns io.EOF at the end
// of the stream.
func (d *Decoder) Next() ([]byte, error) {
	for d.scanner.Scan() {
		data, ok := payload(d.scanner.Bytes())

		if !ok {
			continue
		}

		return data, nil
	}

	if err := d.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}

func payload(record []byte) ([]byte, bool) {
	for line := range bytes.Lines(record) {
		line = bytes.TrimRight(line, "\r\n")

		if data, ok := bytes.CutPrefix(line, []byte(dataPrefix)); ok {
			return data, true
		}
	}

	return nil, false
}

func splitRecords(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.Index(data, []byte("\n\n")); i >= 0 {
		return i + 2, data[:i], nil
	}

	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}

	return 0, nil, nil
}
