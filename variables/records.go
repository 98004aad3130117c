package variables

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxItem limits the length of a single item of a record. It protects Read
// from allocating huge buffers for corrupt length prefixes.
const maxItem = 1 << 30

// ErrCorrupt is returned for record streams which end in the middle of a
// record or carry impossible lengths.
var ErrCorrupt = errors.New("corrupt record stream")

// Record is a persisted variable: its name, the type tag of its value and the
// serialized value.
type Record struct {
	Name    string
	Tag     string
	Payload []byte
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s (%d bytes)", r.Name, r.Tag, len(r.Payload))
}

// Write writes records to w, in order.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, r := range records {
		buf = buf[:0]
		buf = appendItem(buf, []byte(r.Name))
		buf = appendItem(buf, []byte(r.Tag))
		buf = appendItem(buf, r.Payload)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	tracer().Debugf("wrote %d records", len(records))
	return bw.Flush()
}

func appendItem(buf []byte, item []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(item)))
	return append(buf, item...)
}

// Read reads records from r up to the end of input. An input which ends
// within a record results in ErrCorrupt.
func Read(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	var records []Record
	for {
		name, err := readItem(br)
		if err == io.EOF {
			break
		} else if err != nil {
			return records, err
		}
		tag, err := readItem(br)
		if err != nil {
			return records, unexpected(err)
		}
		payload, err := readItem(br)
		if err != nil {
			return records, unexpected(err)
		}
		records = append(records, Record{Name: string(name), Tag: string(tag), Payload: payload})
	}
	tracer().Debugf("read %d records", len(records))
	return records, nil
}

// readItem reads a length-prefixed item. It returns io.EOF only if the input
// ends before the length prefix.
func readItem(br *bufio.Reader) ([]byte, error) {
	n, err := binary.ReadUvarint(br)
	if err == io.EOF {
		return nil, io.EOF
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if n > maxItem {
		return nil, fmt.Errorf("%w: item of %d bytes", ErrCorrupt, n)
	}
	item := make([]byte, n)
	if _, err = io.ReadFull(br, item); err != nil {
		return nil, unexpected(err)
	}
	return item, nil
}

func unexpected(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrCorrupt)
	}
	return err
}
