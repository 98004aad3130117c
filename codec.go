package yamp

import (
	"encoding/binary"
	"fmt"
)

// --- Encoding ----------------------------------------------------------------

// Encode serializes a value and returns its type tag and payload.
func Encode(v Value) (string, []byte, error) {
	if v == nil {
		return "", nil, fmt.Errorf("cannot encode void value")
	}
	if v.Type().Tag() == TagExtension {
		return "", nil, &FormatError{Tag: v.Type().Name(), Msg: "extension types cannot be serialized"}
	}
	payload, err := v.MarshalBinary()
	if err != nil {
		return "", nil, err
	}
	return v.Type().Name(), payload, nil
}

func appendCount(buf []byte, n int) []byte {
	return binary.AppendUvarint(buf, uint64(n))
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendBytes(buf []byte, b []byte) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(b)))
	return append(buf, b...)
}

// appendValue appends a length-prefixed tag and a length-prefixed payload.
func appendValue(buf []byte, v Value) ([]byte, error) {
	tag, payload, err := Encode(v)
	if err != nil {
		return nil, err
	}
	buf = appendString(buf, tag)
	return appendBytes(buf, payload), nil
}

// payloadReader reads length-prefixed items from a payload.
type payloadReader struct {
	tag  string
	data []byte
}

func (r *payloadReader) count() (int, error) {
	n, k := binary.Uvarint(r.data)
	if k <= 0 || n > uint64(len(r.data)) {
		return 0, &FormatError{Tag: r.tag, Msg: "corrupt length prefix"}
	}
	r.data = r.data[k:]
	return int(n), nil
}

func (r *payloadReader) bytes() ([]byte, error) {
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	if n > len(r.data) {
		return nil, &FormatError{Tag: r.tag, Msg: "truncated payload"}
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b, nil
}

func (r *payloadReader) string() (string, error) {
	b, err := r.bytes()
	return string(b), err
}

func (r *payloadReader) done() error {
	if len(r.data) > 0 {
		return &FormatError{Tag: r.tag, Msg: "trailing bytes in payload"}
	}
	return nil
}

// --- Decoding ----------------------------------------------------------------

// FunctionLoader re-binds deserialized function values to executable code.
// For natives, params and body are empty.
type FunctionLoader interface {
	LoadFunction(name string, native bool, params []string, body string) (*Function, error)
}

// Decoder restores values from their type tag and payload.
type Decoder struct {
	loader FunctionLoader
}

// NewDecoder creates a decoder. loader may be nil, in which case function
// values are restored unbound: they render and serialize, but calling them
// fails.
func NewDecoder(loader FunctionLoader) *Decoder {
	return &Decoder{loader: loader}
}

// Decode restores a value from a type tag and a payload created by the
// value's MarshalBinary. An unknown tag results in a FormatError.
func (d *Decoder) Decode(tag string, payload []byte) (Value, error) {
	t, ok := TypeByName(tag)
	if !ok || t.IsAbstract() {
		return nil, &FormatError{Tag: tag}
	}
	switch t.Tag() {
	case TagNumber:
		var n Number
		err := n.UnmarshalBinary(payload)
		return n, err
	case TagMatrix:
		m := &Matrix{}
		err := m.UnmarshalBinary(payload)
		return m, err
	case TagRange:
		r := &Range{}
		err := r.UnmarshalBinary(payload)
		return r, err
	case TagString:
		var s String
		err := s.UnmarshalBinary(payload)
		return s, err
	case TagTuple:
		return d.decodeTuple(payload)
	case TagMap:
		return d.decodeMap(payload)
	case TagFunction:
		return d.decodeFunction(payload)
	}
	return nil, &FormatError{Tag: tag}
}

func (d *Decoder) decodeNested(r *payloadReader) (Value, error) {
	tag, err := r.string()
	if err != nil {
		return nil, err
	}
	payload, err := r.bytes()
	if err != nil {
		return nil, err
	}
	return d.Decode(tag, payload)
}

func (d *Decoder) decodeTuple(payload []byte) (Value, error) {
	r := &payloadReader{tag: TupleType.Name(), data: payload}
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	t := &Tuple{values: make([]Value, 0, n)}
	for i := 0; i < n; i++ {
		v, err := d.decodeNested(r)
		if err != nil {
			return nil, err
		}
		t.Append(v)
	}
	return t, r.done()
}

func (d *Decoder) decodeMap(payload []byte) (Value, error) {
	r := &payloadReader{tag: MapType.Name(), data: payload}
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	m := NewMap()
	for i := 0; i < n; i++ {
		key, err := r.string()
		if err != nil {
			return nil, err
		}
		v, err := d.decodeNested(r)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return m, r.done()
}

func (d *Decoder) decodeFunction(payload []byte) (Value, error) {
	if len(payload) == 0 {
		return nil, &FormatError{Tag: FunctionType.Name(), Msg: "empty payload"}
	}
	native := payload[0] == 1
	r := &payloadReader{tag: FunctionType.Name(), data: payload[1:]}
	name, err := r.string()
	if err != nil {
		return nil, err
	}
	n, err := r.count()
	if err != nil {
		return nil, err
	}
	params := make([]string, n)
	for i := range params {
		if params[i], err = r.string(); err != nil {
			return nil, err
		}
	}
	body, err := r.string()
	if err != nil {
		return nil, err
	}
	if err = r.done(); err != nil {
		return nil, err
	}
	if d.loader == nil {
		return &Function{name: name, params: params, body: body, native: native}, nil
	}
	tracer().P("func", name).Debugf("re-binding deserialized function")
	return d.loader.LoadFunction(name, native, params, body)
}
