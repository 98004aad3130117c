package yamp

import "unicode/utf8"

// String is an immutable text value.
type String struct {
	text string
}

var _ Value = String{}

// NewString creates a string value.
func NewString(s string) String {
	return String{text: s}
}

// Type returns StringType.
func (s String) Type() *Type {
	return StringType
}

// Copy returns s. Strings are immutable.
func (s String) Copy() Value {
	return s
}

// Text returns the Go string.
func (s String) Text() string {
	return s.text
}

// Len returns the number of characters.
func (s String) Len() int {
	return utf8.RuneCountInString(s.text)
}

// Concat returns s followed by t.
func (s String) Concat(t String) String {
	return String{text: s.text + t.text}
}

// Render returns the text itself, without quotes.
func (s String) Render(f Format) string {
	return s.text
}

func (s String) String() string {
	return s.text
}

// MarshalBinary returns the UTF-8 bytes of the text.
func (s String) MarshalBinary() ([]byte, error) {
	return []byte(s.text), nil
}

// UnmarshalBinary restores a string serialized with MarshalBinary.
func (s *String) UnmarshalBinary(data []byte) error {
	if !utf8.Valid(data) {
		return &FormatError{Tag: StringType.Name(), Msg: "payload is not valid UTF-8"}
	}
	s.text = string(data)
	return nil
}
