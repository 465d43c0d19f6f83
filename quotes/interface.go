package quotes

import "io"

// Encoder can be written to a store
type Encoder interface {
	Encode(w io.Writer) error
}

// Decoder can be read from a store
type Decoder interface {
	Decode(r io.Reader) error
}
