package hash

import (
	"bytes"
	"encoding/binary"
	"io"
)

// WriterToWithDomain represents a type writing itself, and knowing its domain.
//
// Providing a domain string lets us distinguish the output of different types
// implementing this same interface.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, which should be unique for each implementor
	Domain() string
}

// writeWithDomain writes out a piece of data, using its domain.
//
// The domain and the data are each prefixed with their length, so that no
// two distinct (domain, data) pairs share an encoding.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	domain := []byte(object.Domain())
	if err := writeLength(w, len(domain)); err != nil {
		return err
	}
	if _, err := w.Write(domain); err != nil {
		return err
	}
	var body bytes.Buffer
	if _, err := object.WriteTo(&body); err != nil {
		return err
	}
	if err := writeLength(w, body.Len()); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func writeLength(w io.Writer, n int) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	_, err := w.Write(buf[:])
	return err
}

// BytesWithDomain is a useful wrapper to annotate some chunk of data with a domain.
//
// The intention is to wrap some data using this struct, and then call WriteAny,
// or use this struct as a WriterToWithDomain somewhere else.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo.
func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
