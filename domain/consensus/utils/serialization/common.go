package serialization

import (
	"io"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/amount"
	"github.com/MarkLTZ/bitcoin/util/binaryserializer"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// ErrMalformed indicates the serialized data does not describe a valid
// structure.
var ErrMalformed = errors.New("malformed serialized data")

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case int32:
		return binaryserializer.PutUint32(w, uint32(e))

	case uint32:
		return binaryserializer.PutUint32(w, e)

	case int64:
		return binaryserializer.PutUint64(w, uint64(e))

	case uint64:
		return binaryserializer.PutUint64(w, e)

	case uint8:
		return binaryserializer.PutUint8(w, e)

	case amount.Amount:
		return binaryserializer.PutUint64(w, uint64(e))

	case externalapi.DomainHash:
		return writeBytes(w, e[:])

	case *externalapi.DomainHash:
		return writeBytes(w, e[:])

	case externalapi.DomainTransactionID:
		return writeBytes(w, e[:])

	case externalapi.DomainNullifier:
		return writeBytes(w, e[:])
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *int32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = int32(rv)
		return nil

	case *uint32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint8:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *amount.Amount:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = amount.Amount(rv)
		return nil

	case *externalapi.DomainHash:
		return readBytes(r, e[:])

	case *externalapi.DomainTransactionID:
		return readBytes(r, e[:])

	case *externalapi.DomainNullifier:
		return readBytes(r, e[:])
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return errors.WithStack(err)
}

func readBytes(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return errors.WithStack(err)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) uint64 {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		return binaryserializer.PutUint8(w, uint8(val))

	case val <= 0xffff:
		err := binaryserializer.PutUint8(w, 0xfd)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint16(w, uint16(val))

	case val <= 0xffffffff:
		err := binaryserializer.PutUint8(w, 0xfe)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint32(w, uint32(val))

	default:
		err := binaryserializer.PutUint8(w, 0xff)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint64(w, val)
	}
}

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64. Encodings that use more bytes than necessary are rejected.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := binaryserializer.Uint8(r)
	if err != nil {
		return 0, err
	}

	var rv, min uint64
	switch discriminant {
	case 0xff:
		rv, err = binaryserializer.Uint64(r)
		min = 0x100000000

	case 0xfe:
		var sv uint32
		sv, err = binaryserializer.Uint32(r)
		rv, min = uint64(sv), 0x10000

	case 0xfd:
		var sv uint16
		sv, err = binaryserializer.Uint16(r)
		rv, min = uint64(sv), 0xfd

	default:
		return uint64(discriminant), nil
	}
	if err != nil {
		return 0, err
	}

	if rv < min {
		return 0, errors.Wrapf(ErrMalformed, "non-canonical varint %x - discriminant %x "+
			"must encode a value greater than %x", rv, discriminant, min)
	}
	return rv, nil
}

// VarBytesSerializeSize returns the number of bytes it would take to
// serialize a byte slice of the given length with WriteVarBytes.
func VarBytesSerializeSize(length int) uint64 {
	return VarIntSerializeSize(uint64(length)) + uint64(length)
}

// WriteVarBytes serializes a variable length byte array to w as a varint
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	err := WriteVarInt(w, uint64(len(bytes)))
	if err != nil {
		return err
	}
	return writeBytes(w, bytes)
}

// ReadVarBytes reads a variable length byte array. maxAllowed bounds the
// length that is accepted before anything is allocated.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	if count > maxAllowed {
		return nil, errors.Wrapf(ErrMalformed, "%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
	}

	b := make([]byte, count)
	err = readBytes(r, b)
	if err != nil {
		return nil, err
	}
	return b, nil
}
