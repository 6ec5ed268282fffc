package pb

import (
	"bufio"
	"encoding/binary"
	"io"

	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// maxMessageSize guards against reading garbage as a huge length prefix.
const maxMessageSize = 4 << 20

// WriteDelimited writes m prefixed with its varint encoded size.
func WriteDelimited(w io.Writer, m proto.Message) error {
	data, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "unable to marshal message")
	}
	if _, err := w.Write(proto.EncodeVarint(uint64(len(data)))); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadDelimited reads a single message written by WriteDelimited. It returns
// io.EOF when the reader is exhausted on a message boundary.
func ReadDelimited(r *bufio.Reader, m proto.Message) error {
	size, err := binary.ReadUvarint(r)
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return errors.Wrap(err, "unable to read message size")
	}
	if size > maxMessageSize {
		return errors.Errorf("message size %d exceeds limit", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return errors.Wrap(err, "truncated message")
	}
	return errors.Wrap(proto.Unmarshal(data, m), "unable to unmarshal message")
}
