package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1
	hdrLen       = 4 + 1 + 1 + 4
)

var (
	ErrCorrupt = errors.New("taskcodec: corrupt stored entry")
	magic4     = [...]byte{'T', 'S', 'K', 'D'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | format(1) | plen(u32 be) | payload(plen)
//
// format is the format.Format ID the payload was written with, so a reader
// configured with another format can tell instead of misparsing.
func Encode(formatID byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(formatID)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode validates the frame and returns a zero-copy view of the payload.
// Trailing bytes after the announced payload are treated as corruption.
func Decode(b []byte) (formatID byte, payload []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	formatID = b[5]
	if formatID == 0 {
		return 0, nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[6:hdrLen]))
	if plen < 0 || plen != len(b)-hdrLen {
		return 0, nil, ErrCorrupt
	}
	return formatID, b[hdrLen:], nil
}
