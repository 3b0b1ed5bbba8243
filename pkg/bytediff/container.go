package bytediff

import (
	"encoding/binary"
	"fmt"
)

// Container format constants. All multi-byte integers are big-endian.
const (
	deltaMagicV1     = "DLT\x01"
	deltaMagicV2     = "DLT\x02"
	deltaFlagInplace = 1 << 0

	headerSizeV1 = 9
	headerSizeV2 = 41

	tagEnd  = 0
	tagCopy = 1
	tagAdd  = 2
)

// EncodeDelta serialises placed commands to the v2 binary delta container:
// magic, flags, version_size, src_hash, dst_hash, the command stream, and a
// terminating END tag.
func EncodeDelta(commands []PlacedCommand, inplace bool, versionSize int, srcHash, dstHash [hashSize]byte) []byte {
	out := make([]byte, 0, headerSizeV2+len(commands)*13)

	out = append(out, deltaMagicV2...)

	var flags byte
	if inplace {
		flags = deltaFlagInplace
	}

	out = append(out, flags)
	out = binary.BigEndian.AppendUint32(out, uint32(versionSize))
	out = append(out, srcHash[:]...)
	out = append(out, dstHash[:]...)

	for _, cmd := range commands {
		switch cmd.Kind {
		case KindCopy:
			out = append(out, tagCopy)
			out = binary.BigEndian.AppendUint32(out, uint32(cmd.Src))
			out = binary.BigEndian.AppendUint32(out, uint32(cmd.Dst))
			out = binary.BigEndian.AppendUint32(out, uint32(cmd.Length))
		case KindAdd:
			out = append(out, tagAdd)
			out = binary.BigEndian.AppendUint32(out, uint32(cmd.Dst))
			out = binary.BigEndian.AppendUint32(out, uint32(len(cmd.Data)))
			out = append(out, cmd.Data...)
		}
	}

	out = append(out, tagEnd)

	return out
}

// DecodedDelta is the result of decoding a binary delta container. SrcHash
// and DstHash are zero for a v1 container, which carries no content hashes.
type DecodedDelta struct {
	Commands    []PlacedCommand
	Inplace     bool
	VersionSize int
	SrcHash     [hashSize]byte
	DstHash     [hashSize]byte
	HasHashes   bool
}

// DecodeDelta parses a binary delta container, accepting either the v1
// (9-byte header, no hashes) or v2 (41-byte header, with hashes) layout.
func DecodeDelta(data []byte) (DecodedDelta, error) {
	var d DecodedDelta

	headerSize, ok := containerHeaderSize(data)
	if !ok {
		return d, fmt.Errorf("%w: not a delta container", ErrInvalidFormat)
	}

	if data[4]&^byte(deltaFlagInplace) != 0 {
		return d, fmt.Errorf("%w: unrecognised flags 0x%02x", ErrInvalidFormat, data[4])
	}

	d.Inplace = data[4]&deltaFlagInplace != 0
	d.VersionSize = int(binary.BigEndian.Uint32(data[5:9]))

	if headerSize == headerSizeV2 {
		copy(d.SrcHash[:], data[9:25])
		copy(d.DstHash[:], data[25:41])
		d.HasHashes = true
	}

	pos := headerSize

	for pos < len(data) {
		tag := data[pos]
		pos++

		switch tag {
		case tagEnd:
			return d, nil

		case tagCopy:
			if pos+12 > len(data) {
				return DecodedDelta{}, ErrUnexpectedEOF
			}

			src := int(binary.BigEndian.Uint32(data[pos:]))
			dst := int(binary.BigEndian.Uint32(data[pos+4:]))
			length := int(binary.BigEndian.Uint32(data[pos+8:]))
			pos += 12

			d.Commands = append(d.Commands, PlacedCommand{Kind: KindCopy, Src: src, Dst: dst, Length: length})

		case tagAdd:
			if pos+8 > len(data) {
				return DecodedDelta{}, ErrUnexpectedEOF
			}

			dst := int(binary.BigEndian.Uint32(data[pos:]))
			length := int(binary.BigEndian.Uint32(data[pos+4:]))
			pos += 8

			if pos+length > len(data) {
				return DecodedDelta{}, ErrUnexpectedEOF
			}

			d.Commands = append(d.Commands, PlacedCommand{Kind: KindAdd, Dst: dst, Data: cloneBytes(data[pos : pos+length])})
			pos += length

		default:
			return DecodedDelta{}, fmt.Errorf("%w: unknown command tag %d", ErrInvalidFormat, tag)
		}
	}

	return DecodedDelta{}, ErrUnexpectedEOF
}

// containerHeaderSize identifies the container version from its magic and
// returns the header length to skip before the command stream.
func containerHeaderSize(data []byte) (int, bool) {
	switch {
	case len(data) >= headerSizeV2 && string(data[:4]) == deltaMagicV2:
		return headerSizeV2, true
	case len(data) >= headerSizeV1 && string(data[:4]) == deltaMagicV1:
		return headerSizeV1, true
	default:
		return 0, false
	}
}

// IsInplaceDelta reports whether data is a recognised delta container with
// the in-place flag set, without fully decoding the command stream.
func IsInplaceDelta(data []byte) bool {
	if len(data) < 5 {
		return false
	}

	magic := string(data[:4])
	if magic != deltaMagicV1 && magic != deltaMagicV2 {
		return false
	}

	return data[4]&deltaFlagInplace != 0
}
