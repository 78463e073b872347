package codec

import "fmt"

var errMsgPackTooDeep = fmt.Errorf("msgpack: nesting exceeds %d levels", maxNestingDepth)

// checkMsgPackDepth scans the first MessagePack value in data without
// recursion and fails once containers nest deeper than maxNestingDepth.
//
// Only headers are interpreted. Truncated input and invalid codes end the
// scan without error; the decoder reports those.
func checkMsgPackDepth(data []byte) error {
	// pending[i] is the number of items still expected at depth i; the
	// first entry stands for the top-level value.
	pending := make([]uint64, 1, 16)
	pending[0] = 1
	pos := 0

	for len(pending) > 0 {
		top := len(pending) - 1
		if pending[top] == 0 {
			pending = pending[:top]
			continue
		}
		pending[top]--

		if pos >= len(data) {
			return nil
		}
		c := data[pos]
		pos++

		var items, skip uint64

		switch {
		case c <= 0x7f, c >= 0xe0, c == 0xc0, c == 0xc2, c == 0xc3:
			// fixint, nil, bool

		case c <= 0x8f: // fixmap
			items = 2 * uint64(c&0x0f)

		case c <= 0x9f: // fixarray
			items = uint64(c & 0x0f)

		case c <= 0xbf: // fixstr
			skip = uint64(c & 0x1f)

		default:
			width, kind := msgpackHeader(c)
			if kind == headerInvalid {
				return nil
			}

			n, ok := readBigEndian(data, pos, width)
			if !ok {
				return nil
			}

			switch kind {
			case headerFixed:
				skip = uint64(width)
			case headerLength:
				pos += width
				skip = n
			case headerExtLength:
				pos += width
				skip = n + 1
			case headerArray:
				pos += width
				items = n
			case headerMap:
				pos += width
				items = 2 * n
			case headerFixExt:
				skip = uint64(width)
			}
		}

		if skip > uint64(len(data)-pos) {
			return nil
		}
		pos += int(skip)

		if items > 0 {
			pending = append(pending, items)
			if len(pending)-1 > maxNestingDepth {
				return errMsgPackTooDeep
			}
		}
	}

	return nil
}

type headerKind uint8

const (
	headerInvalid   headerKind = iota
	headerFixed                // width payload bytes follow
	headerLength               // width-byte length, then payload
	headerExtLength            // width-byte length, type byte, then payload
	headerArray                // width-byte item count
	headerMap                  // width-byte pair count
	headerFixExt               // type byte and data, width bytes in total
)

// msgpackHeader classifies the codes 0xc1-0xdf.
func msgpackHeader(c byte) (int, headerKind) {
	switch c {
	case 0xcc, 0xd0:
		return 1, headerFixed
	case 0xcd, 0xd1:
		return 2, headerFixed
	case 0xca, 0xce, 0xd2:
		return 4, headerFixed
	case 0xcb, 0xcf, 0xd3:
		return 8, headerFixed
	case 0xc4, 0xd9:
		return 1, headerLength
	case 0xc5, 0xda:
		return 2, headerLength
	case 0xc6, 0xdb:
		return 4, headerLength
	case 0xc7:
		return 1, headerExtLength
	case 0xc8:
		return 2, headerExtLength
	case 0xc9:
		return 4, headerExtLength
	case 0xd4:
		return 2, headerFixExt
	case 0xd5:
		return 3, headerFixExt
	case 0xd6:
		return 5, headerFixExt
	case 0xd7:
		return 9, headerFixExt
	case 0xd8:
		return 17, headerFixExt
	case 0xdc:
		return 2, headerArray
	case 0xdd:
		return 4, headerArray
	case 0xde:
		return 2, headerMap
	case 0xdf:
		return 4, headerMap
	default:
		return 0, headerInvalid
	}
}

// readBigEndian reads a width-byte unsigned integer at pos. Fixed-size
// scalars only need the bounds check, so their value is ignored.
func readBigEndian(data []byte, pos, width int) (uint64, bool) {
	if width > len(data)-pos {
		return 0, false
	}

	var n uint64
	for _, b := range data[pos : pos+width] {
		n = n<<8 | uint64(b)
	}

	return n, true
}
