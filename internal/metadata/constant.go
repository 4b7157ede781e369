package metadata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/encoding/unicode"
)

// ErrConstantKind is returned when a constant cannot be interpreted or encoded
// under the requested element type.
var ErrConstantKind = errors.New("unsupported constant kind")

// utf16 is the encoding of string constant blobs.
var utf16 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Constant is the raw value of a literal field. Numeric kinds are stored
// little-endian, strings as UTF-16LE without terminator.
type Constant struct {
	Type  ElementType
	Value []byte
}

// NewConstant encodes v under kind. Integers accept any Go integer type,
// floats accept float32/float64 or integers, strings accept string.
func NewConstant(kind ElementType, v any) (*Constant, error) {
	c := &Constant{Type: kind}

	switch {
	case kind == ElementString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T as %s", ErrConstantKind, v, kind)
		}

		b, err := utf16.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("encode string constant: %w", err)
		}

		c.Value = b

	case kind == ElementBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %T as %s", ErrConstantKind, v, kind)
		}

		c.Value = []byte{0}
		if b {
			c.Value[0] = 1
		}

	case kind == ElementR4 || kind == ElementR8:
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %T as %s", ErrConstantKind, v, kind)
		}

		if kind == ElementR4 {
			c.Value = binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(f)))
		} else {
			c.Value = binary.LittleEndian.AppendUint64(nil, math.Float64bits(f))
		}

	case kind.IsInteger() || kind == ElementChar:
		u, ok := toBits(v)
		if !ok {
			return nil, fmt.Errorf("%w: %T as %s", ErrConstantKind, v, kind)
		}

		c.Value = binary.LittleEndian.AppendUint64(nil, u)[:kind.Size()]

	default:
		return nil, fmt.Errorf("%w: %s", ErrConstantKind, kind)
	}

	return c, nil
}

// Interpret decodes the blob under kind, which is usually c.Type but may
// differ when the caller knows better (e.g. an enum's underlying type).
// The dynamic type of the result follows the kind: int16 for I2, uint16 for
// U2, rune for Char, string for String and so on.
func (c *Constant) Interpret(kind ElementType) (any, error) {
	if kind == ElementString {
		b, err := utf16.NewDecoder().Bytes(c.Value)
		if err != nil {
			return nil, fmt.Errorf("decode string constant: %w", err)
		}

		return string(b), nil
	}

	size := kind.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrConstantKind, kind)
	}

	if len(c.Value) < size {
		return nil, fmt.Errorf("constant blob of %d bytes is too short for %s", len(c.Value), kind)
	}

	b := c.Value[:size]

	switch kind {
	case ElementBoolean:
		return b[0] != 0, nil
	case ElementI1:
		return int8(b[0]), nil
	case ElementU1:
		return b[0], nil
	case ElementChar:
		return rune(binary.LittleEndian.Uint16(b)), nil
	case ElementI2:
		return int16(binary.LittleEndian.Uint16(b)), nil
	case ElementU2:
		return binary.LittleEndian.Uint16(b), nil
	case ElementI4:
		return int32(binary.LittleEndian.Uint32(b)), nil
	case ElementU4:
		return binary.LittleEndian.Uint32(b), nil
	case ElementI8:
		return int64(binary.LittleEndian.Uint64(b)), nil
	case ElementU8:
		return binary.LittleEndian.Uint64(b), nil
	case ElementR4:
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	case ElementR8:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrConstantKind, kind)
}

// Integer decodes an integer constant into its decimal text and, for
// convenience, into a uint64 when the value is non-negative.
func (c *Constant) Integer() (text string, unsigned uint64, nonNegative bool, err error) {
	if !c.Type.IsInteger() {
		return "", 0, false, fmt.Errorf("%w: %s is not an integer kind", ErrConstantKind, c.Type)
	}

	v, err := c.Interpret(c.Type)
	if err != nil {
		return "", 0, false, err
	}

	switch n := v.(type) {
	case int8:
		return strconv.FormatInt(int64(n), 10), uint64(n), n >= 0, nil
	case int16:
		return strconv.FormatInt(int64(n), 10), uint64(n), n >= 0, nil
	case int32:
		return strconv.FormatInt(int64(n), 10), uint64(n), n >= 0, nil
	case int64:
		return strconv.FormatInt(n, 10), uint64(n), n >= 0, nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), uint64(n), true, nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), uint64(n), true, nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), uint64(n), true, nil
	case uint64:
		return strconv.FormatUint(n, 10), n, true, nil
	}

	return "", 0, false, fmt.Errorf("%w: %T", ErrConstantKind, v)
}

func toBits(v any) (uint64, bool) {
	switch n := v.(type) {
	case int:
		return uint64(n), true
	case int8:
		return uint64(n), true
	case int16:
		return uint64(n), true
	case int32:
		return uint64(n), true
	case int64:
		return uint64(n), true
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
