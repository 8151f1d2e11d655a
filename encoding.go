package rational

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v4"
)

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Both JSON strings and JSON numbers are accepted:
//
//	"-5/4"
//	"-1.25"
//	-1.25
//
// See also constructor [Parse].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (r *Rational) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	var err error
	*r, err = parse(string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a JSON string, since large numerators and
// denominators cannot be represented by JSON numbers without losing precision.
// See also method [Rational.String].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (r Rational) MarshalJSON() ([]byte, error) {
	data := make([]byte, 0, 16)
	data = append(data, '"')
	data = r.appendText(data)
	data = append(data, '"')
	return data, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (r *Rational) UnmarshalText(text []byte) error {
	var err error
	*r, err = parse(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// See also method [Rational.String].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (r Rational) AppendText(text []byte) ([]byte, error) {
	return r.appendText(text), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Rational.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (r Rational) MarshalText() ([]byte, error) {
	return r.appendText(nil), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// The binary form is the same as the text form.
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (r *Rational) UnmarshalBinary(data []byte) error {
	var err error
	*r, err = parse(string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (r Rational) AppendBinary(data []byte) ([]byte, error) {
	return r.appendText(data), nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (r Rational) MarshalBinary() ([]byte, error) {
	return r.appendText(nil), nil
}

// BSON type codes, see https://bsonspec.org/spec.html
const (
	bsonDouble = 0x01
	bsonString = 0x02
	bsonNull   = 0x0A
	bsonInt32  = 0x10
	bsonInt64  = 0x12
)

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// BSON strings, 32-bit and 64-bit integers, and doubles are supported.
// Doubles are converted with [NewFromFloat64] and are flagged as approximate.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (r *Rational) UnmarshalBSONValue(typ byte, data []byte) error {
	var err error
	switch typ {
	case bsonString:
		*r, err = parseBSONString(data)
	case bsonInt32:
		if len(data) != 4 {
			err = fmt.Errorf("%w: invalid data length %v", ErrParse, len(data))
			break
		}
		*r = NewFromInt(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec
	case bsonInt64:
		if len(data) != 8 {
			err = fmt.Errorf("%w: invalid data length %v", ErrParse, len(data))
			break
		}
		*r = NewFromInt(int64(binary.LittleEndian.Uint64(data))) //nolint:gosec
	case bsonDouble:
		if len(data) != 8 {
			err = fmt.Errorf("%w: invalid data length %v", ErrParse, len(data))
			break
		}
		*r, err = newRatFromFloat(math.Float64frombits(binary.LittleEndian.Uint64(data)))
	case bsonNull:
		// null, do nothing
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Rational{}, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// MarshalBSONValue always returns a BSON string holding the text form.
// See also method [Rational.String].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (r Rational) MarshalBSONValue() (typ byte, data []byte, err error) {
	return bsonString, r.bsonString(), nil
}

// parseBSONString parses a BSON string to a rational.
// The byte order of the length prefix must be little-endian.
func parseBSONString(data []byte) (Rational, error) {
	if len(data) < 4 {
		return Rational{}, fmt.Errorf("%w: invalid data length %v", ErrParse, len(data))
	}
	l := int(int32(binary.LittleEndian.Uint32(data))) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Rational{}, fmt.Errorf("%w: invalid string length %v", ErrParse, l)
	}
	if data[l+4-1] != 0 {
		return Rational{}, fmt.Errorf("%w: invalid null terminator %v", ErrParse, data[l+4-1])
	}
	return parse(string(data[4 : l+4-1]))
}

// bsonString returns the BSON string representation of the rational.
// The byte order of the length prefix is little-endian.
func (r Rational) bsonString() []byte {
	data := make([]byte, 4, 20)
	data = r.appendText(data)
	data = append(data, 0)
	binary.LittleEndian.PutUint32(data, uint32(len(data)-4)) //nolint:gosec
	return data
}

// MarshalMsgpack implements the [msgpack.Marshaler] interface.
// The rational is encoded as a msgpack string holding the text form.
//
// [msgpack.Marshaler]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v4#Marshaler
func (r Rational) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(r.String())
}

// UnmarshalMsgpack implements the [msgpack.Unmarshaler] interface.
//
// [msgpack.Unmarshaler]: https://pkg.go.dev/github.com/vmihailenco/msgpack/v4#Unmarshaler
func (r *Rational) UnmarshalMsgpack(data []byte) error {
	var s string
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	var err error
	*r, err = parse(s)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Rational{}, err)
	}
	return nil
}

// Scan implements the [sql.Scanner] interface.
// Strings and byte slices are parsed with [Parse], integers are converted
// exactly, and floats are converted with [NewFromFloat64].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (r *Rational) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*r, err = parse(value)
	case []byte:
		*r, err = parse(string(value))
	case int64:
		*r = NewFromInt(value)
	case float64:
		*r, err = newRatFromFloat(value)
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Rational{}, NullRational{}, Rational{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Rational{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The rational is stored as its text form.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (r Rational) Value() (driver.Value, error) {
	return r.String(), nil
}

// NullRational represents a rational that can be null.
// Its zero value is null.
// NullRational is not thread-safe.
type NullRational struct {
	Rational Rational
	Valid    bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Rational.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullRational) Scan(value any) error {
	if value == nil {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Rational.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullRational) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Rational.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Rational.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullRational) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.UnmarshalJSON(data)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Rational.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullRational) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Rational.MarshalJSON()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also method [Rational.UnmarshalBSONValue].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (n *NullRational) UnmarshalBSONValue(typ byte, data []byte) error {
	if typ == bsonNull {
		n.Rational = Rational{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Rational.UnmarshalBSONValue(typ, data)
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// See also method [Rational.MarshalBSONValue].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (n NullRational) MarshalBSONValue() (typ byte, data []byte, err error) {
	if !n.Valid {
		return bsonNull, nil, nil
	}
	return n.Rational.MarshalBSONValue()
}
