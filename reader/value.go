package reader

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/deprecated"

	"github.com/vegasq/parquet2csv/table"
)

// julianUnixEpoch is the Julian day number of 1970-01-01.
const julianUnixEpoch = 2440588

const secondsPerDay = 24 * 60 * 60

// convert decodes a single parquet value into the Go value stored in tables.
// Null values decode to nil.
func (c *leafColumn) convert(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}

	switch c.kind {
	case table.KindBool:
		return v.Boolean()
	case table.KindInt:
		return intValue(v)
	case table.KindUint:
		if v.Kind() == parquet.Int32 {
			return uint64(uint32(v.Int32()))
		}
		return uint64(v.Int64())
	case table.KindFloat:
		return v.Float()
	case table.KindDouble:
		return v.Double()
	case table.KindString:
		return string(v.ByteArray())
	case table.KindDate:
		return time.Unix(intValue(v)*secondsPerDay, 0).UTC()
	case table.KindTime:
		return time.Duration(intValue(v)) * c.unit
	case table.KindTimestamp:
		return unixTime(intValue(v), c.unit)
	case table.KindInt96:
		return int96Time(v.Int96())
	case table.KindDecimal:
		return decimalString(v, c.scale)
	case table.KindUUID:
		b := v.ByteArray()
		if id, err := uuid.FromBytes(b); err == nil {
			return id.String()
		}
		return hex.EncodeToString(b)
	default:
		// byte arrays are backed by reader buffers that get reused
		return bytes.Clone(v.ByteArray())
	}
}

func intValue(v parquet.Value) int64 {
	if v.Kind() == parquet.Int32 {
		return int64(v.Int32())
	}
	return v.Int64()
}

func unixTime(n int64, unit time.Duration) time.Time {
	switch unit {
	case time.Millisecond:
		return time.UnixMilli(n).UTC()
	case time.Microsecond:
		return time.UnixMicro(n).UTC()
	default:
		return time.Unix(0, n).UTC()
	}
}

// int96Time decodes the legacy INT96 timestamp layout: nanoseconds of the day
// in the low 8 bytes followed by the Julian day number.
func int96Time(i deprecated.Int96) time.Time {
	nanos := int64(uint64(i[1])<<32 | uint64(i[0]))
	days := int64(i[2]) - julianUnixEpoch
	return time.Unix(days*secondsPerDay, nanos).UTC()
}

// decimalString renders an unscaled decimal value exactly, keeping every
// digit of the declared scale.
func decimalString(v parquet.Value, scale int) string {
	var unscaled *big.Int
	switch v.Kind() {
	case parquet.Int32, parquet.Int64:
		unscaled = big.NewInt(intValue(v))
	default:
		unscaled = twosComplement(v.ByteArray())
	}
	return formatDecimal(unscaled, scale)
}

// twosComplement interprets b as a big-endian two's complement integer.
func twosComplement(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return n
}

func formatDecimal(unscaled *big.Int, scale int) string {
	if scale <= 0 {
		return unscaled.String()
	}

	digits := new(big.Int).Abs(unscaled).String()
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}

	var sb strings.Builder
	if unscaled.Sign() < 0 {
		sb.WriteByte('-')
	}
	point := len(digits) - scale
	sb.WriteString(digits[:point])
	sb.WriteByte('.')
	sb.WriteString(digits[point:])
	return sb.String()
}
