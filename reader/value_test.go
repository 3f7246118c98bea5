package reader

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/deprecated"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parquet2csv/table"
)

func TestConvert(t *testing.T) {
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	noonNanos := int64(12 * time.Hour)

	tests := []struct {
		name  string
		leaf  leafColumn
		value parquet.Value
		want  any
	}{
		{
			name:  "null",
			leaf:  leafColumn{kind: table.KindInt},
			value: parquet.NullValue(),
			want:  nil,
		},
		{
			name:  "bool",
			leaf:  leafColumn{kind: table.KindBool},
			value: parquet.BooleanValue(true),
			want:  true,
		},
		{
			name:  "int32 widens",
			leaf:  leafColumn{kind: table.KindInt},
			value: parquet.Int32Value(-42),
			want:  int64(-42),
		},
		{
			name:  "unsigned int32",
			leaf:  leafColumn{kind: table.KindUint},
			value: parquet.Int32Value(-1),
			want:  uint64(4294967295),
		},
		{
			name:  "unsigned int64",
			leaf:  leafColumn{kind: table.KindUint},
			value: parquet.Int64Value(-1),
			want:  uint64(18446744073709551615),
		},
		{
			name:  "string",
			leaf:  leafColumn{kind: table.KindString},
			value: parquet.ByteArrayValue([]byte("alice")),
			want:  "alice",
		},
		{
			name:  "bytes",
			leaf:  leafColumn{kind: table.KindBytes},
			value: parquet.ByteArrayValue([]byte{1, 2, 3}),
			want:  []byte{1, 2, 3},
		},
		{
			name:  "date",
			leaf:  leafColumn{kind: table.KindDate},
			value: parquet.Int32Value(19000),
			want:  time.Date(2022, time.January, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "time micros",
			leaf:  leafColumn{kind: table.KindTime, unit: time.Microsecond},
			value: parquet.Int64Value(3723000000),
			want:  time.Hour + 2*time.Minute + 3*time.Second,
		},
		{
			name:  "time millis int32",
			leaf:  leafColumn{kind: table.KindTime, unit: time.Millisecond},
			value: parquet.Int32Value(1500),
			want:  1500 * time.Millisecond,
		},
		{
			name:  "timestamp millis",
			leaf:  leafColumn{kind: table.KindTimestamp, unit: time.Millisecond},
			value: parquet.Int64Value(1700000000123),
			want:  time.UnixMilli(1700000000123).UTC(),
		},
		{
			name:  "timestamp micros",
			leaf:  leafColumn{kind: table.KindTimestamp, unit: time.Microsecond},
			value: parquet.Int64Value(1),
			want:  time.Date(1970, time.January, 1, 0, 0, 0, 1000, time.UTC),
		},
		{
			name:  "timestamp nanos",
			leaf:  leafColumn{kind: table.KindTimestamp, unit: time.Nanosecond},
			value: parquet.Int64Value(-1),
			want:  time.Date(1969, time.December, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:  "int96",
			leaf:  leafColumn{kind: table.KindInt96},
			value: parquet.Int96Value(deprecated.Int96{uint32(noonNanos), uint32(noonNanos >> 32), julianUnixEpoch + 1}),
			want:  time.Date(1970, time.January, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "decimal int32",
			leaf:  leafColumn{kind: table.KindDecimal, scale: 2},
			value: parquet.Int32Value(12345),
			want:  "123.45",
		},
		{
			name:  "decimal small negative",
			leaf:  leafColumn{kind: table.KindDecimal, scale: 2},
			value: parquet.Int64Value(-5),
			want:  "-0.05",
		},
		{
			name:  "decimal fixed bytes",
			leaf:  leafColumn{kind: table.KindDecimal, scale: 1},
			value: parquet.FixedLenByteArrayValue([]byte{0xff, 0x85}),
			want:  "-12.3",
		},
		{
			name:  "decimal zero scale",
			leaf:  leafColumn{kind: table.KindDecimal},
			value: parquet.Int64Value(7),
			want:  "7",
		},
		{
			name:  "uuid",
			leaf:  leafColumn{kind: table.KindUUID},
			value: parquet.FixedLenByteArrayValue(id[:]),
			want:  "123e4567-e89b-12d3-a456-426614174000",
		},
		{
			name:  "malformed uuid",
			leaf:  leafColumn{kind: table.KindUUID},
			value: parquet.FixedLenByteArrayValue([]byte{0xab, 0xcd}),
			want:  "abcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.leaf.convert(tt.value)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_BytesAreCopied(t *testing.T) {
	buf := []byte("abc")
	leaf := leafColumn{kind: table.KindBytes}

	got := leaf.convert(parquet.ByteArrayValue(buf)).([]byte)
	buf[0] = 'z'

	require.Equal(t, []byte("abc"), got)
}

func TestTwosComplement(t *testing.T) {
	tests := []struct {
		in   []byte
		want int64
	}{
		{nil, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80}, -128},
		{[]byte{0x00, 0x80}, 128},
		{[]byte{0xff, 0xff, 0xff}, -1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, twosComplement(tt.in).Int64(), "input %x", tt.in)
	}
}
