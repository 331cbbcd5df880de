package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The Flex* types decode loosely shaped API fields. They never fail to
// unmarshal: a value of an unexpected shape leaves Valid false.

var null = []byte("null")

type FlexString struct {
	Value string
	Valid bool
}

func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = FlexString{}
	if bytes.Equal(data, null) {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(str)
		*s = FlexString{Value: str, Valid: str != ""}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString{Value: num.String(), Valid: true}
	}
	return nil
}

func String(v string) FlexString {
	return FlexString{Value: v, Valid: v != ""}
}

// Amount is a monetary value that may arrive as a JSON number or a numeric
// string.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	if bytes.Equal(data, null) {
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return nil
	}
	*a = Amount{Value: d, Valid: true}
	return nil
}

func (a Amount) Or(def decimal.Decimal) decimal.Decimal {
	if !a.Valid {
		return def
	}
	return a.Value
}

func AmountOf(v decimal.Decimal) Amount {
	return Amount{Value: v, Valid: true}
}

type FlexInt struct {
	Value int
	Valid bool
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	*n = FlexInt{}
	if bytes.Equal(data, null) {
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return nil
	}
	if d.GreaterThan(maxInt) || d.LessThan(minInt) {
		return nil
	}
	*n = FlexInt{Value: int(d.IntPart()), Valid: true}
	return nil
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt)
	minInt = decimal.NewFromInt(math.MinInt)
)

func Int(v int) FlexInt {
	return FlexInt{Value: v, Valid: true}
}

type FlexBool struct {
	Value bool
	Valid bool
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	*b = FlexBool{}
	if bytes.Equal(data, null) {
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool{Value: v, Valid: true}
		return nil
	}

	var str FlexString
	_ = str.UnmarshalJSON(data)
	if !str.Valid {
		return nil
	}
	if parsed, err := strconv.ParseBool(str.Value); err == nil {
		*b = FlexBool{Value: parsed, Valid: true}
	}
	return nil
}

func Bool(v bool) FlexBool {
	return FlexBool{Value: v, Valid: true}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// FlexTime accepts RFC 3339, MySQL-style datetimes, bare dates and unix
// milliseconds.
type FlexTime struct {
	Value time.Time
	Valid bool
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	*t = FlexTime{}
	if bytes.Equal(data, null) {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, ok := ParseTime(str); ok {
			*t = FlexTime{Value: parsed, Valid: true}
		}
		return nil
	}

	var millis int64
	if err := json.Unmarshal(data, &millis); err == nil && millis > 0 {
		*t = FlexTime{Value: time.UnixMilli(millis).UTC(), Valid: true}
	}
	return nil
}

func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func Time(v time.Time) FlexTime {
	return FlexTime{Value: v, Valid: !v.IsZero()}
}
