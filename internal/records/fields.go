package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

// object reads typed fields out of a decoded JSON object and remembers the
// first problem, so callers can read every field and check err once.
type object struct {
	fields map[string]any
	where  string
	err    error
}

func (o *object) fail(field string, sentinel error, format string, args ...any) {
	if o.err != nil {
		return
	}
	detail := fmt.Sprintf(format, args...)
	o.err = fmt.Errorf("%s: field %q %s: %w", o.where, field, detail, sentinel)
}

// value returns the raw value; JSON null counts as absent.
func (o *object) value(field string, required bool) (any, bool) {
	v, ok := o.fields[field]
	if !ok || v == nil {
		if required {
			o.fail(field, sparkify.ErrMissingField, "is missing")
		}
		return nil, false
	}
	return v, true
}

func (o *object) String(field string) string {
	v, ok := o.value(field, true)
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		o.fail(field, sparkify.ErrParse, "must be a string, got %T", v)
	}
	return s
}

func (o *object) OptionalText(field string) pgtype.Text {
	v, ok := o.value(field, false)
	if !ok {
		return pgtype.Text{}
	}
	s, isString := v.(string)
	if !isString {
		o.fail(field, sparkify.ErrParse, "must be a string or null, got %T", v)
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func (o *object) Int64(field string) int64 {
	v, ok := o.value(field, true)
	if !ok {
		return 0
	}
	num, isNumber := v.(json.Number)
	if !isNumber {
		o.fail(field, sparkify.ErrParse, "must be a number, got %T", v)
		return 0
	}
	n, err := num.Int64()
	if err != nil {
		o.fail(field, sparkify.ErrParse, "must be an integer, got %s", num)
	}
	return n
}

func (o *object) Int32(field string) int32 {
	n := o.Int64(field)
	if n < -1<<31 || n > 1<<31-1 {
		o.fail(field, sparkify.ErrParse, "%d is out of range", n)
		return 0
	}
	return int32(n)
}

func (o *object) Decimal(field string) pgtype.Numeric {
	return o.decimal(field, true)
}

func (o *object) OptionalDecimal(field string) pgtype.Numeric {
	return o.decimal(field, false)
}

func (o *object) decimal(field string, required bool) pgtype.Numeric {
	v, ok := o.value(field, required)
	if !ok {
		return pgtype.Numeric{}
	}
	num, isNumber := v.(json.Number)
	if !isNumber {
		o.fail(field, sparkify.ErrParse, "must be a number, got %T", v)
		return pgtype.Numeric{}
	}
	d, err := ParseDecimal(num.String())
	if err != nil {
		o.fail(field, sparkify.ErrParse, "%v", err)
	}
	return d
}

// UserID accepts a JSON integer or a string holding one. The empty string
// is how logged-out events carry no user and counts as absent.
func (o *object) UserID(field string, required bool) pgtype.Int4 {
	v, ok := o.value(field, required)
	if !ok {
		return pgtype.Int4{}
	}

	var text string
	switch typed := v.(type) {
	case json.Number:
		text = typed.String()
	case string:
		text = strings.TrimSpace(typed)
		if text == "" {
			if required {
				o.fail(field, sparkify.ErrMissingField, "is empty")
			}
			return pgtype.Int4{}
		}
	default:
		o.fail(field, sparkify.ErrParse, "must be a number or numeric string, got %T", v)
		return pgtype.Int4{}
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		o.fail(field, sparkify.ErrParse, "must be an integer, got %q", text)
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(n), Valid: true}
}
