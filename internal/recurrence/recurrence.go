// Package recurrence stores iCal recurrence rules (RFC 5545 RRULE) as a
// structured pattern. Parsing and rendering are delegated to rrule-go;
// occurrences are never expanded here.
package recurrence

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ErrInvalidRule is returned when text cannot be parsed as an RRULE.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// Rule is a parsed recurrence pattern. The zero value behaves like Weekly().
type Rule struct {
	opt rrule.ROption
	set bool
}

// Weekly returns the default pattern, FREQ=WEEKLY.
func Weekly() Rule {
	return Rule{opt: rrule.ROption{Freq: rrule.WEEKLY}, set: true}
}

// Parse parses RRULE text such as "FREQ=WEEKLY;BYDAY=MO,WE,FR".
// An optional "RRULE:" prefix is accepted.
func Parse(text string) (Rule, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Rule{}, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}
	opt, err := rrule.StrToROption(text)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if _, err := rrule.NewRRule(*opt); err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return Rule{opt: *opt, set: true}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(text string) Rule {
	r, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return r
}

// Valid reports whether text parses as an RRULE.
func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// parseStored is used when loading persisted values: empty text means weekly.
func parseStored(text string) (Rule, error) {
	if strings.TrimSpace(text) == "" {
		return Weekly(), nil
	}
	return Parse(text)
}

func (r Rule) normalized() Rule {
	if !r.set {
		return Weekly()
	}
	return r
}

// Frequency returns the rule's FREQ part.
func (r Rule) Frequency() rrule.Frequency {
	return r.normalized().opt.Freq
}

// Option returns a copy of the underlying rrule options.
func (r Rule) Option() rrule.ROption {
	return r.normalized().opt
}

// String renders the canonical RRULE text, without DTSTART.
func (r Rule) String() string {
	opt := r.normalized().opt
	return opt.RRuleString()
}

// Equal reports whether both rules render to the same canonical text.
func (r Rule) Equal(other Rule) bool {
	return r.String() == other.String()
}

// GormDataType keeps the column as plain text.
func (Rule) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer.
func (r Rule) Value() (driver.Value, error) {
	return r.String(), nil
}

// Scan implements sql.Scanner. NULL and empty text load as Weekly().
func (r *Rule) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("recurrence: cannot scan %T", src)
	}
	parsed, err := parseStored(text)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalJSON renders the rule as a JSON string.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts a JSON string or null.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var text *string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	if text == nil {
		*r = Weekly()
		return nil
	}
	parsed, err := parseStored(*text)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalBSONValue stores the rule as a BSON string.
func (r Rule) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.String())
}

// UnmarshalBSONValue accepts a BSON string or null.
func (r *Rule) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*r = Weekly()
		return nil
	}
	text, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("recurrence: cannot decode BSON %s", t)
	}
	parsed, err := parseStored(text)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
