package sheet

import (
	"strconv"

	"github.com/kalexmills/sheetengine/formula"
)

// Kind tags which variant of Value is populated.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindError
)

// Value is the tagged result GetValue returns: exactly one of a
// number, a string, or a formula-error-kind.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
	Err    error
}

func numberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }
func textValue(s string) Value    { return Value{Kind: KindText, Text: s} }
func errorValue(err error) Value  { return Value{Kind: KindError, Err: err} }

// IsError reports whether v holds a formula-error-kind.
func (v Value) IsError() bool {
	return v.Kind == KindError
}

// Display renders v the way the printing adapter does: numbers as
// their shortest round-trip decimal, strings verbatim, errors as
// their short tag (#DIV/0!, #VALUE!, #REF!).
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindError:
		if tag := formula.Tag(v.Err); tag != "" {
			return tag
		}
		return v.Err.Error()
	default:
		return ""
	}
}
