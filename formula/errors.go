package formula

import "errors"

// ErrParse is the sentinel wrapped by every formula-syntax failure
// raised while parsing the text after the leading '='.
var ErrParse = errors.New("formula: parse error")

// The three evaluation-time error kinds a formula can produce. Their
// Error() text doubles as the short display tag (#REF!, #VALUE!,
// #DIV/0!); wrap them with fmt.Errorf("%w: ...") for additional
// context and they remain errors.Is-comparable to these sentinels.
var (
	ErrRef   = errors.New("#REF!")
	ErrValue = errors.New("#VALUE!")
	ErrDiv0  = errors.New("#DIV/0!")
)

// Tag reduces any error into its short spreadsheet display form. It
// returns the empty string for errors that are not one of the three
// recognized evaluation-time kinds.
func Tag(err error) string {
	switch {
	case errors.Is(err, ErrRef):
		return "#REF!"
	case errors.Is(err, ErrValue):
		return "#VALUE!"
	case errors.Is(err, ErrDiv0):
		return "#DIV/0!"
	default:
		return ""
	}
}
