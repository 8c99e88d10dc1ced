package advisor

import "errors"

// ErrInvalidResponse is returned when the model's reply does not conform to
// the declared output shape. Results are all-or-nothing: a partially filled
// record is never returned.
var ErrInvalidResponse = errors.New("model returned unparseable response")
