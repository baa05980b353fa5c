package fpe

import "github.com/coriolisfpe/ff1/subtle"

// ErrBadInput re-exports subtle.ErrBadInput so callers that only import
// this package can check for it with errors.Is. Tokenize and Detokenize
// do not produce it: StringToNumeric maps characters outside the
// alphabet to 0, so every symbol they hand to the engine is in range.
var ErrBadInput = subtle.ErrBadInput
