package completion

import "fmt"

// ProviderError carries a vendor-reported failure message verbatim. It is
// distinct from transport errors (wrapped *url.Error / status errors) and
// from decode failures, so callers can tell "the vendor said no" apart from
// "the call never got a sensible answer".
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s", e.Message)
}
