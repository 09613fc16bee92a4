package embeddings

import "fmt"

// BadModelError reports an embedding model string that matches no known
// vendor model.
type BadModelError struct {
	Model string
}

func (e *BadModelError) Error() string {
	return fmt.Sprintf("bad embedding model: %q", e.Model)
}

// DocumentError reports a vendor response whose embedding count does not
// match the submitted document count.
type DocumentError struct {
	Expected int
	Got      int
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("expected %d embeddings, got %d", e.Expected, e.Got)
}

// ProviderError carries a vendor-reported failure message verbatim.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s", e.Message)
}
