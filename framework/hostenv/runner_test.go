package hostenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteCommand(t *testing.T) {
	assert.Equal(t, `"bash" "-c" "[[ -f x ]]"`, QuoteCommand([]string{"bash", "-c", "[[ -f x ]]"}))
	assert.Equal(t, "", QuoteCommand(nil))
}
