package adjuntos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareLink(t *testing.T) {
	assert.Equal(t,
		"https://drive.google.com/file/d/abc123/view?usp=sharing",
		ShareLink("abc123"))
}
