package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCollapsesBlankLines(t *testing.T) {
	in := "line one\n\n\n\n\nline two"
	assert.Equal(t, "line one\n\nline two", Normalize(in))
}

func TestNormalizeCollapsesHorizontalWhitespace(t *testing.T) {
	in := "a    b\t\tc  \t d"
	assert.Equal(t, "a b c d", Normalize(in))
}

func TestNormalizeTrimsAndFoldsCRLF(t *testing.T) {
	in := "  \r\nfirst\r\nsecond\r\n  "
	assert.Equal(t, "first\nsecond", Normalize(in))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\n  "))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"a    b\n\n\n\nc\t\td  ",
		"\r\n\r\nmixed \t breaks\n\n\n\n\nend\r\n",
		"한글  텍스트\n\n\n정규화",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
