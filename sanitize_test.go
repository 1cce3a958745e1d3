package infirmary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoveHTMLTags(t *testing.T) {
	assert.Equal(t, "\n5.0", RemoveHTMLTags("<br>5.0"))
	assert.Equal(t, "Positive", RemoveHTMLTags("<b>Positive</b>"))
	assert.Equal(t, "12x 10^9/L", RemoveHTMLTags("12&nbsp;x 10<sup>^9</sup>/L"))
	assert.Equal(t, "a b", RemoveHTMLTags("a&#160; b"))
	assert.Equal(t, "line1\nline2", RemoveHTMLTags(`<p class="x">line1<br>line2</P>`))
	assert.Equal(t, "", RemoveHTMLTags("<span>&nbsp;</span>"))
	// only lower case entity names are recognized
	assert.Equal(t, "&AMP;", RemoveHTMLTags("&AMP;"))
	assert.Equal(t, "plain", RemoveHTMLTags("plain"))
}

func TestNormalizeDiagnosticDate(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)

	normalized, err := NormalizeDiagnosticDate("2024-02-27T00:36:00.000Z", time.UTC)
	assert.Nil(t, err)
	assert.Equal(t, "2024-02-27 00:36:00", normalized)

	normalized, err = NormalizeDiagnosticDate("2024-02-27T00:36:00.000Z", manila)
	assert.Nil(t, err)
	assert.Equal(t, "2024-02-27 08:36:00", normalized)

	normalized, err = NormalizeDiagnosticDate("2024-02-27 17:00:00.123", manila)
	assert.Nil(t, err)
	assert.Equal(t, "2024-02-27 17:00:00", normalized)

	normalized, err = NormalizeDiagnosticDate("2024-02-27", time.UTC)
	assert.Nil(t, err)
	assert.Equal(t, "2024-02-27 00:00:00", normalized)

	_, err = NormalizeDiagnosticDate("yesterday", time.UTC)
	assert.NotNil(t, err)
}
