package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	assert.Equal(t, "pl", Base(Parse("pl_PL.UTF-8")))
	assert.Equal(t, "de", Base(Parse("de_DE@euro")))
	assert.Equal(t, language.English, Parse("C"))
	assert.Equal(t, language.English, Parse("POSIX"))
	assert.Equal(t, language.English, Parse("!!"))
}

func TestDetectOrder(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "fr_FR.UTF-8")
	assert.Equal(t, "fr", Base(Detect()))

	t.Setenv("LC_ALL", "es_ES.UTF-8")
	assert.Equal(t, "es", Base(Detect()))

	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	assert.Equal(t, language.English, Detect())
}
