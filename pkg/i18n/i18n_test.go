package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
)

func TestMatch_DefaultArabic(t *testing.T) {
	assert.Equal(t, language.Arabic, i18n.Match(""))
	assert.Equal(t, language.Arabic, i18n.Match("ar-SA,ar;q=0.9"))
	assert.Equal(t, language.English, i18n.Match("en-US,en;q=0.8"))
	assert.Equal(t, language.Arabic, i18n.Match("%%%invalida"))
}

func TestT_TraduceClaves(t *testing.T) {
	assert.Equal(t, "غير مصرح للوصول", i18n.T(language.Arabic, i18n.KeyForbidden))
	assert.Equal(t, "Access denied", i18n.T(language.English, i18n.KeyForbidden))
	assert.Equal(t, "Field national_id is required", i18n.T(language.English, i18n.KeyFieldRequired, "national_id"))
}

func TestKnown(t *testing.T) {
	assert.True(t, i18n.Known(i18n.KeyOTPInvalid))
	assert.False(t, i18n.Known(i18n.Key("no.existe")))
}
