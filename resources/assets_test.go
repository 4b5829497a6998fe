package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockdeck/internal/core/model"
)

func TestEveryCatalogChimeIsEmbedded(t *testing.T) {
	for _, chime := range model.Chimes {
		data, err := Chime(chime.Media)
		require.NoError(t, err, chime.Title)
		assert.Equal(t, "RIFF", string(data[:4]), chime.Title)
	}
}

func TestMissingChime(t *testing.T) {
	_, err := Chime("nope.wav")
	assert.Error(t, err)
}

func TestLogoIsCached(t *testing.T) {
	first, err := Logo(AppLogo)
	require.NoError(t, err)
	second := MustLogo(AppLogo)
	assert.Same(t, first, second)
	assert.Equal(t, AppLogo, first.Name())
	assert.Panics(t, func() { MustLogo("missing.png") })
}
