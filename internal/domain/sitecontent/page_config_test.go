package sitecontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDefaultPageConfig(t *testing.T) {
	config := DefaultPageConfig()

	assert.Equal(t, "ENVÍO GRATIS SOBRE $599", config.TopbarText)
	assert.True(t, config.TopbarVisible)
	assert.JSONEq(t, `[]`, string(config.TopProducts))
}

func TestPageConfigApply(t *testing.T) {
	config := DefaultPageConfig()

	top := datatypes.JSON(`[1,2,3]`)
	visible := false
	config.Apply(PageConfigUpdate{
		TopProducts:   &top,
		TopbarVisible: &visible,
	})

	assert.JSONEq(t, `[1,2,3]`, string(config.TopProducts))
	assert.False(t, config.TopbarVisible)
	// untouched fields keep their defaults
	assert.Equal(t, "#FF69B4", config.TopbarBackground)
}

func TestStoreSettingsApply(t *testing.T) {
	settings := DefaultStoreSettings()

	name := "Gomu"
	minStock := 3
	require.NoError(t, settings.Apply(StoreSettingsUpdate{StoreName: &name, MinStock: &minStock}))
	assert.Equal(t, "Gomu", settings.StoreName)
	assert.Equal(t, 3, settings.MinStock)

	empty := ""
	require.Error(t, settings.Apply(StoreSettingsUpdate{StoreName: &empty}))

	negative := -1
	require.Error(t, settings.Apply(StoreSettingsUpdate{MinStock: &negative}))
}
