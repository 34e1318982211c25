package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/flowstate/internal/model"
)

func TestBuiltin(t *testing.T) {
	var ids []string
	for _, th := range Builtin() {
		ids = append(ids, th.ID)
		assert.NoError(t, Validate(th), th.ID)
	}
	assert.Equal(t, []string{"light", "dark", "neon", "minimal", "festive"}, ids)
	assert.Equal(t, DefaultID, Default().ID)
}

func TestFind(t *testing.T) {
	custom := []model.Theme{{ID: "ocean", Name: "Ocean"}}

	got, ok := Find("neon", custom)
	assert.True(t, ok)
	assert.Equal(t, "#EC4899", got.Colors.AccentPrimary)

	got, ok = Find("ocean", custom)
	assert.True(t, ok)
	assert.Equal(t, "Ocean", got.Name)

	got, ok = Find("missing", custom)
	assert.False(t, ok)
	assert.Equal(t, DefaultID, got.ID)
}

func TestValidate(t *testing.T) {
	good := Default()
	good.ID, good.Name = "mine", "Mine"
	assert.NoError(t, Validate(good))

	bad := good
	bad.Colors.AccentText = "white"
	assert.ErrorContains(t, Validate(bad), "--accent-text")

	assert.Error(t, Validate(model.Theme{Name: "no id"}))
}
