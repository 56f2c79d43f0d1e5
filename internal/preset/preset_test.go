package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicestat/internal/dice"
	"github.com/cory-johannsen/dicestat/internal/preset"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "weapons.yaml", `
presets:
  - name: longsword
    dice: 1d8+3
    description: one-handed longsword
  - name: greatsword
    dice: 2d6 + 3
`)
	writeFile(t, dir, "spells.yml", `
presets:
  - name: fireball
    dice: 8d6
`)
	writeFile(t, dir, "README.md", "not a preset")

	reg, err := preset.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"fireball", "greatsword", "longsword"}, reg.Names())

	p, ok := reg.Lookup("greatsword")
	require.True(t, ok)
	assert.Equal(t, dice.Expression{Dice: []int{6, 6}, Bonus: 3}, p.Expression)
	assert.Equal(t, "2d6+3", dice.Canonical(p.Expression))

	_, ok = reg.Lookup("dagger")
	assert.False(t, ok)
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := preset.LoadDir("/nonexistent/presets")
	assert.Error(t, err)
}

func TestLoadDir_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "presets: [\n")
	_, err := preset.LoadDir(dir)
	assert.ErrorContains(t, err, "cannot parse")
}

func TestLoadDir_VariableDiceRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
presets:
  - name: chaos
    dice: 4d(2d3)
`)
	_, err := preset.LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, dice.ErrInvalidDice)
}

func TestLoadDir_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "presets:\n  - name: axe\n    dice: d12\n")
	writeFile(t, dir, "b.yaml", "presets:\n  - name: axe\n    dice: d10\n")
	_, err := preset.LoadDir(dir)
	assert.ErrorContains(t, err, "already registered")
}

func TestPreset_Validate(t *testing.T) {
	p := &preset.Preset{}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must not be empty")
	assert.Contains(t, err.Error(), "dice must not be empty")

	p = &preset.Preset{Name: "bonus", Notation: "+4"}
	require.NoError(t, p.Validate())
	assert.Equal(t, dice.Expression{Bonus: 4}, p.Expression)
}
