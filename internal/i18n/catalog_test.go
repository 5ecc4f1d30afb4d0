package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FallbackChain(t *testing.T) {
	// 1. Подготовка
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"login":"Log in","logout":"Log out"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.json"), []byte(`{"login":"Connexion"}`), 0o644))

	// 2. Действие
	c, err := Load(dir, []string{"fr", "es", "en"}, "en")

	// 3. Проверка
	require.NoError(t, err)
	assert.Equal(t, "Connexion", c.T("fr", "login"))
	assert.Equal(t, "Log out", c.T("fr", "logout"))
	assert.Equal(t, "Log in", c.T("es", "login"))
	assert.Equal(t, "unknown_key", c.T("fr", "unknown_key"))

	assert.True(t, c.Supports("es"))
	assert.False(t, c.Supports("de"))
	assert.Equal(t, "en", c.Resolve("de"))

	msgs := c.Messages("fr")
	assert.Equal(t, "Connexion", msgs["login"])
	assert.Equal(t, "Log out", msgs["logout"])
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{not json`), 0o644))

	_, err := Load(dir, []string{"en"}, "en")

	assert.Error(t, err)
}
