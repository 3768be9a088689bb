package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, c.Diseases)
	assert.Equal(t, "itching", c.Symptoms[0])

	col, ok := c.Column("skin_rash")
	assert.True(t, ok)
	assert.Equal(t, 1, col)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
symptoms: [cough, fever]
diseases:
  - name: Flu
    symptoms: [cough, fever]
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cough", "fever"}, c.Symptoms)
	assert.Equal(t, []Disease{{Name: "Flu", Symptoms: []string{"cough", "fever"}}}, c.Diseases)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := map[string]string{
		"no symptoms":       "diseases: [{name: Flu, symptoms: [cough]}]",
		"no diseases":       "symptoms: [cough]",
		"duplicate column":  "symptoms: [cough, cough]\ndiseases: [{name: Flu, symptoms: [cough]}]",
		"unknown symptom":   "symptoms: [cough]\ndiseases: [{name: Flu, symptoms: [fever]}]",
		"unnamed disease":   "symptoms: [cough]\ndiseases: [{symptoms: [cough]}]",
		"disease no signal": "symptoms: [cough]\ndiseases: [{name: Flu}]",
		"not yaml":          "symptoms: [",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
