package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairhire360/internal/types"
)

func TestDefaultLexiconValid(t *testing.T) {
	lex := DefaultLexicon()
	require.NoError(t, lex.Validate())

	assert.True(t, lex.IsEliteInstitution("Stanford University"))
	assert.True(t, lex.IsEliteInstitution("MIT"))
	assert.False(t, lex.IsEliteInstitution("State University"))
}

func TestLoadLexiconOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `high_bias_names:
  - Zelda
gender_coded_words:
  - trailblazing
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)

	// Overridden lists replace the defaults; untouched lists keep them.
	assert.Equal(t, []string{"Zelda"}, lex.HighBiasNames)
	assert.Equal(t, []string{"trailblazing"}, lex.GenderCodedWords)
	assert.Contains(t, lex.MediumBiasNames, "Maria")
	assert.Contains(t, lex.EliteInstitutions, "stanford")
}

func TestLoadLexiconErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLexicon(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("high_bias_names: {not a list"), 0o600))
		_, err := LoadLexicon(path)
		assert.Error(t, err)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fairness_templates: []\n"), 0o600))
		_, err := LoadLexicon(path)
		assert.Error(t, err)
	})
}

func TestLexiconSwapChangesDetection(t *testing.T) {
	e := New()
	jd := testJD()
	in := &CandidateInput{
		Name:       "Zelda Quinn",
		Modalities: []types.Modality{types.ModalityResume},
	}

	before := e.DetectBiasFactors(in, jd)
	assert.Nil(t, findByType(before, types.BiasNameProxy))

	custom := DefaultLexicon()
	custom.HighBiasNames = []string{"Zelda"}
	require.NoError(t, custom.compile())
	e.SetLexicon(custom)

	after := e.DetectBiasFactors(in, jd)
	f := findByType(after, types.BiasNameProxy)
	require.NotNil(t, f)
	assert.Equal(t, types.SeverityHigh, f.Severity)
	assert.Equal(t, -12, f.Contribution)
}
