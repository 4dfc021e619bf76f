package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJDFromJSONStableID(t *testing.T) {
	data := []byte(`{
		"id": "jd-backend-1",
		"roleTitle": "Backend Engineer",
		"requiredSkills": ["Go", "SQL"],
		"experienceRange": {"min": 1, "max": 5},
		"skillsWeight": 60
	}`)

	first, err := loadJDFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "jd-backend-1", first.ID)

	// Loading the same file again keeps the id, so repeated process runs
	// accumulate candidates against one stored job description.
	second, err := loadJDFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestLoadJDFromJSONMintsIDWhenAbsent(t *testing.T) {
	data := []byte(`{
		"roleTitle": "Backend Engineer",
		"requiredSkills": ["Go"],
		"experienceRange": {"min": 1, "max": 5},
		"skillsWeight": 60
	}`)

	first, err := loadJDFromJSON(data)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := loadJDFromJSON(data)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLoadJDFromJSONInvalid(t *testing.T) {
	_, err := loadJDFromJSON([]byte(`{"roleTitle": ""}`))
	assert.Error(t, err)
}
