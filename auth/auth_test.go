package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchprep/auth"
)

func TestResolve_ExplicitKeyWins(t *testing.T) {
	t.Setenv("SEARCHPREP_API_KEY", "from-env")

	creds, err := auth.Resolve("from-flag")
	require.NoError(t, err)

	assert.Equal(t, "from-flag", creds.APIKey)
	assert.Equal(t, auth.SourceFlag, creds.Source)
}

func TestResolve_AmbientChain(t *testing.T) {
	t.Setenv("SEARCHPREP_API_KEY", "")
	t.Setenv("TYPESENSE_API_KEY", "ambient-key")

	creds, err := auth.Resolve("")
	require.NoError(t, err)

	assert.Equal(t, "ambient-key", creds.APIKey)
	assert.Equal(t, auth.SourceAmbient, creds.Source)
}

func TestResolve_AmbientChainOrder(t *testing.T) {
	t.Setenv("SEARCHPREP_API_KEY", "first")
	t.Setenv("TYPESENSE_API_KEY", "second")

	creds, err := auth.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "first", creds.APIKey)
}

func TestResolve_NoKeyAnywhere(t *testing.T) {
	t.Setenv("SEARCHPREP_API_KEY", "")
	t.Setenv("TYPESENSE_API_KEY", "")

	_, err := auth.Resolve("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no search key")
}
