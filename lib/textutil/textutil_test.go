package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "acmecorp", NormalizeName("  Acme \t Corp\n"))
	require.Equal(t, "acmecorp", NormalizeName("ACME CORP"))
}

func TestCleanPersonName(t *testing.T) {
	require.Equal(t, "Joe Z Dirt", CleanPersonName("Joe Z. Dirt"))
	require.Equal(t, "Mary OBrien", CleanPersonName("Mary O'Brien"))
}

func TestSplitPersonName(t *testing.T) {
	require.Equal(t, []string{"Joe", "Z", "Dirt"}, SplitPersonName("Joe Z. Dirt"))
	require.Equal(t, []string{"Mary", "Skinner"}, SplitPersonName("Mary Skinner"))
	require.Equal(t, []string{"Cher"}, SplitPersonName("Cher"))
}
