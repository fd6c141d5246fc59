package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-iyer/relscribe/core"
)

func TestBuildSelector_Modes(t *testing.T) {
	sel, err := buildSelector(true, "", false, "", "")
	require.NoError(t, err)
	assert.Equal(t, core.SelectLatest, sel.Kind)

	sel, err = buildSelector(false, "v1.0.0", false, "", "")
	require.NoError(t, err)
	assert.Equal(t, core.SelectExact, sel.Kind)
	assert.Equal(t, "v1.0.0", sel.Exact)

	sel, err = buildSelector(false, "", true, "", "")
	require.NoError(t, err)
	assert.Equal(t, core.SelectAll, sel.Kind)

	sel, err = buildSelector(false, "", false, "2025-01-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, core.SelectRange, sel.Kind)
	assert.Equal(t, "2025-01-01", sel.From)
	assert.Equal(t, "2025-06-30", sel.To)
}

func TestBuildSelector_RequiresExactlyOneMode(t *testing.T) {
	_, err := buildSelector(false, "", false, "", "")
	assert.Error(t, err)

	_, err = buildSelector(true, "v1.0.0", false, "", "")
	assert.Error(t, err)

	_, err = buildSelector(true, "", false, "2025-01-01", "2025-06-30")
	assert.Error(t, err)
}

func TestBuildSelector_RangeNeedsBothBounds(t *testing.T) {
	_, err := buildSelector(false, "", false, "2025-01-01", "")
	assert.Error(t, err)

	_, err = buildSelector(false, "", false, "", "2025-06-30")
	assert.Error(t, err)
}

func TestValidateDates(t *testing.T) {
	assert.NoError(t, validateDates("2025-01-01", "2025-06-30"))
	assert.NoError(t, validateDates("2025-01-01", "2025-01-01"))
	assert.Error(t, validateDates("01/01/2025", "2025-06-30"))
	assert.Error(t, validateDates("2025-01-01", "June 30"))
	assert.Error(t, validateDates("2025-06-30", "2025-01-01"))
}

func TestRepoShape(t *testing.T) {
	assert.True(t, repoShape.MatchString("cli/cli"))
	assert.True(t, repoShape.MatchString("my-org/my.repo_2"))
	assert.False(t, repoShape.MatchString("cli"))
	assert.False(t, repoShape.MatchString("a/b/c"))
	assert.False(t, repoShape.MatchString("bad name/repo"))
}
