package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportListingFormat(t *testing.T) {
	st, out, _ := newTestState(t, "/")
	st.env.Set("FOO", "bar")
	st.env.SetUnvalued("BARE")

	require.Equal(t, 0, st.export(nil))
	require.Contains(t, out.String(), `declare -x FOO="bar"`)
	require.Contains(t, out.String(), "declare -x BARE")
	require.NotContains(t, out.String(), `declare -x BARE="`)
}

func TestExportThenUnsetRoundTrip(t *testing.T) {
	st, _, _ := newTestState(t, "/")

	require.Equal(t, 0, st.export([]string{"A=1", "B=2"}))
	require.True(t, st.env.Has("A"))
	require.True(t, st.env.Has("B"))

	require.Equal(t, 0, st.unset([]string{"A"}))
	require.False(t, st.env.Has("A"))
	require.True(t, st.env.Has("B"))
}
