package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringList_NilSerializesAsEmptyArray(t *testing.T) {
	var l StringList

	v, err := l.Value()
	require.NoError(t, err)
	require.Equal(t, []byte("[]"), v)
}

func TestStringList_ScanFromBytesAndText(t *testing.T) {
	var fromBytes StringList
	require.NoError(t, fromBytes.Scan([]byte(`["a","b"]`)))
	require.Equal(t, StringList{"a", "b"}, fromBytes)

	var fromText StringList
	require.NoError(t, fromText.Scan(`["c"]`))
	require.Equal(t, StringList{"c"}, fromText)

	var fromNull StringList
	require.NoError(t, fromNull.Scan(nil))
	require.Nil(t, fromNull)
}

func TestJSONMap_NilSerializesAsEmptyObject(t *testing.T) {
	var m JSONMap

	v, err := m.Value()
	require.NoError(t, err)
	require.Equal(t, []byte("{}"), v)
}

func TestBreakdown_Scan(t *testing.T) {
	var b Breakdown
	require.NoError(t, b.Scan([]byte(`{"total":120,"women":40,"children":30}`)))
	require.Equal(t, 120, b.Total)
	require.Equal(t, 40, b.Women)
	require.Equal(t, 30, b.Children)
}

func TestLocationList_Scan(t *testing.T) {
	var l LocationList
	require.NoError(t, l.Scan([]byte(`[{"name_ar":"عدن","name_en":"Aden","coordinates":{"lat":"12.8","lng":"45.0"}}]`)))
	require.Len(t, l, 1)
	require.Equal(t, "Aden", l[0].NameEn)
	require.Equal(t, "12.8", l[0].Coordinates.Lat)
}

func TestJSONBScan_UnsupportedSource(t *testing.T) {
	var l StringList
	require.Error(t, l.Scan(42))
}
