package poizon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSign_Deterministic(t *testing.T) {
	params := map[string]any{
		"app_key":       "test-key",
		"timestamp":     int64(1700000000000),
		"articleNumber": "DD1503-101",
		"region":        "US",
	}

	first := Sign(params, "secret")
	second := Sign(params, "secret")

	require.Equal(t, first, second)
	require.Len(t, first, 32)
	require.Equal(t, strings.ToUpper(first), first)
}

func TestSign_SensitiveToEveryInput(t *testing.T) {
	base := map[string]any{
		"app_key":       "test-key",
		"timestamp":     int64(1700000000000),
		"articleNumber": "DD1503-101",
	}

	reference := Sign(base, "secret")

	changedValue := map[string]any{
		"app_key":       "test-key",
		"timestamp":     int64(1700000000000),
		"articleNumber": "DD1503-102",
	}
	require.NotEqual(t, reference, Sign(changedValue, "secret"))

	extraKey := map[string]any{
		"app_key":       "test-key",
		"timestamp":     int64(1700000000000),
		"articleNumber": "DD1503-101",
		"region":        "US",
	}
	require.NotEqual(t, reference, Sign(extraKey, "secret"))

	require.NotEqual(t, reference, Sign(base, "other-secret"))
}

func TestSign_EmptyValuesExcluded(t *testing.T) {
	withEmpty := map[string]any{
		"app_key":   "test-key",
		"timestamp": int64(1700000000000),
		"language":  "",
		"scrollId":  nil,
	}
	withoutEmpty := map[string]any{
		"app_key":   "test-key",
		"timestamp": int64(1700000000000),
	}

	require.Equal(t, Sign(withoutEmpty, "secret"), Sign(withEmpty, "secret"))
}

func TestSign_SpacesBecomePlus(t *testing.T) {
	pairs := canonicalString(map[string]any{
		"title": "Air Jordan 1",
	})

	require.Equal(t, "title=Air+Jordan+1", pairs)
	require.NotContains(t, pairs, "%20")
}

func TestCanonicalString_SortedAndEncoded(t *testing.T) {
	got := canonicalString(map[string]any{
		"region":    "US",
		"app_key":   "k",
		"timestamp": int64(1700000000000),
		"query":     "size 270/한국",
	})

	require.Equal(t,
		"app_key=k&query=size+270%2F%ED%95%9C%EA%B5%AD&region=US&timestamp=1700000000000",
		got,
	)
}

func TestValueString(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		want  string
	}{
		{name: "String", value: "DD1503-101", want: "DD1503-101"},
		{name: "Int64", value: int64(123456789), want: "123456789"},
		{name: "Float keeps natural form", value: 850.5, want: "850.5"},
		{name: "Whole float has no fraction", value: float64(850), want: "850"},
		{name: "Bool", value: true, want: "true"},
		{name: "Scalar slice comma joined", value: []int64{1, 2, 3}, want: "1,2,3"},
		{
			name:  "Object slice elements are json encoded",
			value: []map[string]string{{"region": "US"}},
			want:  `{"region":"US"}`,
		},
		{
			name:  "Object is json encoded",
			value: map[string]string{"language": "en"},
			want:  `{"language":"en"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, valueString(tc.value))
		})
	}
}
