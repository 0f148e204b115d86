package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProbeDurationFormat(t *testing.T) {
	raw := `{"format":{"duration":"12.500000"},"streams":[]}`

	got, err := parseProbeDuration(raw)
	require.NoError(t, err)
	require.InDelta(t, 12.5, got, 1e-9)
}

func TestParseProbeDurationStreamFallback(t *testing.T) {
	raw := `{"format":{},"streams":[{"codec_type":"audio"},{"codec_type":"video","duration":"3.200000"}]}`

	got, err := parseProbeDuration(raw)
	require.NoError(t, err)
	require.InDelta(t, 3.2, got, 1e-9)
}

func TestParseProbeDurationZero(t *testing.T) {
	// 零时长能被解析出来，合不合法由归一化阶段判断
	raw := `{"format":{"duration":"0.000000"}}`

	got, err := parseProbeDuration(raw)
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestParseProbeDurationInvalid(t *testing.T) {
	cases := []string{
		"not json at all",
		`{"format":{"duration":"N/A"}}`,
		`{"format":{},"streams":[]}`,
	}

	for _, raw := range cases {
		_, err := parseProbeDuration(raw)
		require.ErrorIs(t, err, ErrProbe, "raw: %s", raw)
	}
}
