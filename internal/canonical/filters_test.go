package canonical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadcountRange_JSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected HeadcountRange
		wantErr  bool
	}{
		{
			name:     "numeric pair",
			raw:      `[50, 200]`,
			expected: HeadcountRange{Min: 50, Max: 200},
		},
		{
			name:     "bucket labels",
			raw:      `["51-200", "201-500"]`,
			expected: HeadcountRange{Buckets: []string{"51-200", "201-500"}},
		},
		{
			name:    "mixed values rejected",
			raw:     `[50, "51-200"]`,
			wantErr: true,
		},
		{
			name:    "single number rejected",
			raw:     `[50]`,
			wantErr: true,
		},
		{
			name:    "not an array",
			raw:     `{"min": 50}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r HeadcountRange
			err := json.Unmarshal([]byte(tt.raw), &r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)

			// Marshal back to the same representation.
			out, err := json.Marshal(r)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out))
		})
	}
}

func TestHeadcountRange_IsOpenEnded(t *testing.T) {
	assert.True(t, HeadcountRange{Min: 1000, Max: OpenEndedHeadcount}.IsOpenEnded())
	assert.True(t, HeadcountRange{Min: 1, Max: OpenEndedHeadcount + 5}.IsOpenEnded())
	assert.False(t, HeadcountRange{Min: 50, Max: 200}.IsOpenEnded())
	assert.False(t, HeadcountRange{Buckets: []string{"1-10"}}.IsOpenEnded())
}

func TestCanonicalFilters_OmitsAbsentFields(t *testing.T) {
	out, err := json.Marshal(CanonicalFilters{Industry: []string{IndustrySoftware}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"industry": ["Software Development"]}`, string(out))
}
