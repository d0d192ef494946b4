// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestGlobalTopNSelect(t *testing.T) {
	papers := []types.Paper{
		paper("low", 1),
		paper("high-a", 3),
		paper("mid", 2),
		paper("high-b", 3),
	}

	tests := []struct {
		name string
		max  int
		want []int
	}{
		{"zero budget", 0, nil},
		{"ties keep input order", 2, []int{1, 3}},
		{"budget above batch size", 10, []int{1, 3, 2, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := GlobalTopN{Max: tc.max}.Select(papers)
			assert.Equal(t, tc.want, sel.Order)
			assert.Equal(t, len(tc.want), sel.Len())
			for _, i := range tc.want {
				assert.True(t, sel.Selected(i))
			}
		})
	}
}

func TestSelectionUsesIndicesNotIdentity(t *testing.T) {
	// Two equal values must be tracked separately.
	papers := []types.Paper{paper("same", 2), paper("same", 2)}
	sel := GlobalTopN{Max: 1}.Select(papers)
	assert.True(t, sel.Selected(0))
	assert.False(t, sel.Selected(1))
}

func TestPerTopicSelect(t *testing.T) {
	papers := []types.Paper{
		paper("a", 2, "asset_pricing", "quant_trading"),
		paper("b", 2, "asset_pricing"),
		paper("c", 2, "asset_pricing", "quant_trading"),
		paper("d", 1, "quant_trading"),
		paper("e", 1),
		paper("f", 1, "tail_risk"),
	}

	sel := PerTopic{Cap: 2}.Select(papers)
	// c is still selected because quant_trading has one paper when it is reached.
	assert.Equal(t, []int{0, 1, 2, 5}, sel.Order)
	assert.False(t, sel.Selected(3), "quant_trading full after a and c")
	assert.False(t, sel.Selected(4), "papers without topics are never selected")
}

func TestPerTopicZeroCap(t *testing.T) {
	sel := PerTopic{Cap: 0}.Select([]types.Paper{paper("a", 3, "asset_pricing")})
	assert.Zero(t, sel.Len())
}

func TestNewSelector(t *testing.T) {
	cfg := testEnrichConfig()

	s, err := NewSelector(cfg)
	require.NoError(t, err)
	assert.Equal(t, GlobalTopN{Max: 10}, s)

	cfg.Policy = types.PolicyPerTopic
	s, err = NewSelector(cfg)
	require.NoError(t, err)
	assert.Equal(t, PerTopic{Cap: 2}, s)

	cfg.Policy = "random"
	_, err = NewSelector(cfg)
	assert.Error(t, err)
}
