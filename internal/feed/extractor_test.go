package feed

import (
	"testing"

	"github.com/arenawatch/position-watcher/internal/model"
	"github.com/stretchr/testify/assert"
)

func payloadWithIDs(ids ...string) model.RawPayload {
	var payload model.RawPayload
	for _, id := range ids {
		payload.Positions = append(payload.Positions, model.ModelEntry{ID: id})
	}
	return payload
}

func selectedIDs(accounts []model.TrackedAccount) []string {
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestSelectAccounts(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		prefixes []string
		want     []string
	}{
		{
			name:     "prefix match",
			ids:      []string{"qwen-alpha"},
			prefixes: []string{"qwen"},
			want:     []string{"qwen-alpha"},
		},
		{
			name:     "no match",
			ids:      []string{"llama-x"},
			prefixes: []string{"deepseek", "qwen"},
			want:     []string{},
		},
		{
			name:     "case insensitive",
			ids:      []string{"DeepSeek-V3", "QWEN-max"},
			prefixes: []string{"deepseek", "qwen"},
			want:     []string{"DeepSeek-V3", "QWEN-max"},
		},
		{
			name:     "subset selected",
			ids:      []string{"deepseek-v3", "llama-x", "qwen-alpha"},
			prefixes: []string{"qwen"},
			want:     []string{"qwen-alpha"},
		},
		{
			name:     "empty payload",
			ids:      nil,
			prefixes: []string{"qwen"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectAccounts(payloadWithIDs(tt.ids...), tt.prefixes)
			assert.Equal(t, tt.want, selectedIDs(selected))
		})
	}
}

func TestSelectAccountsBothShapes(t *testing.T) {
	payload := model.RawPayload{
		Positions:     []model.ModelEntry{{ID: "deepseek-v3"}},
		AccountTotals: []model.AccountTotalsEntry{{ModelID: "deepseek-r1"}, {ModelID: "llama-x"}},
	}

	selected := SelectAccounts(payload, []string{"deepseek"})
	assert.Equal(t, []string{"deepseek-v3", "deepseek-r1"}, selectedIDs(selected))
}
