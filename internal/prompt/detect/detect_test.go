package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	ctx := Detect("create a report from this data for meta ads so I can send it to my manager")

	assert.True(t, ctx.HasData)
	assert.False(t, ctx.NeedsData)
	assert.Equal(t, "manager", ctx.Stakeholder)
	assert.Equal(t, 17, ctx.QueryLength)
}

func TestStakeholder(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"send to", "please send to finance by friday", "finance"},
		{"for my", "a summary for my CLIENT", "client"},
		{"present to", "slides I will present to executives", "executives"},
		{"share with", "notes to share with team", "team"},
		{"for the", "a deck for the board", "board"},
		{"first pattern in list wins", "for the board, then send to alice", "alice"},
		{"none", "just a chart", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stakeholder(tt.query))
		})
	}
}

func TestDataContext(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		hasData   bool
		needsData bool
	}{
		{"has data", "Here's the data from last week", true, false},
		{"dataset", "summarize this dataset", true, false},
		{"needs data", "which metrics matter for retention", false, true},
		{"track", "What should I track for SEO?", false, true},
		{"both", "using this data, what data am I missing", true, true},
		{"neither", "write a poem", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasData, needsData := DataContext(tt.query)
			assert.Equal(t, tt.hasData, hasData)
			assert.Equal(t, tt.needsData, needsData)
		})
	}
}

func TestDetect_EmptyQuery(t *testing.T) {
	ctx := Detect("   ")
	assert.Equal(t, 0, ctx.QueryLength)
	assert.Empty(t, ctx.Stakeholder)
}
