package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvci/internal/uvci"
)

func TestMonthAbbreviation(t *testing.T) {
	assert.Equal(t, "Jan", MonthAbbreviation(1))
	assert.Equal(t, "Aug", MonthAbbreviation(8))
	assert.Equal(t, "Dec", MonthAbbreviation(12))
	assert.Equal(t, "Unknown", MonthAbbreviation(0))
	assert.Equal(t, "Unknown", MonthAbbreviation(13))
}

func TestGraph(t *testing.T) {
	t.Run("national variant emits five statements", func(t *testing.T) {
		stmts := Graph(uvci.Parse("URN:UVCI:01:SE:EHM/V12916227TFJJ#Q"))
		assert.Equal(t, []string{
			"CREATE (SE:country {name:'Sweden'})-[:COUNTRY_OF {}]->(EHM:issuing_entity {name:'E-Hälso Myndigheten'})",
			"CREATE (EHM)-[:ISSUER_OF {}]->(V12916227:opaque_id {name:'V12916227'})",
			"CREATE (d20218:vac_date {name:'Aug 2021'})",
			"CREATE (d20218)-[:VAC_DATE_OF {}]->(V12916227)",
			"CREATE (V12916227TFJJ:reissue_id {name:'TFJJ'})-[:REISSUE_OF {}]->(V12916227)",
		}, stmts)
	})

	t.Run("date node joins year and month without separator", func(t *testing.T) {
		stmts := Graph(uvci.Parse("URN:UVCI:01:SE:EHM/V00016227TFJJ#Q"))
		require.Len(t, stmts, 5)
		assert.Equal(t, "CREATE (d202012:vac_date {name:'Dec 2020'})", stmts[2])
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "other country", input: "URN:UVCI:01:IT:84A0F1A35F1D454C96939812CA55D571#F"},
		{name: "other version", input: "urn:uvci:98:se:ehm/v12982924yqmv#t"},
		{name: "semantic layout", input: "URN:UVCI:01:SE:EHM/C878/123456789ABC#B"},
		{name: "short opaque string", input: "URN:UVCI:01:SE:EHM/V1291622TFJJ#Q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Graph(uvci.Parse(tt.input)))
		})
	}
}

var graphBatchInput = []string{
	"URN:UVCI:01:SE:EHM/V12907267LAJW#E",
	"URN:UVCI:01:SE:EHM/V12916227TFJJ#Q",
	"URN:UVCI:01:IT:84A0F1A35F1D454C96939812CA55D571#F",
	"",
	"URN:UVCI:01:SE:EHM/V12916227TFJJ#Q",
}

func TestGraphBatch(t *testing.T) {
	t.Run("shared nodes are created once", func(t *testing.T) {
		stmts := GraphBatch(graphBatchInput)
		assert.Equal(t, []string{
			"CREATE (SE:country {name:'Sweden'})-[:COUNTRY_OF {}]->(EHM:issuing_entity {name:'E-Hälso Myndigheten'})",
			"CREATE (EHM)-[:ISSUER_OF {}]->(V12907267:opaque_id {name:'V12907267'})",
			"CREATE (d20218:vac_date {name:'Aug 2021'})",
			"CREATE (d20218)-[:VAC_DATE_OF {}]->(V12907267)",
			"CREATE (V12907267LAJW:reissue_id {name:'LAJW'})-[:REISSUE_OF {}]->(V12907267)",
			"CREATE (EHM)-[:ISSUER_OF {}]->(V12916227:opaque_id {name:'V12916227'})",
			"CREATE (d20218)-[:VAC_DATE_OF {}]->(V12916227)",
			"CREATE (V12916227TFJJ:reissue_id {name:'TFJJ'})-[:REISSUE_OF {}]->(V12916227)",
		}, stmts)
	})

	t.Run("repeating the input adds nothing", func(t *testing.T) {
		once := GraphBatch(graphBatchInput)
		twice := GraphBatch(append(append([]string(nil), graphBatchInput...), graphBatchInput...))
		assert.Equal(t, once, twice)
	})

	t.Run("no line appears twice", func(t *testing.T) {
		seen := map[string]bool{}
		for _, stmt := range GraphBatch(append(graphBatchInput, graphBatchInput...)) {
			assert.False(t, seen[stmt], stmt)
			seen[stmt] = true
		}
	})

	t.Run("records without graph data yield nothing", func(t *testing.T) {
		assert.Empty(t, GraphBatch([]string{"", "URN:UVCI:01:NL:187/37512422923"}))
	})
}

func TestRenderGraph(t *testing.T) {
	stmts := GraphBatch(graphBatchInput[:1])

	t.Run("one statement per line with return directive", func(t *testing.T) {
		out := RenderGraph(stmts, true)
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		assert.Len(t, lines, len(stmts)+1)
		assert.Equal(t, ReturnDirective, lines[len(lines)-1])
		assert.True(t, strings.HasSuffix(out, "RETURN *\n"))
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		input := make([]string, len(stmts), len(stmts)+4)
		copy(input, stmts)
		_ = RenderGraph(input, true)
		assert.Equal(t, stmts, input[:len(stmts)])
		assert.Len(t, input, len(stmts))
	})

	t.Run("without directive", func(t *testing.T) {
		assert.Equal(t, strings.Join(stmts, "\n")+"\n", RenderGraph(stmts, false))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, RenderGraph(nil, false))
		assert.Equal(t, "RETURN *\n", RenderGraph(nil, true))
	})
}
