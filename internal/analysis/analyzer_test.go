package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonNestedLoops = `
def process(items):
    for i in items:
        for j in i:
            for k in j:
                total += k
`

const goSimple = `
func main() {
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			fmt.Println(i)
		}
	}
}
`

func TestAnalyze_PythonNestedLoops(t *testing.T) {
	report := Analyze(pythonNestedLoops, "python")

	assert.Equal(t, 3, report.Complexity.MaxNestingDepth)
	require.Len(t, report.Complexity.FunctionComplexities, 1)
	assert.Equal(t, "process", report.Complexity.FunctionComplexities[0].Function)
	assert.Equal(t, 4, report.Complexity.FunctionComplexities[0].Complexity)

	var types []string
	for _, issue := range report.Issues {
		types = append(types, issue.Type)
	}
	assert.Contains(t, types, IssueNestedLoops)
}

func TestAnalyze_GoFunction(t *testing.T) {
	report := Analyze(goSimple, "go")

	require.Len(t, report.Complexity.FunctionComplexities, 1)
	assert.Equal(t, "main", report.Complexity.FunctionComplexities[0].Function)
	// One base path, one for, one if.
	assert.Equal(t, 3, report.Complexity.FunctionComplexities[0].Complexity)
	assert.Equal(t, 1, report.Complexity.MaxNestingDepth)

	for _, issue := range report.Issues {
		assert.NotEqual(t, IssueNestedLoops, issue.Type)
	}
}

func TestAnalyze_EmptyCode(t *testing.T) {
	report := Analyze("", "python")

	assert.Zero(t, report.Metrics.LinesOfCode)
	assert.Zero(t, report.Complexity.TotalComplexity)
	assert.Empty(t, report.Issues)
	// Even empty code carries the single-line floor of the cost model.
	assert.Zero(t, report.EstimatedFLOPs)
}

func TestAnalyze_HighComplexityIssue(t *testing.T) {
	var b strings.Builder
	b.WriteString("def tangled(x):\n")
	for i := 0; i < 12; i++ {
		b.WriteString("    if x:\n        x -= 1\n")
	}

	report := Analyze(b.String(), "python")

	var found bool
	for _, issue := range report.Issues {
		if issue.Type == IssueHighComplexity {
			found = true
			assert.Equal(t, SeverityMedium, issue.Severity)
			assert.Contains(t, issue.Message, "tangled")
		}
	}
	assert.True(t, found, "expected a high_complexity issue")
}

func TestAnalyze_LargeFileIssue(t *testing.T) {
	code := strings.Repeat("x = 1\n", 150)

	report := Analyze(code, "python")

	var found bool
	for _, issue := range report.Issues {
		if issue.Type == IssueLargeFile {
			found = true
		}
	}
	assert.True(t, found, "expected a large_file issue")
	assert.Equal(t, 150, report.Metrics.LinesOfCode)
}

func TestAnalyze_UnbalancedBraces(t *testing.T) {
	report := Analyze("func broken() {\n\tif x {\n}", "go")

	var found bool
	for _, issue := range report.Issues {
		if issue.Type == IssueUnbalancedBraces {
			found = true
			assert.Equal(t, SeverityHigh, issue.Severity)
		}
	}
	assert.True(t, found, "expected an unbalanced_braces issue")
}

func TestAnalyze_CostModel(t *testing.T) {
	report := Analyze(pythonNestedLoops, "python")

	loc := int64(report.Metrics.LinesOfCode)
	cc := int64(report.Complexity.TotalComplexity)
	assert.Equal(t, loc*cc*1000, report.EstimatedFLOPs)
	assert.Equal(t, loc*cc*500, report.EstimatedCPUCycles)
	assert.InDelta(t, float64(report.EstimatedCPUCycles)/1e6, report.EstimatedDurationSeconds(), 1e-9)
}

func TestAnalyze_MaintainabilityBounds(t *testing.T) {
	for _, code := range []string{"", "x = 1", pythonNestedLoops, strings.Repeat("if x:\n    pass\n", 200)} {
		report := Analyze(code, "python")
		assert.GreaterOrEqual(t, report.Metrics.MaintainabilityIndex, 0.0)
		assert.LessOrEqual(t, report.Metrics.MaintainabilityIndex, 100.0)
	}
}

func TestAnalyze_CommentsIgnored(t *testing.T) {
	report := Analyze("# for for for while if\nx = 1\n", "python")

	assert.Zero(t, report.Complexity.TotalComplexity)
	assert.Zero(t, report.Complexity.MaxNestingDepth)
}
