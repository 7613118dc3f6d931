package advisor

import (
	"fmt"
	"strings"

	"github.com/enact-eco/enact/internal/analysis"
	"github.com/enact-eco/enact/internal/carbon"
)

// FallbackModel identifies suggestions generated without AI access.
const FallbackModel = "static_analysis_fallback"

var generalTips = []string{
	"1. Use efficient data structures (sets for lookups, lists for iteration)",
	"2. Avoid unnecessary loops - use built-in functions when possible",
	"3. Minimize function calls inside loops",
	"4. Use generators or streaming for large datasets to reduce memory",
	"5. Cache results of expensive computations",
	"6. Profile your code to find the actual bottlenecks",
	"7. Prefer O(n log n) algorithms over O(n^2) where possible",
}

// FallbackCodeSuggestions derives advice from the static analysis alone.
// It always returns a successful suggestion.
func FallbackCodeSuggestions(report analysis.Report) Suggestion {
	var sections []string

	if report.Complexity.TotalComplexity > 15 {
		sections = append(sections, fmt.Sprintf(
			"**High Complexity Detected (%d):** Break complex functions into smaller pieces; fewer branch mispredictions and cache misses mean fewer CPU cycles.",
			report.Complexity.TotalComplexity))
	}
	if mi := report.Metrics.MaintainabilityIndex; mi > 0 && mi < 50 {
		sections = append(sections, fmt.Sprintf(
			"**Low Maintainability Index (%.1f):** Restructure for readability; well-structured code is usually also the efficient shape.", mi))
	}
	for _, issue := range report.Issues {
		switch issue.Type {
		case analysis.IssueNestedLoops:
			sections = append(sections, fmt.Sprintf("**Nested Loops:** %s. %s.", issue.Message, issue.Suggestion))
		case analysis.IssueHighComplexity:
			sections = append(sections, fmt.Sprintf("**Complexity Issue:** %s. %s.", issue.Message, issue.Suggestion))
		case analysis.IssueLargeFile:
			sections = append(sections, fmt.Sprintf(
				"**Large File (%d lines):** %s.", report.Metrics.LinesOfCode, issue.Suggestion))
		}
	}

	sections = append(sections, "**General Energy Efficiency Tips:**\n"+strings.Join(generalTips, "\n"))

	return Suggestion{
		Success:  true,
		Response: "**Optimization Suggestions Based on Static Analysis:**\n\n" + strings.Join(sections, "\n\n"),
		Model:    FallbackModel,
	}
}

// FallbackThresholdAdvice returns canned advice for a crossed emission
// threshold, including everyday equivalents of the current total.
func FallbackThresholdAdvice(currentGrams, thresholdGrams float64, thresholdType string) Suggestion {
	eq := carbon.EquivalencyFor(currentGrams)

	response := fmt.Sprintf(`**Threshold Reached!** (%.2fg CO2 / %.1fg %s limit, %s)

**Quick Actions:**
1. Reduce video streaming quality (saves 30-50%% energy)
2. Take breaks between digital activities
3. Use dark mode to reduce screen energy consumption
4. Close unused browser tabs and applications

**Mindful Usage:**
- Batch similar activities together
- Use Wi-Fi instead of mobile data when possible
- Consider audio-only alternatives for content

**Remember:** Small changes add up. Every reduction helps.`,
		currentGrams, thresholdGrams, thresholdType, eq)

	return Suggestion{
		Success:  true,
		Response: response,
		Model:    FallbackModel,
	}
}
