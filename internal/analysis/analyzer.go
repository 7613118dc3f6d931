// Package analysis applies static heuristics to submitted source code to
// flag energy-inefficient structure: decision-point complexity, loop
// nesting, and rough FLOP/cycle estimates. It tokenizes by line and
// keyword; it is deliberately not a real parser.
package analysis

import (
	"math"
	"regexp"
	"strings"
)

// Issue severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Issue types.
const (
	IssueHighComplexity   = "high_complexity"
	IssueNestedLoops      = "nested_loops"
	IssueLargeFile        = "large_file"
	IssueUnbalancedBraces = "unbalanced_braces"
)

const (
	complexityIssueThreshold = 10
	nestingIssueThreshold    = 2
	largeFileThreshold       = 100

	flopsPerComplexityLine  = 1000
	cyclesPerComplexityLine = 500
)

// Issue is one detected inefficiency or structural problem.
type Issue struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// FunctionComplexity is the decision-point count of one function.
type FunctionComplexity struct {
	Function   string `json:"function"`
	Complexity int    `json:"complexity"`
}

// Complexity aggregates the decision-point analysis.
type Complexity struct {
	TotalComplexity      int                  `json:"total_complexity"`
	FunctionComplexities []FunctionComplexity `json:"function_complexities"`
	MaxNestingDepth      int                  `json:"max_nesting_depth"`
}

// Metrics holds size and maintainability figures.
type Metrics struct {
	MaintainabilityIndex float64 `json:"maintainability_index"`
	LinesOfCode          int     `json:"lines_of_code"`
}

// Report is the full static analysis result.
type Report struct {
	Complexity         Complexity `json:"complexity"`
	Metrics            Metrics    `json:"metrics"`
	Issues             []Issue    `json:"issues"`
	EstimatedFLOPs     int64      `json:"estimated_flops"`
	EstimatedCPUCycles int64      `json:"estimated_cpu_cycles"`
}

var (
	pythonFuncPattern = regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`)
	braceFuncPattern  = regexp.MustCompile(`^\s*(?:func|function)\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`)

	decisionPattern = regexp.MustCompile(`\b(if|for|while|case|elif|except|catch|when)\b|&&|\|\||\band\b|\bor\b`)
	loopPattern     = regexp.MustCompile(`^\s*(?:for|while)\b|\bfor\s*\(|\bwhile\s*\(`)
)

// Analyze runs the heuristics over the given source. The language selects
// the function-detection and nesting strategy; anything that is not python
// is treated as a brace language.
func Analyze(code, language string) Report {
	lines := strings.Split(code, "\n")
	loc := countCodeLines(lines)
	python := strings.EqualFold(language, "python")

	report := Report{}
	report.Metrics.LinesOfCode = loc

	report.Complexity = measureComplexity(lines, python)
	report.Metrics.MaintainabilityIndex = maintainabilityIndex(code, loc, report.Complexity.TotalComplexity)
	report.Issues = collectIssues(code, loc, python, report.Complexity)

	// Rough cost model: every line costs work proportional to how much
	// branching surrounds it.
	complexityFactor := report.Complexity.TotalComplexity
	if complexityFactor < 1 {
		complexityFactor = 1
	}
	report.EstimatedFLOPs = int64(loc) * int64(complexityFactor) * flopsPerComplexityLine
	report.EstimatedCPUCycles = int64(loc) * int64(complexityFactor) * cyclesPerComplexityLine

	return report
}

// EstimatedDurationSeconds converts the cycle estimate into a synthetic
// execution duration for the code_execution emission estimate, assuming a
// nominal million cycles per second of attributable work.
func (r Report) EstimatedDurationSeconds() float64 {
	return float64(r.EstimatedCPUCycles) / 1_000_000
}

func countCodeLines(lines []string) int {
	count := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

func measureComplexity(lines []string, python bool) Complexity {
	c := Complexity{}

	funcPattern := braceFuncPattern
	if python {
		funcPattern = pythonFuncPattern
	}

	current := "" // current function name, "" = module level
	counts := map[string]int{}
	order := []string{}

	var loopStack []int // indent (python) or brace depth at loop entry
	braceDepth := 0

	for _, raw := range lines {
		line := stripLineComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := funcPattern.FindStringSubmatch(line); m != nil {
			current = m[1]
			if _, seen := counts[current]; !seen {
				counts[current] = 1 // base complexity of one path
				order = append(order, current)
			}
			loopStack = loopStack[:0]
			continue
		}

		if current != "" {
			counts[current] += len(decisionPattern.FindAllString(line, -1))
		} else {
			c.TotalComplexity += len(decisionPattern.FindAllString(line, -1))
		}

		if python {
			indent := indentOf(line)
			for len(loopStack) > 0 && loopStack[len(loopStack)-1] >= indent {
				loopStack = loopStack[:len(loopStack)-1]
			}
			if loopPattern.MatchString(line) {
				loopStack = append(loopStack, indent)
			}
		} else {
			if loopPattern.MatchString(line) {
				loopStack = append(loopStack, braceDepth)
			}
			braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
			for len(loopStack) > 0 && braceDepth <= loopStack[len(loopStack)-1] && !loopPattern.MatchString(line) {
				loopStack = loopStack[:len(loopStack)-1]
			}
		}
		if len(loopStack) > c.MaxNestingDepth {
			c.MaxNestingDepth = len(loopStack)
		}
	}

	for _, name := range order {
		c.FunctionComplexities = append(c.FunctionComplexities, FunctionComplexity{
			Function:   name,
			Complexity: counts[name],
		})
		c.TotalComplexity += counts[name]
	}
	return c
}

// maintainabilityIndex approximates the classic MI on a 0-100 scale using
// token counts in place of a Halstead operator analysis.
func maintainabilityIndex(code string, loc, complexity int) float64 {
	if loc == 0 {
		return 100
	}

	tokens := strings.Fields(code)
	unique := map[string]struct{}{}
	for _, tok := range tokens {
		unique[tok] = struct{}{}
	}

	volume := 1.0
	if len(unique) > 1 {
		volume = float64(len(tokens)) * math.Log2(float64(len(unique)))
	}

	mi := 171 - 5.2*math.Log(volume) - 0.23*float64(complexity) - 16.2*math.Log(float64(loc))
	mi = mi * 100 / 171
	if mi < 0 {
		return 0
	}
	if mi > 100 {
		return 100
	}
	return mi
}

func collectIssues(code string, loc int, python bool, c Complexity) []Issue {
	var issues []Issue

	for _, fc := range c.FunctionComplexities {
		if fc.Complexity > complexityIssueThreshold {
			issues = append(issues, Issue{
				Type:       IssueHighComplexity,
				Severity:   SeverityMedium,
				Message:    "function '" + fc.Function + "' has high cyclomatic complexity",
				Suggestion: "consider breaking it down into smaller functions",
			})
		}
	}

	if c.MaxNestingDepth > nestingIssueThreshold {
		issues = append(issues, Issue{
			Type:       IssueNestedLoops,
			Severity:   SeverityHigh,
			Message:    "code contains deeply nested loops",
			Suggestion: "refactor to reduce nesting or use vectorized operations",
		})
	}

	if loc > largeFileThreshold {
		issues = append(issues, Issue{
			Type:       IssueLargeFile,
			Severity:   SeverityLow,
			Message:    "large source file",
			Suggestion: "consider splitting into modules",
		})
	}

	if !python && strings.Count(code, "{") != strings.Count(code, "}") {
		issues = append(issues, Issue{
			Type:       IssueUnbalancedBraces,
			Severity:   SeverityHigh,
			Message:    "unbalanced braces, analysis may be inaccurate",
			Suggestion: "fix syntax errors before analysis",
		})
	}

	return issues
}

func stripLineComment(line string) string {
	for _, marker := range []string{"//", "#"} {
		if idx := strings.Index(line, marker); idx >= 0 {
			line = line[:idx]
		}
	}
	return line
}

func indentOf(line string) int {
	indent := 0
	for _, r := range line {
		switch r {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			return indent
		}
	}
	return indent
}
