package benchmark

import "fmt"

// Tool names the producer of an entry and with it the comparison direction.
type Tool string

const (
	ToolCustomSmallerIsBetter Tool = "customSmallerIsBetter"
	ToolCustomBiggerIsBetter  Tool = "customBiggerIsBetter"
	ToolGo                    Tool = "go"
	ToolBenchmarkJS           Tool = "benchmarkjs"
	ToolPytest                Tool = "pytest"
	ToolGoogleCpp             Tool = "googlecpp"
	ToolCatch2                Tool = "catch2"
	ToolCargo                 Tool = "cargo"
	ToolBenchmarkDotNet       Tool = "benchmarkdotnet"
)

// Tools lists every recognised tool.
var Tools = []Tool{
	ToolCustomSmallerIsBetter,
	ToolCustomBiggerIsBetter,
	ToolGo,
	ToolBenchmarkJS,
	ToolPytest,
	ToolGoogleCpp,
	ToolCatch2,
	ToolCargo,
	ToolBenchmarkDotNet,
}

// Valid reports whether t is a recognised tool.
func (t Tool) Valid() bool {
	for _, k := range Tools {
		if t == k {
			return true
		}
	}
	return false
}

// BiggerIsBetter reports whether higher values are improvements for t.
// benchmarkjs and pytest report throughput (ops/sec).
func (t Tool) BiggerIsBetter() bool {
	switch t {
	case ToolCustomBiggerIsBetter, ToolBenchmarkJS, ToolPytest:
		return true
	}
	return false
}

// ParseTool converts a string into a Tool, rejecting unknown names.
func ParseTool(s string) (Tool, error) {
	t := Tool(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
	}
	return t, nil
}
