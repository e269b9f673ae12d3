package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/spf13/pflag"
)

// enumFlag restricts a string flag to a fixed set of values and reports
// them in --help.
type enumFlag struct {
	value   string
	allowed []string
	typ     string
}

var _ pflag.Value = (*enumFlag)(nil)

func newEnumFlag(def, typ string, allowed ...string) *enumFlag {
	return &enumFlag{value: def, allowed: allowed, typ: typ}
}

func (f *enumFlag) String() string { return f.value }
func (f *enumFlag) Type() string   { return f.typ }

func (f *enumFlag) Set(s string) error {
	for _, a := range f.allowed {
		if strings.EqualFold(a, s) {
			f.value = a
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.allowed, ", "))
}

func (f *enumFlag) usage(text string) string {
	return fmt.Sprintf("%s (%s)", text, strings.Join(f.allowed, "|"))
}

func goalFlag() *enumFlag {
	names := make([]string, len(domain.OptimizationGoals))
	for i, g := range domain.OptimizationGoals {
		names[i] = string(g)
	}
	return newEnumFlag(string(domain.GoalBalanced), "goal", names...)
}

func matrixTypeFlag() *enumFlag {
	names := make([]string, len(domain.MatrixTypes))
	for i, m := range domain.MatrixTypes {
		names[i] = string(m)
	}
	return newEnumFlag(string(domain.MatrixEffortImpact), "matrix", names...)
}

func outputFlag() *enumFlag {
	return newEnumFlag(outputText, "format", outputText, outputJSON, outputYAML)
}

// functionsFlag parses a comma-separated list of function codes or names.
type functionsFlag struct {
	functions []domain.Function
}

var _ pflag.Value = (*functionsFlag)(nil)

func (f *functionsFlag) String() string {
	parts := make([]string, len(f.functions))
	for i, fn := range f.functions {
		parts[i] = string(fn)
	}
	return strings.Join(parts, ",")
}

func (f *functionsFlag) Type() string { return "functions" }

func (f *functionsFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		fn, err := domain.ParseFunction(part)
		if err != nil {
			return err
		}
		f.functions = append(f.functions, fn)
	}
	return nil
}

// scopeFlags registers the flags shared by every planning command.
type scopeFlags struct {
	target    string
	functions functionsFlag
	minGap    float64
}

func (s *scopeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&s.target, "target", "", "Target profile (default: fully implemented everywhere)")
	fs.Var(&s.functions, "function", "Limit to functions, e.g. GV,PR")
	fs.Float64Var(&s.minGap, "min-gap", 0, "Minimum gap score (0-100)")
}
