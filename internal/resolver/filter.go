package resolver

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/zjrosen/modekit/internal/cachemanager"
	"github.com/zjrosen/modekit/internal/component"
)

// Filter keeps the components for which expression evaluates to true.
// The expression sees name, kind (the component type), origin, path, format
// (how metadata was decoded), description, tags and meta (the raw metadata
// fields), e.g. `"planning" in tags && origin != "builtin"`.
// Unknown variables evaluate to nil.
func (r *Resolver) Filter(list []component.Resolved, expression string) ([]component.Resolved, error) {
	if expression == "" {
		return list, nil
	}
	program, err := r.compileFilter(expression)
	if err != nil {
		return nil, err
	}

	var kept []component.Resolved
	for _, c := range list {
		result, err := exprlang.Run(program, filterEnv(c))
		if err != nil {
			return nil, fmt.Errorf("evaluating filter on %s: %w", c.Key(), err)
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("filter %q returned %T, want bool", expression, result)
		}
		if keep {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

func (r *Resolver) compileFilter(expression string) (*exprvm.Program, error) {
	key := "filter:" + expression
	if program, ok := cachemanager.GetAs[*exprvm.Program](r.cache, key); ok {
		return program, nil
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", expression, err)
	}
	r.cache.Set(key, program)
	return program, nil
}

func filterEnv(c component.Resolved) map[string]any {
	fields := c.Metadata.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	tags := c.Metadata.Tags()
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"name":        c.Name,
		"kind":        string(c.Type),
		"origin":      string(c.Origin),
		"path":        c.Path,
		"format":      string(c.Metadata.Kind),
		"description": c.Metadata.Description(),
		"tags":        tags,
		"meta":        fields,
	}
}
