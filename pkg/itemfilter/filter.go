// Package itemfilter compiles CEL filter expressions into predicates over
// study items. Expressions see a fixed set of fields:
//
//	content    string — the item content
//	item_type  string — vocabulary, grammar, phrase, conversation, other
//	difficulty string — beginner, intermediate, advanced
//	page       string — the source page title
//	tags       list<string>
//
// Example: `item_type == "vocabulary" && "verb" in tags`.
package itemfilter

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/eslsoft/repaso/internal/entity"
)

// Predicate reports whether a study item matches a compiled filter.
type Predicate func(item entity.StudyItem) (bool, error)

var filterEnv *cel.Env

func init() {
	env, err := cel.NewEnv(
		cel.Variable("content", cel.StringType),
		cel.Variable("item_type", cel.StringType),
		cel.Variable("difficulty", cel.StringType),
		cel.Variable("page", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
	)
	if err != nil {
		panic(fmt.Sprintf("itemfilter: build env: %v", err))
	}
	filterEnv = env
}

// Compile validates the expression and returns a predicate. An empty
// expression compiles to a match-everything predicate.
func Compile(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return func(entity.StudyItem) (bool, error) { return true, nil }, nil
	}

	ast, issues := filterEnv.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to a boolean, got %s", ast.OutputType())
	}
	prg, err := filterEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	return func(item entity.StudyItem) (bool, error) {
		out, _, err := prg.Eval(map[string]any{
			"content":    item.Content,
			"item_type":  string(item.Type),
			"difficulty": string(item.Difficulty),
			"page":       item.SourcePageTitle,
			"tags":       item.Tags,
		})
		if err != nil {
			return false, fmt.Errorf("evaluate filter: %w", err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("filter produced %T, want bool", out.Value())
		}
		return matched, nil
	}, nil
}
