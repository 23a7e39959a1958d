package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// comparisons bind a single named argument.
var comparisons = map[string]string{
	FilterOperatorEq:        "%s = :%s",
	FilterOperatorNotEq:     "%s != :%s",
	FilterOperatorLessEq:    "%s <= :%s",
	FilterOperatorGreaterEq: "%s >= :%s",
	FilterOperatorLike:      "LOWER(%s) LIKE LOWER(:%s)",
}

// Filter is one condition on Field. ArgName overrides the bind name when the
// same field appears twice in a group.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the condition with named placeholders. An unknown
// operator renders nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	name := f.argName()

	if format, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value
		if f.Operator == FilterOperatorLike {
			args[name] = fmt.Sprintf("%%%v%%", f.Value)
		}

		return fmt.Sprintf(format, f.column(), name), args
	}

	switch f.Operator {
	case FilterIsNull:
		return f.column() + " IS NULL", args
	case FilterIsNotNull:
		return f.column() + " IS NOT NULL", args
	case FilterOperatorIn:
		return f.inClause(name, args), args
	}

	return "", args
}

// inClause expands a slice value into one placeholder per element. An empty
// slice matches nothing.
func (f *Filter) inClause(name string, args map[string]any) string {
	values := reflect.ValueOf(f.Value)
	if values.Kind() != reflect.Slice && values.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s)", f.column(), name)
	}

	if values.Len() == 0 {
		return "FALSE"
	}

	placeholders := make([]string, values.Len())

	for i := range values.Len() {
		key := fmt.Sprintf("%s_%d", name, i)
		args[key] = values.Index(i).Interface()
		placeholders[i] = ":" + key
	}

	return fmt.Sprintf("%s IN (%s)", f.column(), strings.Join(placeholders, ", "))
}

// FilterGroup joins Filters, which may be Filter or nested FilterGroup values,
// with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (g *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(g.Filters))

	for _, item := range g.Filters {
		var (
			clause string
			arg    map[string]any
		)

		switch filter := item.(type) {
		case Filter:
			clause, arg = filter.GetWhereClause()
		case FilterGroup:
			clause, arg = filter.GetWhereClause()
		default:
			continue
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+g.Operator+" ") + ")", args
}
