package grammar

import (
	"fmt"
	"strings"
)

// Action is a semantic action applied to children of a completed rule.
// origin is the index of the column where the rule match starts.
// Returning Fail rejects the derivation.
type Action func(d []any, origin int) any

type reject struct{}

// Fail is the rejection sentinel returned by actions.
var Fail any = &reject{}

// Builtins contains actions used by compiler-generated rules, available to every compiled table.
var Builtins = map[string]Action{
	"joiner":    Joiner,
	"arrconcat": ArrConcat,
	"arrpush":   ArrPush,
	"nuller":    Nuller,
	"id":        ID,
}

// Joiner concatenates string representations of children, nested lists are flattened and nils are skipped.
func Joiner(d []any, _ int) any {
	sb := &strings.Builder{}
	join(sb, d)
	return sb.String()
}

func join(sb *strings.Builder, d []any) {
	for _, item := range d {
		switch v := item.(type) {
		case nil:
		case string:
			sb.WriteString(v)
		case []any:
			join(sb, v)
		default:
			fmt.Fprint(sb, v)
		}
	}
}

// ArrConcat prepends the first child to the list in the second one.
func ArrConcat(d []any, _ int) any {
	tail, _ := d[1].([]any)
	res := make([]any, 0, len(tail)+1)
	res = append(res, d[0])
	return append(res, tail...)
}

// ArrPush appends the second child to the list in the first one.
// The list is copied since it may be shared by several derivations.
func ArrPush(d []any, _ int) any {
	head, _ := d[0].([]any)
	res := make([]any, 0, len(head)+1)
	res = append(res, head...)
	return append(res, d[1])
}

// Nuller returns nil.
func Nuller([]any, int) any {
	return nil
}

// ID returns the first child.
func ID(d []any, _ int) any {
	if len(d) == 0 {
		return nil
	}
	return d[0]
}

// IsFail reports whether v is the rejection sentinel.
func IsFail(v any) bool {
	_, f := v.(*reject)
	return f
}
