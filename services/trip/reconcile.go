package trip

import (
	"encoding/json"
	"strings"

	"tripbot/models"
)

// Result is the reconciler's tagged outcome: either a typed value or the
// untouched raw text for the caller to surface. It is always a value,
// never a panic or a Go error.
type Result[T any] struct {
	OK    bool
	Value T
	Raw   string
}

// Reconcile coerces a collaborator reply into a typed value. Strategies
// are applied in order, first success wins:
//  1. the structured bytes the collaborator natively returned, if any;
//  2. the raw text as-is;
//  3. when the first or last non-empty line is a markdown fence, the
//     raw text with its fence lines stripped.
//
// Each candidate must decode as JSON with every required schema field
// present and correctly typed; extra fields are ignored. When nothing
// succeeds the raw text is preserved verbatim in the failure.
func Reconcile[T any](out GenerateOutput, schema models.Schema) Result[T] {
	candidates := make([][]byte, 0, 3)
	if len(out.Structured) > 0 {
		candidates = append(candidates, out.Structured)
	}
	text := strings.TrimSpace(out.Text)
	candidates = append(candidates, []byte(text))
	if stripped := stripFences(text); stripped != text {
		candidates = append(candidates, []byte(stripped))
	}

	for _, c := range candidates {
		if v, ok := strictParse[T](c, schema); ok {
			return Result[T]{OK: true, Value: v}
		}
	}
	return Result[T]{Raw: out.Text}
}

// strictParse decodes data and validates the schema's required fields.
func strictParse[T any](data []byte, schema models.Schema) (T, bool) {
	var zero T
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return zero, false
	}
	for _, f := range schema {
		v, ok := fields[f.Name]
		if !ok {
			return zero, false
		}
		switch f.Kind {
		case models.KindString:
			if _, ok := v.(string); !ok {
				return zero, false
			}
		case models.KindNumber:
			if _, ok := v.(float64); !ok {
				return zero, false
			}
		}
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, false
	}
	return out, true
}

// stripFences removes markdown code-fence lines, but only when the text
// is actually fence-wrapped: the first and/or last non-empty line must
// be a fence. A fence line anywhere else is ordinary content.
func stripFences(text string) string {
	lines := strings.Split(text, "\n")
	first, last := -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}
	if first == -1 || (!isFenceLine(lines[first]) && !isFenceLine(lines[last])) {
		return strings.TrimSpace(text)
	}

	kept := lines[:0]
	for _, line := range lines {
		if isFenceLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// isFenceLine reports whether the line's first non-space characters are
// a triple backtick, optionally followed by a language tag.
func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}
