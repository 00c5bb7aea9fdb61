package remote

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// placeholder matches $$, $name and ${name}.
var placeholder = regexp.MustCompile(`\$(?:(\$)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\})`)

// fillTemplate substitutes every placeholder in the entry's template from
// params. It returns the path and a copy of params without the consumed
// keys. Values are inserted as is, without path escaping. A placeholder
// with no value (or a nil one) is an InvalidArgumentError.
func fillTemplate(entry CommandEntry, params map[string]any) (string, map[string]any, error) {
	body := maps.Clone(params)
	if body == nil {
		body = map[string]any{}
	}

	var missing string
	path := placeholder.ReplaceAllStringFunc(entry.URLTemplate, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		if sub[1] != "" {
			return "$"
		}
		key := sub[2]
		if key == "" {
			key = sub[3]
		}

		v, ok := params[key]
		if !ok || v == nil {
			if missing == "" {
				missing = key
			}
			return m
		}
		delete(body, key)
		return stringify(v)
	})

	if missing != "" {
		return "", nil, &wderr.InvalidArgumentError{Command: entry.Name, Parameter: missing}
	}
	return path, body, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
