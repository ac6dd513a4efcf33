package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tabular-hq/ganymede/pkg/frame"
)

// Document is a complete schema file: a column specification plus the
// table-level constraints and mode flags the engine accepts. Pointer fields
// distinguish "unset" from an explicit value so call-site precedence over
// project configuration is preserved.
type Document struct {
	// Dataset is a display name recorded in reports. Optional.
	Dataset string `yaml:"dataset"`

	Strict     *bool `yaml:"strict"`
	Lazy       *bool `yaml:"lazy"`
	AllowEmpty *bool `yaml:"allow_empty"`

	MinRows   *int `yaml:"min_rows"`
	MaxRows   *int `yaml:"max_rows"`
	ExactRows *int `yaml:"exact_rows"`

	// CompositeUnique lists column groups whose combined values must be
	// unique across rows.
	CompositeUnique [][]string `yaml:"composite_unique"`

	// Columns is the raw column specification in spec order.
	Columns Spec `yaml:"-"`
}

// knownDocumentKeys is the closed set of top-level schema document keys.
var knownDocumentKeys = map[string]struct{}{
	"dataset": {}, "strict": {}, "lazy": {}, "allow_empty": {},
	"min_rows": {}, "max_rows": {}, "exact_rows": {},
	"composite_unique": {}, "columns": {},
}

// LoadDocument reads and parses a YAML schema file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument parses a YAML schema document. Column order in the YAML
// mapping is preserved, since spec order drives resolution and reporting.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &InvalidSpecError{Message: fmt.Sprintf("not valid YAML: %v", err)}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &InvalidSpecError{Message: "empty schema document"}
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, &InvalidSpecError{Message: "schema document must be a mapping"}
	}

	doc := &Document{}
	for i := 0; i < len(top.Content)-1; i += 2 {
		key := top.Content[i].Value
		if _, ok := knownDocumentKeys[key]; !ok {
			return nil, &InvalidSpecError{Message: fmt.Sprintf("unknown schema key %q", key)}
		}
	}
	if err := top.Decode(doc); err != nil {
		return nil, &InvalidSpecError{Message: fmt.Sprintf("malformed schema document: %v", err)}
	}

	for i := 0; i < len(top.Content)-1; i += 2 {
		if top.Content[i].Value == "columns" {
			spec, err := decodeColumns(top.Content[i+1])
			if err != nil {
				return nil, err
			}
			doc.Columns = spec
		}
	}

	return doc, nil
}

// decodeColumns interprets the columns node: a sequence of tokens (all
// required, no constraints) or a mapping token -> constraint bundle.
func decodeColumns(node *yaml.Node) (Spec, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var tokens []string
		if err := node.Decode(&tokens); err != nil {
			return nil, &InvalidSpecError{Message: fmt.Sprintf("columns sequence: %v", err)}
		}
		return List(tokens...), nil

	case yaml.MappingNode:
		var spec Spec
		for i := 0; i < len(node.Content)-1; i += 2 {
			token := node.Content[i].Value
			rule, err := decodeRule(token, node.Content[i+1])
			if err != nil {
				return nil, err
			}
			spec = append(spec, ColumnDef{Token: token, Rule: rule})
		}
		return spec, nil

	default:
		return nil, &InvalidSpecError{Message: "columns must be a sequence or a mapping"}
	}
}

func decodeRule(token string, node *yaml.Node) (*Rule, error) {
	// "token:" with no bundle means required with no constraints.
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &InvalidSpecError{Token: token, Message: "constraint bundle must be a mapping"}
	}

	rule := &Rule{}
	for i := 0; i < len(node.Content)-1; i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "dtype":
			var dt string
			if err := val.Decode(&dt); err != nil {
				return nil, &InvalidSpecError{Token: token, Message: fmt.Sprintf("dtype: %v", err)}
			}
			rule.DType = frame.DType(dt)
		case "nullable":
			var b bool
			if err := val.Decode(&b); err != nil {
				return nil, &InvalidSpecError{Token: token, Message: fmt.Sprintf("nullable: %v", err)}
			}
			rule.Nullable = &b
		case "unique":
			if err := val.Decode(&rule.Unique); err != nil {
				return nil, &InvalidSpecError{Token: token, Message: fmt.Sprintf("unique: %v", err)}
			}
		case "optional":
			if err := val.Decode(&rule.Optional); err != nil {
				return nil, &InvalidSpecError{Token: token, Message: fmt.Sprintf("optional: %v", err)}
			}
		case "checks":
			checks, err := decodeChecks(token, val)
			if err != nil {
				return nil, err
			}
			rule.Checks = checks
		default:
			return nil, &InvalidSpecError{Token: token, Message: fmt.Sprintf("unknown option %q", key)}
		}
	}
	return rule, nil
}

func decodeChecks(token string, node *yaml.Node) ([]Check, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, &InvalidSpecError{Token: token, Message: "checks must be a sequence"}
	}
	var checks []Check
	for _, item := range node.Content {
		check, err := decodeCheck(token, item)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// decodeCheck interprets one check entry: a single-key mapping naming a
// built-in predicate, e.g. {gte: 0} or {one_of: [a, b]}.
func decodeCheck(token string, node *yaml.Node) (Check, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return Check{}, &InvalidSpecError{Token: token, Message: "each check must be a single-key mapping"}
	}
	name, val := node.Content[0].Value, node.Content[1]

	decodeFloat := func() (float64, error) {
		var f float64
		if err := val.Decode(&f); err != nil {
			return 0, &InvalidSpecError{Token: token, Message: fmt.Sprintf("check %q needs a number: %v", name, err)}
		}
		return f, nil
	}
	decodeInt := func() (int, error) {
		var n int
		if err := val.Decode(&n); err != nil {
			return 0, &InvalidSpecError{Token: token, Message: fmt.Sprintf("check %q needs an integer: %v", name, err)}
		}
		return n, nil
	}

	switch name {
	case "gt", "gte", "lt", "lte":
		f, err := decodeFloat()
		if err != nil {
			return Check{}, err
		}
		switch name {
		case "gt":
			return GT(f), nil
		case "gte":
			return GTE(f), nil
		case "lt":
			return LT(f), nil
		default:
			return LTE(f), nil
		}
	case "min_len", "max_len":
		n, err := decodeInt()
		if err != nil {
			return Check{}, err
		}
		if name == "min_len" {
			return MinLen(n), nil
		}
		return MaxLen(n), nil
	case "one_of":
		var values []any
		if err := val.Decode(&values); err != nil {
			return Check{}, &InvalidSpecError{Token: token, Message: fmt.Sprintf("one_of needs a sequence: %v", err)}
		}
		return OneOf(values...), nil
	case "matches":
		var expr string
		if err := val.Decode(&expr); err != nil {
			return Check{}, &InvalidSpecError{Token: token, Message: fmt.Sprintf("matches needs a string: %v", err)}
		}
		check, err := Matches(expr)
		if err != nil {
			return Check{}, &InvalidSpecError{Token: token, Message: err.Error()}
		}
		return check, nil
	default:
		return Check{}, &InvalidSpecError{Token: token, Message: fmt.Sprintf("unknown check %q", name)}
	}
}
