package snaptmpl

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// EnvKey is the context key dotenv values are exposed under.
const EnvKey = "env"

// LoadDataFiles reads YAML or JSON files and merges them into one context.
// Later files override earlier ones.
func LoadDataFiles(paths ...string) (map[string]any, error) {
	result := map[string]any{}

	for _, path := range paths {
		data, err := loadDataFile(path)
		if err != nil {
			return nil, err
		}

		result = MergeData(result, data)
	}

	return result, nil
}

func loadDataFile(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDataFile, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	return ParseData(content, path)
}

// ParseData decodes a YAML (or JSON) document whose top level is a mapping.
func ParseData(content []byte, name string) (map[string]any, error) {
	var decoded any

	if err := yaml.Unmarshal(content, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", name, err)
	}

	if decoded == nil {
		return map[string]any{}, nil
	}

	mapping, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDataNotMapping, name)
	}

	return mapping, nil
}

// LoadEnvFiles reads dotenv files and returns a context holding their values under "env".
func LoadEnvFiles(paths ...string) (map[string]any, error) {
	if len(paths) == 0 {
		return map[string]any{}, nil
	}

	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	env := make(map[string]any, len(values))
	for key, value := range values {
		env[key] = value
	}

	return map[string]any{EnvKey: env}, nil
}

// ParseAssignments turns key=value pairs into a context.
// Values are decoded as YAML scalars, so numbers and booleans keep their type.
// A key of the form name.property sets one property of a record.
func ParseAssignments(assignments []string) (map[string]any, error) {
	result := map[string]any{}

	for _, assignment := range assignments {
		key, raw, ok := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidAssignment, assignment)
		}

		value := parseScalar(raw)

		name, property, nested := strings.Cut(key, ".")
		if !nested {
			result[key] = value
			continue
		}

		if name == "" || property == "" || strings.Contains(property, ".") {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidAssignment, assignment)
		}

		record, isRecord := result[name].(map[string]any)
		if !isRecord {
			record = map[string]any{}
			result[name] = record
		}

		record[property] = value
	}

	return result, nil
}

func parseScalar(raw string) any {
	if raw == "" {
		return ""
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}

	switch value.(type) {
	case map[string]any, []any, nil:
		return raw
	default:
		return value
	}
}

// MergeData merges contexts left to right. Records present on both sides are
// merged key by key; any other value is replaced. Inputs are not modified.
func MergeData(layers ...map[string]any) map[string]any {
	result := map[string]any{}

	for _, layer := range layers {
		for key, value := range layer {
			incoming, incomingIsRecord := value.(map[string]any)
			existing, existingIsRecord := result[key].(map[string]any)

			if incomingIsRecord && existingIsRecord {
				merged := maps.Clone(existing)
				maps.Copy(merged, incoming)
				result[key] = merged

				continue
			}

			if incomingIsRecord {
				result[key] = maps.Clone(incoming)
				continue
			}

			result[key] = value
		}
	}

	return result
}
