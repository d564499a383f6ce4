package runconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	yaml "gopkg.in/yaml.v3"
)

// ParseParamAssignments turns command-line entries of the form NAME=VALUE into runtime
// parameters. An entry without "=" defines NAME with an empty string value. Later entries
// override earlier ones.
func ParseParamAssignments(entries []string) (map[string]ldvalue.Value, error) {
	ret := make(map[string]ldvalue.Value, len(entries))
	for _, entry := range entries {
		name, value, _ := strings.Cut(entry, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid parameter %q: name must not be empty", entry)
		}
		ret[name] = ldvalue.String(value)
	}
	return ret, nil
}

// LoadParamsFile reads runtime parameters from a JSON or YAML file whose top level is an object.
func LoadParamsFile(path string) (map[string]ldvalue.Value, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file %q: %w", path, err)
	}
	var params map[string]ldvalue.Value
	if err := ParseJSONOrYAML(data, &params); err != nil {
		return nil, fmt.Errorf("error parsing parameter file %q: %w", path, err)
	}
	if params == nil {
		params = make(map[string]ldvalue.Value)
	}
	return params, nil
}

// MergeParams returns a new map with the entries of every argument; later maps win.
func MergeParams(maps ...map[string]ldvalue.Value) map[string]ldvalue.Value {
	ret := make(map[string]ldvalue.Value)
	for _, m := range maps {
		for k, v := range m {
			ret[k] = v
		}
	}
	return ret
}

// ParseJSONOrYAML is used in the same way as json.Unmarshal, but if the data is YAML and not
// JSON, it will convert the YAML to JSON and then parse it as JSON.
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}
	var rawStructure interface{}
	if err := yaml.Unmarshal(data, &rawStructure); err != nil {
		return err
	}
	normalized, err := normalizeParsedYAMLForJSON(rawStructure)
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}

func normalizeParsedYAMLForJSON(data interface{}) (interface{}, error) {
	switch data := data.(type) {
	case []interface{}:
		arrayOut := make([]interface{}, 0, len(data))
		for _, v := range data {
			v1, err := normalizeParsedYAMLForJSON(v)
			if err != nil {
				return nil, err
			}
			arrayOut = append(arrayOut, v1)
		}
		return arrayOut, nil
	case map[string]interface{}:
		mapOut := make(map[string]interface{}, len(data))
		for k, v := range data {
			v1, err := normalizeParsedYAMLForJSON(v)
			if err != nil {
				return nil, err
			}
			mapOut[k] = v1
		}
		return mapOut, nil
	case map[interface{}]interface{}:
		mapOut := make(map[string]interface{}, len(data))
		for k, v := range data {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf(
					"YAML data contained a map key of type %T; only string keys are allowed",
					k)
			}
			v1, err := normalizeParsedYAMLForJSON(v)
			if err != nil {
				return nil, err
			}
			mapOut[key] = v1
		}
		return mapOut, nil
	default:
		return data, nil
	}
}
