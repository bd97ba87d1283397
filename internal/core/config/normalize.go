package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// =============================================================================
// Input Shapes
// =============================================================================

// shape is the resolved form of a field that accepts either a sequence or a
// mapping. Each field is classified once; the normalizers below only ever see
// one concrete shape.
type shape int

const (
	shapeAbsent shape = iota
	shapeSequence
	shapeMapping
	shapeInvalid
)

// classify resolves a raw value into its input shape.
func classify(raw any) (shape, []any, map[string]any) {
	if raw == nil {
		return shapeAbsent, nil, nil
	}
	if seq, ok := asSequence(raw); ok {
		return shapeSequence, seq, nil
	}
	if m, ok := asMap(raw); ok {
		return shapeMapping, nil, m
	}
	return shapeInvalid, nil, nil
}

// asMap accepts the mapping types produced by common decoders: yaml.v3 and
// encoding/json yield map[string]any, yaml.v2 yields map[any]any.
func asMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, err := cast.ToStringE(k)
			if err != nil {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	}
	return nil, false
}

func asSequence(raw any) ([]any, bool) {
	switch s := raw.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, v := range s {
			out[i] = v
		}
		return out, true
	}
	return nil, false
}

// scalarString coerces a scalar (string, number, bool) to its string form.
func scalarString(v any) (string, error) {
	switch v.(type) {
	case map[string]any, map[any]any, []any:
		return "", fmt.Errorf("expected a scalar, got %T", v)
	}
	return cast.ToStringE(v)
}

// =============================================================================
// Field Normalizers
// =============================================================================

// normalizeCommand accepts a string, or a sequence of arguments that is joined
// with single spaces.
func normalizeCommand(container string, raw any) (string, error) {
	switch s, seq, _ := classify(raw); s {
	case shapeAbsent:
		return "", nil
	case shapeSequence:
		args := make([]string, 0, len(seq))
		for _, item := range seq {
			arg, err := scalarString(item)
			if err != nil {
				return "", fieldError(container, keyCommand, "command arguments must be scalars")
			}
			args = append(args, arg)
		}
		return strings.Join(args, " "), nil
	case shapeMapping:
		return "", fieldError(container, keyCommand, "command must be a string or a list of arguments")
	}
	cmd, err := scalarString(raw)
	if err != nil {
		return "", fieldError(container, keyCommand, "command must be a string or a list of arguments")
	}
	return cmd, nil
}

// normalizePathLikeMap handles links and volumes, which share one rule: a
// sequence maps every element to itself, and a mapping entry whose value is
// empty or null maps its key to itself.
func normalizePathLikeMap(container, field string, raw any) (map[string]string, error) {
	out := map[string]string{}

	switch s, seq, m := classify(raw); s {
	case shapeAbsent:
		return out, nil
	case shapeSequence:
		for _, item := range seq {
			key, err := scalarString(item)
			if err != nil || key == "" {
				return nil, fieldError(container, field, field+" entries must be non-empty strings")
			}
			out[key] = key
		}
	case shapeMapping:
		for key, value := range m {
			if value == nil {
				out[key] = key
				continue
			}
			v, err := scalarString(value)
			if err != nil {
				return nil, fieldError(container, field, fmt.Sprintf("%s value for %q must be a string", field, key))
			}
			if v == "" {
				v = key
			}
			out[key] = v
		}
	default:
		return nil, fieldError(container, field, field+" must be a list or a mapping")
	}

	return out, nil
}

// normalizePorts coerces every port key and value to its string form, so that
// 10000 and "10000" declare the same port.
func normalizePorts(container string, raw any) (map[string]string, error) {
	out := map[string]string{}

	switch s, seq, m := classify(raw); s {
	case shapeAbsent:
		return out, nil
	case shapeSequence:
		for _, item := range seq {
			port, err := scalarString(item)
			if err != nil || port == "" {
				return nil, fieldError(container, keyPorts, "ports entries must be numbers or strings")
			}
			out[port] = port
		}
	case shapeMapping:
		for key, value := range m {
			if value == nil {
				out[key] = key
				continue
			}
			port, err := scalarString(value)
			if err != nil {
				return nil, fieldError(container, keyPorts, fmt.Sprintf("port value for %q must be a number or string", key))
			}
			if port == "" {
				port = key
			}
			out[key] = port
		}
	default:
		return nil, fieldError(container, keyPorts, "ports must be a list or a mapping")
	}

	return out, nil
}

// normalizeEnvironment copies environment values without type coercion. A
// sequence of "KEY=VALUE" strings is also accepted; those values stay strings.
func normalizeEnvironment(container string, raw any) (map[string]any, error) {
	out := map[string]any{}

	switch s, seq, m := classify(raw); s {
	case shapeAbsent:
		return out, nil
	case shapeSequence:
		for _, item := range seq {
			entry, ok := item.(string)
			if !ok {
				return nil, fieldError(container, keyEnvironment, "environment list entries must be KEY=VALUE strings")
			}
			key, value, _ := strings.Cut(entry, "=")
			if key == "" {
				return nil, fieldError(container, keyEnvironment, fmt.Sprintf("environment entry %q has no variable name", entry))
			}
			out[key] = value
		}
	case shapeMapping:
		for key, value := range m {
			out[key] = value
		}
	default:
		return nil, fieldError(container, keyEnvironment, "environment must be a list or a mapping")
	}

	return out, nil
}

// normalizeExpose accepts a single port or a sequence of ports.
func normalizeExpose(container string, raw any) ([]string, error) {
	switch s, seq, _ := classify(raw); s {
	case shapeAbsent:
		return nil, nil
	case shapeSequence:
		ports := make([]string, 0, len(seq))
		for _, item := range seq {
			port, err := scalarString(item)
			if err != nil || port == "" {
				return nil, fieldError(container, keyExpose, "expose entries must be numbers or strings")
			}
			ports = append(ports, port)
		}
		return ports, nil
	case shapeMapping:
		return nil, fieldError(container, keyExpose, "expose must be a port or a list of ports")
	}
	port, err := scalarString(raw)
	if err != nil || port == "" {
		return nil, fieldError(container, keyExpose, "expose must be a port or a list of ports")
	}
	return []string{port}, nil
}

func normalizeFlag(container, field string, raw any) (bool, error) {
	if raw == nil {
		return false, nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, fieldError(container, field, field+" must be a boolean")
	}
	return b, nil
}
