package config

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/spf13/cast"
)

// Top-level and per-container keys of the raw configuration mapping.
const (
	keyContainers  = "containers"
	keyNetwork     = "network"
	keyImage       = "image"
	keyCommand     = "command"
	keyLinks       = "links"
	keyVolumes     = "volumes"
	keyPorts       = "ports"
	keyEnvironment = "environment"
	keyExpose      = "expose"
	keyStartDelay  = "start_delay"
	keyHostname    = "hostname"
	keyNeutral     = "neutral"
	keyHoly        = "holy"
)

// containerNamePattern is the set of names Docker accepts for a container.
var containerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// =============================================================================
// Loader Functions
// =============================================================================

// FromMap builds a Configuration from an already-deserialized raw mapping of
// the shape {containers: {name: {image, command?, links?, volumes?, ports?,
// environment?}}, network?: {...}}.
//
// Either the whole Configuration is returned or a *ConfigError; there are no
// partial results.
//
// Example:
//
//	cfg, err := config.FromMap(map[string]any{
//	    "containers": map[string]any{
//	        "c1": map[string]any{"image": "ubuntu"},
//	        "c2": map[string]any{"image": "ubuntu", "links": []any{"c1"}},
//	    },
//	})
func FromMap(raw map[string]any) (*Configuration, error) {
	rawContainers, ok := raw[keyContainers]
	if !ok || rawContainers == nil {
		return nil, NewConfigError(KindMissingContainersSection, "",
			"config is missing the containers section", nil)
	}
	containers, ok := asMap(rawContainers)
	if !ok {
		return nil, NewConfigError(KindMissingContainersSection, "",
			"containers section must be a mapping of name to container definition", nil)
	}

	cfg := &Configuration{
		Containers: make(map[string]*ContainerSpec, len(containers)),
	}

	// Sorted so the first reported error does not depend on map order
	names := make([]string, 0, len(containers))
	for name := range containers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec, err := containerFromMap(name, containers[name])
		if err != nil {
			return nil, err
		}
		cfg.Containers[name] = spec
	}

	network, err := networkFromMap(raw[keyNetwork])
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	return cfg, nil
}

// containerFromMap normalizes a single container definition.
func containerFromMap(name string, raw any) (*ContainerSpec, error) {
	if !containerNamePattern.MatchString(name) {
		return nil, &ConfigError{
			Kind:      KindInvalidField,
			Container: name,
			Field:     "containers." + name,
			Message:   fmt.Sprintf("invalid container name %q: only [a-zA-Z0-9][a-zA-Z0-9_.-] are allowed", name),
		}
	}

	def, ok := asMap(raw)
	if !ok {
		return nil, &ConfigError{
			Kind:      KindInvalidField,
			Container: name,
			Field:     "containers." + name,
			Message:   "container definition must be a mapping",
		}
	}

	rawImage, ok := def[keyImage]
	if !ok {
		return nil, NewConfigError(KindMissingImage, name, "container has no image", nil)
	}
	image, isString := rawImage.(string)
	if !isString || image == "" {
		return nil, NewConfigError(KindMissingImage, name, "container image must be a non-empty string", nil)
	}

	spec := NewContainerSpec(name, image)
	var err error

	if spec.Command, err = normalizeCommand(name, def[keyCommand]); err != nil {
		return nil, err
	}
	if spec.Links, err = normalizePathLikeMap(name, keyLinks, def[keyLinks]); err != nil {
		return nil, err
	}
	if spec.Volumes, err = normalizePathLikeMap(name, keyVolumes, def[keyVolumes]); err != nil {
		return nil, err
	}
	if spec.Ports, err = normalizePorts(name, def[keyPorts]); err != nil {
		return nil, err
	}
	if spec.Environment, err = normalizeEnvironment(name, def[keyEnvironment]); err != nil {
		return nil, err
	}
	if spec.Expose, err = normalizeExpose(name, def[keyExpose]); err != nil {
		return nil, err
	}

	if v, ok := def[keyHostname]; ok && v != nil {
		if spec.Hostname, err = cast.ToStringE(v); err != nil {
			return nil, fieldError(name, keyHostname, "hostname must be a string")
		}
	}

	if v, ok := def[keyStartDelay]; ok && v != nil {
		delay, err := cast.ToIntE(v)
		if err != nil {
			return nil, fieldError(name, keyStartDelay, "start_delay must be an integer number of seconds")
		}
		if delay < 0 {
			return nil, fieldError(name, keyStartDelay, fmt.Sprintf("start_delay cannot be negative (got %d)", delay))
		}
		spec.StartDelay = delay
	}

	if spec.Neutral, err = normalizeFlag(name, keyNeutral, def[keyNeutral]); err != nil {
		return nil, err
	}
	if spec.Holy, err = normalizeFlag(name, keyHoly, def[keyHoly]); err != nil {
		return nil, err
	}
	if spec.Neutral && spec.Holy {
		return nil, fieldError(name, keyHoly, "container cannot be both neutral and holy")
	}

	return spec, nil
}

// networkFromMap overlays user network parameters onto the defaults.
// Specified keys replace the default value entirely.
func networkFromMap(raw any) (NetworkSpec, error) {
	network := DefaultNetwork()
	if raw == nil {
		return network, nil
	}

	overrides, ok := asMap(raw)
	if !ok {
		return nil, &ConfigError{
			Kind:    KindInvalidField,
			Field:   keyNetwork,
			Message: "network section must be a mapping",
		}
	}
	for k, v := range overrides {
		network[k] = v
	}
	return network, nil
}
