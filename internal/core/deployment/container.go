package deployment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/spf13/cast"
)

// =============================================================================
// Container Plan Building Functions
// =============================================================================

// BuildContainerPlan builds a ContainerPlan from a normalized container spec.
//
// This is a pure function that transforms a container spec into the Docker
// create parameters the orchestrator executes.
//
// The function:
//   - Generates the container name using ContainerName()
//   - Splits the command on whitespace after variable expansion
//   - Renders environment as sorted KEY=value pairs
//   - Converts ports and expose entries using ConvertPorts()
//   - Renders volumes as bind mounts and links as prefixed Docker links
//   - Adds blockade identification labels
//
// Example:
//
//	plan, err := BuildContainerPlan(BuildContainerPlanParams{
//	    BlockadeID: "demo",
//	    Spec:       cfg.Containers["app"],
//	})
//	// plan.ContainerName == "demo_app"
func BuildContainerPlan(params BuildContainerPlanParams) (ContainerPlan, error) {
	spec := params.Spec
	if spec == nil {
		return ContainerPlan{}, fmt.Errorf("container spec is required")
	}

	cfg := &container.Config{
		Hostname: spec.Hostname,
		Image:    spec.Image,
		Env:      renderEnvironment(spec.Environment, params.Variables),
		Labels: map[string]string{
			LabelManaged:   "true",
			LabelBlockade:  params.BlockadeID,
			LabelContainer: spec.Name,
		},
	}
	if cmd := ExpandVariables(spec.Command, params.Variables); cmd != "" {
		cfg.Cmd = strings.Fields(cmd)
	}

	hostCfg := &container.HostConfig{}

	exposed, bindings, err := ConvertPorts(spec.Ports, spec.Expose)
	if err != nil {
		return ContainerPlan{}, fmt.Errorf("container %q: %w", spec.Name, err)
	}
	if len(exposed) > 0 {
		cfg.ExposedPorts = exposed
	}
	if len(bindings) > 0 {
		hostCfg.PortBindings = bindings
	}

	// Volume binds
	hostPaths := sortedKeys(spec.Volumes)
	for _, hostPath := range hostPaths {
		hostCfg.Binds = append(hostCfg.Binds, BindSpec(hostPath, spec.Volumes[hostPath]))
	}

	// Links to containers of the same blockade
	for _, target := range spec.LinkTargets() {
		hostCfg.Links = append(hostCfg.Links, LinkSpec(params.BlockadeID, target, spec.Links[target]))
	}

	return ContainerPlan{
		Name:          spec.Name,
		ContainerName: ContainerName(params.BlockadeID, spec.Name),
		Config:        cfg,
		HostConfig:    hostCfg,
		StartDelay:    time.Duration(spec.StartDelay) * time.Second,
		Neutral:       spec.Neutral,
		Holy:          spec.Holy,
	}, nil
}

// renderEnvironment formats environment values as Docker KEY=value pairs.
// Non-string values are stringified; null becomes the empty string.
func renderEnvironment(env map[string]any, variables map[string]string) []string {
	if len(env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		value := env[k]
		var rendered string
		if s, ok := value.(string); ok {
			rendered = ExpandVariables(s, variables)
		} else {
			rendered = cast.ToString(value)
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, rendered))
	}
	return pairs
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
