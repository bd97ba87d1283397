package config

import (
	"sort"

	"github.com/spf13/cast"
)

// =============================================================================
// Configuration - Main Output Type
// =============================================================================

// Configuration is the validated model of a blockade config.
// It owns its ContainerSpec entities; nothing mutates them after FromMap returns.
type Configuration struct {
	Containers map[string]*ContainerSpec `json:"containers" yaml:"containers"`
	Network    NetworkSpec               `json:"network" yaml:"network"`
}

// Names returns the container names in sorted order.
func (c *Configuration) Names() []string {
	names := make([]string, 0, len(c.Containers))
	for name := range c.Containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContainerList returns the container specs ordered by name.
func (c *Configuration) ContainerList() []*ContainerSpec {
	names := c.Names()
	specs := make([]*ContainerSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, c.Containers[name])
	}
	return specs
}

// =============================================================================
// Container Types
// =============================================================================

// ContainerSpec is the canonical description of one container.
// Every sequence-or-mapping input shape has already been resolved into a map.
type ContainerSpec struct {
	Name        string            `json:"name" yaml:"name"`
	Image       string            `json:"image" yaml:"image"`
	Command     string            `json:"command,omitempty" yaml:"command,omitempty"`
	Links       map[string]string `json:"links" yaml:"links"`             // target container -> alias
	Volumes     map[string]string `json:"volumes" yaml:"volumes"`         // host path -> container path
	Ports       map[string]string `json:"ports" yaml:"ports"`             // host port -> container port
	Environment map[string]any    `json:"environment" yaml:"environment"` // values passed through as given
	Expose      []string          `json:"expose,omitempty" yaml:"expose,omitempty"`
	StartDelay  int               `json:"start_delay,omitempty" yaml:"start_delay,omitempty"` // seconds
	Hostname    string            `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Neutral     bool              `json:"neutral,omitempty" yaml:"neutral,omitempty"`
	Holy        bool              `json:"holy,omitempty" yaml:"holy,omitempty"`
}

// NewContainerSpec returns a spec with empty link, volume, port and
// environment mappings.
func NewContainerSpec(name, image string) *ContainerSpec {
	return &ContainerSpec{
		Name:        name,
		Image:       image,
		Links:       map[string]string{},
		Volumes:     map[string]string{},
		Ports:       map[string]string{},
		Environment: map[string]any{},
	}
}

// LinkTargets returns the names of the containers this one links to, sorted.
func (c *ContainerSpec) LinkTargets() []string {
	targets := make([]string, 0, len(c.Links))
	for target := range c.Links {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// =============================================================================
// Network Types
// =============================================================================

// Known network fault parameters.
const (
	NetworkFlaky = "flaky"
	NetworkSlow  = "slow"
)

// defaultNetwork is the built-in fault parameter table. User entries are
// overlaid on a copy; this map itself is never written.
var defaultNetwork = map[string]any{
	NetworkFlaky: "30%",
	NetworkSlow:  "75ms 100ms distribution normal",
}

// DefaultNetwork returns a copy of the built-in network fault parameters.
func DefaultNetwork() NetworkSpec {
	spec := make(NetworkSpec, len(defaultNetwork))
	for k, v := range defaultNetwork {
		spec[k] = v
	}
	return spec
}

// NetworkSpec maps fault parameter names to their values.
type NetworkSpec map[string]any

// Flaky returns the packet-loss parameter as a string.
func (n NetworkSpec) Flaky() string {
	return cast.ToString(n[NetworkFlaky])
}

// Slow returns the latency parameter as a string.
func (n NetworkSpec) Slow() string {
	return cast.ToString(n[NetworkSlow])
}
