package deployment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/artpar/blockade/internal/core/config"
	"go.uber.org/multierr"
)

// =============================================================================
// Container Ordering Functions
// =============================================================================

// DependencyLayers groups containers into start layers using their links.
//
// Every container appears in exactly one layer, and every link target lives in
// a strictly earlier layer than the container linking to it. Members of one
// layer never depend on each other, so a caller may start them in parallel.
//
// The function works in passes:
//  1. Reject links to names absent from the input (UnknownLink)
//  2. Each pass takes every remaining container whose targets are all resolved
//  3. A pass that takes nothing while containers remain means a cycle
//     (CircularDependency), including a container linking to itself
//
// Layer membership is deterministic. Order within a layer follows the input
// slice and is not part of the contract.
//
// Example:
//
//	// c2 links c1, c3 has no links
//	layers, err := DependencyLayers(cfg.ContainerList())
//	// layers: [[c1 c3] [c2]]
func DependencyLayers(containers []*config.ContainerSpec) ([][]*config.ContainerSpec, error) {
	byName := make(map[string]*config.ContainerSpec, len(containers))
	for _, c := range containers {
		if _, dup := byName[c.Name]; dup {
			return nil, &config.ConfigError{
				Kind:      config.KindInvalidField,
				Container: c.Name,
				Message:   fmt.Sprintf("duplicate container name %q", c.Name),
			}
		}
		byName[c.Name] = c
	}

	if err := checkLinkTargets(containers, byName); err != nil {
		return nil, err
	}

	resolved := make(map[string]bool, len(containers))
	remaining := append([]*config.ContainerSpec(nil), containers...)
	var layers [][]*config.ContainerSpec

	for len(remaining) > 0 {
		var layer, blocked []*config.ContainerSpec
		for _, c := range remaining {
			if linksResolved(c, resolved) {
				layer = append(layer, c)
			} else {
				blocked = append(blocked, c)
			}
		}

		if len(layer) == 0 {
			return nil, circularDependencyError(blocked)
		}

		// Marked after the scan so a layer never satisfies its own members
		for _, c := range layer {
			resolved[c.Name] = true
		}
		layers = append(layers, layer)
		remaining = blocked
	}

	return layers, nil
}

// DependencySorted returns the containers as one flat sequence in which every
// link target precedes the containers linking to it. It is the concatenation
// of the layers from DependencyLayers.
func DependencySorted(containers []*config.ContainerSpec) ([]*config.ContainerSpec, error) {
	layers, err := DependencyLayers(containers)
	if err != nil {
		return nil, err
	}

	sorted := make([]*config.ContainerSpec, 0, len(containers))
	for _, layer := range layers {
		sorted = append(sorted, layer...)
	}
	return sorted, nil
}

// checkLinkTargets reports every link to a container that is not in the input.
func checkLinkTargets(containers []*config.ContainerSpec, byName map[string]*config.ContainerSpec) error {
	ordered := append([]*config.ContainerSpec(nil), containers...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	var errs error
	var first string
	for _, c := range ordered {
		for _, target := range c.LinkTargets() {
			if _, ok := byName[target]; ok {
				continue
			}
			if first == "" {
				first = c.Name
			}
			errs = multierr.Append(errs, fmt.Errorf("container %q links to unknown container %q", c.Name, target))
		}
	}
	if errs == nil {
		return nil
	}

	details := multierr.Errors(errs)
	messages := make([]string, 0, len(details))
	for _, d := range details {
		messages = append(messages, d.Error())
	}
	return config.NewConfigError(config.KindUnknownLink, first,
		"unknown link: "+strings.Join(messages, "; "), errs)
}

func linksResolved(c *config.ContainerSpec, resolved map[string]bool) bool {
	for target := range c.Links {
		if !resolved[target] {
			return false
		}
	}
	return true
}

// circularDependencyError names one concrete cycle among the blocked
// containers. Every blocked container has an unresolved target that is itself
// blocked, so following those targets must revisit a container.
func circularDependencyError(blocked []*config.ContainerSpec) error {
	byName := make(map[string]*config.ContainerSpec, len(blocked))
	names := make([]string, 0, len(blocked))
	for _, c := range blocked {
		byName[c.Name] = c
		names = append(names, c.Name)
	}
	sort.Strings(names)

	var path []string
	seen := make(map[string]int)
	current := names[0]
	for {
		if idx, ok := seen[current]; ok {
			path = append(path[idx:], current)
			break
		}
		seen[current] = len(path)
		path = append(path, current)

		for _, target := range byName[current].LinkTargets() {
			if _, isBlocked := byName[target]; isBlocked {
				current = target
				break
			}
		}
	}

	return config.NewConfigError(config.KindCircularDependency, path[0],
		fmt.Sprintf("circular dependency: %s (blocked containers: %s)",
			strings.Join(path, " -> "), strings.Join(names, ", ")), nil)
}
