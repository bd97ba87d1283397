package deployment

import (
	"errors"
	"testing"

	"github.com/artpar/blockade/internal/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func spec(name string, links ...string) *config.ContainerSpec {
	s := config.NewContainerSpec(name, "image")
	for _, l := range links {
		s.Links[l] = l
	}
	return s
}

func names(specs []*config.ContainerSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Name)
	}
	return out
}

// assertDependencyLevels checks that seq consists of the given levels in
// order, comparing each level as a set.
func assertDependencyLevels(t *testing.T, seq []*config.ContainerSpec, levels ...[]string) {
	t.Helper()

	total := 0
	for _, level := range levels {
		total += len(level)
	}
	require.Len(t, seq, total)

	rest := names(seq)
	for i, level := range levels {
		assert.ElementsMatch(t, level, rest[:len(level)], "dependency level #%d", i+1)
		rest = rest[len(level):]
	}
}

// =============================================================================
// DependencySorted Tests
// =============================================================================

func TestDependencySorted_Empty(t *testing.T) {
	result, err := DependencySorted(nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDependencySorted_NoLinks(t *testing.T) {
	result, err := DependencySorted([]*config.ContainerSpec{spec("c1"), spec("c2"), spec("c3")})
	require.NoError(t, err)
	assertDependencyLevels(t, result, []string{"c1", "c2", "c3"})
}

func TestDependencySorted_SingleLink(t *testing.T) {
	result, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1"),
		spec("c3"),
	})
	require.NoError(t, err)
	assertDependencyLevels(t, result, []string{"c1", "c3"}, []string{"c2"})
}

func TestDependencySorted_SharedTarget(t *testing.T) {
	result, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1"),
		spec("c3", "c1"),
	})
	require.NoError(t, err)
	assertDependencyLevels(t, result, []string{"c1"}, []string{"c2", "c3"})
}

func TestDependencySorted_Diamond(t *testing.T) {
	result, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1"),
		spec("c3", "c1"),
		spec("c4", "c1", "c3"),
		spec("c5", "c2", "c3"),
	})
	require.NoError(t, err)
	assertDependencyLevels(t, result, []string{"c1"}, []string{"c2", "c3"}, []string{"c4", "c5"})
}

func TestDependencySorted_DeepChain(t *testing.T) {
	// a → b → c → d → e
	result, err := DependencySorted([]*config.ContainerSpec{
		spec("a", "b"),
		spec("b", "c"),
		spec("c", "d"),
		spec("d", "e"),
		spec("e"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, names(result))
}

func TestDependencySorted_EveryLinkTargetPrecedes(t *testing.T) {
	input := []*config.ContainerSpec{
		spec("web", "api", "cache"),
		spec("api", "db"),
		spec("cache", "db"),
		spec("worker", "db", "queue"),
		spec("queue"),
		spec("db"),
	}
	result, err := DependencySorted(input)
	require.NoError(t, err)
	require.Len(t, result, len(input))

	index := make(map[string]int)
	for i, s := range result {
		index[s.Name] = i
	}
	for _, s := range input {
		for target := range s.Links {
			assert.Less(t, index[target], index[s.Name], "%s must start before %s", target, s.Name)
		}
	}
}

func TestDependencySorted_PreservesSpecs(t *testing.T) {
	web := spec("web", "api")
	web.Environment["PORT"] = 80
	api := spec("api")

	result, err := DependencySorted([]*config.ContainerSpec{web, api})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Same(t, api, result[0])
	assert.Same(t, web, result[1])
	assert.Equal(t, 80, result[1].Environment["PORT"])
}

// =============================================================================
// DependencyLayers Tests
// =============================================================================

func TestDependencyLayers_Diamond(t *testing.T) {
	layers, err := DependencyLayers([]*config.ContainerSpec{
		spec("c5", "c2", "c3"),
		spec("c4", "c1", "c3"),
		spec("c3", "c1"),
		spec("c2", "c1"),
		spec("c1"),
	})
	require.NoError(t, err)
	require.Len(t, layers, 3)
	assert.ElementsMatch(t, []string{"c1"}, names(layers[0]))
	assert.ElementsMatch(t, []string{"c2", "c3"}, names(layers[1]))
	assert.ElementsMatch(t, []string{"c4", "c5"}, names(layers[2]))
}

func TestDependencyLayers_MembershipIsDeterministic(t *testing.T) {
	input := []*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1"),
		spec("c3"),
		spec("c4", "c2", "c3"),
	}
	first, err := DependencyLayers(input)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := DependencyLayers(input)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.ElementsMatch(t, names(first[j]), names(again[j]))
		}
	}
}

func TestDependencyLayers_DoesNotMutateInput(t *testing.T) {
	input := []*config.ContainerSpec{spec("b", "a"), spec("a")}
	_, err := DependencyLayers(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names(input))
	assert.Equal(t, map[string]string{"a": "a"}, input[0].Links)
}

func TestDependencyLayers_DuplicateName(t *testing.T) {
	_, err := DependencyLayers([]*config.ContainerSpec{spec("c1"), spec("c1")})
	require.Error(t, err)
	assert.Equal(t, config.KindInvalidField, config.KindOf(err))
	assert.Contains(t, err.Error(), "c1")
}

// =============================================================================
// Unknown Link Tests
// =============================================================================

func TestDependencySorted_UnknownLink(t *testing.T) {
	_, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c6"),
		spec("c3", "c1"),
	})
	require.Error(t, err)
	assert.Equal(t, config.KindUnknownLink, config.KindOf(err))
	assert.True(t, errors.Is(err, config.ErrUnknownLink))
	assert.Contains(t, err.Error(), "unknown")
	assert.Contains(t, err.Error(), "c6")
}

func TestDependencySorted_UnknownLinkAmongValidLinks(t *testing.T) {
	_, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1", "c6", "c7"),
		spec("c3", "c1"),
	})
	require.Error(t, err)
	assert.Equal(t, config.KindUnknownLink, config.KindOf(err))
	// every unknown target is reported
	assert.Contains(t, err.Error(), "c6")
	assert.Contains(t, err.Error(), "c7")

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "c2", cfgErr.Container)
}

func TestDependencySorted_UnknownLinkCheckedBeforeCycles(t *testing.T) {
	_, err := DependencySorted([]*config.ContainerSpec{
		spec("c1", "c1"),
		spec("c2", "missing"),
	})
	require.Error(t, err)
	assert.Equal(t, config.KindUnknownLink, config.KindOf(err))
}

// =============================================================================
// Circular Dependency Tests
// =============================================================================

func TestDependencySorted_SelfLink(t *testing.T) {
	_, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1"),
		spec("c3", "c3"),
	})
	require.Error(t, err)
	assert.Equal(t, config.KindCircularDependency, config.KindOf(err))
	assert.True(t, errors.Is(err, config.ErrCircularDependency))
	assert.Contains(t, err.Error(), "circular")
	assert.Contains(t, err.Error(), "c3 -> c3")
}

func TestDependencySorted_MutualCycle(t *testing.T) {
	_, err := DependencySorted([]*config.ContainerSpec{
		spec("c1"),
		spec("c2", "c1", "c3"),
		spec("c3", "c2"),
	})
	require.Error(t, err)
	assert.Equal(t, config.KindCircularDependency, config.KindOf(err))
	assert.Contains(t, err.Error(), "circular")
	assert.Contains(t, err.Error(), "c2 -> c3 -> c2")
}

func TestDependencySorted_CycleNamesCycleNotDependents(t *testing.T) {
	// a depends on the b↔c cycle but is not part of it
	_, err := DependencySorted([]*config.ContainerSpec{
		spec("a", "b"),
		spec("b", "c"),
		spec("c", "b"),
	})
	require.Error(t, err)

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, config.KindCircularDependency, cfgErr.Kind)
	assert.Equal(t, "b", cfgErr.Container)
	assert.Contains(t, cfgErr.Message, "b -> c -> b")
}
