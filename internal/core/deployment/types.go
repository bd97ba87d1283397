package deployment

import (
	"time"

	"github.com/artpar/blockade/internal/core/config"
	"github.com/docker/docker/api/types/container"
)

// =============================================================================
// Container Plan Types
// =============================================================================

// ContainerPlan represents the planned creation of one container.
// This is the pure output of planning, ready for the orchestrator to execute.
type ContainerPlan struct {
	Name          string                `json:"name" yaml:"name"`                     // name in the blockade config
	ContainerName string                `json:"container_name" yaml:"container_name"` // Docker container name
	Config        *container.Config     `json:"config" yaml:"config"`
	HostConfig    *container.HostConfig `json:"host_config" yaml:"host_config"`
	StartDelay    time.Duration         `json:"start_delay,omitempty" yaml:"start_delay,omitempty"`
	Neutral       bool                  `json:"neutral,omitempty" yaml:"neutral,omitempty"`
	Holy          bool                  `json:"holy,omitempty" yaml:"holy,omitempty"`
}

// Stage is one dependency layer of a start plan. Containers within a stage
// may be started concurrently; stages must run in order.
type Stage struct {
	Index      int             `json:"index" yaml:"index"`
	Containers []ContainerPlan `json:"containers" yaml:"containers"`
}

// Names returns the blockade container names in this stage.
func (s Stage) Names() []string {
	names := make([]string, 0, len(s.Containers))
	for _, c := range s.Containers {
		names = append(names, c.Name)
	}
	return names
}

// =============================================================================
// Builder Parameter Types
// =============================================================================

// BuildContainerPlanParams contains all inputs for building a container plan.
type BuildContainerPlanParams struct {
	BlockadeID string
	Spec       *config.ContainerSpec
	// Variables resolves ${VAR} placeholders in command and string environment
	// values. Nil leaves placeholders without a default untouched.
	Variables map[string]string
}

// =============================================================================
// Blockade Container Labels
// =============================================================================

// Label keys used for blockade container identification.
const (
	LabelManaged   = "com.blockade.managed"
	LabelBlockade  = "com.blockade.id"
	LabelContainer = "com.blockade.container"
)
