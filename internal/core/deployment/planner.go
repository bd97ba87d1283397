package deployment

import (
	"errors"

	"github.com/artpar/blockade/internal/core/config"
)

// ErrEmptyBlockadeID is returned when a start plan is requested without an id.
var ErrEmptyBlockadeID = errors.New("blockade id is required")

// =============================================================================
// Start Planning
// =============================================================================

// BuildStartPlan plans the startup of every container in cfg.
//
// The result has one Stage per dependency layer (see DependencyLayers).
// Containers within a stage may be created concurrently; the orchestrator
// must finish a stage before starting the next one.
//
// Variables feeds ${VAR} expansion in commands and environment values and may
// be nil.
//
// Example:
//
//	stages, err := BuildStartPlan(cfg, "demo", nil)
//	if err != nil {
//	    return err
//	}
//	for _, stage := range stages {
//	    // start stage.Containers in parallel, then wait
//	}
func BuildStartPlan(cfg *config.Configuration, blockadeID string, variables map[string]string) ([]Stage, error) {
	if blockadeID == "" {
		return nil, ErrEmptyBlockadeID
	}

	layers, err := DependencyLayers(cfg.ContainerList())
	if err != nil {
		return nil, err
	}

	stages := make([]Stage, 0, len(layers))
	for i, layer := range layers {
		stage := Stage{
			Index:      i,
			Containers: make([]ContainerPlan, 0, len(layer)),
		}
		for _, spec := range layer {
			plan, err := BuildContainerPlan(BuildContainerPlanParams{
				BlockadeID: blockadeID,
				Spec:       spec,
				Variables:  variables,
			})
			if err != nil {
				return nil, err
			}
			stage.Containers = append(stage.Containers, plan)
		}
		stages = append(stages, stage)
	}

	return stages, nil
}
