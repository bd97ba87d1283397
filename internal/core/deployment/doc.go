// Package deployment provides pure functions for planning blockade startup.
//
// This package contains the functional core logic for ordering the containers
// of a validated configuration and turning them into Docker create
// parameters. All functions are pure (no I/O, no side effects); the
// orchestrator that talks to Docker lives outside this module.
//
// # Functions
//
//   - Ordering: Group containers into dependency layers (DependencyLayers, DependencySorted)
//   - Naming: Generate Docker names (ContainerName, LinkSpec, BindSpec)
//   - Ports: Convert port declarations to Docker types (ConvertPorts)
//   - Variables: Expand ${VAR} placeholders (ExpandVariables)
//   - Container: Build container plans from container specs (BuildContainerPlan)
//   - Planner: Build the staged start plan of a configuration (BuildStartPlan)
//
// # Usage
//
//	cfg, err := config.ParseYAML(content)
//	stages, err := deployment.BuildStartPlan(cfg, "demo", nil)
//	for _, stage := range stages {
//	    // create and start stage.Containers concurrently, then wait
//	}
package deployment
