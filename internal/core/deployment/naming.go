package deployment

import "fmt"

// =============================================================================
// Resource Naming Functions
// =============================================================================

// ContainerName generates the Docker container name for a container in a blockade.
// Pattern: {blockadeID}_{name}
//
// Example:
//
//	ContainerName("demo", "zk1") // returns "demo_zk1"
func ContainerName(blockadeID, name string) string {
	return fmt.Sprintf("%s_%s", blockadeID, name)
}

// LinkSpec generates a Docker link declaration from a link target and alias.
// Pattern: {blockadeID}_{target}:{alias}
//
// Example:
//
//	LinkSpec("demo", "zk1", "zookeeper") // returns "demo_zk1:zookeeper"
func LinkSpec(blockadeID, target, alias string) string {
	return fmt.Sprintf("%s:%s", ContainerName(blockadeID, target), alias)
}

// BindSpec generates a Docker bind mount declaration.
// Pattern: {hostPath}:{containerPath}
func BindSpec(hostPath, containerPath string) string {
	return hostPath + ":" + containerPath
}
