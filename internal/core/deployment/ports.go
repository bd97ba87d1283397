package deployment

import (
	"fmt"
	"sort"

	"github.com/docker/go-connections/nat"
)

// =============================================================================
// Port Conversion Functions
// =============================================================================

// ConvertPorts converts normalized port declarations into Docker port
// structures. Keys of ports are host ports; values are container ports,
// optionally suffixed with a protocol ("53/udp"). Default protocol is "tcp".
// The protocol always comes from the container side.
// Every entry of expose is added to the exposed set without a host binding.
//
// Example:
//
//	exposed, bindings, err := ConvertPorts(map[string]string{"8080": "80"}, nil)
//	// exposed:  {"80/tcp"}
//	// bindings: {"80/tcp": [{HostPort: "8080"}]}
func ConvertPorts(ports map[string]string, expose []string) (nat.PortSet, nat.PortMap, error) {
	exposed := nat.PortSet{}
	bindings := nat.PortMap{}

	hostPorts := make([]string, 0, len(ports))
	for hostPort := range ports {
		hostPorts = append(hostPorts, hostPort)
	}
	sort.Strings(hostPorts)

	for _, hostPort := range hostPorts {
		containerPort, err := parseContainerPort(ports[hostPort])
		if err != nil {
			return nil, nil, err
		}
		_, hostNumber := nat.SplitProtoPort(hostPort)
		if _, err := nat.ParsePort(hostNumber); err != nil {
			return nil, nil, fmt.Errorf("invalid host port %q: %w", hostPort, err)
		}

		exposed[containerPort] = struct{}{}
		bindings[containerPort] = append(bindings[containerPort], nat.PortBinding{HostPort: hostNumber})
	}

	for _, raw := range expose {
		port, err := parseContainerPort(raw)
		if err != nil {
			return nil, nil, err
		}
		exposed[port] = struct{}{}
	}

	return exposed, bindings, nil
}

func parseContainerPort(raw string) (nat.Port, error) {
	proto, number := nat.SplitProtoPort(raw)
	port, err := nat.NewPort(proto, number)
	if err != nil {
		return "", fmt.Errorf("invalid container port %q: %w", raw, err)
	}
	return port, nil
}
