package internal

import (
	"os"
	"os/exec"
)

// UnbreakDocker attaches the current container to the default bridge
// network so that testcontainers started on the host are reachable when
// the test suite itself runs inside a dev container. Outside of a
// container this is a harmless no-op.
func UnbreakDocker() {
	if hostname, err := os.Hostname(); err == nil {
		exec.Command("docker", "network", "connect", "bridge", hostname).Run()
	}
}
