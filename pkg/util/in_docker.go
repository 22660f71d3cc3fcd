package util

import "os"

// Marker files left by docker and podman
var containerMarkers = []string{"/.dockerenv", "/run/.containerenv"}

// InContainer reports whether the process runs inside a container
func InContainer() bool {
	for _, m := range containerMarkers {
		if _, err := os.Stat(m); err == nil {
			return true
		}
	}

	return false
}
