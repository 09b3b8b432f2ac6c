package vpn

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yllada/wg-toggle/common"
)

// PathStatus describes the interface wg-quick creates for a config path.
type PathStatus struct {
	Path      string `json:"path"`
	Interface string `json:"interface"`
	Up        bool   `json:"up"`
}

// InterfaceName returns the interface wg-quick derives from a config path:
// the file name without its ".conf" extension. A bare interface name is
// returned unchanged.
func InterfaceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), common.ConfigExtension)
}

// StatusOf checks each path's interface under sysNet (normally /sys/class/net).
func StatusOf(paths []string, sysNet string) []PathStatus {
	statuses := make([]PathStatus, 0, len(paths))
	for _, p := range paths {
		name := InterfaceName(p)
		st := PathStatus{Path: p, Interface: name}
		if name != "" && name != "." && name != string(filepath.Separator) {
			_, err := os.Stat(filepath.Join(sysNet, name))
			st.Up = err == nil
		}
		statuses = append(statuses, st)
	}
	return statuses
}
