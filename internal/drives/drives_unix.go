//go:build !windows

package drives

import (
	"os/exec"
	"strings"
)

// pseudoFS lists filesystem types df reports that are not useful scan
// targets.
var pseudoFS = map[string]struct{}{
	"tmpfs":    {},
	"devtmpfs": {},
	"devfs":    {},
	"proc":     {},
	"sysfs":    {},
	"overlay":  {},
	"squashfs": {},
	"cgroup":   {},
	"cgroup2":  {},
	"efivarfs": {},
}

func enumerate() []Drive {
	out, err := exec.Command("df", "-P", "-T").Output()
	if err != nil {
		// BSD/macOS df has no -T; retry with the portable form and no
		// filesystem-type filtering.
		out, err = exec.Command("df", "-P").Output()
		if err != nil {
			return nil
		}
		return parseDF(string(out), false)
	}
	return parseDF(string(out), true)
}

// parseDF turns `df -P` output into drives. With hasType the second
// column is the filesystem type and pseudo filesystems are skipped.
func parseDF(out string, hasType bool) []Drive {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return nil
	}

	var ds []Drive
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		minFields := 6
		if hasType {
			minFields = 7
		}
		if len(fields) < minFields {
			continue
		}
		if hasType {
			if _, skip := pseudoFS[fields[1]]; skip {
				continue
			}
		}

		mount := fields[len(fields)-1]
		if !strings.HasPrefix(mount, "/") {
			continue
		}
		// Skip virtual mounts under /proc, /sys, /dev.
		if strings.HasPrefix(mount, "/proc") || strings.HasPrefix(mount, "/sys") || strings.HasPrefix(mount, "/dev") {
			continue
		}

		name := mount
		if mount == "/" {
			name = "Root"
		}
		ds = append(ds, Drive{Name: name, Path: mount, Kind: "local"})
	}
	return ds
}
