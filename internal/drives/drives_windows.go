//go:build windows

package drives

import (
	"os/exec"
	"strings"
)

func enumerate() []Drive {
	out, err := exec.Command("wmic", "logicaldisk", "get", "name").Output()
	if err != nil {
		return windowsFallback()
	}

	var ds []Drive
	for _, line := range strings.Split(string(out), "\n") {
		letter := strings.TrimSpace(line)
		if len(letter) != 2 || letter[1] != ':' {
			continue
		}
		ds = append(ds, Drive{Name: letter, Path: letter + `\`, Kind: "local"})
	}
	if len(ds) == 0 {
		return windowsFallback()
	}
	return ds
}

func windowsFallback() []Drive {
	return []Drive{{Name: "C:", Path: `C:\`, Kind: "local"}}
}
