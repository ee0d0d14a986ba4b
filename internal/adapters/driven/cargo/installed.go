package cargo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// installList is the layout of $CARGO_HOME/.crates.toml.
type installList struct {
	V1 map[string][]string `toml:"v1"`
}

// parseInstallList parses .crates.toml. Keys look like
// "ripgrep 14.1.0 (registry+https://github.com/rust-lang/crates.io-index)"
// and map to the binaries the package installed.
func parseInstallList(data []byte) ([]domain.InstalledBinary, error) {
	var list installList
	if err := toml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse install list: %w", err)
	}

	out := make([]domain.InstalledBinary, 0, len(list.V1))
	for key, bins := range list.V1 {
		bin, ok := parseInstallKey(key)
		if !ok {
			continue
		}
		bin.Binaries = append([]string{}, bins...)
		out = append(out, bin)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func parseInstallKey(key string) (domain.InstalledBinary, bool) {
	parts := strings.SplitN(strings.TrimSpace(key), " ", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.InstalledBinary{}, false
	}

	bin := domain.InstalledBinary{Name: parts[0], Version: parts[1]}
	if len(parts) == 3 {
		bin.Source = strings.TrimSuffix(strings.TrimPrefix(parts[2], "("), ")")
	}
	return bin, true
}
