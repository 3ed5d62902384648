//go:build !windows

package platform

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

// dirNamespace treats a directory of application entries as an uninstall
// namespace: freedesktop .desktop files and macOS .app bundles.
type dirNamespace struct {
	dir string
}

type dirSoftware struct {
	dirs []string
}

func newSoftwareSource() collector.SoftwareSource {
	dirs := []string{"/usr/share/applications", "/usr/local/share/applications", "/Applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "applications"),
			filepath.Join(home, "Applications"),
		)
	}
	return dirSoftware{dirs: dirs}
}

func (s dirSoftware) Namespaces() []collector.Namespace {
	ns := make([]collector.Namespace, len(s.dirs))
	for i, d := range s.dirs {
		ns[i] = dirNamespace{dir: d}
	}
	return ns
}

func (n dirNamespace) Name() string { return n.dir }

func (n dirNamespace) SubKeys(context.Context) ([]string, error) {
	entries, err := os.ReadDir(n.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".desktop", ".app":
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

// DisplayName returns the bundle name of an .app, or the Name key of a
// .desktop entry. Hidden desktop entries have no display name.
func (n dirNamespace) DisplayName(_ context.Context, subKey string) (string, error) {
	if strings.HasSuffix(subKey, ".app") {
		return strings.TrimSuffix(subKey, ".app"), nil
	}

	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, filepath.Join(n.dir, subKey))
	if err != nil {
		return "", err
	}
	sec := f.Section("Desktop Entry")
	if sec.Key("NoDisplay").MustBool(false) || sec.Key("Hidden").MustBool(false) {
		return "", nil
	}
	return sec.Key("Name").String(), nil
}
