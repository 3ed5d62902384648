//go:build windows

package platform

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

const uninstallPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

// registryNamespace is one Uninstall key.
type registryNamespace struct {
	name string
	root registry.Key
	path string
}

type registrySoftware struct{}

func newSoftwareSource() collector.SoftwareSource { return registrySoftware{} }

func (registrySoftware) Namespaces() []collector.Namespace {
	return []collector.Namespace{
		registryNamespace{name: `HKLM\` + uninstallPath, root: registry.LOCAL_MACHINE, path: uninstallPath},
		registryNamespace{
			name: `HKLM\SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
			root: registry.LOCAL_MACHINE,
			path: `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
		},
		registryNamespace{name: `HKCU\` + uninstallPath, root: registry.CURRENT_USER, path: uninstallPath},
	}
}

func (n registryNamespace) Name() string { return n.name }

func (n registryNamespace) SubKeys(context.Context) ([]string, error) {
	k, err := registry.OpenKey(n.root, n.path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", n.name, err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", n.name, err)
	}
	return names, nil
}

func (n registryNamespace) DisplayName(_ context.Context, subKey string) (string, error) {
	k, err := registry.OpenKey(n.root, n.path+`\`+subKey, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	name, _, err := k.GetStringValue("DisplayName")
	return name, err
}
