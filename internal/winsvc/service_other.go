//go:build !windows

package winsvc

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"
)

var errUnsupported = errors.New("windows services are not supported on this platform")

func EventLogger(string) (log.Logger, error) { return nil, errUnsupported }

func IsWindowsService() bool { return false }

func RunService(string, log.Logger, func(ctx context.Context) error) error {
	return errUnsupported
}

func Install(_, _, _, _ string, _ []string) error { return errUnsupported }

func Uninstall(string) error { return errUnsupported }

func ExePath() (string, error) { return "", errUnsupported }
