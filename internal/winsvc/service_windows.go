//go:build windows

package winsvc

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"
)

const eventID = 1

// eventLogger writes kratos log records to the Windows Event Log, mapping
// the record level onto the event type.
type eventLogger struct {
	elog *eventlog.Log
}

// EventLogger opens the named event log source as a log.Logger.
func EventLogger(name string) (log.Logger, error) {
	elog, err := eventlog.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open event log %s: %w", name, err)
	}
	return &eventLogger{elog: elog}, nil
}

func (l *eventLogger) Log(level log.Level, keyvals ...interface{}) error {
	msg := formatRecord(keyvals)
	switch level {
	case log.LevelError, log.LevelFatal:
		return l.elog.Error(eventID, msg)
	case log.LevelWarn:
		return l.elog.Warning(eventID, msg)
	default:
		return l.elog.Info(eventID, msg)
	}
}

func formatRecord(keyvals []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(keyvals); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v=%v", keyvals[i], keyvals[i+1])
	}
	return b.String()
}

// IsWindowsService reports whether the process was started by the SCM.
func IsWindowsService() bool {
	ok, err := svc.IsWindowsService()
	if err != nil {
		return false
	}
	return ok
}

type serviceHandler struct {
	name string
	run  func(ctx context.Context) error
	log  *log.Helper
}

func (h *serviceHandler) Execute(_ []string, req <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	const accepted = svc.AcceptStop | svc.AcceptShutdown
	status <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.run(ctx)
	}()

	status <- svc.Status{State: svc.Running, Accepts: accepted}

	for {
		select {
		case err := <-errCh:
			status <- svc.Status{State: svc.StopPending}
			if err != nil {
				h.log.Errorf("service %s stopped with error: %v", h.name, err)
				return false, 1
			}
			return false, 0

		case cr := <-req:
			switch cr.Cmd {
			case svc.Interrogate:
				status <- cr.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				cancel()
				// A report in progress may still be sending mail.
				select {
				case <-errCh:
				case <-time.After(30 * time.Second):
					h.log.Warnf("service %s: timed out waiting for the current run", h.name)
				}
				return false, 0
			}
		}
	}
}

// RunService runs the named service until the SCM stops it. run receives a
// context cancelled on stop or shutdown.
func RunService(name string, logger log.Logger, run func(ctx context.Context) error) error {
	return svc.Run(name, &serviceHandler{
		name: name,
		run:  run,
		log:  log.NewHelper(log.With(logger, "module", "winsvc")),
	})
}

// Install registers an auto-start service and its event log source.
func Install(name, displayName, description, exePath string, args []string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err == nil {
		s.Close()
		return fmt.Errorf("service %s already exists", name)
	}

	s, err = m.CreateService(name, exePath, mgr.Config{
		DisplayName: displayName,
		Description: description,
		StartType:   mgr.StartAutomatic,
	}, args...)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	defer s.Close()

	_ = s.SetRecoveryActions([]mgr.RecoveryAction{
		{Type: mgr.ServiceRestart, Delay: time.Minute},
		{Type: mgr.NoAction},
	}, 86400)

	if err := eventlog.InstallAsEventCreate(name, eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		return fmt.Errorf("service installed but event log source failed: %w", err)
	}
	return nil
}

// Uninstall stops and removes the named service and its event log source.
func Uninstall(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	if st, err := s.Query(); err == nil && st.State != svc.Stopped {
		_, _ = s.Control(svc.Stop)
		for i := 0; i < 10; i++ {
			time.Sleep(500 * time.Millisecond)
			st, err = s.Query()
			if err != nil || st.State == svc.Stopped {
				break
			}
		}
	}

	if err := s.Delete(); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	_ = eventlog.Remove(name)
	return nil
}

// ExePath returns the path of the running executable.
func ExePath() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return p, nil
}
