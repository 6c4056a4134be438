package konsole

import (
	"context"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Systemd is the part of systemctl --user the installer needs
type Systemd interface {
	DaemonReload(ctx context.Context) error
	IsEnabled(ctx context.Context, unit string) bool
	IsActive(ctx context.Context, unit string) bool
	// EnableNow enables the unit and starts it.
	EnableNow(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
}

// SystemdClient shells out to systemctl --user
type SystemdClient struct {
	Runner command.Runner
}

func systemctl(args ...string) command.Command {
	return command.New(append([]string{"systemctl", "--user"}, args...)...)
}

func (c *SystemdClient) DaemonReload(ctx context.Context) error {
	if err := c.Runner.Run(ctx, systemctl("daemon-reload")); err != nil {
		return errors.Wrap(err, errors.ErrServiceRegister, "systemctl daemon-reload failed")
	}
	return nil
}

// IsEnabled is false for any non-zero exit, including an unknown unit
func (c *SystemdClient) IsEnabled(ctx context.Context, unit string) bool {
	out, err := c.Runner.Output(ctx, systemctl("is-enabled", unit))
	return err == nil && out == "enabled"
}

func (c *SystemdClient) IsActive(ctx context.Context, unit string) bool {
	out, err := c.Runner.Output(ctx, systemctl("is-active", unit))
	return err == nil && out == "active"
}

func (c *SystemdClient) EnableNow(ctx context.Context, unit string) error {
	if err := c.Runner.Run(ctx, systemctl("enable", "--now", unit)); err != nil {
		return errors.Wrapf(err, errors.ErrServiceRegister, "failed to enable %s", unit).
			WithDetail("unit", unit)
	}
	return nil
}

func (c *SystemdClient) Restart(ctx context.Context, unit string) error {
	if err := c.Runner.Run(ctx, systemctl("restart", unit)); err != nil {
		return errors.Wrapf(err, errors.ErrServiceRegister, "failed to restart %s", unit).
			WithDetail("unit", unit)
	}
	return nil
}
