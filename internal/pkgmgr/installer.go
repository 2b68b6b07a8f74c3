package pkgmgr

import (
	"context"
	"log/slog"

	"github.com/backendgen/backendgen/internal/logging"
)

// Installer runs the package-manager steps of a scaffold run in dir.
// Every step blocks until its command exits; the first failure is returned
// unchanged so callers can read the CommandError exit code.
type Installer struct {
	manager Manager
	runner  Runner
	logger  *slog.Logger
}

// NewInstaller creates an Installer for m using runner.
func NewInstaller(m Manager, runner Runner, logger *slog.Logger) *Installer {
	return &Installer{
		manager: m,
		runner:  runner,
		logger:  logging.OrDiscard(logger),
	}
}

// Init creates package.json.
func (i *Installer) Init(ctx context.Context, dir string) error {
	return i.run(ctx, dir, i.manager.InitCommand())
}

// Install installs runtime packages in one command, then dev packages in a
// second command when there are any.
func (i *Installer) Install(ctx context.Context, dir string, runtime, dev []string) error {
	if len(runtime) > 0 {
		if err := i.run(ctx, dir, i.manager.AddCommand(false, runtime...)); err != nil {
			return err
		}
	}
	if len(dev) > 0 {
		if err := i.run(ctx, dir, i.manager.AddCommand(true, dev...)); err != nil {
			return err
		}
	}
	return nil
}

// InitORM runs "prisma init" through the package manager's exec command.
func (i *Installer) InitORM(ctx context.Context, dir string) error {
	return i.run(ctx, dir, i.manager.ExecCommand("prisma", "init"))
}

func (i *Installer) run(ctx context.Context, dir string, argv []string) error {
	i.logger.Info("package manager", "manager", i.manager.Name, "args", argv)
	return i.runner.Run(ctx, dir, argv[0], argv[1:]...)
}
