package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/backendgen/backendgen/internal/defs"
	"github.com/backendgen/backendgen/internal/logging"
)

// File is a rendered file ready to be written, addressed by a slash-separated
// path relative to the project root.
type File struct {
	Path    string
	Content []byte
}

// DeployResult lists what a Deploy call did, in plan order.
type DeployResult struct {
	Written []string
	Skipped []string
	// Drift holds the skipped files whose content differs from the
	// rendered version.
	Drift []Drift
}

// Drift describes a preserved file that no longer matches its template.
type Drift struct {
	Path string
	DiffStat
}

// Observer is notified after each file is handled. written is false when the
// file was skipped because it already existed.
type Observer func(path string, written bool)

// @MX:ANCHOR: [AUTO] Deployer is the single file-emission contract; the write policy is a constructor parameter, not a separate implementation.
// @MX:REASON: fan_in=3, used by the project generator, its tests and the CLI composition root
// Deployer writes rendered files into a project root according to its WritePolicy.
type Deployer interface {
	// Deploy writes files under projectRoot, creating parent directories as
	// needed. The first write failure aborts the call; files already
	// written stay on disk.
	Deploy(ctx context.Context, projectRoot string, files []File) (*DeployResult, error)

	// Policy returns the write policy this Deployer applies.
	Policy() WritePolicy
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	policy   WritePolicy
	observer Observer
	logger   *slog.Logger
}

// DeployerOption configures a Deployer.
type DeployerOption func(*deployer)

// WithObserver registers a callback invoked after every file.
func WithObserver(o Observer) DeployerOption {
	return func(d *deployer) {
		d.observer = o
	}
}

// WithLogger sets the deployer's logger.
func WithLogger(l *slog.Logger) DeployerOption {
	return func(d *deployer) {
		d.logger = l
	}
}

// NewDeployer creates a Deployer applying policy. An empty policy means
// PolicyPreserve.
func NewDeployer(policy WritePolicy, opts ...DeployerOption) Deployer {
	if policy == "" {
		policy = PolicyPreserve
	}
	d := &deployer{policy: policy}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.OrDiscard(d.logger)
	return d
}

// Policy returns the write policy.
func (d *deployer) Policy() WritePolicy {
	return d.policy
}

// Deploy writes every file in order.
func (d *deployer) Deploy(ctx context.Context, projectRoot string, files []File) (*DeployResult, error) {
	projectRoot = filepath.Clean(projectRoot)
	result := &DeployResult{}

	for _, f := range files {
		// Check context cancellation before each file
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := validateDeployPath(projectRoot, f.Path); err != nil {
			return result, err
		}
		destPath := filepath.Join(projectRoot, filepath.FromSlash(f.Path))

		if d.policy == PolicyPreserve {
			_, statErr := os.Lstat(destPath)
			if statErr == nil {
				d.logger.Debug("file exists, preserving", "path", f.Path)
				result.Skipped = append(result.Skipped, f.Path)
				if stat, ok := d.drift(destPath, f.Content); ok {
					result.Drift = append(result.Drift, Drift{Path: f.Path, DiffStat: stat})
				}
				d.notify(f.Path, false)
				continue
			}
			if !errors.Is(statErr, fs.ErrNotExist) {
				return result, fmt.Errorf("stat %s: %w", f.Path, statErr)
			}
		}

		if err := writeFileAtomic(destPath, f.Content); err != nil {
			return result, fmt.Errorf("write %s: %w", f.Path, err)
		}
		d.logger.Debug("file written", "path", f.Path, "bytes", len(f.Content), "policy", d.policy)
		result.Written = append(result.Written, f.Path)
		d.notify(f.Path, true)
	}

	return result, nil
}

// drift compares an existing file with its rendered content. Unreadable
// files report no drift.
func (d *deployer) drift(destPath string, content []byte) (DiffStat, bool) {
	current, err := os.ReadFile(destPath)
	if err != nil {
		d.logger.Debug("cannot compare preserved file", "path", destPath, "error", err)
		return DiffStat{}, false
	}
	stat := CompareContent(content, current)
	return stat, stat.Changed()
}

func (d *deployer) notify(path string, written bool) {
	if d.observer != nil {
		d.observer(path, written)
	}
}

// writeFileAtomic writes content to a temporary file next to dest and renames
// it into place, so a failed write never leaves a truncated dest behind.
func writeFileAtomic(dest string, content []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".backendgen-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, defs.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, dest)
}

// validateDeployPath ensures a relative path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	// Clean and normalize
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	// Reject absolute paths
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	// Reject path traversal components
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	// Convert projectRoot to absolute path for reliable comparison
	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	// Verify containment: the resolved path must be under projectRoot
	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
