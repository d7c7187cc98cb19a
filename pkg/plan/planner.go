// Package plan expands a directory-level copy into single-file transfer requests.
package plan

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/drittich/media-device-copier/internal/platform"
	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/models"
)

// Options selects what to plan
type Options struct {
	Direction models.Direction

	// SourceRoot is a device directory for downloads and a local directory for uploads
	SourceRoot string
	// TargetRoot is a local directory for downloads and a device directory for uploads
	TargetRoot string

	// SubfolderRegex filters subdirectories by their slash-separated path
	// relative to SourceRoot. Non-matching subtrees are pruned.
	SubfolderRegex string
	// FileRegex filters files by base name
	FileRegex string
	// Exclude lists glob patterns matched against relative paths
	Exclude []string

	SkipExisting bool
	Move         bool
}

// Planner builds transfer requests by walking the source tree
type Planner struct {
	device    device.Device
	options   Options
	subfolder *regexp.Regexp
	file      *regexp.Regexp
	exclude   *Excluder
}

// New validates options and creates a planner
func New(dev device.Device, options Options) (*Planner, error) {
	if !options.Direction.Valid() {
		return nil, &models.ValidationError{Field: "Direction", Message: fmt.Sprintf("unknown direction %q", options.Direction)}
	}
	if options.SourceRoot == "" {
		return nil, &models.ValidationError{Field: "SourceRoot", Message: "source directory is required"}
	}
	if options.TargetRoot == "" {
		return nil, &models.ValidationError{Field: "TargetRoot", Message: "target directory is required"}
	}

	p := &Planner{device: dev, options: options}

	var err error
	if options.SubfolderRegex != "" {
		if p.subfolder, err = regexp.Compile(options.SubfolderRegex); err != nil {
			return nil, &models.ValidationError{Field: "SubfolderRegex", Message: err.Error()}
		}
	}
	if options.FileRegex != "" {
		if p.file, err = regexp.Compile(options.FileRegex); err != nil {
			return nil, &models.ValidationError{Field: "FileRegex", Message: err.Error()}
		}
	}
	if p.exclude, err = NewExcluder(options.Exclude); err != nil {
		return nil, &models.ValidationError{Field: "Exclude", Message: err.Error()}
	}
	return p, nil
}

type planned struct {
	rel string
	req models.TransferRequest
}

// Plan walks the source tree and returns one request per selected file,
// sorted by relative path
func (p *Planner) Plan(ctx context.Context) ([]models.TransferRequest, error) {
	var (
		items []planned
		err   error
	)
	if p.options.Direction == models.DirectionUpload {
		items, err = p.planUpload()
	} else {
		items, err = p.planDownload(ctx)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].rel < items[j].rel })
	requests := make([]models.TransferRequest, len(items))
	for i, item := range items {
		requests[i] = item.req
	}
	return requests, nil
}

func (p *Planner) request(src, dst string) models.TransferRequest {
	return models.TransferRequest{
		Direction:    p.options.Direction,
		SourcePath:   src,
		TargetPath:   dst,
		SkipExisting: p.options.SkipExisting,
		IsMove:       p.options.Move,
	}
}

func (p *Planner) keepDir(rel string) bool {
	if p.subfolder != nil && !p.subfolder.MatchString(rel) {
		return false
	}
	return !p.exclude.Match(rel, true)
}

func (p *Planner) keepFile(rel string) bool {
	if p.file != nil && !p.file.MatchString(path.Base(rel)) {
		return false
	}
	return !p.exclude.Match(rel, false)
}

func (p *Planner) planDownload(ctx context.Context) ([]planned, error) {
	if !p.device.IsConnected(ctx) {
		return nil, device.ErrNotConnected
	}
	root := platform.NormalizeDevicePath(p.options.SourceRoot)
	ok, err := p.device.DirectoryExists(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to check source directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("source directory %s: %w", root, device.ErrNotFound)
	}

	var items []planned
	var walk func(dir string) error
	walk = func(dir string) error {
		files, err := p.device.ListFiles(ctx, dir)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, file := range files {
			rel, err := platform.DeviceRel(root, file)
			if err != nil {
				return err
			}
			if !p.keepFile(rel) {
				continue
			}
			items = append(items, planned{
				rel: rel,
				req: p.request(file, platform.DeviceToLocal(p.options.TargetRoot, rel)),
			})
		}

		dirs, err := p.device.ListSubdirectories(ctx, dir)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, sub := range dirs {
			rel, err := platform.DeviceRel(root, sub)
			if err != nil {
				return err
			}
			if !p.keepDir(rel) {
				continue
			}
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Planner) planUpload() ([]planned, error) {
	root, err := filepath.Abs(p.options.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	var items []planned
	err = filepath.WalkDir(root, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if current == root {
			if !d.IsDir() {
				return fmt.Errorf("source %s is not a directory", root)
			}
			return nil
		}

		relLocal, err := filepath.Rel(root, current)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(relLocal)

		if d.IsDir() {
			if !p.keepDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !p.keepFile(rel) {
			return nil
		}
		items = append(items, planned{
			rel: rel,
			req: p.request(current, platform.LocalToDevice(p.options.TargetRoot, rel)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return items, nil
}
