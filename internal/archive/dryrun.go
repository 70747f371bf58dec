package archive

import "context"

// DryRun reports where documents would be filed without touching the disk.
type DryRun struct {
	root string
}

// NewDryRun creates a dry-run archiver for root.
func NewDryRun(root string) *DryRun {
	return &DryRun{root: root}
}

// Archive implements Archiver.
func (d *DryRun) Archive(_ context.Context, src, employee, vendor string) (string, error) {
	return Destination(d.root, src, employee, vendor)
}
