package fatinspect

import (
	"github.com/aligator/fatinspect/checkpoint"
)

// WalkFunc is called by Walk for every entry. depth is 0 for entries of the
// root directory and path is the display path of the entry.
// Returning an error aborts the walk with that error.
type WalkFunc func(depth int, path string, entry DirEntry) error

type dirFrame struct {
	entries []DirEntry
	next    int
	depth   int
	path    string
	// clusters of the directories from the root down to this one
	ancestors []uint32
}

// traverse visits the directory tree depth first in pre-order using an
// explicit stack. visit decides for every directory entry whether it is
// entered. "." and ".." are passed to visit but never entered.
// A subdirectory which starts at an invalid cluster or at one of its own
// ancestors is skipped with an ErrCorruptChain warning.
func (fs *Fs) traverse(visit func(depth int, path string, entry DirEntry) (bool, error)) error {
	root := fs.bs.RootCluster
	entries, err := fs.readDir(root)
	if err != nil {
		return err
	}

	stack := []*dirFrame{{
		entries:   entries,
		ancestors: []uint32{root},
	}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++
		path := top.path + "/" + entry.DisplayName()

		enter, err := visit(top.depth, path, entry)
		if err != nil {
			return err
		}
		if !enter || !entry.IsDir() || entry.IsDot() {
			continue
		}

		if !fatEntry(entry.FirstCluster).IsNextCluster() {
			fs.warn(checkpoint.Reason(ErrCorruptChain, "directory %s starts at invalid cluster 0x%08X", path, entry.FirstCluster))
			continue
		}
		if containsCluster(top.ancestors, entry.FirstCluster) {
			fs.warn(checkpoint.Reason(ErrCorruptChain, "directory %s at cluster %d is its own ancestor", path, entry.FirstCluster))
			continue
		}

		sub, err := fs.readDir(entry.FirstCluster)
		if err != nil {
			return err
		}

		ancestors := make([]uint32, len(top.ancestors), len(top.ancestors)+1)
		copy(ancestors, top.ancestors)

		stack = append(stack, &dirFrame{
			entries:   sub,
			depth:     top.depth + 1,
			path:      path,
			ancestors: append(ancestors, entry.FirstCluster),
		})
	}

	return nil
}

func containsCluster(clusters []uint32, cluster uint32) bool {
	for _, c := range clusters {
		if c == cluster {
			return true
		}
	}
	return false
}

// Walk calls fn for every entry of the partition, depth first, starting at
// the root directory. Every directory except "." and ".." is descended into.
func (fs *Fs) Walk(fn WalkFunc) error {
	return fs.traverse(func(depth int, path string, entry DirEntry) (bool, error) {
		return true, fn(depth, path, entry)
	})
}

// Tree collects the whole walk of the partition.
func (fs *Fs) Tree() ([]TreeEntry, error) {
	var tree []TreeEntry
	err := fs.Walk(func(depth int, path string, entry DirEntry) error {
		tree = append(tree, newTreeEntry(depth, path, entry))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}
