/*  This file is part of lvfpga-hdltools.
    lvfpga-hdltools is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    lvfpga-hdltools is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with lvfpga-hdltools.  If not, see <http://www.gnu.org/licenses/>. */

// Package prjfiles expands listfiles into the flat, sorted set of design
// files that goes into the Vivado project. Basename collisions are fatal:
// the toolchain resolves files by basename in some reference contexts, and
// two different foo.vhd would make it silently pick the wrong one.
package prjfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrListFileNotFound = errors.New("file list does not exist")
	ErrDuplicateFiles   = errors.New("duplicate file names found")
	ErrDepsCopyFailed   = errors.New("dependency copy failed")
)

// hdl_extensions is the allow-list applied when a listfile line names a
// directory. Explicit file lines are taken verbatim.
var hdl_extensions = []string{".vhd", ".v", ".sv", ".xdc", ".edf", ".dcp", ".xci"}

type Options struct {
	// DepsMarker is the path segment identifying dependency files that get
	// relocated into GatherDir.
	DepsMarker string
	// GatherDir is the consolidated folder the dependency files are copied to.
	GatherDir string
	// LogPath receives the duplicate diagnostic when collisions are found.
	LogPath string
}

func DefaultOptions() Options {
	return Options{
		DepsMarker: "githubdeps",
		GatherDir:  "objects/gathereddeps",
		LogPath:    "duplicate_files.log",
	}
}

// Assemble expands the listfiles, checks for basename collisions, relocates
// dependency files and returns the final sorted file set. Duplicate
// detection runs against the original paths, before relocation, so a
// dependency shadowing a project file is still caught.
func Assemble(listfiles []string, opt Options) ([]string, error) {
	all, err := collect(listfiles)
	if err != nil {
		return nil, err
	}
	if err := check_duplicates(all, opt.LogPath); err != nil {
		return nil, err
	}
	all, err = relocate_deps(all, opt.DepsMarker, opt.GatherDir)
	if err != nil {
		return nil, err
	}
	sort.Strings(all)
	return all, nil
}

func fix_slashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// abs_path anchors relative listfile entries at the working directory, so
// later consumers can relate them to any folder.
func abs_path(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func has_hdl_extension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, each := range hdl_extensions {
		if ext == each {
			return true
		}
	}
	return false
}

// collect reads every listfile line by line. Blank lines and # comments are
// skipped; a directory line is walked recursively with the extension filter,
// any other line is included verbatim.
func collect(listfiles []string) ([]string, error) {
	var all []string
	for _, list_path := range listfiles {
		f, err := os.Open(list_path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrListFileNotFound, list_path)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			info, err := os.Stat(line)
			if err == nil && info.IsDir() {
				log.Infof("directory found: %s", line)
				walk_err := filepath.Walk(line, func(path string, fi os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !fi.IsDir() && has_hdl_extension(path) {
						all = append(all, fix_slashes(abs_path(path)))
					}
					return nil
				})
				if walk_err != nil {
					f.Close()
					return nil, fmt.Errorf("cannot walk directory %s: %w", line, walk_err)
				}
			} else {
				all = append(all, fix_slashes(abs_path(line)))
			}
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("cannot read file list %s: %w", list_path, err)
		}
	}
	return all, nil
}

// check_duplicates groups the set by basename and writes the diagnostic log
// when any group holds more than one path. A stale log from a previous run
// is removed first so its presence always means a current problem.
func check_duplicates(files []string, log_path string) error {
	groups := make(map[string][]string)
	var order []string
	for _, file := range files {
		base := filepath.Base(file)
		if len(groups[base]) == 0 {
			order = append(order, base)
		}
		groups[base] = append(groups[base], file)
	}

	duplicated := false
	for _, paths := range groups {
		if len(paths) > 1 {
			duplicated = true
			break
		}
	}

	os.Remove(log_path)
	if !duplicated {
		return nil
	}

	out, err := os.Create(log_path)
	if err != nil {
		return fmt.Errorf("cannot write duplicate log %s: %w", log_path, err)
	}
	defer out.Close()
	for _, base := range order {
		paths := groups[base]
		if len(paths) < 2 {
			continue
		}
		fmt.Fprintf(out, "Duplicate file: %s\n", base)
		for _, path := range paths {
			fmt.Fprintf(out, "  %s\n", path)
		}
		fmt.Fprintln(out)
	}
	return fmt.Errorf("%w, check %s for details", ErrDuplicateFiles, log_path)
}

// relocate_deps copies every file whose path contains the marker segment
// into the consolidated folder and points the list entry at the copy. A
// failed copy aborts the assembly: a half-copied dependency set would build,
// but with stale files.
func relocate_deps(files []string, marker, gather_dir string) ([]string, error) {
	if marker == "" {
		return files, nil
	}
	if err := os.MkdirAll(gather_dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create folder %s: %w", gather_dir, err)
	}
	out := make([]string, 0, len(files))
	for _, file := range files {
		if !strings.Contains(file, marker) {
			out = append(out, file)
			continue
		}
		target := filepath.Join(gather_dir, filepath.Base(file))
		if err := copy_file(file, target); err != nil {
			return nil, fmt.Errorf("%w: %s to %s: %v", ErrDepsCopyFailed, file, target, err)
		}
		out = append(out, fix_slashes(target))
	}
	return out, nil
}

func copy_file(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	// An earlier run may have left a read-only copy behind
	if _, err := os.Stat(dst); err == nil {
		os.Chmod(dst, 0777)
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode())
}
