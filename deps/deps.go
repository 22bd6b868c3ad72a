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

// Package deps unpacks downloaded dependency archives into the folder the
// project file lists point at, and installs generated target support files
// into a LabVIEW FPGA plugin tree.
package deps

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ExtractZips removes any previous extraction under deps_folder and unpacks
// every .zip found directly in dir flat into it, so the archives' own top
// folders are what the file lists reference. Extraction is not recursive:
// archives inside archives stay packed.
func ExtractZips(dir, deps_folder string) error {
	if err := os.RemoveAll(deps_folder); err != nil {
		return fmt.Errorf("cannot clean %s: %w", deps_folder, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", dir, err)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			continue
		}
		if err := extract_one(filepath.Join(dir, entry.Name()), deps_folder); err != nil {
			return err
		}
		log.Infof("extracted %s -> %s", entry.Name(), deps_folder)
		count++
	}
	if count == 0 {
		log.Warnf("no .zip archives found in %s", dir)
	}
	return nil
}

func extract_one(zip_path, dest string) error {
	reader, err := zip.OpenReader(zip_path)
	if err != nil {
		return fmt.Errorf("cannot open archive %s: %w", zip_path, err)
	}
	defer reader.Close()
	for _, file := range reader.File {
		target := filepath.Join(dest, filepath.FromSlash(file.Name))
		// Reject entries that would escape the destination folder.
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive %s: illegal entry path %s", zip_path, file.Name)
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := write_entry(file, target); err != nil {
			return fmt.Errorf("archive %s: %w", zip_path, err)
		}
	}
	return nil
}

func write_entry(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// InstallTree copies the folder src into dst recursively, overwriting files
// that are already there. Read-only targets are made writable first because
// LabVIEW marks installed support files read-only.
func InstallTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a folder", src)
	}
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copy_file(path, target, info.Mode())
	})
}

func copy_file(src, dst string, mode os.FileMode) error {
	if _, err := os.Stat(dst); err == nil {
		if err := os.Chmod(dst, 0777); err != nil {
			return fmt.Errorf("cannot make %s writable: %w", dst, err)
		}
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}
