// SPDX-License-Identifier: MPL-2.0

// Package fsprobe provides read-only filesystem presence checks.
//
// Every function degrades access errors (permissions, broken symlinks,
// vanished paths) to the "not there" answer instead of returning an error.
// Callers that need the distinction between "missing" and "unreadable"
// should stat directly.
package fsprobe

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path refers to an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path refers to an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CountFiles returns the number of regular files under dir, recursively.
// It returns 0 if dir does not exist or cannot be read; unreadable
// subdirectories are skipped rather than aborting the walk.
func CountFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count
}
