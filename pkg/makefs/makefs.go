// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package makefs provides functions to build filesystem images via external tools.
package makefs

import "github.com/google/uuid"

// Option to control makefs settings.
type Option func(*Options)

// Options for makefs.
type Options struct {
	// SourceDirectory seeds the filesystem with the contents of a directory
	// (or a tar archive, with recent e2fsprogs).
	SourceDirectory string
	// BlockSize in bytes, 0 leaves the tool default.
	BlockSize int
	// InodeSize in bytes, 0 leaves the tool default.
	InodeSize int
	// LastMounted sets the last-mounted-on path recorded in the superblock.
	LastMounted string
	// Label is the volume label.
	Label string
	// UUID pins the volume UUID.
	UUID *uuid.UUID
	// Features is the filesystem feature set string (mke2fs -O syntax).
	Features string
	// ExtendedOptions is the extended tuning flag string (mke2fs -E syntax).
	ExtendedOptions string
	// JournalOptions configures the journal (mke2fs -J syntax).
	JournalOptions string

	Printf func(string, ...any)
}

// WithSourceDirectory seeds the filesystem from the given directory tree.
func WithSourceDirectory(dir string) Option {
	return func(o *Options) {
		o.SourceDirectory = dir
	}
}

// WithBlockSize sets the filesystem block size.
func WithBlockSize(size int) Option {
	return func(o *Options) {
		o.BlockSize = size
	}
}

// WithInodeSize sets the inode size.
func WithInodeSize(size int) Option {
	return func(o *Options) {
		o.InodeSize = size
	}
}

// WithLastMounted sets the last-mounted-on path.
func WithLastMounted(path string) Option {
	return func(o *Options) {
		o.LastMounted = path
	}
}

// WithLabel sets the label for the filesystem to be created.
func WithLabel(label string) Option {
	return func(o *Options) {
		o.Label = label
	}
}

// WithUUID pins the volume UUID.
func WithUUID(id uuid.UUID) Option {
	return func(o *Options) {
		o.UUID = &id
	}
}

// WithFeatures sets the filesystem feature string.
func WithFeatures(features string) Option {
	return func(o *Options) {
		o.Features = features
	}
}

// WithExtendedOptions sets the extended tuning flag string.
func WithExtendedOptions(extendedOptions string) Option {
	return func(o *Options) {
		o.ExtendedOptions = extendedOptions
	}
}

// WithJournalOptions configures the journal.
func WithJournalOptions(journalOptions string) Option {
	return func(o *Options) {
		o.JournalOptions = journalOptions
	}
}

// WithPrintf sets the progress printing function.
func WithPrintf(printf func(string, ...any)) Option {
	return func(o *Options) {
		o.Printf = printf
	}
}

// NewDefaultOptions builds options with specified setters applied.
func NewDefaultOptions(setters ...Option) Options {
	opt := Options{
		Printf: func(string, ...any) {},
	}

	for _, o := range setters {
		o(&opt)
	}

	return opt
}
