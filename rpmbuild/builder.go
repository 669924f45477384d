/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package rpmbuild

import (
	"io"
	"os"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/holocm/rpmcore/rpm"
)

// unix mode_t type bits, as written into the CPIO header and RPMTAG_FILEMODES
// (these are NOT Go's os.FileMode bit layout).
const (
	modeTypeRegular = 0o100000
	modeTypeSymlink = 0o120000
)

// archIDs maps RPM architecture strings to the 16-bit code stored in the
// lead. Source: `grep arch_canon /usr/lib/rpm/rpmrc`.
var archIDs = map[string]uint16{
	"noarch":  0,
	"i386":    1,
	"i686":    1,
	"x86_64":  1,
	"armv5tl": 12,
	"armv6hl": 12,
	"armv7hl": 12,
	"aarch64": 12,
}

// Builder accumulates package metadata and file inputs, then assembles them
// into an *rpm.Package with Build. A Builder is used once; its exported
// fields are the entire configuration surface.
type Builder struct {
	Name        string
	Version     string
	Release     string
	License     string
	Arch        string
	Description string

	// UID and GID are applied to every regular file's CPIO record ownership
	// fields. Both default to 0 (root) when left unset. The RPM
	// FILEUSERNAME/FILEGROUPNAME tables are always "root".
	UID uint32
	GID uint32

	Requires  []Dependency
	Provides  []Dependency
	Obsoletes []Dependency
	Conflicts []Dependency

	// SetupScript and CleanupScript are shell fragments run via /bin/sh as
	// %post and %postun respectively. Either may be left empty.
	SetupScript   string
	CleanupScript string

	// Epoch, when non-zero, is emitted as RPMTAG_EPOCH and prefixes the
	// implicit self-provide version string ("epoch:version") and the lead's
	// version-release string ("epoch:version-release").
	Epoch uint32

	// BuildTime, when non-zero, is emitted as RPMTAG_BUILDTIME along with
	// RPMTAG_BUILDHOST (from os.Hostname()). Leaving it as the zero value
	// omits both tags, for reproducible builds.
	BuildTime time.Time

	Vendor   string
	URL      string
	Packager string
	// Group overrides the default RPMTAG_GROUP value of "Unspecified".
	Group string

	files []fileInput
}

type fileInput struct {
	destPath   string // cleaned, absolute, no CPIO "." prefix
	isSymlink  bool
	content    []byte
	unixMode   uint32
	mtime      time.Time
	linkTarget string
}

// AddFile registers an in-memory file to be included in the package at
// destPath. perm supplies the permission bits (RPM stores these alongside a
// regular-file type tag); mtime is recorded as RPMTAG_FILEMTIMES.
func (b *Builder) AddFile(destPath string, content []byte, perm os.FileMode, mtime time.Time) error {
	clean, err := normalizeDestPath(destPath)
	if err != nil {
		return err
	}
	b.files = append(b.files, fileInput{
		destPath: clean,
		content:  content,
		unixMode: modeTypeRegular | uint32(perm.Perm()),
		mtime:    mtime,
	})
	return nil
}

// AddFileFromPath reads sourcePath from the filesystem and registers it to
// be included in the package at destPath, using the source file's own
// permission bits and modification time. The source file handle is always
// closed before this method returns, whether or not it succeeds.
func (b *Builder) AddFileFromPath(destPath, sourcePath string) error {
	f, err := os.Open(sourcePath)
	if err != nil {
		return rpm.WrapError(rpm.KindIO, err, "failed to open %q", sourcePath)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return rpm.WrapError(rpm.KindIO, err, "failed to stat %q", sourcePath)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return rpm.WrapError(rpm.KindIO, err, "failed to read %q", sourcePath)
	}

	return b.AddFile(destPath, content, info.Mode(), info.ModTime())
}

// AddSymlink registers a symlink to be included in the package at destPath,
// pointing at target. Symlinks carry no content digest and contribute their
// target string to RPMTAG_FILELINKTOS instead.
func (b *Builder) AddSymlink(destPath, target string) error {
	clean, err := normalizeDestPath(destPath)
	if err != nil {
		return err
	}
	b.files = append(b.files, fileInput{
		destPath:   clean,
		isSymlink:  true,
		unixMode:   modeTypeSymlink | 0o777,
		linkTarget: target,
	})
	return nil
}

// normalizeDestPath cleans destPath to an absolute, slash-separated path
// with no trailing slash, and rejects the root path (which has no parent
// directory to register in the directory table) as well as paths that are
// not valid UTF-8 (the header store holds NUL-terminated UTF-8 strings).
func normalizeDestPath(destPath string) (string, error) {
	if !utf8.ValidString(destPath) {
		return "", rpm.NewError(rpm.KindInvalidPath, "path %q is not valid UTF-8", destPath)
	}
	clean := path.Join("/", destPath)
	if clean == "/" {
		return "", rpm.NewError(rpm.KindInvalidPath, "path %q has no parent directory", destPath)
	}
	return clean, nil
}

// parentDir returns the normalized parent directory of an already-cleaned
// absolute destPath, with a leading and trailing slash.
func parentDir(cleanDestPath string) string {
	dir := path.Dir(cleanDestPath)
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir
}

// Build assembles a complete rpm.Package from the builder's current state.
// The builder may be discarded afterwards; Build does not mutate it further.
func (b *Builder) Build() (*rpm.Package, error) {
	pd, err := buildPayload(b.files, b.UID, b.GID)
	if err != nil {
		return nil, err
	}

	mainHeader := buildMainHeader(b, pd)
	mainHeaderBytes := mainHeader.ToBinary(uint32(rpm.TagHeaderImmutable))

	signatureHeader := buildSignatureHeader(mainHeaderBytes, pd.Binary)

	archCode, ok := archIDs[b.Arch]
	if !ok {
		archCode = 0
	}
	lead := rpm.NewLead(b.Name+"-"+fullVersionString(b), archCode)

	return rpm.NewPackage(lead, signatureHeader, mainHeader, pd.Binary), nil
}
