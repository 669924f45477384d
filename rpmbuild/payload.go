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
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path"
	"sort"

	"github.com/cavaliergopher/cpio"
	"github.com/ulikunitz/xz"

	"github.com/holocm/rpmcore/rpm"
)

// payloadData holds the compressed CPIO/XZ payload plus the parallel
// per-file metadata arrays that RPMTAG_FILE* entries are built from.
type payloadData struct {
	Binary           []byte
	UncompressedSize uint32
	TotalFileSize    int64

	dirnames    []string
	basenames   []string
	dirIndexes  []int32
	sizes       []int32
	modes       []int16
	rdevs       []int16
	mtimes      []int32
	digests     []string
	linktos     []string
	flags       []int32
	userNames   []string
	groupNames  []string
	devices     []int32
	inodes      []int32
	langs       []string
	verifyFlags []int32
}

// countingWriter tallies the bytes written to it before forwarding them,
// used to measure the uncompressed CPIO archive size for RPMTAG_ARCHIVESIZE.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// buildPayload streams files (in ascending destination-path order) through
// a CPIO "newc" archive wrapped in an XZ compressor, computing each file's
// content digest and building the directory/file metadata tables alongside.
func buildPayload(files []fileInput, uid, gid uint32) (*payloadData, error) {
	sorted := make([]fileInput, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].destPath < sorted[j].destPath })

	dirSet := make(map[string]bool, len(sorted))
	for _, f := range sorted {
		dirSet[parentDir(f.destPath)] = true
	}
	dirnames := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirnames = append(dirnames, d)
	}
	sort.Strings(dirnames)

	var compressed bytes.Buffer
	xzw, err := xz.NewWriter(&compressed)
	if err != nil {
		return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to initialize xz compressor")
	}
	counter := &countingWriter{w: xzw}
	cw := cpio.NewWriter(counter)

	pd := &payloadData{dirnames: dirnames}

	var ino int32
	for _, f := range sorted {
		ino++
		dir := parentDir(f.destPath)
		dirIdx := indexOfString(dirnames, dir)
		if dirIdx < 0 {
			return nil, rpm.NewError(rpm.KindInvalidPath, "parent directory %q of %q missing from directory table", dir, f.destPath)
		}

		pd.basenames = append(pd.basenames, path.Base(f.destPath))
		pd.dirIndexes = append(pd.dirIndexes, int32(dirIdx))
		pd.devices = append(pd.devices, 1)
		pd.rdevs = append(pd.rdevs, 0)
		pd.inodes = append(pd.inodes, ino)
		pd.langs = append(pd.langs, "")
		pd.userNames = append(pd.userNames, "root")
		pd.groupNames = append(pd.groupNames, "root")
		pd.verifyFlags = append(pd.verifyFlags, -1)
		pd.modes = append(pd.modes, int16(f.unixMode))

		cpioName := "." + f.destPath

		if f.isSymlink {
			target := []byte(f.linkTarget)
			hdr := &cpio.Header{Name: cpioName, Mode: cpio.FileMode(f.unixMode), Size: int64(len(target)), Links: 1, Inode: int64(ino)}
			if err := cw.WriteHeader(hdr); err != nil {
				return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to write cpio header for %q", f.destPath)
			}
			if _, err := cw.Write(target); err != nil {
				return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to write cpio content for %q", f.destPath)
			}
			pd.sizes = append(pd.sizes, int32(len(target)))
			pd.mtimes = append(pd.mtimes, 0)
			pd.digests = append(pd.digests, "")
			pd.linktos = append(pd.linktos, f.linkTarget)
			pd.flags = append(pd.flags, 0)
			continue
		}

		sum := sha256.Sum256(f.content)
		hdr := &cpio.Header{
			Name:  cpioName,
			Mode:  cpio.FileMode(f.unixMode),
			Size:  int64(len(f.content)),
			Links: 1,
			Inode: int64(ino),
			Uid:   int(uid),
			Guid:  int(gid),
		}
		if err := cw.WriteHeader(hdr); err != nil {
			return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to write cpio header for %q", f.destPath)
		}
		if _, err := cw.Write(f.content); err != nil {
			return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to write cpio content for %q", f.destPath)
		}

		pd.sizes = append(pd.sizes, int32(len(f.content)))
		pd.mtimes = append(pd.mtimes, int32(f.mtime.Unix()))
		pd.digests = append(pd.digests, hex.EncodeToString(sum[:]))
		pd.linktos = append(pd.linktos, "")
		pd.flags = append(pd.flags, 0)
		pd.TotalFileSize += int64(len(f.content))
	}

	if err := cw.Close(); err != nil {
		return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to finalize cpio archive")
	}
	if err := xzw.Close(); err != nil {
		return nil, rpm.WrapError(rpm.KindCompressorFailed, err, "failed to finalize xz stream")
	}

	pd.Binary = compressed.Bytes()
	pd.UncompressedSize = uint32(counter.n)
	return pd, nil
}

func indexOfString(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
