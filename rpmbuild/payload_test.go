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
	"io"
	"sort"
	"testing"
	"time"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// decompressing the payload and walking the CPIO archive must yield the
// files in ascending destination-path order, with their original content.
// This is the ordering invariant that lets RPM index files by position.
func TestPayloadArchiveOrderAndContent(t *testing.T) {
	files := []fileInput{
		{destPath: "/var/lib/acme/state", content: []byte("state"), unixMode: modeTypeRegular | 0o600, mtime: time.Unix(1600000000, 0)},
		{destPath: "/etc/acme.conf", content: []byte("conf"), unixMode: modeTypeRegular | 0o644, mtime: time.Unix(1600000000, 0)},
		{destPath: "/usr/bin/acme", content: []byte("#!/bin/sh\n"), unixMode: modeTypeRegular | 0o755, mtime: time.Unix(1600000000, 0)},
	}

	pd, err := buildPayload(files, 0, 0)
	require.NoError(t, err)
	require.NotZero(t, pd.UncompressedSize)

	xzr, err := xz.NewReader(bytes.NewReader(pd.Binary))
	require.NoError(t, err)
	cr := cpio.NewReader(xzr)

	var names []string
	contents := make(map[string][]byte)
	for {
		hdr, err := cr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(cr)
		require.NoError(t, err)
		names = append(names, hdr.Name)
		contents[hdr.Name] = body
	}

	require.Equal(t, []string{"./etc/acme.conf", "./usr/bin/acme", "./var/lib/acme/state"}, names)
	require.True(t, sort.StringsAreSorted(names))
	require.Equal(t, []byte("conf"), contents["./etc/acme.conf"])
	require.Equal(t, []byte("state"), contents["./var/lib/acme/state"])
}

func TestPayloadFileMetadataTables(t *testing.T) {
	files := []fileInput{
		{destPath: "/etc/b.conf", content: []byte("bb"), unixMode: modeTypeRegular | 0o644, mtime: time.Unix(1500000000, 0)},
		{destPath: "/etc/a.conf", content: []byte("a"), unixMode: modeTypeRegular | 0o644, mtime: time.Unix(1500000000, 0)},
	}

	pd, err := buildPayload(files, 0, 0)
	require.NoError(t, err)

	// tables are parallel to the sorted file order, not insertion order
	require.Equal(t, []string{"a.conf", "b.conf"}, pd.basenames)
	require.Equal(t, []int32{1, 2}, pd.sizes)
	require.Equal(t, []int32{1, 2}, pd.inodes)
	require.Equal(t, []int32{0, 0}, pd.dirIndexes)
	require.Equal(t, []string{"/etc/"}, pd.dirnames)
	require.Equal(t, []int32{1, 1}, pd.devices)
	require.Equal(t, []int32{-1, -1}, pd.verifyFlags)
	require.EqualValues(t, 3, pd.TotalFileSize)

	for _, digest := range pd.digests {
		require.Len(t, digest, 64)
	}
}
