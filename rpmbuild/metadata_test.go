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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/holocm/rpmcore/rpm"
)

func mustString(t *testing.T, h *rpm.Header, tag rpm.Tag) string {
	t.Helper()
	v, ok := h.Get(uint32(tag))
	require.True(t, ok, "tag %d missing from header", tag)
	s, ok := v.String()
	require.True(t, ok, "tag %d is not a string", tag)
	return s
}

func TestMainHeaderScriptTags(t *testing.T) {
	b := newTestBuilder()
	b.SetupScript = "ldconfig"
	b.CleanupScript = "rm -rf /var/cache/acme"
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Unix(0, 0)))

	pkg, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, "ldconfig", mustString(t, pkg.MainHeader, rpm.TagPostIn))
	require.Equal(t, "/bin/sh", mustString(t, pkg.MainHeader, rpm.TagPostInProg))
	require.Equal(t, "rm -rf /var/cache/acme", mustString(t, pkg.MainHeader, rpm.TagPostUn))
	require.Equal(t, "/bin/sh", mustString(t, pkg.MainHeader, rpm.TagPostUnProg))
}

func TestMainHeaderOmitsScriptTagsWhenUnset(t *testing.T) {
	b := newTestBuilder()
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Unix(0, 0)))

	pkg, err := b.Build()
	require.NoError(t, err)

	_, ok := pkg.MainHeader.Get(uint32(rpm.TagPostIn))
	require.False(t, ok)
	_, ok = pkg.MainHeader.Get(uint32(rpm.TagPostUn))
	require.False(t, ok)
}

func TestMainHeaderEpochAndSelfProvideVersion(t *testing.T) {
	b := newTestBuilder()
	b.Epoch = 3
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Unix(0, 0)))

	pkg, err := b.Build()
	require.NoError(t, err)

	epochValue, ok := pkg.MainHeader.Get(uint32(rpm.TagEpoch))
	require.True(t, ok)
	epochs, ok := epochValue.Int32Slice()
	require.True(t, ok)
	require.Equal(t, []int32{3}, epochs)

	versionsValue, ok := pkg.MainHeader.Get(uint32(rpm.TagProvideVersion))
	require.True(t, ok)
	versions, _ := versionsValue.StringArray()
	require.Equal(t, "3:1.0.0", versions[0])
}

func TestMainHeaderOptionalPackageInfoTags(t *testing.T) {
	b := newTestBuilder()
	b.Vendor = "ACME Corp"
	b.URL = "https://acme.example.org"
	b.Packager = "builder@acme.example.org"
	b.Group = "System/Libraries"
	b.BuildTime = time.Unix(1700000000, 0)
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Unix(0, 0)))

	pkg, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, "ACME Corp", mustString(t, pkg.MainHeader, rpm.TagVendor))
	require.Equal(t, "https://acme.example.org", mustString(t, pkg.MainHeader, rpm.TagURL))
	require.Equal(t, "builder@acme.example.org", mustString(t, pkg.MainHeader, rpm.TagPackager))

	groupValue, ok := pkg.MainHeader.Get(uint32(rpm.TagGroup))
	require.True(t, ok)
	groups, _ := groupValue.StringArray()
	require.Equal(t, []string{"System/Libraries"}, groups)

	timeValue, ok := pkg.MainHeader.Get(uint32(rpm.TagBuildTime))
	require.True(t, ok)
	times, _ := timeValue.Int32Slice()
	require.Equal(t, []int32{1700000000}, times)
}

func TestMainHeaderOmitsBuildTimeForReproducibleBuilds(t *testing.T) {
	b := newTestBuilder()
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Unix(0, 0)))

	pkg, err := b.Build()
	require.NoError(t, err)

	_, ok := pkg.MainHeader.Get(uint32(rpm.TagBuildTime))
	require.False(t, ok)
	_, ok = pkg.MainHeader.Get(uint32(rpm.TagBuildHost))
	require.False(t, ok)
}

func TestMainHeaderSummaryIsFirstDescriptionLine(t *testing.T) {
	b := newTestBuilder()
	b.Description = "first line\nmore detail\neven more"
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Unix(0, 0)))

	pkg, err := b.Build()
	require.NoError(t, err)

	require.Equal(t, "first line", mustString(t, pkg.MainHeader, rpm.TagSummary))
	require.Equal(t, b.Description, mustString(t, pkg.MainHeader, rpm.TagDescription))
}
