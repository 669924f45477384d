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

func newTestBuilder() *Builder {
	return &Builder{
		Name:        "test",
		Version:     "1.0.0",
		Release:     "1",
		License:     "MIT",
		Arch:        "x86_64",
		Description: "a test package",
	}
}

func TestBuilderDirectoryTableAndSize(t *testing.T) {
	b := newTestBuilder()
	content := []byte("hello world")
	mtime := time.Unix(1600000000, 0)

	paths := []string{
		"./etc/foobar/foo.toml",
		"./etc/foobar/bazz.toml",
		"./etc/foobar/hugo/bazz.toml",
		"./var/honollulu/bazz.toml",
		"./etc/Cargo.toml",
	}
	for _, p := range paths {
		require.NoError(t, b.AddFile(p, content, 0o644, mtime))
	}

	pkg, err := b.Build()
	require.NoError(t, err)

	dirnamesValue, ok := pkg.MainHeader.Get(uint32(rpm.TagDirNames))
	require.True(t, ok)
	dirnames, ok := dirnamesValue.StringArray()
	require.True(t, ok)
	require.Equal(t, []string{
		"/etc/", "/etc/foobar/", "/etc/foobar/hugo/", "/var/honollulu/",
	}, dirnames)

	basenamesValue, ok := pkg.MainHeader.Get(uint32(rpm.TagBasenames))
	require.True(t, ok)
	basenames, ok := basenamesValue.StringArray()
	require.True(t, ok)
	require.Len(t, basenames, 5)

	sizeValue, ok := pkg.MainHeader.Get(uint32(rpm.TagSize))
	require.True(t, ok)
	sizes, ok := sizeValue.Int32Slice()
	require.True(t, ok)
	require.Equal(t, int32(5*len(content)), sizes[0])

	// the built package must re-parse cleanly
	encoded := pkg.Bytes()
	_, err = rpm.ReadPackage(encoded)
	require.NoError(t, err)
}

func TestBuilderDirectoryIndirectionMatchesOriginalPaths(t *testing.T) {
	b := newTestBuilder()
	content := []byte("x")
	mtime := time.Unix(0, 0)
	destPaths := []string{"/etc/foo.conf", "/etc/sub/bar.conf"}
	for _, p := range destPaths {
		require.NoError(t, b.AddFile(p, content, 0o644, mtime))
	}

	pkg, err := b.Build()
	require.NoError(t, err)

	dirnamesValue, _ := pkg.MainHeader.Get(uint32(rpm.TagDirNames))
	dirnames, _ := dirnamesValue.StringArray()
	basenamesValue, _ := pkg.MainHeader.Get(uint32(rpm.TagBasenames))
	basenames, _ := basenamesValue.StringArray()
	dirIdxValue, _ := pkg.MainHeader.Get(uint32(rpm.TagDirIndexes))
	dirIdx, _ := dirIdxValue.Int32Slice()

	reconstructed := make([]string, len(basenames))
	for i := range basenames {
		reconstructed[i] = dirnames[dirIdx[i]] + basenames[i]
	}
	require.ElementsMatch(t, destPaths, reconstructed)
}

func TestBuilderImplicitDependenciesWithEmptyProvides(t *testing.T) {
	b := newTestBuilder()
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("x"), 0o644, time.Now()))

	pkg, err := b.Build()
	require.NoError(t, err)

	provideNames, ok := mustStringArray(t, pkg, rpm.TagProvideName)
	require.True(t, ok)
	require.Contains(t, provideNames, "test")
	require.Contains(t, provideNames, "test(x86_64)")

	requireNames, ok := mustStringArray(t, pkg, rpm.TagRequireName)
	require.True(t, ok)
	require.Contains(t, requireNames, "/bin/sh")

	_, ok = pkg.MainHeader.Get(uint32(rpm.TagObsoleteName))
	require.False(t, ok, "OBSOLETENAME must be absent when Obsoletes is empty")
	_, ok = pkg.MainHeader.Get(uint32(rpm.TagConflictName))
	require.False(t, ok, "CONFLICTNAME must be absent when Conflicts is empty")
}

func mustStringArray(t *testing.T, pkg *rpm.Package, tag rpm.Tag) ([]string, bool) {
	t.Helper()
	v, ok := pkg.MainHeader.Get(uint32(tag))
	if !ok {
		return nil, false
	}
	return v.StringArray()
}

func TestBuilderDigestCorrectness(t *testing.T) {
	b := newTestBuilder()
	require.NoError(t, b.AddFile("/etc/foo.conf", []byte("payload content"), 0o644, time.Now()))

	pkg, err := b.Build()
	require.NoError(t, err)

	// signature digests must match the finalized main header and payload
	// bytes exactly.
	mainHeaderBytes := pkg.MainHeader.ToBinary(uint32(rpm.TagHeaderImmutable))
	expectedSig := buildSignatureHeader(mainHeaderBytes, pkg.Payload)

	gotMD5, _ := pkg.SignatureHeader.Get(uint32(rpm.SignatureTagMD5))
	wantMD5, _ := expectedSig.Get(uint32(rpm.SignatureTagMD5))
	require.Equal(t, wantMD5, gotMD5)

	gotSHA1, _ := pkg.SignatureHeader.Get(uint32(rpm.SignatureTagSHA1))
	wantSHA1, _ := expectedSig.Get(uint32(rpm.SignatureTagSHA1))
	require.Equal(t, wantSHA1, gotSHA1)
}

func TestAddFileRejectsRootPath(t *testing.T) {
	b := newTestBuilder()
	err := b.AddFile("/", []byte("x"), 0o644, time.Now())
	require.Error(t, err)

	var rpmErr *rpm.Error
	require.ErrorAs(t, err, &rpmErr)
	require.Equal(t, rpm.KindInvalidPath, rpmErr.Kind)
}

func TestAddFileRejectsNonUTF8Path(t *testing.T) {
	b := newTestBuilder()
	err := b.AddFile("/etc/\xff\xfe", []byte("x"), 0o644, time.Now())
	require.Error(t, err)

	var rpmErr *rpm.Error
	require.ErrorAs(t, err, &rpmErr)
	require.Equal(t, rpm.KindInvalidPath, rpmErr.Kind)
}

func TestAddSymlinkOmitsDigestAndSetsLinkTarget(t *testing.T) {
	b := newTestBuilder()
	require.NoError(t, b.AddSymlink("/usr/bin/acme", "/usr/bin/acme-1.0"))

	pkg, err := b.Build()
	require.NoError(t, err)

	linktoValue, ok := pkg.MainHeader.Get(uint32(rpm.TagFileLinktos))
	require.True(t, ok)
	linktos, _ := linktoValue.StringArray()
	require.Equal(t, []string{"/usr/bin/acme-1.0"}, linktos)

	digestValue, ok := pkg.MainHeader.Get(uint32(rpm.TagFileDigests))
	require.True(t, ok)
	digests, _ := digestValue.StringArray()
	require.Equal(t, []string{""}, digests)
}
