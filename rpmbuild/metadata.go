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
	"os"
	"strings"

	"github.com/holocm/rpmcore/rpm"
)

const rpmVersionString = "rpmcore 1.0"

// buildMainHeader assembles the main (metadata) header: package info,
// installation scripts, per-file tables, and dependency tables. See
// [LSB,25.2.4].
func buildMainHeader(b *Builder, pd *payloadData) *rpm.Header {
	h := rpm.NewHeader()

	addPackageInformationTags(h, b, pd)
	addInstallationTags(h, b)
	addFileInformationTags(h, pd)
	addDependencyTagSets(h, b)

	return h
}

func addPackageInformationTags(h *rpm.Header, b *Builder, pd *payloadData) {
	h.Add(uint32(rpm.TagHeaderI18NTable), rpm.NewStringValue("C"))

	h.Add(uint32(rpm.TagName), rpm.NewStringValue(b.Name))
	h.Add(uint32(rpm.TagVersion), rpm.NewStringValue(b.Version))
	h.Add(uint32(rpm.TagRelease), rpm.NewStringValue(b.Release))
	if b.Epoch != 0 {
		h.Add(uint32(rpm.TagEpoch), rpm.NewInt32Value([]int32{int32(b.Epoch)}))
	}

	descSplit := strings.SplitN(b.Description, "\n", 2)
	h.Add(uint32(rpm.TagSummary), rpm.NewStringValue(descSplit[0]))
	h.Add(uint32(rpm.TagDescription), rpm.NewStringValue(b.Description))

	h.Add(uint32(rpm.TagSize), rpm.NewInt32Value([]int32{int32(pd.TotalFileSize)}))
	h.Add(uint32(rpm.TagArchiveSize), rpm.NewInt32Value([]int32{int32(pd.UncompressedSize)}))

	h.Add(uint32(rpm.TagLicense), rpm.NewStringValue(b.License))

	group := b.Group
	if group == "" {
		group = "Unspecified"
	}
	h.Add(uint32(rpm.TagGroup), rpm.NewI18NStringArrayValue([]string{group}))

	h.Add(uint32(rpm.TagOs), rpm.NewStringValue("linux"))
	h.Add(uint32(rpm.TagArch), rpm.NewStringValue(b.Arch))

	h.Add(uint32(rpm.TagPayloadFormat), rpm.NewStringValue("cpio"))
	h.Add(uint32(rpm.TagPayloadCompressor), rpm.NewStringValue("xz"))
	h.Add(uint32(rpm.TagPayloadFlags), rpm.NewStringValue("2"))

	h.Add(uint32(rpm.TagRPMVersion), rpm.NewStringValue(rpmVersionString))

	if !b.BuildTime.IsZero() {
		h.Add(uint32(rpm.TagBuildTime), rpm.NewInt32Value([]int32{int32(b.BuildTime.Unix())}))
		if host, err := os.Hostname(); err == nil && host != "" {
			h.Add(uint32(rpm.TagBuildHost), rpm.NewStringValue(host))
		}
	}

	if b.Vendor != "" {
		h.Add(uint32(rpm.TagVendor), rpm.NewStringValue(b.Vendor))
	}
	if b.URL != "" {
		h.Add(uint32(rpm.TagURL), rpm.NewStringValue(b.URL))
	}
	if b.Packager != "" {
		h.Add(uint32(rpm.TagPackager), rpm.NewStringValue(b.Packager))
	}
}

func addInstallationTags(h *rpm.Header, b *Builder) {
	if b.SetupScript != "" {
		h.Add(uint32(rpm.TagPostIn), rpm.NewStringValue(b.SetupScript))
		h.Add(uint32(rpm.TagPostInProg), rpm.NewStringValue("/bin/sh"))
	}
	if b.CleanupScript != "" {
		h.Add(uint32(rpm.TagPostUn), rpm.NewStringValue(b.CleanupScript))
		h.Add(uint32(rpm.TagPostUnProg), rpm.NewStringValue("/bin/sh"))
	}
}

func addFileInformationTags(h *rpm.Header, pd *payloadData) {
	h.Add(uint32(rpm.TagFileSizes), rpm.NewInt32Value(pd.sizes))
	h.Add(uint32(rpm.TagFileModes), rpm.NewInt16Value(pd.modes))
	h.Add(uint32(rpm.TagFileRdevs), rpm.NewInt16Value(pd.rdevs))
	h.Add(uint32(rpm.TagFileMtimes), rpm.NewInt32Value(pd.mtimes))
	h.Add(uint32(rpm.TagFileDigests), rpm.NewStringArrayValue(pd.digests))
	h.Add(uint32(rpm.TagFileLinktos), rpm.NewStringArrayValue(pd.linktos))
	h.Add(uint32(rpm.TagFileFlags), rpm.NewInt32Value(pd.flags))
	h.Add(uint32(rpm.TagFileUserName), rpm.NewStringArrayValue(pd.userNames))
	h.Add(uint32(rpm.TagFileGroupName), rpm.NewStringArrayValue(pd.groupNames))
	h.Add(uint32(rpm.TagFileDevices), rpm.NewInt32Value(pd.devices))
	h.Add(uint32(rpm.TagFileInodes), rpm.NewInt32Value(pd.inodes))
	h.Add(uint32(rpm.TagFileLangs), rpm.NewStringArrayValue(pd.langs))
	h.Add(uint32(rpm.TagFileVerifyFlags), rpm.NewInt32Value(pd.verifyFlags))
	h.Add(uint32(rpm.TagDirIndexes), rpm.NewInt32Value(pd.dirIndexes))
	h.Add(uint32(rpm.TagBasenames), rpm.NewStringArrayValue(pd.basenames))
	h.Add(uint32(rpm.TagDirNames), rpm.NewStringArrayValue(pd.dirnames))
	h.Add(uint32(rpm.TagFileDigestAlgo), rpm.NewInt32Value([]int32{8})) // PGPHASHALGO_SHA256
}

func addDependencyTagSets(h *rpm.Header, b *Builder) {
	provides := append(implicitProvides(b), b.Provides...)
	addDependencyTags(h, provides, rpm.TagProvideName, rpm.TagProvideVersion, rpm.TagProvideFlags)

	requires := append(implicitRequires(), b.Requires...)
	addDependencyTags(h, requires, rpm.TagRequireName, rpm.TagRequireVersion, rpm.TagRequireFlags)

	addDependencyTags(h, b.Obsoletes, rpm.TagObsoleteName, rpm.TagObsoleteVersion, rpm.TagObsoleteFlags)
	addDependencyTags(h, b.Conflicts, rpm.TagConflictName, rpm.TagConflictVersion, rpm.TagConflictFlags)
}
