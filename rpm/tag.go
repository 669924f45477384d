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

package rpm

// Tag identifies a field in the main (metadata) header. The numeric values
// are fixed by the RPM format; see [LSB, 25.2.4] and rpm.org's rpmtag.h.
type Tag uint32

// Known values for Tag. Not every tag that rpm.org defines is listed here —
// only the ones this module reads or writes. ParseHeader rejects any entry
// whose tag is not in this set with a KindUnknownTag error; there is no
// passthrough representation for an unrecognized tag.
const (
	TagHeaderImmutable   Tag = 63 //type: BIN (region tag)
	TagHeaderI18NTable   Tag = 100
	TagName              Tag = 1000
	TagVersion           Tag = 1001
	TagRelease           Tag = 1002
	TagEpoch             Tag = 1003
	TagSummary           Tag = 1004
	TagDescription       Tag = 1005
	TagBuildTime         Tag = 1006
	TagBuildHost         Tag = 1007
	TagSize              Tag = 1009
	TagDistribution      Tag = 1010
	TagVendor            Tag = 1011
	TagLicense           Tag = 1014
	TagPackager          Tag = 1015
	TagGroup             Tag = 1016
	TagURL               Tag = 1020
	TagOs                Tag = 1021
	TagArch              Tag = 1022
	TagPreIn             Tag = 1023
	TagPostIn            Tag = 1024
	TagPreUn             Tag = 1025
	TagPostUn            Tag = 1026
	TagOldFileNames      Tag = 1027
	TagFileSizes         Tag = 1028
	TagFileModes         Tag = 1030
	TagFileRdevs         Tag = 1033
	TagFileMtimes        Tag = 1034
	TagFileDigests       Tag = 1035 //historically FILEMD5S; holds hex content digests
	TagFileLinktos       Tag = 1036
	TagFileFlags         Tag = 1037
	TagFileUserName      Tag = 1039
	TagFileGroupName     Tag = 1040
	TagSourceRPM         Tag = 1044
	TagFileVerifyFlags   Tag = 1045
	TagArchiveSize       Tag = 1046
	TagProvideName       Tag = 1047
	TagRequireFlags      Tag = 1048
	TagRequireName       Tag = 1049
	TagRequireVersion    Tag = 1050
	TagConflictFlags     Tag = 1053
	TagConflictName      Tag = 1054
	TagConflictVersion   Tag = 1055
	TagRPMVersion        Tag = 1064
	TagObsoleteName      Tag = 1090
	TagFileDevices       Tag = 1095
	TagFileInodes        Tag = 1096
	TagFileLangs         Tag = 1097
	TagPreInProg         Tag = 1085
	TagPostInProg        Tag = 1086
	TagPreUnProg         Tag = 1087
	TagPostUnProg        Tag = 1088
	TagCookie            Tag = 1094
	TagProvideFlags      Tag = 1112
	TagProvideVersion    Tag = 1113
	TagObsoleteFlags     Tag = 1114
	TagObsoleteVersion   Tag = 1115
	TagDirIndexes        Tag = 1116
	TagBasenames         Tag = 1117
	TagDirNames          Tag = 1118
	TagDistURL           Tag = 1123
	TagPayloadFormat     Tag = 1124
	TagPayloadCompressor Tag = 1125
	TagPayloadFlags      Tag = 1126
	TagFileDigestAlgo    Tag = 5011
)

// knownTags lists every Tag value this module recognizes when parsing a
// main header. ParseHeader rejects any entry whose tag is not in this set
// with a KindUnknownTag error; there is no passthrough representation for
// an unrecognized tag.
var knownTags = buildTagSet(
	TagHeaderImmutable, TagHeaderI18NTable, TagName, TagVersion, TagRelease,
	TagEpoch, TagSummary, TagDescription, TagBuildTime, TagBuildHost, TagSize,
	TagDistribution, TagVendor, TagLicense, TagPackager, TagGroup, TagURL,
	TagOs, TagArch, TagPreIn, TagPostIn, TagPreUn, TagPostUn, TagOldFileNames,
	TagFileSizes, TagFileModes, TagFileRdevs, TagFileMtimes, TagFileDigests,
	TagFileLinktos, TagFileFlags, TagFileUserName, TagFileGroupName,
	TagSourceRPM, TagFileVerifyFlags, TagArchiveSize, TagProvideName,
	TagRequireFlags, TagRequireName, TagRequireVersion, TagConflictFlags,
	TagConflictName, TagConflictVersion, TagRPMVersion, TagObsoleteName,
	TagFileDevices, TagFileInodes, TagFileLangs, TagPreInProg, TagPostInProg,
	TagPreUnProg, TagPostUnProg, TagCookie, TagProvideFlags, TagProvideVersion,
	TagObsoleteFlags, TagObsoleteVersion, TagDirIndexes, TagBasenames,
	TagDirNames, TagDistURL, TagPayloadFormat, TagPayloadCompressor,
	TagPayloadFlags, TagFileDigestAlgo,
)

func buildTagSet(tags ...Tag) map[Tag]bool {
	set := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// IsKnown reports whether t is one of the tags this module assigns specific
// semantics to, i.e. whether ParseHeader accepts it in a main header.
func (t Tag) IsKnown() bool {
	return knownTags[t]
}

// SignatureTag identifies a field in the signature header. See [LSB, 22.2.3].
type SignatureTag uint32

const (
	SignatureTagHeaderSignatures SignatureTag = 62 //type: BIN (region tag)
	SignatureTagSize             SignatureTag = 1000
	SignatureTagPGP              SignatureTag = 1002
	SignatureTagMD5              SignatureTag = 1004
	SignatureTagGPG              SignatureTag = 1005
	SignatureTagPayloadSize      SignatureTag = 1007
	SignatureTagDSA              SignatureTag = 267
	SignatureTagRSA              SignatureTag = 268
	SignatureTagSHA1             SignatureTag = 269
)

var knownSignatureTags = map[SignatureTag]bool{
	SignatureTagHeaderSignatures: true,
	SignatureTagSize:             true,
	SignatureTagPGP:              true,
	SignatureTagMD5:              true,
	SignatureTagGPG:              true,
	SignatureTagPayloadSize:      true,
	SignatureTagDSA:              true,
	SignatureTagRSA:              true,
	SignatureTagSHA1:             true,
}

// IsKnown reports whether t is one of the tags this module assigns specific
// semantics to.
func (t SignatureTag) IsKnown() bool {
	return knownSignatureTags[t]
}

// Sense flag bits for RequireFlags/ProvideFlags/ConflictFlags/ObsoleteFlags.
// See [LSB, 25.2.4.4.2].
const (
	SenseAny          int32 = 0
	SenseLess         int32 = 1 << 1
	SenseGreater      int32 = 1 << 2
	SenseEqual        int32 = 1 << 3
	SensePostTrans    int32 = 1 << 5
	SensePrereq       int32 = 1 << 6
	SensePretrans     int32 = 1 << 7
	SenseInterp       int32 = 1 << 8
	SenseScriptPre    int32 = 1 << 9
	SenseScriptPost   int32 = 1 << 10
	SenseScriptPreUn  int32 = 1 << 11
	SenseScriptPostUn int32 = 1 << 12
	SenseRPMLib       int32 = 1 << 24
)

// File flag bits for RPMTAG_FILEFLAGS. See [LSB, 25.2.4.3.1].
const (
	FileFlagConfig    int32 = 1 << 0
	FileFlagDoc       int32 = 1 << 1
	FileFlagMissingOK int32 = 1 << 3
	FileFlagNoReplace int32 = 1 << 4
	FileFlagGhost     int32 = 1 << 6
	FileFlagLicense   int32 = 1 << 7
	FileFlagReadme    int32 = 1 << 8
)
