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
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"

	"github.com/holocm/rpmcore/rpm"
)

// buildSignatureHeader computes the three structural signature tags over
// the finalized main header bytes and payload bytes. See [LSB,22.2.3].
func buildSignatureHeader(mainHeaderBytes, payload []byte) *rpm.Header {
	h := rpm.NewHeader()

	h.Add(uint32(rpm.SignatureTagSize), rpm.NewInt32Value([]int32{
		int32(len(mainHeaderBytes) + len(payload)),
	}))

	md5sum := md5.New()
	md5sum.Write(mainHeaderBytes)
	md5sum.Write(payload)
	h.Add(uint32(rpm.SignatureTagMD5), rpm.NewBinValue(md5sum.Sum(nil)))

	sha1sum := sha1.New()
	sha1sum.Write(mainHeaderBytes)
	h.Add(uint32(rpm.SignatureTagSHA1), rpm.NewStringValue(hex.EncodeToString(sha1sum.Sum(nil))))

	return h
}
