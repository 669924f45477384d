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

const leadSize = 96

var leadMagic = [4]byte{0xed, 0xab, 0xee, 0xdb}

// Lead represents the RPM lead, the 96-byte fixed preamble that begins every
// RPM v3 package. See [LSB, 22.2.1].
type Lead struct {
	// Type is 0 for a binary package, 1 for a source package.
	Type uint16
	// Architecture is a free-form 16-bit architecture identifier.
	Architecture uint16
	// Name is the "name-version-release" string, truncated to fit the
	// 66-byte field (65 usable bytes plus a mandatory NUL terminator).
	Name string
}

// NewLead builds a Lead for the given package name-version-release string
// and architecture code.
func NewLead(nameVersionRelease string, architecture uint16) *Lead {
	return &Lead{
		Type:         0,
		Architecture: architecture,
		Name:         nameVersionRelease,
	}
}

// ToBinary returns the 96-byte wire encoding of the lead.
func (l *Lead) ToBinary() []byte {
	buf := make([]byte, 0, leadSize)
	buf = append(buf, leadMagic[:]...)
	buf = append(buf, 0x03, 0x00) // major=3, minor=0

	buf = writeUint16BE(buf, l.Type)
	buf = writeUint16BE(buf, l.Architecture)

	var nvr [66]byte
	nameBytes := []byte(l.Name)
	copyLen := len(nameBytes)
	if copyLen > 65 {
		copyLen = 65
	}
	copy(nvr[:copyLen], nameBytes[:copyLen])
	nvr[65] = 0x00 // guaranteed terminator, even if the name was truncated
	buf = append(buf, nvr[:]...)

	buf = writeUint16BE(buf, 1) // operating system: Linux
	buf = writeUint16BE(buf, 5) // signature type: header-style signature follows

	var reserved [16]byte
	buf = append(buf, reserved[:]...)

	return buf
}

// ParseLead decodes the 96-byte lead at the front of data.
func ParseLead(data []byte) (*Lead, error) {
	r := newByteReader(data)

	magicBytes, err := r.readN(4, "lead magic")
	if err != nil {
		return nil, err
	}
	if magicBytes[0] != leadMagic[0] || magicBytes[1] != leadMagic[1] || magicBytes[2] != leadMagic[2] || magicBytes[3] != leadMagic[3] {
		return nil, newError(KindMalformedInput, "bad lead magic 0x%x, expected 0xedabeedb", magicBytes)
	}

	versionBytes, err := r.readN(2, "lead version")
	if err != nil {
		return nil, err
	}
	if versionBytes[0] != 3 || versionBytes[1] != 0 {
		return nil, newError(KindMalformedInput, "unsupported lead version %d.%d, expected 3.0", versionBytes[0], versionBytes[1])
	}

	packageType, err := r.readUint16BE("lead package type")
	if err != nil {
		return nil, err
	}
	if packageType != 0 && packageType != 1 {
		return nil, newError(KindMalformedInput, "lead package type %d, expected 0 or 1", packageType)
	}

	architecture, err := r.readUint16BE("lead architecture")
	if err != nil {
		return nil, err
	}

	nameBytes, err := r.readN(66, "lead name")
	if err != nil {
		return nil, err
	}
	name := nulTerminatedToString(nameBytes)

	os, err := r.readUint16BE("lead operating system")
	if err != nil {
		return nil, err
	}
	if os != 1 {
		return nil, newError(KindMalformedInput, "lead operating system %d, expected 1 (Linux)", os)
	}

	signatureType, err := r.readUint16BE("lead signature type")
	if err != nil {
		return nil, err
	}
	if signatureType != 5 {
		return nil, newError(KindMalformedInput, "lead signature type %d, expected 5", signatureType)
	}

	if _, err := r.readN(16, "lead reserved bytes"); err != nil {
		return nil, err
	}

	return &Lead{Type: packageType, Architecture: architecture, Name: name}, nil
}

func nulTerminatedToString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
