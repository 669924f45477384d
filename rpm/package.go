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

// Package is the fully assembled RPM v3 file: a Lead, a signature Header, a
// main (metadata) Header, and the compressed payload bytes. The package owns
// all four exclusively; once constructed (by ReadPackage or by a builder),
// none of them are mutated further.
type Package struct {
	Lead            *Lead
	SignatureHeader *Header
	MainHeader      *Header
	Payload         []byte
}

// NewPackage assembles a Package from its already-constructed parts. Used by
// the builder once the signature has been computed over the finalized main
// header and payload.
func NewPackage(lead *Lead, signatureHeader *Header, mainHeader *Header, payload []byte) *Package {
	return &Package{
		Lead:            lead,
		SignatureHeader: signatureHeader,
		MainHeader:      mainHeader,
		Payload:         payload,
	}
}

// Bytes returns the bit-exact on-disk encoding of the package: Lead,
// signature header (padded to an 8-byte boundary), main header, payload.
func (p *Package) Bytes() []byte {
	buf := p.Lead.ToBinary()
	buf = append(buf, p.SignatureHeader.ToBinary(uint32(SignatureTagHeaderSignatures))...)
	buf = padTo(buf, 8)
	buf = append(buf, p.MainHeader.ToBinary(uint32(TagHeaderImmutable))...)
	buf = append(buf, p.Payload...)
	return buf
}

func isKnownSignatureTagValue(raw uint32) bool {
	return SignatureTag(raw).IsKnown()
}

func isKnownMainTagValue(raw uint32) bool {
	return Tag(raw).IsKnown()
}

// ReadPackage parses a complete RPM v3 package: Lead, signature header
// (including its trailing 8-byte alignment padding), main header, and
// whatever bytes remain are taken verbatim as the payload.
func ReadPackage(data []byte) (*Package, error) {
	if len(data) < leadSize {
		return nil, newError(KindMalformedInput, "input is %d bytes, shorter than the %d-byte lead", len(data), leadSize)
	}

	lead, err := ParseLead(data[:leadSize])
	if err != nil {
		return nil, err
	}
	rest := data[leadSize:]

	signatureHeader, sigConsumed, err := ParseHeader(rest, isKnownSignatureTagValue)
	if err != nil {
		return nil, err
	}
	padLen := (8 - sigConsumed%8) % 8
	if len(rest) < sigConsumed+padLen {
		return nil, newError(KindMalformedInput, "truncated input while skipping signature header alignment padding")
	}
	rest = rest[sigConsumed+padLen:]

	mainHeader, mainConsumed, err := ParseHeader(rest, isKnownMainTagValue)
	if err != nil {
		return nil, err
	}
	rest = rest[mainConsumed:]

	payload := make([]byte, len(rest))
	copy(payload, rest)

	return NewPackage(lead, signatureHeader, mainHeader, payload), nil
}
