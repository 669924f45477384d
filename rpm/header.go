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

import (
	"encoding/binary"
)

var headerMagic = [3]byte{0x8E, 0xAD, 0xE8}

const headerVersion = 1

// region tags recognized at the front of a parsed header; see testable
// property 5 ("region tag invariant").
const (
	regionTagImmutable  = uint32(TagHeaderImmutable)
	regionTagSignatures = uint32(SignatureTagHeaderSignatures)
)

// Entry is one (tag, value) pair of a Header, in wire order.
type Entry struct {
	Tag   uint32
	Value Value
}

// Header represents the tagged, typed, offset-indexed structure used for
// both the signature section and the main metadata section of an RPM
// package. A Header returned by ParseHeader has the region tag as
// Entries[0]; a Header built with Add has no region entry, and ToBinary
// supplies it in either case.
type Header struct {
	Entries []Entry
}

// NewHeader returns an empty Header ready to have entries added to it via
// Add/AddIfNotEmpty, then serialized with ToBinary.
func NewHeader() *Header {
	return &Header{}
}

// Add appends an entry unconditionally.
func (h *Header) Add(tag uint32, v Value) {
	h.Entries = append(h.Entries, Entry{Tag: tag, Value: v})
}

// AddIfNotEmpty appends an entry only if it carries at least one item, for
// callers that must not write a string-array/int-array tag with zero
// elements (RPM readers choke on those).
func (h *Header) AddIfNotEmpty(tag uint32, v Value) {
	if v.isEmpty() {
		return
	}
	h.Add(tag, v)
}

// Get returns the first entry's value for the given tag.
func (h *Header) Get(tag uint32) (Value, bool) {
	for _, e := range h.Entries {
		if e.Tag == tag {
			return e.Value, true
		}
	}
	return Value{}, false
}

// MustGet returns the entry's value for the given tag, or a TagNotFound error.
func (h *Header) MustGet(tag uint32) (Value, error) {
	v, ok := h.Get(tag)
	if !ok {
		return Value{}, newError(KindTagNotFound, "tag %d not found in header", tag)
	}
	return v, nil
}

// GetString returns the tag's value as a string. Fails with TagNotFound
// when the tag is absent and TypeMismatch when the entry is not a String
// value.
func (h *Header) GetString(tag uint32) (string, error) {
	v, err := h.MustGet(tag)
	if err != nil {
		return "", err
	}
	s, ok := v.String()
	if !ok {
		return "", newError(KindTypeMismatch, "tag %d holds a value of type %d, not String", tag, v.Kind)
	}
	return s, nil
}

// GetStringArray returns the tag's value as a string array (StringArray or
// I18NString). Fails with TagNotFound or TypeMismatch like GetString.
func (h *Header) GetStringArray(tag uint32) ([]string, error) {
	v, err := h.MustGet(tag)
	if err != nil {
		return nil, err
	}
	strs, ok := v.StringArray()
	if !ok {
		return nil, newError(KindTypeMismatch, "tag %d holds a value of type %d, not StringArray", tag, v.Kind)
	}
	return strs, nil
}

// GetInt32Slice returns the tag's value as []int32. Fails with TagNotFound
// or TypeMismatch like GetString.
func (h *Header) GetInt32Slice(tag uint32) ([]int32, error) {
	v, err := h.MustGet(tag)
	if err != nil {
		return nil, err
	}
	ns, ok := v.Int32Slice()
	if !ok {
		return nil, newError(KindTypeMismatch, "tag %d holds a value of type %d, not Int32", tag, v.Kind)
	}
	return ns, nil
}

// GetBin returns the tag's value as raw bytes. Fails with TagNotFound or
// TypeMismatch like GetString.
func (h *Header) GetBin(tag uint32) ([]byte, error) {
	v, err := h.MustGet(tag)
	if err != nil {
		return nil, err
	}
	b, ok := v.Bin()
	if !ok {
		return nil, newError(KindTypeMismatch, "tag %d holds a value of type %d, not Bin", tag, v.Kind)
	}
	return b, nil
}

// ToBinary serializes the header: the index header, then the region-tag
// entry, then the remaining entries' descriptors in order, then the store,
// with the region tag's self-referential trailer appended to the end of
// the store. A leading region entry already present in Entries (as in a
// parsed header) is not emitted again; the region entry is rebuilt.
func (h *Header) ToBinary(regionTag uint32) []byte {
	var store []byte
	descriptors := make([]indexEntryBytes, 0, len(h.Entries))

	entries := h.Entries
	if len(entries) > 0 && entries[0].Tag == regionTag && entries[0].Value.Kind == KindBin {
		entries = entries[1:]
	}

	for _, e := range entries {
		var offset uint32
		store, offset = e.Value.appendTo(store)
		descriptors = append(descriptors, indexEntryBytes{
			Tag:    e.Tag,
			Type:   uint32(e.Value.Kind),
			Offset: int32(offset),
			Count:  e.Value.count(),
		})
	}

	recordCount := uint32(len(descriptors))
	actualDataSize := uint32(len(store))

	// region trailer: a copy of what would be this entry's own descriptor,
	// but pointing backwards into the entry table instead of forwards into
	// the store. Never re-derived at parse time; it is treated purely as
	// an opaque 16-byte Bin blob.
	trailer := BuildRegionTagBlob(regionTag, recordCount)
	store = append(store, trailer...)

	regionDescriptor := indexEntryBytes{
		Tag:    regionTag,
		Type:   uint32(KindBin),
		Offset: int32(actualDataSize),
		Count:  16,
	}

	var buf []byte
	buf = append(buf, headerMagic[:]...)
	buf = append(buf, headerVersion)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00) // reserved
	buf = writeUint32BE(buf, recordCount+1)
	buf = writeUint32BE(buf, uint32(len(store)))

	buf = append(buf, encodeIndexEntry(regionDescriptor)...)
	for _, d := range descriptors {
		buf = append(buf, encodeIndexEntry(d)...)
	}
	buf = append(buf, store...)

	return buf
}

// indexEntryBytes is the 16-byte on-wire descriptor for one header entry.
type indexEntryBytes struct {
	Tag    uint32
	Type   uint32
	Offset int32
	Count  uint32
}

func encodeIndexEntry(e indexEntryBytes) []byte {
	buf := make([]byte, 0, 16)
	buf = writeUint32BE(buf, e.Tag)
	buf = writeUint32BE(buf, e.Type)
	buf = writeInt32BE(buf, e.Offset)
	buf = writeUint32BE(buf, e.Count)
	return buf
}

// BuildRegionTagBlob encodes the 16-byte self-referential region tag value:
// an index entry descriptor for the given region tag, of kind Bin and count
// 16, whose offset field points backwards from the end of the store into
// the entry table (-(recordsCount+1)*16, since the region entry itself is
// one more record than recordsCount).
func BuildRegionTagBlob(tag uint32, recordsCount uint32) []byte {
	return encodeIndexEntry(indexEntryBytes{
		Tag:    tag,
		Type:   uint32(KindBin),
		Offset: -int32(recordsCount+1) * 16,
		Count:  16,
	})
}

func decodeIndexEntry(b []byte) indexEntryBytes {
	return indexEntryBytes{
		Tag:    binary.BigEndian.Uint32(b[0:4]),
		Type:   binary.BigEndian.Uint32(b[4:8]),
		Offset: int32(binary.BigEndian.Uint32(b[8:12])),
		Count:  binary.BigEndian.Uint32(b[12:16]),
	}
}

// ParseHeader reads one header structure (IndexHeader + entry table + store)
// from the front of data. isKnownTag is consulted for every entry's tag
// value (TagXxx/SignatureTagXxx depending on which header this is); a tag
// that fails it aborts parsing with KindUnknownTag. Returns the decoded
// Header and the number of bytes consumed from data. The signature
// header's trailing 8-byte alignment padding is the caller's
// responsibility, since only that section carries it.
func ParseHeader(data []byte, isKnownTag func(uint32) bool) (*Header, int, error) {
	r := newByteReader(data)

	magicBytes, err := r.readN(3, "header magic")
	if err != nil {
		return nil, 0, err
	}
	if magicBytes[0] != headerMagic[0] || magicBytes[1] != headerMagic[1] || magicBytes[2] != headerMagic[2] {
		return nil, 0, newError(KindMalformedInput, "bad header magic 0x%x%x%x, expected 0x8eade8", magicBytes[0], magicBytes[1], magicBytes[2])
	}
	version, err := r.readUint8("header version")
	if err != nil {
		return nil, 0, err
	}
	if version != headerVersion {
		return nil, 0, newError(KindMalformedInput, "unsupported header version %d", version)
	}
	if _, err := r.readN(4, "header reserved bytes"); err != nil {
		return nil, 0, err
	}
	numEntries, err := r.readUint32BE("header entry count")
	if err != nil {
		return nil, 0, err
	}
	storeSize, err := r.readUint32BE("header store size")
	if err != nil {
		return nil, 0, err
	}

	entryTableLen := 16 * int(numEntries)
	entryTableBytes, err := r.readN(entryTableLen, "header entry table")
	if err != nil {
		return nil, 0, err
	}
	store, err := r.readN(int(storeSize), "header store")
	if err != nil {
		return nil, 0, err
	}

	descriptors := make([]indexEntryBytes, numEntries)
	for i := uint32(0); i < numEntries; i++ {
		descriptors[i] = decodeIndexEntry(entryTableBytes[i*16 : i*16+16])
	}

	if numEntries == 0 {
		return nil, 0, newError(KindMalformedInput, "header has no entries (missing region tag)")
	}

	header := &Header{Entries: make([]Entry, 0, numEntries)}
	for _, d := range descriptors {
		if !isKnownTag(d.Tag) {
			return nil, 0, newError(KindUnknownTag, "unknown tag %d", d.Tag)
		}
		kind := ValueKind(d.Type)
		if kind > KindI18NString {
			return nil, 0, newError(KindMalformedInput, "tag %d has invalid type code %d", d.Tag, d.Type)
		}
		v, err := decodeValue(kind, d.Count, d.Offset, store)
		if err != nil {
			return nil, 0, err
		}
		header.Entries = append(header.Entries, Entry{Tag: d.Tag, Value: v})
	}

	if err := header.validateRegionTag(numEntries); err != nil {
		return nil, 0, err
	}

	return header, 16 + entryTableLen + int(storeSize), nil
}

// validateRegionTag checks the region tag invariant: the first entry's tag must
// be one of the two known region tags, its kind must be Bin with count 16,
// and its 16-byte payload, reinterpreted as an index entry descriptor, must
// carry offset == -16*numEntries.
func (h *Header) validateRegionTag(numEntries uint32) error {
	first := h.Entries[0]
	if first.Tag != regionTagImmutable && first.Tag != regionTagSignatures {
		return newError(KindMalformedInput, "first header entry has tag %d, expected region tag %d or %d", first.Tag, regionTagImmutable, regionTagSignatures)
	}
	bin, ok := first.Value.Bin()
	if !ok || len(bin) != 16 {
		return newError(KindMalformedInput, "region tag entry is not a 16-byte Bin value")
	}
	inner := decodeIndexEntry(bin)
	wantOffset := -int32(numEntries) * 16
	if inner.Offset != wantOffset {
		return newError(KindMalformedInput, "region tag offset %d does not match expected %d", inner.Offset, wantOffset)
	}
	if inner.Count != 16 {
		return newError(KindMalformedInput, "region tag inner count %d, expected 16", inner.Count)
	}
	return nil
}
