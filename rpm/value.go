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

// ValueKind is the wire type code of a header entry. See [LSB,25.2.2.2.1].
type ValueKind uint32

const (
	KindNull        ValueKind = 0
	KindChar        ValueKind = 1
	KindInt8        ValueKind = 2
	KindInt16       ValueKind = 3
	KindInt32       ValueKind = 4
	KindInt64       ValueKind = 5
	KindString      ValueKind = 6
	KindBin         ValueKind = 7
	KindStringArray ValueKind = 8
	KindI18NString  ValueKind = 9
)

// Value is a sum type over the nine RPM header value kinds. At most one of
// the internal slices is populated (none for Null), matching Kind; use the narrow accessors
// (Int32Slice, String, StringArray, Bin, ...) to get at it, which report
// false rather than panicking when Kind disagrees.
type Value struct {
	Kind ValueKind

	chars []byte
	i8s   []int8
	i16s  []int16
	i32s  []int32
	i64s  []int64
	bin   []byte
	strs  []string // len 1 for KindString, len n for KindStringArray/KindI18NString
}

// NewNullValue builds a Value of kind Null.
func NewNullValue() Value { return Value{Kind: KindNull} }

// NewCharValue builds a Value of kind Char from raw bytes (one item per byte).
func NewCharValue(data []byte) Value { return Value{Kind: KindChar, chars: data} }

// NewInt8Value builds a Value of kind Int8.
func NewInt8Value(data []int8) Value { return Value{Kind: KindInt8, i8s: data} }

// NewInt16Value builds a Value of kind Int16.
func NewInt16Value(data []int16) Value { return Value{Kind: KindInt16, i16s: data} }

// NewInt32Value builds a Value of kind Int32.
func NewInt32Value(data []int32) Value { return Value{Kind: KindInt32, i32s: data} }

// NewInt64Value builds a Value of kind Int64.
func NewInt64Value(data []int64) Value { return Value{Kind: KindInt64, i64s: data} }

// NewStringValue builds a Value of kind String (count is always 1).
func NewStringValue(s string) Value { return Value{Kind: KindString, strs: []string{s}} }

// NewBinValue builds a Value of kind Bin.
func NewBinValue(data []byte) Value { return Value{Kind: KindBin, bin: data} }

// NewStringArrayValue builds a Value of kind StringArray.
func NewStringArrayValue(data []string) Value { return Value{Kind: KindStringArray, strs: data} }

// NewI18NStringArrayValue builds a Value of kind I18NString.
func NewI18NStringArrayValue(data []string) Value { return Value{Kind: KindI18NString, strs: data} }

// Int32Slice returns the value as []int32, or (nil, false) if Kind is not Int32.
func (v Value) Int32Slice() ([]int32, bool) {
	if v.Kind != KindInt32 {
		return nil, false
	}
	return v.i32s, true
}

// Int16Slice returns the value as []int16, or (nil, false) if Kind is not Int16.
func (v Value) Int16Slice() ([]int16, bool) {
	if v.Kind != KindInt16 {
		return nil, false
	}
	return v.i16s, true
}

// Int8Slice returns the value as []int8, or (nil, false) if Kind is not Int8.
func (v Value) Int8Slice() ([]int8, bool) {
	if v.Kind != KindInt8 {
		return nil, false
	}
	return v.i8s, true
}

// Int64Slice returns the value as []int64, or (nil, false) if Kind is not Int64.
func (v Value) Int64Slice() ([]int64, bool) {
	if v.Kind != KindInt64 {
		return nil, false
	}
	return v.i64s, true
}

// String returns the value as a string, or ("", false) if Kind is not String.
func (v Value) String() (string, bool) {
	if v.Kind != KindString || len(v.strs) != 1 {
		return "", false
	}
	return v.strs[0], true
}

// StringArray returns the value as []string, for either StringArray or
// I18NString kind (both share the same wire encoding); (nil, false) otherwise.
func (v Value) StringArray() ([]string, bool) {
	if v.Kind != KindStringArray && v.Kind != KindI18NString {
		return nil, false
	}
	return v.strs, true
}

// Bin returns the value as []byte, or (nil, false) if Kind is not Bin.
func (v Value) Bin() ([]byte, bool) {
	if v.Kind != KindBin {
		return nil, false
	}
	return v.bin, true
}

// Chars returns the value as []byte, or (nil, false) if Kind is not Char.
func (v Value) Chars() ([]byte, bool) {
	if v.Kind != KindChar {
		return nil, false
	}
	return v.chars, true
}

// count returns the wire "count" field for this value.
func (v Value) count() uint32 {
	switch v.Kind {
	case KindNull:
		return 0
	case KindChar:
		return uint32(len(v.chars))
	case KindInt8:
		return uint32(len(v.i8s))
	case KindInt16:
		return uint32(len(v.i16s))
	case KindInt32:
		return uint32(len(v.i32s))
	case KindInt64:
		return uint32(len(v.i64s))
	case KindString:
		return 1
	case KindBin:
		return uint32(len(v.bin))
	case KindStringArray, KindI18NString:
		return uint32(len(v.strs))
	default:
		return 0
	}
}

// alignment returns the byte alignment this value's kind requires within
// the store (2, 4 or 8 for the fixed-width integer kinds, 1 otherwise).
func (v Value) alignment() int {
	switch v.Kind {
	case KindInt16:
		return 2
	case KindInt32:
		return 4
	case KindInt64:
		return 8
	default:
		return 1
	}
}

// isEmpty reports whether this value has no items to encode.
// Header.AddIfNotEmpty uses this to skip a tag entirely when its list is
// empty, matching rpm.org's requirement that a string-array tag never be
// written with zero elements.
func (v Value) isEmpty() bool {
	return v.count() == 0
}

// appendTo appends this value's bytes (after alignment padding) to store,
// and returns the new store plus the byte offset the value now starts at.
func (v Value) appendTo(store []byte) ([]byte, uint32) {
	store = padTo(store, v.alignment())
	offset := uint32(len(store))

	switch v.Kind {
	case KindNull:
		// nothing to write
	case KindChar, KindBin:
		data := v.chars
		if v.Kind == KindBin {
			data = v.bin
		}
		store = append(store, data...)
	case KindInt8:
		for _, n := range v.i8s {
			store = append(store, byte(n))
		}
	case KindInt16:
		for _, n := range v.i16s {
			store = writeUint16BE(store, uint16(n))
		}
	case KindInt32:
		for _, n := range v.i32s {
			store = writeInt32BE(store, n)
		}
	case KindInt64:
		for _, n := range v.i64s {
			var tmp [8]byte
			binary.BigEndian.PutUint64(tmp[:], uint64(n))
			store = append(store, tmp[:]...)
		}
	case KindString:
		store = append(store, []byte(v.strs[0])...)
		store = append(store, 0x00)
	case KindStringArray, KindI18NString:
		for _, s := range v.strs {
			store = append(store, []byte(s)...)
			store = append(store, 0x00)
		}
	}
	return store, offset
}

// decodeValue materializes the value of an index entry by reading count
// items of the given kind from store[offset:].
func decodeValue(kind ValueKind, count uint32, offset int32, store []byte) (Value, error) {
	pos := int(offset)
	if pos < 0 || pos > len(store) {
		return Value{}, newError(KindMalformedInput, "entry offset %d out of range (store is %d bytes)", offset, len(store))
	}

	switch kind {
	case KindNull:
		return NewNullValue(), nil
	case KindChar, KindInt8:
		data, err := readFixedArray(store, pos, int(count), 1)
		if err != nil {
			return Value{}, err
		}
		if kind == KindChar {
			return NewCharValue(data), nil
		}
		out := make([]int8, count)
		for i, b := range data {
			out[i] = int8(b)
		}
		return NewInt8Value(out), nil
	case KindInt16:
		data, err := readFixedArray(store, pos, int(count), 2)
		if err != nil {
			return Value{}, err
		}
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
		}
		return NewInt16Value(out), nil
	case KindInt32:
		data, err := readFixedArray(store, pos, int(count), 4)
		if err != nil {
			return Value{}, err
		}
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(data[i*4:]))
		}
		return NewInt32Value(out), nil
	case KindInt64:
		data, err := readFixedArray(store, pos, int(count), 8)
		if err != nil {
			return Value{}, err
		}
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(data[i*8:]))
		}
		return NewInt64Value(out), nil
	case KindBin:
		data, err := readFixedArray(store, pos, int(count), 1)
		if err != nil {
			return Value{}, err
		}
		return NewBinValue(data), nil
	case KindString:
		s, _, err := readNulTerminatedAt(store, pos)
		if err != nil {
			return Value{}, err
		}
		return NewStringValue(s), nil
	case KindStringArray, KindI18NString:
		strs := make([]string, 0, count)
		cur := pos
		for i := uint32(0); i < count; i++ {
			s, next, err := readNulTerminatedAt(store, cur)
			if err != nil {
				return Value{}, err
			}
			strs = append(strs, s)
			cur = next
		}
		if kind == KindStringArray {
			return NewStringArrayValue(strs), nil
		}
		return NewI18NStringArrayValue(strs), nil
	default:
		return Value{}, newError(KindMalformedInput, "unsupported value type code %d", kind)
	}
}

func readFixedArray(store []byte, offset, count, itemSize int) ([]byte, error) {
	n := count * itemSize
	if offset < 0 || offset+n > len(store) {
		return nil, newError(KindMalformedInput, "value of %d bytes at offset %d does not fit in %d-byte store", n, offset, len(store))
	}
	out := make([]byte, n)
	copy(out, store[offset:offset+n])
	return out, nil
}
