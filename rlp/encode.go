// Copyright 2017 (c) ETCDEV Team

// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package rlp implements the Recursive Length Prefix encoding used for
// every canonical byte representation in the protocol: header hashing,
// transaction signing, trie node hashing and receipt storage.
package rlp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Encoder is implemented by types that know how to encode themselves, the
// same hook used by core/types.Receipt and core/types.Transaction.
type Encoder interface {
	EncodeRLP(io.Writer) error
}

// RawValue holds an already-RLP-encoded item. Encode copies it through
// unchanged instead of wrapping it as a byte string, the hook trie.go
// uses to embed a small child node's own encoding directly inside its
// parent rather than referencing it by hash.
type RawValue []byte

func Encode(w io.Writer, val interface{}) error {
	if raw, ok := val.(RawValue); ok {
		_, err := w.Write(raw)
		return err
	}
	if e, ok := val.(Encoder); ok {
		return e.EncodeRLP(w)
	}
	buf := new(bytes.Buffer)
	if err := encode(buf, reflect.ValueOf(val)); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func EncodeToBytes(val interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, val); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v reflect.Value) error {
	if raw, ok := v.Interface().(RawValue); ok {
		_, err := buf.Write(raw)
		return err
	}
	if e, ok := v.Interface().(Encoder); ok {
		return e.EncodeRLP(buf)
	}
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return encode(buf, reflect.ValueOf([]byte{}))
		}
		return encode(buf, v.Elem())
	case reflect.Interface:
		return encode(buf, v.Elem())
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return encodeBytes(buf, toBytes(v))
		}
		inner := new(bytes.Buffer)
		for i := 0; i < v.Len(); i++ {
			if err := encode(inner, v.Index(i)); err != nil {
				return err
			}
		}
		return encodeList(buf, inner.Bytes())
	case reflect.Struct:
		if bi, ok := v.Interface().(big.Int); ok {
			return encodeBigInt(buf, &bi)
		}
		inner := new(bytes.Buffer)
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			if f.PkgPath != "" { // unexported
				continue
			}
			if err := encode(inner, v.Field(i)); err != nil {
				return err
			}
		}
		return encodeList(buf, inner.Bytes())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint(buf, v.Uint())
	case reflect.Bool:
		if v.Bool() {
			return encodeUint(buf, 1)
		}
		return encodeUint(buf, 0)
	case reflect.String:
		return encodeBytes(buf, []byte(v.String()))
	default:
		if bi, ok := v.Interface().(*big.Int); ok {
			return encodeBigInt(buf, bi)
		}
		return fmt.Errorf("rlp: unsupported type %v", v.Type())
	}
}

func toBytes(v reflect.Value) []byte {
	if v.Kind() == reflect.Array {
		s := reflect.MakeSlice(reflect.SliceOf(v.Type().Elem()), v.Len(), v.Len())
		reflect.Copy(s, v)
		return s.Bytes()
	}
	return v.Bytes()
}

func encodeBigInt(buf *bytes.Buffer, i *big.Int) error {
	if i == nil || i.Sign() == 0 {
		return encodeBytes(buf, nil)
	}
	if i.Sign() < 0 {
		return fmt.Errorf("rlp: cannot encode negative big.Int")
	}
	return encodeBytes(buf, i.Bytes())
}

func encodeUint(buf *bytes.Buffer, i uint64) error {
	if i == 0 {
		return encodeBytes(buf, nil)
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	start := 0
	for start < 7 && b[start] == 0 {
		start++
	}
	return encodeBytes(buf, b[start:])
}

func encodeBytes(buf *bytes.Buffer, b []byte) error {
	if len(b) == 1 && b[0] < 0x80 {
		buf.WriteByte(b[0])
		return nil
	}
	if err := writeHeader(buf, 0x80, len(b)); err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func encodeList(buf *bytes.Buffer, content []byte) error {
	if err := writeHeader(buf, 0xc0, len(content)); err != nil {
		return err
	}
	buf.Write(content)
	return nil
}

func writeHeader(buf *bytes.Buffer, offset byte, size int) error {
	if size < 56 {
		buf.WriteByte(offset + byte(size))
		return nil
	}
	var sb [8]byte
	binary.BigEndian.PutUint64(sb[:], uint64(size))
	start := 0
	for start < 7 && sb[start] == 0 {
		start++
	}
	lenOfLen := 8 - start
	buf.WriteByte(offset + 55 + byte(lenOfLen))
	buf.Write(sb[start:])
	return nil
}
