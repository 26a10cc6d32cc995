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

package rlp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

var ErrExpectedList = errors.New("rlp: expected list")

// Decoder mirrors Encoder: a type can take over its own RLP decoding, the
// hook core/types.Receipt uses for its status-byte representation.
type Decoder interface {
	DecodeRLP(*Stream) error
}

// Stream is a minimal forward-only RLP reader, sized to what the
// validation pipeline needs: whole-value item/list walking, no streaming
// of huge byte strings.
type Stream struct {
	r   *bytes.Reader
}

func NewStream(b []byte) *Stream { return &Stream{bytes.NewReader(b)} }

func DecodeBytes(b []byte, val interface{}) error {
	s := NewStream(b)
	return s.Decode(val)
}

// kind returns the header size tag and the payload bounds for the next item.
func (s *Stream) kind() (isList bool, size int, err error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return false, 0, err
	}
	switch {
	case b < 0x80:
		if err := s.r.UnreadByte(); err != nil {
			return false, 0, err
		}
		return false, 1, nil
	case b < 0xb8:
		return false, int(b - 0x80), nil
	case b < 0xc0:
		n := int(b - 0xb7)
		return false, readSize(s.r, n)
	case b < 0xf8:
		return true, int(b - 0xc0), nil
	default:
		n := int(b - 0xf7)
		size, err = readSize(s.r, n)
		return true, size, err
	}
}

func readSize(r *bytes.Reader, n int) (int, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	v := big.NewInt(0).SetBytes(buf)
	return int(v.Int64()), nil
}

// Bytes reads the next item as a raw byte string.
func (s *Stream) Bytes() ([]byte, error) {
	isList, size, err := s.kind()
	if err != nil {
		return nil, err
	}
	if isList {
		return nil, ErrExpectedList
	}
	if size == 1 {
		b, err := s.r.ReadByte()
		return []byte{b}, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// List enters a list item, returning the remaining byte length of its body
// so callers can detect the end with Remaining.
func (s *Stream) List() (int, error) {
	isList, size, err := s.kind()
	if err != nil {
		return 0, err
	}
	if !isList {
		return 0, ErrExpectedList
	}
	return size, nil
}

func (s *Stream) Remaining() int { return s.r.Len() }

func (s *Stream) Decode(val interface{}) error {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("rlp: Decode requires a non-nil pointer")
	}
	return s.decodeInto(rv.Elem())
}

func (s *Stream) decodeInto(v reflect.Value) error {
	if v.CanAddr() {
		if d, ok := v.Addr().Interface().(Decoder); ok {
			return d.DecodeRLP(s)
		}
	}
	switch v.Kind() {
	case reflect.Ptr:
		elem := reflect.New(v.Type().Elem())
		if err := s.decodeInto(elem.Elem()); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := s.Bytes()
			if err != nil {
				return err
			}
			v.SetBytes(b)
			return nil
		}
		size, err := s.List()
		if err != nil {
			return err
		}
		start := s.Remaining()
		out := reflect.MakeSlice(v.Type(), 0, 0)
		for start-s.Remaining() < size {
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := s.decodeInto(elem); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
		}
		v.Set(out)
		return nil
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := s.Bytes()
			if err != nil {
				return err
			}
			reflect.Copy(v, reflect.ValueOf(b))
			return nil
		}
		return fmt.Errorf("rlp: unsupported array type %v", v.Type())
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(big.Int{}) {
			b, err := s.Bytes()
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(*new(big.Int).SetBytes(b)))
			return nil
		}
		size, err := s.List()
		if err != nil {
			return err
		}
		start := s.Remaining()
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).PkgPath != "" {
				continue
			}
			if start-s.Remaining() >= size {
				break
			}
			if err := s.decodeInto(v.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		v.SetUint(new(big.Int).SetBytes(b).Uint64())
		return nil
	case reflect.Bool:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		v.SetBool(len(b) != 0 && b[0] != 0)
		return nil
	case reflect.String:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		v.SetString(string(b))
		return nil
	default:
		return fmt.Errorf("rlp: unsupported type %v", v.Type())
	}
}
