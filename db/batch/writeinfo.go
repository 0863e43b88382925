// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package batch

import (
	"github.com/pkg/errors"
)

const (
	// Put indicate the type of write operation to be Put
	Put WriteType = iota
	// Delete indicate the type of write operation to be Delete
	Delete
)

type (
	// WriteType is the type of write
	WriteType uint8

	// WriteInfo is a staged Put/Delete, with the message used to wrap its failure
	WriteInfo struct {
		writeType   WriteType
		namespace   string
		key         []byte
		value       []byte
		errorFormat string
		errorArgs   []interface{}
	}
)

func newWriteInfo(writeType WriteType, namespace string, key, value []byte, errorFormat string, errorArgs []interface{}) *WriteInfo {
	return &WriteInfo{
		writeType:   writeType,
		namespace:   namespace,
		key:         append([]byte(nil), key...),
		value:       append([]byte(nil), value...),
		errorFormat: errorFormat,
		errorArgs:   errorArgs,
	}
}

// Namespace returns the namespace of a write info
func (wi *WriteInfo) Namespace() string { return wi.namespace }

// WriteType returns the type of a write info
func (wi *WriteInfo) WriteType() WriteType { return wi.writeType }

// Key returns the key, the caller must not modify it
func (wi *WriteInfo) Key() []byte { return wi.key }

// Value returns the value, nil for a Delete
func (wi *WriteInfo) Value() []byte {
	if wi.writeType == Delete {
		return nil
	}
	return wi.value
}

// Wrap annotates err with the message the write was staged with
func (wi *WriteInfo) Wrap(err error) error {
	if err == nil {
		return nil
	}
	if wi.errorFormat == "" {
		return errors.Wrapf(err, "failed to write ns = %s key = %x", wi.namespace, wi.key)
	}
	return errors.Wrapf(err, wi.errorFormat, wi.errorArgs...)
}
