// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package payload

import (
	"fmt"

	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/fardream/go-bcs/bcs"
)

const (
	codeModule        = "code"
	publishPackageTxn = "publish_package_txn"
)

// NewPublishPackage builds the code publication payload from the package
// metadata blob and the compiled module blobs, in the given order.
func NewPublishPackage(metadata []byte, modules [][]byte) (*EntryFunction, error) {
	if len(modules) == 0 {
		return nil, ErrEmptyPackage
	}
	for i, m := range modules {
		if len(m) == 0 {
			return nil, fmt.Errorf("%w: module %d is empty", ErrEmptyPackage, i)
		}
	}
	metadataArg, err := bcs.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	codeArg, err := bcs.Marshal(modules)
	if err != nil {
		return nil, err
	}
	return &EntryFunction{
		Module:   ModuleID{Address: movetypes.CoreAddress, Name: codeModule},
		Function: publishPackageTxn,
		Args:     [][]byte{metadataArg, codeArg},
	}, nil
}
