// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"
)

func validateAddress(input string) error {
	_, err := movetypes.ParseAddress(input)
	return err
}

func validatePassword(input string) error {
	return vault.ValidatePassword(input)
}
