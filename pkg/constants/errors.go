// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrNoProfile      = errors.New("\n\nNo account profile found. To resolve this:\n- Use 'aptoswap new-account' to generate a profile.\n- Or use 'aptoswap vault install' to install an encrypted bundle.\n") //nolint:stylecheck
	ErrNoPackageInfo  = errors.New("\n\nNo package_info.json found. To resolve this:\n- Use 'aptoswap account' to record the package address.\n")                                                              //nolint:stylecheck
	ErrUnknownNetwork = errors.New("unknown network")
)
