// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package payload compiles human described function calls into executable
// transaction payloads.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/aptoswap/aptoswap-cli/pkg/moveargs"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"

	"github.com/fardream/go-bcs/bcs"
)

const (
	pathSeparator = "::"

	// entryFunctionVariant is the TransactionPayload enum index of EntryFunction.
	entryFunctionVariant uint8 = 2
)

var (
	ErrInvalidFunction = errors.New("invalid function path")
	ErrEmptyPackage    = errors.New("package has no modules")
)

// CallDescriptor describes an entry function call before encoding.
type CallDescriptor struct {
	// Function is <address>::<module>::<function>.
	Function      string
	TypeArguments []string
	Arguments     []moveargs.Arg
}

func (d CallDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString(d.Function)
	if len(d.TypeArguments) > 0 {
		sb.WriteString("<" + strings.Join(d.TypeArguments, ", ") + ">")
	}
	args := make([]string, 0, len(d.Arguments))
	for _, a := range d.Arguments {
		if a == nil {
			args = append(args, "<nil>")
			continue
		}
		args = append(args, fmt.Sprintf("%s:%s", a.Kind(), a))
	}
	sb.WriteString("(" + strings.Join(args, ", ") + ")")
	return sb.String()
}

type ModuleID struct {
	Address movetypes.AccountAddress
	Name    string
}

func (m ModuleID) String() string {
	return m.Address.ShortString() + pathSeparator + m.Name
}

func (m ModuleID) MarshalBCS() ([]byte, error) {
	name, err := bcs.Marshal(m.Name)
	if err != nil {
		return nil, err
	}
	return append(m.Address.Bytes(), name...), nil
}

// ParseModuleID parses <address>::<module>.
func ParseModuleID(s string) (ModuleID, error) {
	addrStr, name, found := strings.Cut(s, pathSeparator)
	if !found || name == "" || strings.Contains(name, pathSeparator) {
		return ModuleID{}, fmt.Errorf("%w: module path %q is not <address>::<module>", ErrInvalidFunction, s)
	}
	addr, err := movetypes.ParseAddress(addrStr)
	if err != nil {
		return ModuleID{}, fmt.Errorf("%w: %w", ErrInvalidFunction, err)
	}
	return ModuleID{Address: addr, Name: name}, nil
}

// EntryFunction is an encoded call ready to be placed in a raw transaction.
type EntryFunction struct {
	Module   ModuleID
	Function string
	TypeArgs []movetypes.TypeTag
	Args     [][]byte
}

func (f *EntryFunction) String() string {
	tags := make([]string, 0, len(f.TypeArgs))
	for _, t := range f.TypeArgs {
		tags = append(tags, t.String())
	}
	s := f.Module.String() + pathSeparator + f.Function
	if len(tags) > 0 {
		s += "<" + strings.Join(tags, ", ") + ">"
	}
	return s
}

// MarshalBCS encodes the payload as a TransactionPayload::EntryFunction.
func (f *EntryFunction) MarshalBCS() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bcs.ULEB128Encode(entryFunctionVariant))
	module, err := f.Module.MarshalBCS()
	if err != nil {
		return nil, err
	}
	buf.Write(module)
	fn, err := bcs.Marshal(f.Function)
	if err != nil {
		return nil, err
	}
	buf.Write(fn)
	tags, err := movetypes.MarshalTypeTags(f.TypeArgs)
	if err != nil {
		return nil, err
	}
	buf.Write(tags)
	args, err := bcs.Marshal(f.Args)
	if err != nil {
		return nil, err
	}
	buf.Write(args)
	return buf.Bytes(), nil
}

// Compile resolves the function path, type arguments and value arguments of
// desc. Nothing is returned unless every part is valid.
func Compile(desc CallDescriptor) (*EntryFunction, error) {
	idx := strings.LastIndex(desc.Function, pathSeparator)
	if idx <= 0 || idx+len(pathSeparator) == len(desc.Function) {
		return nil, fmt.Errorf("%w: %q is not <module-path>::<function>", ErrInvalidFunction, desc.Function)
	}
	module, err := ParseModuleID(desc.Function[:idx])
	if err != nil {
		return nil, err
	}
	tags, err := movetypes.ParseTypeTags(desc.TypeArguments)
	if err != nil {
		return nil, err
	}
	args, err := moveargs.EncodeAll(desc.Arguments)
	if err != nil {
		return nil, err
	}
	return &EntryFunction{
		Module:   module,
		Function: desc.Function[idx+len(pathSeparator):],
		TypeArgs: tags,
		Args:     args,
	}, nil
}
