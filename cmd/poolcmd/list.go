// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package poolcmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aptoswap/aptoswap-cli/pkg/cobrautils"
	"github.com/aptoswap/aptoswap-cli/pkg/movetypes"
	"github.com/aptoswap/aptoswap-cli/pkg/node"
	"github.com/aptoswap/aptoswap-cli/pkg/utils"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	poolCreateEventField = "pool_create_event"
	swapCapStruct        = "SwapCap"
	poolStruct           = "Pool"
	maxConcurrentReads   = 4
	maxDataWidth         = 80
)

var eventLimit int

// PoolReader is the part of the node client the pool listing needs.
type PoolReader interface {
	EventsByHandle(ctx context.Context, addr movetypes.AccountAddress, handle string, field string, limit int) ([]node.Event, error)
	AccountResources(ctx context.Context, addr movetypes.AccountAddress) ([]node.Resource, error)
}

// Pool is a pool account and its pool resource. Resource is nil when the
// account no longer holds one.
type Pool struct {
	Address  movetypes.AccountAddress
	Resource *node.Resource
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the pools created by the package",
		Long: `The pool list command reads the pool creation events of the package and
prints the pool resource held by each pool account.`,
		Args:         cobrautils.ExactArgs(0),
		RunE:         listPools,
		SilenceUsage: true,
	}
	cmd.Flags().IntVar(&eventLimit, "limit", 0, "maximum number of creation events to read, node default when zero")
	return cmd
}

func listPools(_ *cobra.Command, _ []string) error {
	pkg, err := resolvePackage()
	if err != nil {
		return err
	}
	client, err := app.NodeClient()
	if err != nil {
		return err
	}
	ctx, cancel := utils.GetAPILargeContext()
	defer cancel()
	pools, err := ListPools(ctx, client, pkg, eventLimit)
	if err != nil {
		return err
	}
	if len(pools) == 0 {
		ux.Logger.PrintToUser("No pools created by %s", pkg)
		return nil
	}
	rows := make([]table.Row, 0, len(pools))
	for _, p := range pools {
		if p.Resource == nil {
			rows = append(rows, table.Row{p.Address.ShortString(), "-", "-"})
			continue
		}
		rows = append(rows, table.Row{p.Address.ShortString(), p.Resource.Type, compactData(p.Resource.Data)})
	}
	ux.PrintTable("Pools", table.Row{"Pool Account", "Type", "Data"}, rows)
	return nil
}

// ListPools returns the pools announced by the pool creation events of pkg,
// in event order.
func ListPools(ctx context.Context, reader PoolReader, pkg movetypes.AccountAddress, limit int) ([]Pool, error) {
	handle := movetypes.StructTag{Address: pkg, Module: poolModule, Name: swapCapStruct}
	events, err := reader.EventsByHandle(ctx, pkg, handle.String(), poolCreateEventField, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool creation events: %w", err)
	}
	pools := make([]Pool, len(events))
	for i, event := range events {
		var data struct {
			PoolAccountAddr movetypes.AccountAddress `json:"pool_account_addr"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return nil, fmt.Errorf("invalid pool creation event %d: %w", event.SequenceNumber, err)
		}
		pools[i].Address = data.PoolAccountAddr
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i := range pools {
		g.Go(func() error {
			resources, err := reader.AccountResources(gctx, pools[i].Address)
			if err != nil {
				return fmt.Errorf("failed to read resources of pool %s: %w", pools[i].Address, err)
			}
			for _, r := range resources {
				if isPoolResource(r.Type, pkg) {
					pools[i].Resource = &r
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pools, nil
}

// isPoolResource reports whether resourceType is <pkg>::pool::Pool<...>.
// Addresses are compared parsed, so short and long forms both match.
func isPoolResource(resourceType string, pkg movetypes.AccountAddress) bool {
	tag, err := movetypes.ParseStructTag(resourceType)
	if err != nil {
		return false
	}
	return tag.Address == pkg && tag.Module == poolModule && tag.Name == poolStruct
}

func compactData(data json.RawMessage) string {
	s := string(data)
	if len(s) > maxDataWidth {
		return s[:maxDataWidth-3] + "..."
	}
	return s
}
