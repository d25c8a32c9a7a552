// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package publishcmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aptoswap/aptoswap-cli/internal/testutils"
	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/engine"
	"github.com/aptoswap/aptoswap-cli/pkg/movebuild"
	"github.com/aptoswap/aptoswap-cli/pkg/vault"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	mu        sync.Mutex
	submitted [][]byte
	success   bool
}

func (n *testNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1")
	switch {
	case path == "/":
		fmt.Fprint(w, `{"chain_id":4}`)
	case strings.Contains(path, "/resource/"):
		fmt.Fprint(w, `{"type":"0x1::gas_schedule::GasScheduleV2","data":{"entries":[{"key":"txn.min_price_per_gas_unit","val":"100"}]}}`)
	case strings.HasPrefix(path, "/accounts/"):
		fmt.Fprint(w, `{"sequence_number":"7"}`)
	case r.Method == http.MethodPost && path == "/transactions":
		body, _ := io.ReadAll(r.Body)
		n.mu.Lock()
		n.submitted = append(n.submitted, body)
		n.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{}`)
	case strings.HasPrefix(path, "/transactions/by_hash/"):
		fmt.Fprintf(w, `{"type":"user_transaction","success":%t,"vm_status":"status"}`, n.success)
	default:
		http.NotFound(w, r)
	}
}

func setupPublish(t *testing.T, success bool) (*application.Aptoswap, *testNode) {
	node := &testNode{success: success}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	testApp := testutils.SetupTestApp(t, nil)
	viper.Set(constants.ConfigNetworkKey, "test")
	viper.Set(constants.ConfigNodeURLKey, srv.URL+"/v1")
	return testApp, node
}

func execute(testApp *application.Aptoswap, args ...string) error {
	cmd := NewCmd(testApp)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestPublish(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp, node := setupPublish(t, true)
	k := testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)
	testutils.WriteDummyPackage(t, testApp.FS, testutils.ProjectDir, constants.DefaultPackageName, map[string][]byte{
		"pool":  []byte("pool-bytecode"),
		"token": []byte("token-bytecode"),
	})

	require.NoError(execute(testApp, "--skip-compile", "--skip-fund"))

	require.Len(node.submitted, 1)
	require.True(bytes.Contains(node.submitted[0], []byte("pool-bytecode")))
	require.True(bytes.Contains(node.submitted[0], []byte("token-bytecode")))
	require.True(bytes.Contains(node.submitted[0], testutils.DummyMetadata))
	require.True(bytes.Contains(node.submitted[0], []byte("publish_package_txn")))

	info, err := vault.ReadPackageInfo(testApp.FS, testApp.GetPackageInfoPath())
	require.NoError(err)
	require.Equal(k.Address().ShortString(), info.Package)
}

func TestPublishAbortIsFatal(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp, _ := setupPublish(t, false)
	testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)
	testutils.WriteDummyPackage(t, testApp.FS, testutils.ProjectDir, constants.DefaultPackageName, map[string][]byte{
		"pool": []byte("pool-bytecode"),
	})

	err := execute(testApp, "--skip-compile", "--skip-fund")
	var fatal *engine.FatalError
	require.ErrorAs(err, &fatal)
	require.Equal(engine.Aborted, fatal.Result.Outcome)

	_, err = vault.ReadPackageInfo(testApp.FS, testApp.GetPackageInfoPath())
	require.ErrorIs(err, constants.ErrNoPackageInfo)
}

func TestPublishWithoutBuild(t *testing.T) {
	require := testutils.SetupTest(t)
	testApp, node := setupPublish(t, true)
	testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)

	err := execute(testApp, "--skip-compile", "--skip-fund")
	require.Error(err)
	require.Empty(node.submitted)
}

func TestPublishMissingCompiler(t *testing.T) {
	testutils.SetupTest(t)
	testApp, node := setupPublish(t, true)
	testutils.WriteTestProfile(t, testApp.FS, testutils.ProjectDir, constants.DefaultProfile)
	viper.Set(constants.ConfigAptosPathKey, "/nonexistent/aptos")

	err := execute(testApp, "--skip-fund")
	require.ErrorIs(t, err, movebuild.ErrCompilerNotFound)
	require.Empty(t, node.submitted)
}
