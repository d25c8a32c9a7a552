// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"testing"

	"github.com/aptoswap/aptoswap-cli/pkg/application"
	"github.com/aptoswap/aptoswap-cli/pkg/config"
	"github.com/aptoswap/aptoswap-cli/pkg/constants"
	"github.com/aptoswap/aptoswap-cli/pkg/prompts"
	"github.com/aptoswap/aptoswap-cli/pkg/ux"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ProjectDir is the project directory of apps built by SetupTestApp.
const ProjectDir = "/project"

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(zap.NewNop(), io.Discard)
	return require.New(t)
}

// SetupTestApp returns an app on an in-memory filesystem rooted at
// ProjectDir. The global viper state is reset when the test ends.
func SetupTestApp(t *testing.T, prompt prompts.Prompter) *application.Aptoswap {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set(constants.ConfigProjectDirKey, ProjectDir)
	viper.Set(constants.ConfigProfileKey, constants.DefaultProfile)

	app := application.New()
	app.Setup(t.TempDir(), zap.NewNop(), config.New(), prompt, afero.NewMemMapFs())
	return app
}
