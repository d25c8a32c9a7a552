// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/chelnak/ysmrr"
	"github.com/chelnak/ysmrr/pkg/animations"
	"github.com/chelnak/ysmrr/pkg/colors"
)

// WaitSpinner shows a single animated line while a blocking wait is in
// progress. It is finished exactly once, by Complete or Fail.
type WaitSpinner struct {
	manager ysmrr.SpinnerManager
	line    *ysmrr.Spinner
	once    sync.Once
}

// StartWaitSpinner starts a spinner on the user writer.
func StartWaitSpinner(msg string, args ...interface{}) *WaitSpinner {
	var writer io.Writer = os.Stdout
	if Logger != nil && Logger.Writer != nil {
		writer = Logger.Writer
	}
	manager := ysmrr.NewSpinnerManager(
		ysmrr.WithAnimation(animations.Dots),
		ysmrr.WithSpinnerColor(colors.FgHiBlue),
		ysmrr.WithWriter(writer),
	)
	text := fmt.Sprintf(msg, args...)
	ws := &WaitSpinner{manager: manager, line: manager.AddSpinner(text)}
	manager.Start()
	if Logger != nil {
		Logger.Info("%s [wait started]", text)
	}
	return ws
}

// Complete marks the wait as successful and stops the animation.
func (ws *WaitSpinner) Complete() {
	ws.finish(func() {
		ws.line.Complete()
	})
}

// Fail appends err to the line, marks it failed and stops the animation.
func (ws *WaitSpinner) Fail(err error) {
	ws.finish(func() {
		ws.line.UpdateMessage(fmt.Sprintf("%s: %v", ws.line.GetMessage(), err))
		ws.line.Error()
	})
}

func (ws *WaitSpinner) finish(mark func()) {
	ws.once.Do(func() {
		mark()
		ws.manager.Stop()
		if Logger != nil {
			Logger.Info("%s [wait finished]", ws.line.GetMessage())
		}
	})
}
