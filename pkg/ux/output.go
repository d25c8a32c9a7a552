// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// OctasPerAPT is the number of base units in one coin.
const OctasPerAPT = 100_000_000

var Logger *UserLog

type UserLog struct {
	log    *zap.Logger
	Writer io.Writer
}

func NewUserLog(log *zap.Logger, userwriter io.Writer) {
	if Logger == nil {
		if log == nil {
			log = zap.NewNop()
		}
		if userwriter == nil {
			userwriter = os.Stdout
		}
		Logger = &UserLog{
			log:    log,
			Writer: userwriter,
		}
	}
}

// PrintToUser prints msg directly on the screen, but also to log file
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	ul.print(fmt.Sprintf(msg, args...) + "\n")
}

func (ul *UserLog) print(msg string) {
	if ul != nil {
		fmt.Fprint(ul.Writer, msg)
		ul.log.Info(strings.TrimSuffix(msg, "\n"))
	} else {
		fmt.Print(msg)
	}
}

// Info prints to the log file
func (ul *UserLog) Info(msg string, args ...interface{}) {
	if ul == nil {
		return
	}
	ul.log.Info(fmt.Sprintf(msg, args...))
}

// Warn prints to the log file
func (ul *UserLog) Warn(msg string, args ...interface{}) {
	if ul == nil {
		return
	}
	ul.log.Warn(fmt.Sprintf(msg, args...))
}

// Error prints to the log file
func (ul *UserLog) Error(msg string, args ...interface{}) {
	if ul == nil {
		return
	}
	ul.log.Error(fmt.Sprintf(msg, args...))
}

// GreenCheckmarkToUser prints a green checkmark to the user before the message
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	checkmark := "✓"
	green := color.New(color.FgHiGreen).SprintFunc()
	ul.PrintToUser(green(checkmark)+" "+msg, args...)
}

func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	xmark := "✗"
	red := color.New(color.FgHiRed).SprintFunc()
	ul.PrintToUser(red(xmark)+" "+msg, args...)
}

func ConvertToStringWithThousandSeparator(input uint64) string {
	p := message.NewPrinter(language.English)
	s := p.Sprintf("%d", input)
	return strings.ReplaceAll(s, ",", "_")
}

// FormatOctas renders a base unit amount as coins, e.g. 150000000 as
// "1.5 APT (150_000_000 octas)".
func FormatOctas(octas uint64) string {
	whole := octas / OctasPerAPT
	frac := strings.TrimRight(fmt.Sprintf("%08d", octas%OctasPerAPT), "0")
	amount := ConvertToStringWithThousandSeparator(whole)
	if frac != "" {
		amount += "." + frac
	}
	return fmt.Sprintf("%s APT (%s octas)", amount, ConvertToStringWithThousandSeparator(octas))
}
