// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package logger provides the leveled logging used by the command line tools.
// The library packages never log.
package logger

import (
	"io"
	"io/ioutil"
	"log"
)

type Logger interface {
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type stdLogger struct{ l *log.Logger }

// New returns a Logger writing to the standard logger.
func New() Logger { return &stdLogger{log.Default()} }

// NewWriter returns a Logger writing to w with the standard flags.
func NewWriter(w io.Writer) Logger { return &stdLogger{log.New(w, "", log.LstdFlags)} }

// Discard returns a Logger that drops every message.
func Discard() Logger { return &stdLogger{log.New(ioutil.Discard, "", 0)} }

func (l *stdLogger) Infof(format string, v ...interface{})  { l.l.Printf("[INFO] "+format, v...) }
func (l *stdLogger) Errorf(format string, v ...interface{}) { l.l.Printf("[ERROR] "+format, v...) }
