// Copyright (C) 2024 The Vix Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diag

import (
	"context"

	"github.com/sirupsen/logrus"
)

// loggerKey is the context key the ambient logger is stored under,
// mirroring the context-carried logger of the teacher's own core/log
// package: the caller never passes a logger explicitly, it rides the
// context the whole pipeline already threads through.
type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// base is the package-level root logger every phase's entry inherits
// from unless a caller installs its own via WithLogger.
var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel adjusts the verbosity of the base logger. Pass
// logrus.DebugLevel to see per-phase entry/exit tracing.
func SetLevel(level logrus.Level) { base.SetLevel(level) }

// WithLogger returns a context carrying entry as the ambient logger.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, entry)
}

// FromContext returns the ambient logger carried by ctx, or a fresh
// entry off the base logger if none was installed.
func FromContext(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(loggerKey).(*logrus.Entry); ok && e != nil {
		return e
	}
	return logrus.NewEntry(base)
}

// Phase returns a context whose ambient logger is tagged with the given
// pipeline phase name ("lexer", "parser", "library", "codegen"), so that
// every log line emitted underneath it is attributable without each
// call site repeating the field.
func Phase(ctx context.Context, name string) context.Context {
	return WithLogger(ctx, FromContext(ctx).WithField("phase", name))
}
