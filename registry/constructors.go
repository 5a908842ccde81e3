/*
   Copyright 2026 The effect-orpc Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"github.com/utopyin/effect-orpc/code"
	"github.com/utopyin/effect-orpc/rpcerror"
	"github.com/utopyin/effect-orpc/tagged"
)

// Args carries the per-call overrides a handler passes when constructing a
// registered error. Zero fields fall back to the registry entry's defaults.
type Args struct {
	// Status overrides the error status. Must be in 400..599 when set;
	// out-of-range values are a usage error and panic at the call site.
	Status int

	// Message overrides the human message.
	Message string

	// Data is the structured payload of this particular failure.
	Data any

	// Cause attaches an underlying error for diagnostics.
	Cause error
}

// Constructor builds one failure value for a fixed error code. For
// tagged-type entries the result is a *tagged.Instance; for template entries
// (and unregistered codes) it is a *rpcerror.Error. Either way the result
// implements error and is ready to travel through an effect's failure
// channel.
type Constructor func(args Args) error

// ConstructorMap is the lookup object of error constructors handed to
// handler code as the "errors" field of its input.
//
// The map holds one closure per registered code. Building it is cheap and
// side-effect free: no tagged type is instantiated until its constructor is
// actually called, so types whose payloads are mandatory cost nothing to
// register.
type ConstructorMap map[code.Code]Constructor

// Constructors builds the constructor map for a registry.
//
// Tagged-type entries forward their arguments to Type.New; template entries
// build a plain error with the template's status/message as defaults and the
// call's arguments as overrides, marked Defined because the code is
// registered. Zero entries are skipped.
func Constructors(r Registry) ConstructorMap {
	m := make(ConstructorMap, len(r))
	for k, e := range r {
		if e.IsZero() {
			continue
		}
		if t, ok := e.Type(); ok {
			m[k] = typeConstructor(t)
			continue
		}
		tpl, _ := e.Template()
		m[k] = templateConstructor(k, tpl)
	}
	return m
}

// Get returns the constructor for the given code. Looking up an unregistered
// code is not an error: the returned constructor produces a fully usable
// plain error, just flagged Defined:false because no template exists for it.
func (m ConstructorMap) Get(c code.Code) Constructor {
	if ctor, ok := m[c]; ok {
		return ctor
	}
	return undefinedConstructor(c)
}

// New is shorthand for Get(c)(args).
func (m ConstructorMap) New(c code.Code, args Args) error {
	return m.Get(c)(args)
}

func typeConstructor(t *tagged.Type) Constructor {
	return func(args Args) error {
		opts := make([]tagged.InstanceOption, 0, 4)
		if args.Status != 0 {
			opts = append(opts, tagged.WithInstanceStatus(args.Status))
		}
		if args.Message != "" {
			opts = append(opts, tagged.WithInstanceMessage(args.Message))
		}
		if args.Data != nil {
			opts = append(opts, tagged.WithData(args.Data))
		}
		if args.Cause != nil {
			opts = append(opts, tagged.WithCause(args.Cause))
		}
		return t.New(opts...)
	}
}

func templateConstructor(c code.Code, tpl Template) Constructor {
	return func(args Args) error {
		status := args.Status
		if status == 0 {
			status = tpl.Status
		}
		message := args.Message
		if message == "" {
			message = tpl.Message
		}
		opts := make([]rpcerror.Option, 0, 5)
		if status != 0 {
			opts = append(opts, rpcerror.WithStatusOption(status))
		}
		if message != "" {
			opts = append(opts, rpcerror.WithMessageOption(message))
		}
		opts = append(opts,
			rpcerror.WithDataOption(args.Data),
			rpcerror.WithDefinedOption(true),
			rpcerror.WithCauseOption(args.Cause),
		)
		return rpcerror.New(c, opts...)
	}
}

func undefinedConstructor(c code.Code) Constructor {
	return func(args Args) error {
		opts := make([]rpcerror.Option, 0, 4)
		if args.Status != 0 {
			opts = append(opts, rpcerror.WithStatusOption(args.Status))
		}
		if args.Message != "" {
			opts = append(opts, rpcerror.WithMessageOption(args.Message))
		}
		opts = append(opts,
			rpcerror.WithDataOption(args.Data),
			rpcerror.WithCauseOption(args.Cause),
		)
		return rpcerror.New(c, opts...)
	}
}
