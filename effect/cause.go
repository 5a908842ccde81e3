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

package effect

import "fmt"

// CauseKind discriminates the variants of a Cause.
type CauseKind int

const (
	// KindFail marks a typed, modeled failure carrying an error value.
	KindFail CauseKind = iota + 1

	// KindDie marks a defect: an unexpected, non-modeled failure such as a
	// recovered panic or a programmer error.
	KindDie

	// KindInterrupt marks an execution unit that was interrupted before
	// producing an outcome.
	KindInterrupt

	// KindSequential marks two causes produced one after the other
	// (a failure followed by, say, a failing finalizer).
	KindSequential

	// KindParallel marks two causes produced concurrently.
	KindParallel

	// KindEmpty marks a failure outcome that carries no cause information.
	KindEmpty
)

// Cause describes why a computation failed. It forms a small algebra: leaf
// causes (Fail, Die, Interrupt, Empty) and binary compositions (Sequential,
// Parallel). Consumers discriminate on Kind and, for compositions, recurse.
//
// Causes are immutable values; sharing them across goroutines is safe.
type Cause interface {
	// Kind returns the variant discriminator.
	Kind() CauseKind

	// String renders the cause for logs and diagnostics.
	String() string
}

// Fail is a typed failure: the computation failed with a modeled error
// value (a tagged error instance, a plain RPC error, or any other error).
type Fail struct {
	Err error
}

// Kind implements Cause.
func (Fail) Kind() CauseKind { return KindFail }

func (c Fail) String() string { return fmt.Sprintf("Fail(%v)", c.Err) }

// Die is a defect. Value holds whatever the computation died with (for
// recovered panics, the panic value); Stack optionally holds the goroutine
// stack captured at the point of death.
type Die struct {
	Value any
	Stack []byte
}

// Kind implements Cause.
func (Die) Kind() CauseKind { return KindDie }

func (c Die) String() string { return fmt.Sprintf("Die(%v)", c.Value) }

// Interrupt records that the execution unit identified by FiberID was
// interrupted, typically because the call's cancellation signal fired.
type Interrupt struct {
	FiberID string
}

// Kind implements Cause.
func (Interrupt) Kind() CauseKind { return KindInterrupt }

func (c Interrupt) String() string { return fmt.Sprintf("Interrupt(%s)", c.FiberID) }

// Sequential composes two causes that occurred one after the other.
// Left happened first.
type Sequential struct {
	Left  Cause
	Right Cause
}

// Kind implements Cause.
func (Sequential) Kind() CauseKind { return KindSequential }

func (c Sequential) String() string {
	return fmt.Sprintf("Sequential(%s, %s)", c.Left, c.Right)
}

// Parallel composes two causes that occurred concurrently.
// Left belongs to the first-started branch.
type Parallel struct {
	Left  Cause
	Right Cause
}

// Kind implements Cause.
func (Parallel) Kind() CauseKind { return KindParallel }

func (c Parallel) String() string {
	return fmt.Sprintf("Parallel(%s, %s)", c.Left, c.Right)
}

// Empty is a failure with no cause information at all.
type Empty struct{}

// Kind implements Cause.
func (Empty) Kind() CauseKind { return KindEmpty }

func (Empty) String() string { return "Empty" }
