// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"github.com/panjf2000/ants/v2"
)

// Executor runs ingestion tasks. The default implementation is a bounded
// local worker pool; alternative implementations can ship tasks to a
// distributed execution backend. An executor that cannot accept work
// returns ErrExecutorUnavailable from Submit, and the coordinator falls
// back to its local pool for that task.
type Executor interface {
	// Submit schedules a task for execution. The task must eventually run
	// exactly once when Submit returns nil.
	Submit(task func()) error

	// Release stops the executor and frees its resources.
	Release()
}

// PoolExecutor runs tasks on a bounded goroutine pool.
type PoolExecutor struct {
	pool *ants.Pool
}

// NewPoolExecutor creates a pool executor with the given number of
// workers. Sizes below 1 are raised to 1.
func NewPoolExecutor(workers int) (*PoolExecutor, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &PoolExecutor{pool: pool}, nil
}

// Submit schedules a task on the pool, blocking until a worker is free.
func (e *PoolExecutor) Submit(task func()) error {
	return e.pool.Submit(task)
}

// Release stops the pool. Pending tasks are allowed to finish.
func (e *PoolExecutor) Release() {
	e.pool.Release()
}
