// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conc

import (
	"github.com/cockroachdb/errors"
	ants "github.com/panjf2000/ants/v2"
)

// Pool 是基于 ants 的泛型协程池，提交的任务以 Future 形式返回结果。
type Pool[T any] struct {
	inner *ants.Pool
}

// NewPool 创建容量为 cap 的协程池。
// cap 非法时直接 panic。
func NewPool[T any](cap int, opts ...PoolOption) *Pool[T] {
	opt := &poolOption{}
	for _, o := range opts {
		o(opt)
	}

	pool, err := ants.NewPool(cap, opt.antsOptions()...)
	if err != nil {
		panic(err)
	}

	return &Pool[T]{inner: pool}
}

// Submit 向协程池提交任务。
// 协程池已关闭时，返回的 Future 直接携带错误。
func (pool *Pool[T]) Submit(method func() (T, error)) *Future[T] {
	future := newFuture[T]()
	err := pool.inner.Submit(func() {
		defer close(future.ch)
		defer func() {
			if x := recover(); x != nil {
				future.err = errors.Newf("task panicked: %v", x)
				panic(x) // 交给 ants 的 panic handler 处理
			}
		}()
		res, err := method()
		if err != nil {
			future.err = err
		} else {
			future.value = res
		}
	})
	if err != nil {
		future.err = err
		close(future.ch)
	}

	return future
}

// Release 释放协程池，之后提交的任务都会失败。
func (pool *Pool[T]) Release() {
	pool.inner.Release()
}
