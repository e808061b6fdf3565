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

// Future 表示一个提交到协程池的任务的结果。
// 结果只会写入一次，Await 之后可以并发读取。
type Future[T any] struct {
	ch    chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		ch: make(chan struct{}),
	}
}

// Await 阻塞直到任务完成，返回结果与错误。
func (future *Future[T]) Await() (T, error) {
	<-future.ch
	return future.value, future.err
}

// Err 阻塞直到任务完成，返回任务错误。
func (future *Future[T]) Err() error {
	<-future.ch
	return future.err
}
