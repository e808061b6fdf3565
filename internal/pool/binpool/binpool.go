// Copyright (c) 2019 The Gnet Authors. All rights reserved.
// Copyright (c) 2016 Aliaksandr Valialkin, VertaMedia
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
//
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/valyala/bytebufferpool/blob/master/LICENSE

// Package binpool 实现了 TL 编码缓冲区的对象池，按使用情况自动校准初始容量。
package binpool

import (
	"math/bits"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	minBitSize = 6 // 2**6=64，为典型 CPU cache line 大小
	steps      = 20

	minSize = 1 << minBitSize

	calibrateCallsThreshold = 42000
	maxPercentile           = 0.95
)

// Pool 表示 *bin.Buffer 的对象池。
//
// 不同用途可以使用不同的 Pool；内部根据归还时的长度分布校准默认容量和最大可回收容量。
type Pool struct {
	calls       [steps]uint64
	calibrating uint64

	defaultSize uint64
	maxSize     uint64

	pool sync.Pool
}

var builtinPool Pool

// Get 从默认池中获取一个空的缓冲区。
func Get() *bin.Buffer { return builtinPool.Get() }

// Get 从 Pool 中获取一个长度为 0 的缓冲区，使用完毕后通过 Put 归还。
func (p *Pool) Get() *bin.Buffer {
	v := p.pool.Get()
	if v != nil {
		return v.(*bin.Buffer)
	}
	return &bin.Buffer{Buf: make([]byte, 0, int(atomic.LoadUint64(&p.defaultSize)))}
}

// Put 将缓冲区归还到默认池中。
func Put(b *bin.Buffer) { builtinPool.Put(b) }

// Put 将通过 Get 获取的缓冲区归还到 Pool 中，归还后不允许再访问 b 及其 Bytes()。
func (p *Pool) Put(b *bin.Buffer) {
	if b == nil {
		return
	}
	idx := index(b.Len())

	if atomic.AddUint64(&p.calls[idx], 1) > calibrateCallsThreshold {
		p.calibrate()
	}

	maxSize := int(atomic.LoadUint64(&p.maxSize))
	if maxSize == 0 || cap(b.Buf) <= maxSize {
		b.Reset()
		p.pool.Put(b)
	}
}

// DefaultSize 返回当前校准出的默认容量。
func (p *Pool) DefaultSize() int {
	return int(atomic.LoadUint64(&p.defaultSize))
}

// MaxSize 返回当前校准出的最大可回收容量，0 表示尚未校准。
func (p *Pool) MaxSize() int {
	return int(atomic.LoadUint64(&p.maxSize))
}

func (p *Pool) calibrate() {
	if !atomic.CompareAndSwapUint64(&p.calibrating, 0, 1) {
		return
	}

	a := make(callSizes, 0, steps)
	var callsSum uint64
	for i := uint64(0); i < steps; i++ {
		calls := atomic.SwapUint64(&p.calls[i], 0)
		callsSum += calls
		a = append(a, callSize{
			calls: calls,
			size:  minSize << i,
		})
	}
	sort.Sort(a)

	defaultSize := a[0].size
	maxSize := defaultSize

	maxSum := uint64(float64(callsSum) * maxPercentile)
	callsSum = 0
	for i := 0; i < steps; i++ {
		if callsSum > maxSum {
			break
		}
		callsSum += a[i].calls
		size := a[i].size
		if size > maxSize {
			maxSize = size
		}
	}

	atomic.StoreUint64(&p.defaultSize, defaultSize)
	atomic.StoreUint64(&p.maxSize, maxSize)

	atomic.StoreUint64(&p.calibrating, 0)
}

type callSize struct {
	calls uint64
	size  uint64
}

type callSizes []callSize

func (ci callSizes) Len() int {
	return len(ci)
}

func (ci callSizes) Less(i, j int) bool {
	return ci[i].calls > ci[j].calls
}

func (ci callSizes) Swap(i, j int) {
	ci[i], ci[j] = ci[j], ci[i]
}

func index(n int) int {
	n--
	n >>= minBitSize
	idx := 0
	if n > 0 {
		idx = bits.Len(uint(n))
	}
	if idx >= steps {
		idx = steps - 1
	}
	return idx
}
