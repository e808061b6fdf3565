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

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	codecMetricSubsystem  = "codec"
	routerMetricSubsystem = "router"
)

var (
	CodecMetricsRegisterOnce sync.Once

	// CodecObjectTotal 统计对象级编解码次数。
	CodecObjectTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: tlNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "object_total",
		Help:      "按操作与结果统计的 TL 对象编解码次数",
	}, []string{operationLabelName, statusLabelName})

	// CodecUnknownConstructorTotal 统计遇到未知构造器 ID 的次数。
	// ID 不作为标签，避免恶意输入导致标签基数失控。
	CodecUnknownConstructorTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: tlNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "unknown_constructor_total",
		Help:      "解码过程中遇到的未知构造器 ID 次数",
	})

	CodecGzipPackedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: tlNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "gzip_packed_total",
		Help:      "解包 gzip_packed 外层的次数",
	})

	CodecPayloadBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: tlNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "payload_bytes",
		Help:      "单个报文的字节数",
		Buckets:   sizeBuckets,
	}, []string{directionLabelName})

	CodecLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: tlNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "latency_us",
		Help:      "单个报文编解码耗时，单位微秒",
		Buckets:   buckets,
	}, []string{operationLabelName})

	RouterDispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: tlNamespace,
		Subsystem: routerMetricSubsystem,
		Name:      "dispatch_total",
		Help:      "按结果统计的按构造器 ID 分发次数",
	}, []string{statusLabelName})
)

// RegisterCodecMetrics 将编解码相关的指标注册到 Prometheus Registerer 中。
func RegisterCodecMetrics(registry prometheus.Registerer) {
	CodecMetricsRegisterOnce.Do(func() {
		registry.MustRegister(CodecObjectTotal)
		registry.MustRegister(CodecUnknownConstructorTotal)
		registry.MustRegister(CodecGzipPackedTotal)
		registry.MustRegister(CodecPayloadBytes)
		registry.MustRegister(CodecLatency)
		registry.MustRegister(RouterDispatchTotal)
	})
}
