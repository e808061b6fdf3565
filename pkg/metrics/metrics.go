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
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// tlNamespace 是当前项目所有 Prometheus 指标使用的命名空间。
	tlNamespace = "tl"

	// 以下为当前使用的通用标签名。
	statusLabelName    = "status"
	operationLabelName = "operation"
	directionLabelName = "direction"

	SuccessLabel = "success"
	FailLabel    = "fail"

	EncodeLabel = "encode"
	DecodeLabel = "decode"

	InboundLabel  = "inbound"
	OutboundLabel = "outbound"
)

var (
	// buckets 为耗时直方图的桶划分，单位为微秒。
	// 实际桶分布为：
	// [1 2 4 8 16 32 64 128 256 512 1024 2048 4096 8192 16384 32768]
	buckets = prometheus.ExponentialBuckets(1, 2, 16)

	// sizeBuckets 为报文大小的桶划分，单位为字节。
	sizeBuckets = []float64{16, 64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304, 16777216} // 单位：字节

	metricRegisterer prometheus.Registerer
)

// GetRegisterer 返回全局 Prometheus Registerer。
// 如果尚未通过 Register 显式设置，则返回 prometheus.DefaultRegisterer。
func GetRegisterer() prometheus.Registerer {
	if metricRegisterer == nil {
		return prometheus.DefaultRegisterer
	}
	return metricRegisterer
}

// Register 注册当前定义的所有指标。
// 通常应在进程启动时调用一次。
func Register(r prometheus.Registerer) {
	RegisterCodecMetrics(r)
	metricRegisterer = r
}
