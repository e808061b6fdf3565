package router

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lk2023060901/danmu-tl-go/internal/network"
	"github.com/lk2023060901/danmu-tl-go/internal/network/codec"
	"github.com/lk2023060901/danmu-tl-go/pkg/log"
	"github.com/lk2023060901/danmu-tl-go/pkg/metrics"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/typeutil"
)

const (
	unknownRateGroup    = "tl.router.unknown"
	unknownCreditPerSec = 1.0
	unknownMaxBalance   = 60.0

	ignoredLabel = "ignored"
	unknownLabel = "unknown"
)

// Handler 是业务层处理单个已解码对象的函数。
type Handler func(ctx context.Context, obj tl.Object) error

// Options 控制 Router 对异常负载的处理方式。
type Options struct {
	// TolerateUnknown 为 true 时，未知构造器只记录限流告警并被丢弃；否则作为错误返回。
	TolerateUnknown bool
}

// Router 维护构造器 ID 到 Handler 的映射，负责从负载字节到业务 Handler 的调度。
//
// 典型调用链：
//  1. 上层收到一个 TL 负载；
//  2. 调用 Router.Handle(ctx, payload)；
//  3. Router 通过 Codec 解码出对象，按其构造器 ID 找到 Handler 并调用。
type Router interface {
	log.WithLogger
	log.LoggerBinder

	// Register 为构造器 id 注册 Handler。
	//
	// id 必须已在注册表中登记，同一 id 不允许重复注册。
	// Register 应在开始处理负载之前完成。
	Register(id uint32, h Handler) error

	// Ignore 将 ids 标记为忽略，匹配的对象被静默丢弃，可在运行期调用。
	Ignore(ids ...uint32)

	// Handle 解码 payload 并分发。
	Handle(ctx context.Context, payload []byte) error

	// Dispatch 分发一个已解码的对象。
	Dispatch(ctx context.Context, obj tl.Object) error

	// Routes 返回已注册的构造器 ID，按升序排列。
	Routes() []uint32
}

type defaultRouter struct {
	log.Binder

	codec   codec.Codec
	reg     *tl.Registry
	routes  map[uint32]Handler
	ignored *typeutil.ConcurrentSet[uint32]
	opts    Options
	rated   *log.MLogger
}

// 编译期断言：确保 defaultRouter 实现了 Router 接口。
var _ Router = (*defaultRouter)(nil)

// New 创建一个基于 c 解码、以 reg 校验构造器 ID 的 Router。
func New(c codec.Codec, reg *tl.Registry, opts Options) Router {
	r := &defaultRouter{
		codec:   c,
		reg:     reg,
		routes:  make(map[uint32]Handler),
		ignored: typeutil.NewConcurrentSet[uint32](),
		opts:    opts,
	}
	r.SetLogger(log.With(log.FieldComponent("tl-router")))
	r.rated = r.Logger().WithRateGroup(unknownRateGroup, unknownCreditPerSec, unknownMaxBalance)
	return r
}

// Register 实现 Router.Register。
func (r *defaultRouter) Register(id uint32, h Handler) error {
	if h == nil {
		return merr.WrapErrParameterMissing("handler", "constructor "+merr.FormatID(id))
	}
	if _, ok := r.reg.Lookup(id); !ok {
		return merr.WrapErrUnknownConstructor(id, "register route")
	}
	if _, exists := r.routes[id]; exists {
		return merr.WrapErrRouteDuplicated(id)
	}
	r.routes[id] = h
	return nil
}

// Ignore 实现 Router.Ignore。
func (r *defaultRouter) Ignore(ids ...uint32) {
	r.ignored.Upsert(ids...)
}

// Handle 实现 Router.Handle。
func (r *defaultRouter) Handle(ctx context.Context, payload []byte) error {
	obj, err := r.codec.Decode(payload)
	if err != nil {
		if r.opts.TolerateUnknown && errors.Is(err, merr.ErrUnknownConstructor) {
			metrics.RouterDispatchTotal.WithLabelValues(unknownLabel).Inc()
			r.rated.RatedWarn(1, "drop payload with unknown constructor", zap.Int("size", len(payload)), zap.Error(err))
			return nil
		}
		metrics.RouterDispatchTotal.WithLabelValues(metrics.FailLabel).Inc()
		return network.WithStage(network.StageDecode, err)
	}
	return r.Dispatch(ctx, obj)
}

// Dispatch 实现 Router.Dispatch。
func (r *defaultRouter) Dispatch(ctx context.Context, obj tl.Object) error {
	if tl.IsNil(obj) {
		return merr.WrapErrParameterMissing("object", "dispatch")
	}
	id := obj.TypeID()
	if r.ignored.Contain(id) {
		metrics.RouterDispatchTotal.WithLabelValues(ignoredLabel).Inc()
		return nil
	}

	h, ok := r.routes[id]
	if !ok {
		metrics.RouterDispatchTotal.WithLabelValues(metrics.FailLabel).Inc()
		return network.WithStage(network.StageDispatch, merr.WrapErrRouteNotFound(id, obj.TypeName()))
	}

	if err := h(log.WithConstructor(ctx, id), obj); err != nil {
		metrics.RouterDispatchTotal.WithLabelValues(metrics.FailLabel).Inc()
		log.Ctx(ctx).Debug("handler failed", log.FieldConstructor(id), log.FieldTypeName(obj.TypeName()), zap.Error(err))
		return network.WithStage(network.StageDispatch, err)
	}
	metrics.RouterDispatchTotal.WithLabelValues(metrics.SuccessLabel).Inc()
	return nil
}

// Routes 实现 Router.Routes。
func (r *defaultRouter) Routes() []uint32 {
	ids := lo.Keys(r.routes)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
