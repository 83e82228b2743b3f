package learn

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rushteam/outfitkit/core"
)

// Collector 收集用户反馈事件。
//
// 设计原则：反馈写入失败绝不阻断推荐主链路，
// 调用方对 Collect 的错误只记日志、不上抛。
type Collector interface {
	Collect(ctx context.Context, ev *core.FeedbackEvent) error
	Close() error
}

const feedbackKeyPrefix = "learn:feedback:"

// MaxEventsPerUser 每个用户保留的反馈事件上限，超出后淘汰最旧的。
const MaxEventsPerUser = 500

// StoreCollector 把反馈事件持久化到 Store（每用户一个 JSON 事件列表），
// 同时作为 FeedbackReader 供权重重算读取。
type StoreCollector struct {
	Store core.Store

	// MaxEvents 每用户事件上限，0 时取 MaxEventsPerUser
	MaxEvents int

	mu     sync.Mutex
	Logger core.Logger
}

// NewStoreCollector 返回基于 Store 的反馈收集器。
func NewStoreCollector(store core.Store) *StoreCollector {
	return &StoreCollector{Store: store}
}

// Collect 追加一条反馈事件。
func (c *StoreCollector) Collect(ctx context.Context, ev *core.FeedbackEvent) error {
	if ev == nil || ev.UserID == "" {
		return core.NewDomainError(core.ModuleLearn, core.ErrorCodeInvalidInput, "feedback: missing user id")
	}

	// 读-改-写需要串行化；Store 本身只保证单 key 操作原子
	c.mu.Lock()
	defer c.mu.Unlock()

	events, err := c.events(ctx, ev.UserID)
	if err != nil {
		return err
	}
	events = append(events, ev)

	maxEvents := c.MaxEvents
	if maxEvents <= 0 {
		maxEvents = MaxEventsPerUser
	}
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.Store.Set(ctx, feedbackKeyPrefix+ev.UserID, data)
}

// Events 返回用户的反馈事件（最旧在前）。
func (c *StoreCollector) Events(ctx context.Context, userID string) ([]*core.FeedbackEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events(ctx, userID)
}

// FeedbackStats 聚合用户反馈为统计量（实现 FeedbackReader）。
func (c *StoreCollector) FeedbackStats(ctx context.Context, userID string) (*core.FeedbackStats, error) {
	events, err := c.Events(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildStats(events), nil
}

func (c *StoreCollector) Close() error { return nil }

func (c *StoreCollector) events(ctx context.Context, userID string) ([]*core.FeedbackEvent, error) {
	data, err := c.Store.Get(ctx, feedbackKeyPrefix+userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var events []*core.FeedbackEvent
	if err := json.Unmarshal(data, &events); err != nil {
		// 缓存损坏按空历史处理，新事件从头累积
		c.logger().Warnf("feedback: corrupt event log for %s: %v", userID, err)
		return nil, nil
	}
	return events, nil
}

func (c *StoreCollector) logger() core.Logger {
	if c.Logger == nil {
		return core.NopLogger{}
	}
	return c.Logger
}

var (
	_ Collector      = (*StoreCollector)(nil)
	_ FeedbackReader = (*StoreCollector)(nil)
)

// AsyncCollector 把反馈写入放到后台 goroutine，Collect 永不阻塞。
// 缓冲满时丢弃事件并记警告（反馈是尽力而为的信号，不是账本）。
type AsyncCollector struct {
	inner  Collector
	ch     chan *core.FeedbackEvent
	wg     sync.WaitGroup
	once   sync.Once
	Logger core.Logger
}

// NewAsyncCollector 包装一个收集器为异步版本，buffer ≤ 0 时取 256。
func NewAsyncCollector(inner Collector, buffer int) *AsyncCollector {
	if buffer <= 0 {
		buffer = 256
	}
	c := &AsyncCollector{
		inner: inner,
		ch:    make(chan *core.FeedbackEvent, buffer),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

func (c *AsyncCollector) run() {
	defer c.wg.Done()
	for ev := range c.ch {
		if err := c.inner.Collect(context.Background(), ev); err != nil {
			c.logger().Warnf("feedback: async collect failed: %v", err)
		}
	}
}

// Collect 投递事件；缓冲满时丢弃并返回 nil。
func (c *AsyncCollector) Collect(_ context.Context, ev *core.FeedbackEvent) error {
	if ev == nil {
		return nil
	}
	select {
	case c.ch <- ev:
	default:
		c.logger().Warnf("feedback: buffer full, dropping event for %s", ev.UserID)
	}
	return nil
}

// Close 停止接收并等待缓冲中的事件落盘。
func (c *AsyncCollector) Close() error {
	c.once.Do(func() {
		close(c.ch)
	})
	c.wg.Wait()
	return c.inner.Close()
}

func (c *AsyncCollector) logger() core.Logger {
	if c.Logger == nil {
		return core.NopLogger{}
	}
	return c.Logger
}

var _ Collector = (*AsyncCollector)(nil)
