// Package outfitkit 是一个穿搭推荐引擎工具包（Outfit Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 候选商品经 Node 链加工（Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 组合在后: Composer 消费排好序的候选集，按原型结构蓝图组装成套并评分
// - 反馈闭环: 反馈事件驱动自适应权重与协同过滤，软降级绝不阻断推荐
package outfitkit

import "github.com/rushteam/outfitkit/pipeline"

// 轻量 facade：便于用户直接 import "outfitkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
