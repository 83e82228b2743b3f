package core

import "time"

// UserProfile 是用户风格画像的核心抽象。
//
// 一句话定义：风格画像 = 搭配 Pipeline 的"全局上下文 + 决策信号"
//
// 它不是某一个 Node，而是：
//   - 被所有 Node 共享
//   - 驱动原型识别 / 召回 / 过滤 / 评分
//   - 可以被反馈回写、持续演进（自适应权重）
//
// 设计要点：
//
//	维度          作用
//	静态属性      基础过滤（性别/预算）
//	风格偏好      原型识别核心输入
//	色彩画像      色彩和谐评估
//	行为历史      协同过滤 / 自适应权重
type UserProfile struct {
	UserID string

	// 静态属性（基础过滤）
	Gender    string  // male / female / 空（不过滤）
	BudgetMin float64 // 单品预算下限，0 表示不限
	BudgetMax float64 // 单品预算上限，0 表示不限

	// 风格偏好（原型识别核心）
	// key: 风格类别（casual / formal / sporty / vintage / minimalist）
	// value: 权重 0-100
	StylePreferences map[string]float64

	// 色彩画像
	Undertone    string   // warm / cool / neutral
	ColorPalette []string // 偏好色名

	// 场合
	Occasions []string // 如 "work", "casual", "evening"

	// 行为历史（协同过滤 / 排除）
	LikedProducts    []string // 喜欢过的商品 ID
	DislikedProducts []string // 不喜欢的商品 ID（硬排除）
	SeenProducts     []string // 已曝光/已购商品 ID（协同过滤排除）

	// 元数据
	UpdateTime time.Time // 最后更新时间
}

// NewUserProfile 创建一个新的风格画像。
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:           userID,
		StylePreferences: make(map[string]float64),
		ColorPalette:     make([]string, 0),
		Occasions:        make([]string, 0),
		UpdateTime:       time.Now(),
	}
}

// SetStylePreference 更新风格偏好权重（0-100，越界截断）。
func (p *UserProfile) SetStylePreference(category string, weight float64) {
	if p.StylePreferences == nil {
		p.StylePreferences = make(map[string]float64)
	}
	if weight < 0 {
		weight = 0
	}
	if weight > 100 {
		weight = 100
	}
	p.StylePreferences[category] = weight
	p.UpdateTime = time.Now()
}

// StyleWeight 获取风格偏好权重，未设置返回 0。
func (p *UserProfile) StyleWeight(category string) float64 {
	if p.StylePreferences == nil {
		return 0
	}
	return p.StylePreferences[category]
}

// HasStyleData 判断画像是否携带任何非零风格偏好。
// 全空时原型识别走中性默认画像。
func (p *UserProfile) HasStyleData() bool {
	for _, w := range p.StylePreferences {
		if w > 0 {
			return true
		}
	}
	return false
}

// IsExcluded 判断商品是否被用户硬排除（不喜欢列表）。
func (p *UserProfile) IsExcluded(productID string) bool {
	for _, id := range p.DislikedProducts {
		if id == productID {
			return true
		}
	}
	return false
}

// HasSeen 判断商品是否出现在已曝光/已购历史里。
func (p *UserProfile) HasSeen(productID string) bool {
	for _, id := range p.SeenProducts {
		if id == productID {
			return true
		}
	}
	return false
}

// AddLiked 追加喜欢记录（去重，maxSize>0 时保留最近 maxSize 条）。
func (p *UserProfile) AddLiked(productID string, maxSize int) {
	for _, id := range p.LikedProducts {
		if id == productID {
			return
		}
	}
	p.LikedProducts = append(p.LikedProducts, productID)
	if maxSize > 0 && len(p.LikedProducts) > maxSize {
		p.LikedProducts = p.LikedProducts[len(p.LikedProducts)-maxSize:]
	}
	p.UpdateTime = time.Now()
}
