package core

import "strings"

// Category 是商品所属的服饰品类。
// 搭配结构（上装/下装/鞋）以品类为基本单元组织。
type Category string

const (
	CategoryTop       Category = "top"       // 上装
	CategoryBottom    Category = "bottom"    // 下装
	CategoryFootwear  Category = "footwear"  // 鞋
	CategoryOuterwear Category = "outerwear" // 外套
	CategoryAccessory Category = "accessory" // 配饰
	CategoryDress     Category = "dress"     // 连衣裙（可替代 top+bottom）
	CategoryJumpsuit  Category = "jumpsuit"  // 连体裤（可替代 top+bottom）
	CategoryOther     Category = "other"     // 未识别品类
)

// ParseCategory 将自由文本归一化为 Category，无法识别时返回 CategoryOther。
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "tops", "shirt", "blouse", "sweater", "t-shirt", "tshirt", "knitwear":
		return CategoryTop
	case "bottom", "bottoms", "pants", "trousers", "jeans", "skirt", "shorts":
		return CategoryBottom
	case "footwear", "shoes", "shoe", "sneakers", "boots", "heels":
		return CategoryFootwear
	case "outerwear", "jacket", "coat", "blazer", "cardigan":
		return CategoryOuterwear
	case "accessory", "accessories", "bag", "belt", "scarf", "jewelry", "hat":
		return CategoryAccessory
	case "dress", "dresses":
		return CategoryDress
	case "jumpsuit", "jumpsuits", "playsuit":
		return CategoryJumpsuit
	default:
		return CategoryOther
	}
}

// SubstituteFor 返回该品类可替代的品类组合。
// 连衣裙/连体裤是一件顶两件的单品，可同时占住 top 与 bottom 槽位。
func (c Category) SubstituteFor() []Category {
	switch c {
	case CategoryDress, CategoryJumpsuit:
		return []Category{CategoryTop, CategoryBottom}
	default:
		return nil
	}
}

// Product 是商品目录中的一件单品。
//
// 引擎只读 Product：目录数据由宿主通过 CatalogProvider 提供，
// 缺失字段按"软降级"处理（无色彩 → 中性分，无季节 → 中性分），不报错。
type Product struct {
	ID       string
	Name     string
	Brand    string
	Price    float64
	Currency string

	// Category 主品类；Categories 保留原始多品类标注（主品类取第一个可识别的）
	Category   Category
	Categories []string

	Colors    []string // 自由文本色名（如 "navy blue"）
	StyleTags []string // 风格标签（如 "casual", "minimalist"）
	Seasons   []Season // 适用季节，空表示未标注
	Occasions []string // 适用场合（如 "work", "casual"）

	Gender  string // male / female / unisex / 空（空视为 unisex）
	InStock bool
	Rating  float64 // 0-5，0 表示无评分
}

// HasSeason 判断商品是否适用于指定季节（含 all-season）。
// 未标注季节返回 false，由调用方决定软降级策略。
func (p *Product) HasSeason(s Season) bool {
	for _, ps := range p.Seasons {
		if ps == s || ps == SeasonAll {
			return true
		}
	}
	return false
}

// HasStyleTag 判断商品是否带有指定风格标签（大小写不敏感）。
func (p *Product) HasStyleTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range p.StyleTags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// FitsGender 判断商品是否适用于指定性别。
// 商品或用户任一侧未标注（或 unisex）时视为适用。
func (p *Product) FitsGender(gender string) bool {
	if gender == "" || p.Gender == "" {
		return true
	}
	pg := strings.ToLower(p.Gender)
	if pg == "unisex" {
		return true
	}
	return pg == strings.ToLower(gender)
}
