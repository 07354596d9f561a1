package book

import "time"

// MinStar/MaxStar 合法星级范围
const (
	MinStar = 1
	MaxStar = 5
)

// RatingCounters 1-5星的计数,下标0对应1星
// 数据库中的NULL在转换时已归一为0
type RatingCounters [5]int64

// Rating 一本书的评分聚合状态
// 不变式: Count == Σ Counters, Count > 0 时 Avg == Σ k·Counters[k-1] / Count
type Rating struct {
	Counters RatingCounters
	Count    int64
	// Avg 在Count为0时为nil
	Avg *float64
}

// ValidateStar 星级必须是1-5的整数
func ValidateStar(star int) error {
	if star < MinStar || star > MaxStar {
		return ErrInvalidStar
	}
	return nil
}

// Sum 所有星级计数之和
func (c RatingCounters) Sum() int64 {
	var sum int64
	for _, n := range c {
		sum += n
	}
	return sum
}

// Apply 返回star对应计数加1后的新计数,原值不变
func (c RatingCounters) Apply(star int) RatingCounters {
	c[star-1]++
	return c
}

// Aggregate 由计数重新推导总数和加权平均(float64,不截断)
func (c RatingCounters) Aggregate() Rating {
	count := c.Sum()
	r := Rating{Counters: c, Count: count}
	if count == 0 {
		return r
	}

	var weighted int64
	for i, n := range c {
		weighted += int64(i+1) * n
	}
	avg := float64(weighted) / float64(count)
	r.Avg = &avg
	return r
}

// ApplyStar 校验星级并计算新的评分聚合
func ApplyStar(c RatingCounters, star int) (Rating, error) {
	if err := ValidateStar(star); err != nil {
		return Rating{}, err
	}
	return c.Apply(star).Aggregate(), nil
}

// AverageValue Avg为nil时返回0
func (r Rating) AverageValue() float64 {
	if r.Avg == nil {
		return 0
	}
	return *r.Avg
}

// RatedEvent 评分成功后发布的领域事件
type RatedEvent struct {
	ISBN13      string    `json:"isbn13"`
	Star        int       `json:"star"`
	RatingCount int64     `json:"rating_count"`
	RatingAvg   float64   `json:"rating_avg"`
	RatedAt     time.Time `json:"rated_at"`
}

// NewRatedEvent 由更新后的图书构造事件
func NewRatedEvent(b *Book, star int, at time.Time) RatedEvent {
	return RatedEvent{
		ISBN13:      b.ISBN13,
		Star:        star,
		RatingCount: b.Rating.Count,
		RatingAvg:   b.Rating.AverageValue(),
		RatedAt:     at,
	}
}
