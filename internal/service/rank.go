package service

// RankTier 段位，MinScore 为含下界：积分恰好等于阈值时已属于该段位
type RankTier struct {
	Name     string `json:"name"`
	MinScore int64  `json:"min_score"`
	Color    string `json:"color"`
}

// 段位表按阈值升序排列
var rankTiers = []RankTier{
	{Name: "Novice Chef", MinScore: 0, Color: "#8E8E93"},
	{Name: "Rising Star", MinScore: 500, Color: "#4CAF50"},
	{Name: "Seasoned Cook", MinScore: 1000, Color: "#F7931E"},
	{Name: "Master Chef", MinScore: 2000, Color: "#FF6B35"},
	{Name: "Culinary Legend", MinScore: 5000, Color: "#9C27B0"},
}

// RankInfo 当前段位、下一段位（顶级为 nil）和进度百分比
type RankInfo struct {
	Tier     RankTier  `json:"tier"`
	NextTier *RankTier `json:"next_tier,omitempty"`
	Progress int       `json:"progress"`
}

// RankOf 纯函数：总分到段位的映射
func RankOf(totalScore int64) RankInfo {
	if totalScore < 0 {
		totalScore = 0
	}

	idx := 0
	for i, t := range rankTiers {
		if totalScore >= t.MinScore {
			idx = i
		}
	}

	info := RankInfo{Tier: rankTiers[idx]}
	if idx == len(rankTiers)-1 {
		info.Progress = 100
		return info
	}

	next := rankTiers[idx+1]
	info.NextTier = &next
	p := totalScore * 100 / next.MinScore
	if p > 100 {
		p = 100
	}
	info.Progress = int(p)
	return info
}

// RankTiers 返回段位表的拷贝，给客户端展示用
func RankTiers() []RankTier {
	out := make([]RankTier, len(rankTiers))
	copy(out, rankTiers)
	return out
}
