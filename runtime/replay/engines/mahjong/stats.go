package mahjong

// HandKind 手牌状态
type HandKind int

const (
	HandClosed HandKind = iota // 门清
	HandOpen                   // 副露
	HandRiichi                 // 立直
)

func (k HandKind) String() string {
	switch k {
	case HandClosed:
		return "closed"
	case HandOpen:
		return "open"
	case HandRiichi:
		return "riichi"
	default:
		return "unknown"
	}
}

// RiichiDeclaration 立直宣言，Index 为本局内的立直顺序（从 0 开始）
type RiichiDeclaration struct {
	Index   int  `json:"index" bson:"index"`
	Furiten bool `json:"furiten" bson:"furiten"`
	Double  bool `json:"double,omitempty" bson:"double,omitempty"`
	Turn    int  `json:"turn" bson:"turn"`
}

// HandState 一局内只能 门清->副露 或 门清/副露->立直，不会倒退
type HandState struct {
	Kind   HandKind           `json:"kind" bson:"kind"`
	Riichi *RiichiDeclaration `json:"riichi,omitempty" bson:"riichi,omitempty"`
}

// Open 鸣牌后的状态，已立直则保持不变
func (h HandState) Open() HandState {
	if h.Kind != HandClosed {
		return h
	}
	return HandState{Kind: HandOpen}
}

// DeclareRiichi 立直后的状态，重复宣言保持首次宣言
func (h HandState) DeclareRiichi(d RiichiDeclaration) HandState {
	if h.Kind == HandRiichi {
		return h
	}
	return HandState{Kind: HandRiichi, Riichi: &d}
}

// KanBreakdown 杠的细分统计
type KanBreakdown struct {
	Concealed     int `json:"concealed" bson:"concealed"`
	Open          int `json:"open" bson:"open"`
	Added         int `json:"added" bson:"added"`
	Opportunities int `json:"opportunities" bson:"opportunities"`
}

// CallStats 单局内单个座位的鸣牌统计
type CallStats struct {
	Total               int          `json:"total" bson:"total"`
	Opportunities       int          `json:"opportunities" bson:"opportunities"`
	RepeatOpportunities int          `json:"repeatOpportunities" bson:"repeat_opportunities"`
	Kans                KanBreakdown `json:"kans" bson:"kans"`
}

func (c CallStats) add(o CallStats) CallStats {
	return CallStats{
		Total:               c.Total + o.Total,
		Opportunities:       c.Opportunities + o.Opportunities,
		RepeatOpportunities: c.RepeatOpportunities + o.RepeatOpportunities,
		Kans: KanBreakdown{
			Concealed:     c.Kans.Concealed + o.Kans.Concealed,
			Open:          c.Kans.Open + o.Kans.Open,
			Added:         c.Kans.Added + o.Kans.Added,
			Opportunities: c.Kans.Opportunities + o.Kans.Opportunities,
		},
	}
}

// PlayerStats 单局结束时某个座位的统计快照
type PlayerStats struct {
	StartingShanten int       `json:"startingShanten" bson:"starting_shanten"`
	Calls           CallStats `json:"calls" bson:"calls"`
	FinalHandState  HandState `json:"finalHandState" bson:"final_hand_state"`
	Turns           int       `json:"turns" bson:"turns"`
}

// PlayerTotals 跨局汇总（由下游在不可变的 RoundResult 列表上计算）
type PlayerTotals struct {
	Rounds        int       `json:"rounds" bson:"rounds"`
	ShantenSum    int       `json:"shantenSum" bson:"shanten_sum"`
	Calls         CallStats `json:"calls" bson:"calls"`
	RiichiCount   int       `json:"riichiCount" bson:"riichi_count"`
	OpenHandCount int       `json:"openHandCount" bson:"open_hand_count"`
	Turns         int       `json:"turns" bson:"turns"`
}

// SumPlayerStats 按座位汇总所有局的统计
func SumPlayerStats(rounds []RoundResult, playerCount int) []PlayerTotals {
	totals := make([]PlayerTotals, playerCount)
	for _, r := range rounds {
		for seat := 0; seat < playerCount && seat < len(r.PlayerStats); seat++ {
			totals[seat] = accumulate(totals[seat], r.PlayerStats[seat])
		}
	}
	return totals
}

func accumulate(t PlayerTotals, s PlayerStats) PlayerTotals {
	t.Rounds++
	t.ShantenSum += s.StartingShanten
	t.Calls = t.Calls.add(s.Calls)
	t.Turns += s.Turns
	switch s.FinalHandState.Kind {
	case HandRiichi:
		t.RiichiCount++
	case HandOpen:
		t.OpenHandCount++
	}
	return t
}
