package mahjong

// RoundInfo 一局的标识，开局后不再变化
type RoundInfo struct {
	RoundWind   Wind `json:"roundWind" bson:"round_wind"`
	DealerSeat  int  `json:"dealerSeat" bson:"dealer_seat"`
	RepeatCount int  `json:"repeatCount" bson:"repeat_count"`
}

// AgariInfo 和了信息，HanCount、Fu、Yakuman 照搬牌谱记录
type AgariInfo struct {
	Value      int   `json:"value" bson:"value"`
	Extras     int   `json:"extras" bson:"extras"`
	WinnerSeat int   `json:"winnerSeat" bson:"winner_seat"`
	HanList    []int `json:"han" bson:"han"`
	HanCount   int   `json:"hanCount" bson:"han_count"`
	Fu         int   `json:"fu" bson:"fu"`
	Yakuman    bool  `json:"yakuman,omitempty" bson:"yakuman,omitempty"`
}

type DrawStatus int

const (
	DrawNoten DrawStatus = iota
	DrawTenpai
	DrawNagashiMangan
)

func (s DrawStatus) String() string {
	switch s {
	case DrawNoten:
		return "noten"
	case DrawTenpai:
		return "tenpai"
	case DrawNagashiMangan:
		return "nagashi_mangan"
	default:
		return "unknown"
	}
}

type DrawOutcome struct {
	PlayerDrawStatus []DrawStatus `json:"playerDrawStatus" bson:"player_draw_status"`
}

type TsumoOutcome struct {
	AgariInfo     `bson:",inline"`
	DealerPayment int `json:"dealerPayment" bson:"dealer_payment"`
}

type RonOutcome struct {
	AgariInfo `bson:",inline"`
	LoserSeat int `json:"loserSeat" bson:"loser_seat"`
}

type OutcomeKind int

const (
	OutcomeDraw OutcomeKind = iota
	OutcomeTsumo
	OutcomeRon
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDraw:
		return "draw"
	case OutcomeTsumo:
		return "tsumo"
	case OutcomeRon:
		return "ron"
	default:
		return "unknown"
	}
}

// Outcome 一局的结果，Draw/Tsumo/Rons 三者恰有一个非空，由构造函数保证
type Outcome struct {
	Kind  OutcomeKind   `json:"kind" bson:"kind"`
	Draw  *DrawOutcome  `json:"draw,omitempty" bson:"draw,omitempty"`
	Tsumo *TsumoOutcome `json:"tsumo,omitempty" bson:"tsumo,omitempty"`
	Rons  []RonOutcome  `json:"rons,omitempty" bson:"rons,omitempty"`
}

func NewDrawOutcome(status []DrawStatus) Outcome {
	return Outcome{Kind: OutcomeDraw, Draw: &DrawOutcome{PlayerDrawStatus: status}}
}

func NewTsumoOutcome(t TsumoOutcome) Outcome {
	return Outcome{Kind: OutcomeTsumo, Tsumo: &t}
}

func NewRonOutcome(rons []RonOutcome) Outcome {
	return Outcome{Kind: OutcomeRon, Rons: rons}
}

// RoundResult 一局的不可变结果
type RoundResult struct {
	Round        RoundInfo     `json:"round" bson:"round"`
	Outcome      Outcome       `json:"outcome" bson:"outcome"`
	PlayerStats  []PlayerStats `json:"playerStats" bson:"player_stats"`
	RiichiSticks int           `json:"riichiSticks" bson:"riichi_sticks"`
	TotalTurns   int           `json:"totalTurns" bson:"total_turns"`
}

// Winners 和了者座位，流局为空
func (r RoundResult) Winners() []int {
	switch r.Outcome.Kind {
	case OutcomeTsumo:
		return []int{r.Outcome.Tsumo.WinnerSeat}
	case OutcomeRon:
		seats := make([]int, 0, len(r.Outcome.Rons))
		for _, ron := range r.Outcome.Rons {
			seats = append(seats, ron.WinnerSeat)
		}
		return seats
	default:
		return nil
	}
}

// Replay 一整场牌谱的回放结果
type Replay struct {
	Rounds          []RoundResult `json:"rounds"`
	MaxDealerStreak int           `json:"maxDealerStreak"`
}
