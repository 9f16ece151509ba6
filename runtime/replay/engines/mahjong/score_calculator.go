package mahjong

// 宝牌类役的编号，按枚数展开
const (
	FanDora    = 31 // 宝牌
	FanAkaDora = 32 // 赤宝牌
	FanUraDora = 33 // 里宝牌
)

const (
	RiichiStickValue = 1000 // 立直棒
	HonbaValue       = 100  // 每个支付者每本场
)

// HandValue 和了的点数转移（不含立直棒），只依赖和了者、庄家座位、本场数和人数
//
//	(playerCount-1)*100*honba
//	+ 庄家自摸：(playerCount-1)*每家支付
//	+ 闲家自摸：庄家支付 + (playerCount-2)*闲家支付
//	+ 荣和：荣和点数
func HandValue(win WinInfo, dealerSeat, honba, playerCount int) int {
	value := (playerCount - 1) * HonbaValue * honba
	switch {
	case win.Tsumo && win.Seat == dealerSeat:
		value += (playerCount - 1) * win.PointPerNonDealer
	case win.Tsumo:
		value += win.PointFromDealer + (playerCount-2)*win.PointPerNonDealer
	default:
		value += win.PointRon
	}
	return value
}

// AgariRecord 把和了者的点数变化拆成 value（和了点数）与 extras（供托等其余收入）
// value + extras + (立直则 1000) == delta
func AgariRecord(win WinInfo, delta int, round RoundInfo, playerCount int) AgariInfo {
	value := HandValue(win, round.DealerSeat, round.RepeatCount, playerCount)
	returned := 0
	if win.Riichi {
		returned = RiichiStickValue
	}
	return AgariInfo{
		Value:      value,
		Extras:     delta - value - returned,
		WinnerSeat: win.Seat,
		HanList:    ExpandHan(win.Fans),
		HanCount:   win.Han,
		Fu:         win.Fu,
		Yakuman:    win.Yakuman,
	}
}

// ExpandHan 宝牌、赤宝牌、里宝牌每枚记一次，其余役不论番数只记一次
func ExpandHan(fans []Fan) []int {
	out := make([]int, 0, len(fans))
	for _, f := range fans {
		switch f.ID {
		case FanDora, FanAkaDora, FanUraDora:
			for i := 0; i < f.Value; i++ {
				out = append(out, f.ID)
			}
		default:
			out = append(out, f.ID)
		}
	}
	return out
}

// ReconstructDelta value/extras 还原成牌谱上的点数变化
func (a AgariInfo) ReconstructDelta(riichi bool) int {
	d := a.Value + a.Extras
	if riichi {
		d += RiichiStickValue
	}
	return d
}
