package mahjong

// RoundContext 单局状态，开局时创建，局结束时快照成 PlayerStats 后丢弃
// 跨局只保留未被领取的立直棒数
type RoundContext struct {
	info        RoundInfo
	playerCount int

	players      []PlayerStats         // 按座位的实时统计
	riichiSeats  []int                 // 按宣言顺序的立直座位
	kanLocked    map[TileType]struct{} // 本局已经提供过杠机会的牌
	openHands    map[int]struct{}      // 已副露的座位
	riichiSticks int                   // 场上立直棒（含上局遗留）
	totalTurns   int

	lastDiscarder int // 最近一次打牌的座位，荣和的放铳者
	robbedKanSeat int // 紧接着的荣和为抢杠时的放铳者，-1 表示无
}

func newRoundContext(e *RoundStart, playerCount, carriedSticks int, calc ShantenCalculator) *RoundContext {
	rc := &RoundContext{
		info: RoundInfo{
			RoundWind:   e.RoundWind,
			DealerSeat:  e.DealerSeat,
			RepeatCount: e.RepeatCount,
		},
		playerCount:   playerCount,
		players:       make([]PlayerStats, playerCount),
		riichiSeats:   make([]int, 0, playerCount),
		kanLocked:     make(map[TileType]struct{}),
		openHands:     make(map[int]struct{}),
		riichiSticks:  carriedSticks,
		lastDiscarder: -1,
		robbedKanSeat: -1,
	}
	for seat := 0; seat < playerCount; seat++ {
		rc.players[seat].StartingShanten = calc.Shanten(e.Hands[seat])
	}
	return rc
}

func (rc *RoundContext) Info() RoundInfo { return rc.info }

func (rc *RoundContext) RiichiSticks() int { return rc.riichiSticks }

func (rc *RoundContext) TotalTurns() int { return rc.totalTurns }

// LastDiscarder 当前可以被鸣牌或荣和的打牌者，-1 表示没有
func (rc *RoundContext) LastDiscarder() int { return rc.lastDiscarder }

// discard 打牌：记录放铳者，处理立直宣言，结算鸣牌机会
func (rc *RoundContext) discard(e *Discard, next Event) {
	rc.lastDiscarder = e.Seat
	rc.robbedKanSeat = -1

	p := &rc.players[e.Seat]
	if e.declaresRiichi() && p.FinalHandState.Kind != HandRiichi {
		p.FinalHandState = p.FinalHandState.DeclareRiichi(RiichiDeclaration{
			Index:   len(rc.riichiSeats),
			Furiten: seatFlag(e.Furiten, e.Seat),
			Double:  e.DoubleRiichi,
			Turn:    p.Turns,
		})
		rc.riichiSeats = append(rc.riichiSeats, e.Seat)
		rc.riichiSticks++
	}

	for _, seat := range creditedCallers(e.Options, next) {
		rc.players[seat].Calls.Opportunities++
	}
}

// creditedCallers 一张打牌给哪些座位记一次鸣牌机会
//   - 下一个事件是和了：荣和优先于一切鸣牌，不记
//   - 下一个事件是鸣牌：只记实际鸣牌的座位，被碰/杠抢先的吃家不记
//   - 否则：所有有鸣牌资格的座位都记（只能荣和的不算）
func creditedCallers(options []CallOption, next Event) []int {
	if _, ok := next.(*Win); ok {
		return nil
	}
	eligible := make([]int, 0, len(options))
	for _, o := range options {
		if o.canCall() {
			eligible = append(eligible, o.Seat)
		}
	}
	call, ok := next.(*Call)
	if !ok {
		return eligible
	}
	for _, seat := range eligible {
		if seat == call.Seat {
			return []int{seat}
		}
	}
	return nil
}

// selfDraw 摸牌：巡目，杠机会（同一种牌本局只记一次重复机会）
func (rc *RoundContext) selfDraw(e *SelfDraw) {
	rc.lastDiscarder = -1
	rc.robbedKanSeat = -1
	rc.totalTurns++

	p := &rc.players[e.Seat]
	p.Turns++
	for _, chance := range e.KanChances {
		p.Calls.Opportunities++
		p.Calls.Kans.Opportunities++
		if _, locked := rc.kanLocked[chance.Tile.Type]; locked {
			continue
		}
		rc.kanLocked[chance.Tile.Type] = struct{}{}
		p.Calls.RepeatOpportunities++
	}
}

// call 吃、碰、大明杠
func (rc *RoundContext) call(e *Call) {
	rc.lastDiscarder = -1
	rc.robbedKanSeat = -1
	rc.totalTurns++

	p := &rc.players[e.Seat]
	p.Calls.Total++
	p.Turns++
	if e.Kind == CallMinkan {
		p.Calls.Kans.Open++
	}
	if _, opened := rc.openHands[e.Seat]; !opened {
		rc.openHands[e.Seat] = struct{}{}
		p.FinalHandState = p.FinalHandState.Open()
	}
}

// kan 暗杠、加杠，宣言者成为可能的抢杠放铳者
func (rc *RoundContext) kan(e *ConcealedOrAddedKan) {
	p := &rc.players[e.Seat]
	p.Calls.Total++
	switch e.Kind {
	case KanConcealed:
		p.Calls.Kans.Concealed++
	case KanAdded:
		p.Calls.Kans.Added++
	}
	rc.robbedKanSeat = e.Seat
}

func (rc *RoundContext) abort() {
	rc.lastDiscarder = -1
	rc.robbedKanSeat = -1
}

// ronLoser 荣和的放铳者，抢杠时为杠的宣言者
func (rc *RoundContext) ronLoser() int {
	if rc.robbedKanSeat >= 0 {
		return rc.robbedKanSeat
	}
	return rc.lastDiscarder
}

// snapshot 拷贝当前的统计，之后对 RoundContext 的修改不影响快照
func (rc *RoundContext) snapshot() []PlayerStats {
	out := make([]PlayerStats, len(rc.players))
	for i, p := range rc.players {
		out[i] = p
		if p.FinalHandState.Riichi != nil {
			d := *p.FinalHandState.Riichi
			out[i].FinalHandState.Riichi = &d
		}
	}
	return out
}

func seatFlag(flags []bool, seat int) bool {
	return seat >= 0 && seat < len(flags) && flags[seat]
}
