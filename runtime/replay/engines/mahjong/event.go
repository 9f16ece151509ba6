package mahjong

// Event 已解码的牌谱事件，封闭的标签联合：只有本包内的类型可以实现
// 处理器通过 eventVisitor 分派，新增事件类型时若未实现对应的处理方法会直接编译失败
type Event interface {
	EventType() string
	accept(v eventVisitor, next Event) error
}

type eventVisitor interface {
	visitRoundStart(e *RoundStart) error
	visitDiscard(e *Discard, next Event) error
	visitSelfDraw(e *SelfDraw) error
	visitCall(e *Call) error
	visitKan(e *ConcealedOrAddedKan) error
	visitAbortiveDraw(e *AbortiveDraw) error
	visitExhaustiveDraw(e *ExhaustiveDraw) error
	visitWin(e *Win) error
	visitUnknown(e *UnknownEvent) error
}

const (
	EventRoundStart     = "RoundStart"
	EventDiscard        = "Discard"
	EventSelfDraw       = "SelfDraw"
	EventCall           = "Call"
	EventKan            = "ConcealedOrAddedKan"
	EventAbortiveDraw   = "AbortiveDraw"
	EventExhaustiveDraw = "ExhaustiveDraw"
	EventWin            = "Win"
)

// CallKind 鸣牌种类，数值越大优先级越高（荣和单独处理）
type CallKind int

const (
	CallChi CallKind = iota
	CallPon
	CallMinkan
	CallRon
)

func (k CallKind) String() string {
	switch k {
	case CallChi:
		return "chi"
	case CallPon:
		return "pon"
	case CallMinkan:
		return "minkan"
	case CallRon:
		return "ron"
	default:
		return "unknown"
	}
}

// KanKind 杠的种类
type KanKind int

const (
	KanConcealed KanKind = iota // 暗杠
	KanAdded                    // 加杠
	KanOpen                     // 大明杠
)

func (k KanKind) String() string {
	switch k {
	case KanConcealed:
		return "ankan"
	case KanAdded:
		return "kakan"
	case KanOpen:
		return "minkan"
	default:
		return "unknown"
	}
}

// RoundStart 开局：场风、庄家、本场与配牌
type RoundStart struct {
	RoundWind   Wind
	DealerSeat  int
	RepeatCount int      // 本场数
	Hands       [][]Tile // 按座位的配牌，庄家 14 张
}

func (e *RoundStart) EventType() string { return EventRoundStart }

func (e *RoundStart) accept(v eventVisitor, _ Event) error { return v.visitRoundStart(e) }

// CallOption 某个座位对一张打牌可以进行的操作
type CallOption struct {
	Seat  int
	Kinds []CallKind
}

// canCall 是否有荣和以外的鸣牌资格
func (o CallOption) canCall() bool {
	for _, k := range o.Kinds {
		if k != CallRon {
			return true
		}
	}
	return false
}

// Discard 打牌
type Discard struct {
	Seat         int
	Tile         Tile
	Riichi       bool
	DoubleRiichi bool
	Furiten      []bool // 按座位的振听标记
	Options      []CallOption
}

func (e *Discard) EventType() string { return EventDiscard }

func (e *Discard) accept(v eventVisitor, next Event) error { return v.visitDiscard(e, next) }

func (e *Discard) declaresRiichi() bool { return e.Riichi || e.DoubleRiichi }

// KanChance 摸牌后可以进行的暗杠/加杠
type KanChance struct {
	Kind KanKind
	Tile Tile
}

// SelfDraw 摸牌
type SelfDraw struct {
	Seat       int
	Tile       Tile
	KanChances []KanChance
}

func (e *SelfDraw) EventType() string { return EventSelfDraw }

func (e *SelfDraw) accept(v eventVisitor, _ Event) error { return v.visitSelfDraw(e) }

// Call 吃、碰、大明杠
type Call struct {
	Seat  int
	Kind  CallKind
	Tiles []Tile
	From  int
}

func (e *Call) EventType() string { return EventCall }

func (e *Call) accept(v eventVisitor, _ Event) error { return v.visitCall(e) }

// ConcealedOrAddedKan 暗杠或加杠
type ConcealedOrAddedKan struct {
	Seat int
	Kind KanKind
	Tile Tile
}

func (e *ConcealedOrAddedKan) EventType() string { return EventKan }

func (e *ConcealedOrAddedKan) accept(v eventVisitor, _ Event) error { return v.visitKan(e) }

// AbortiveDraw 途中流局（九种九牌、四风连打、四杠散了等），该局不产生结果
type AbortiveDraw struct {
	Reason string
	Seat   int
}

func (e *AbortiveDraw) EventType() string { return EventAbortiveDraw }

func (e *AbortiveDraw) accept(v eventVisitor, _ Event) error { return v.visitAbortiveDraw(e) }

// DrawPlayer 荒牌流局时单个座位的听牌情况
type DrawPlayer struct {
	Tenpai bool
}

// ExhaustiveDraw 荒牌流局
// ManganAtDraw 为流局满贯标记，ManganSeats 是满足条件的座位
type ExhaustiveDraw struct {
	Players      []DrawPlayer
	ManganAtDraw bool
	ManganSeats  []int
	DeltaScores  []int
}

func (e *ExhaustiveDraw) EventType() string { return EventExhaustiveDraw }

func (e *ExhaustiveDraw) accept(v eventVisitor, _ Event) error { return v.visitExhaustiveDraw(e) }

func (e *ExhaustiveDraw) isManganSeat(seat int) bool {
	if !e.ManganAtDraw {
		return false
	}
	for _, s := range e.ManganSeats {
		if s == seat {
			return true
		}
	}
	return false
}

// Fan 役，Value 为番数（宝牌类为枚数）
type Fan struct {
	ID    int
	Value int
}

// WinInfo 单个和了者的点数信息
type WinInfo struct {
	Seat              int
	Tsumo             bool
	Riichi            bool
	PointRon          int // 荣和点数
	PointFromDealer   int // 自摸时庄家支付
	PointPerNonDealer int // 自摸时每个闲家支付
	Han               int
	Fu                int
	Yakuman           bool
	Fans              []Fan
	WinTile           Tile
}

// Win 和了，一炮多响时 Wins 按牌谱顺序排列
type Win struct {
	Wins        []WinInfo
	DeltaScores []int
}

func (e *Win) EventType() string { return EventWin }

func (e *Win) accept(v eventVisitor, _ Event) error { return v.visitWin(e) }

// UnknownEvent 解码层无法识别的事件类型，回放时跳过
type UnknownEvent struct {
	Name string
}

func (e *UnknownEvent) EventType() string { return e.Name }

func (e *UnknownEvent) accept(v eventVisitor, _ Event) error { return v.visitUnknown(e) }
