package mahjong

import (
	"fmt"

	"paipu/common/log"
)

const DefaultPlayerCount = 4

type processorState int

const (
	awaitingRoundStart processorState = iota
	inRound
	failed
)

// Option 回放选项
type Option func(*Processor)

// WithPlayerCount 设置人数（四麻 4，三麻 3）
func WithPlayerCount(n int) Option {
	return func(p *Processor) {
		p.playerCount = n
	}
}

// WithShanten 注入向听数计算，默认每次回放新建一个 Searcher
func WithShanten(calc ShantenCalculator) Option {
	return func(p *Processor) {
		p.shanten = calc
	}
}

// Processor 单遍事件处理器：AwaitingRoundStart -> InRound -> (产出 RoundResult) -> AwaitingRoundStart
// 任何结构错误都会进入 failed，不再产出结果
type Processor struct {
	playerCount int
	shanten     ShantenCalculator

	state         processorState
	round         *RoundContext
	carriedSticks int

	prevDealer      int
	dealerStreak    int
	maxDealerStreak int

	index   int
	results []RoundResult
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		playerCount: DefaultPlayerCount,
		prevDealer:  -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.shanten == nil {
		p.shanten = NewSearcher()
	}
	return p
}

// ReplayEvents 回放一整场牌谱，同样的输入总是得到同样的结果
func ReplayEvents(events []Event, opts ...Option) (*Replay, error) {
	return NewProcessor(opts...).Process(events)
}

// Process 按顺序处理所有事件，牌谱结构错误时返回 MalformedLogError 且不返回部分结果
func (p *Processor) Process(events []Event) (*Replay, error) {
	if p.playerCount < 3 || p.playerCount > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlayers, p.playerCount)
	}
	if p.state != awaitingRoundStart || p.results != nil {
		return nil, fmt.Errorf("processor already used")
	}
	p.results = make([]RoundResult, 0, 16)

	for i, event := range events {
		p.index = i
		if event == nil {
			p.state = failed
			return nil, p.malformed("<nil>", "nil event")
		}
		if i == 0 {
			if _, ok := event.(*RoundStart); !ok {
				p.state = failed
				return nil, p.malformed(event.EventType(), "log does not begin with a round start")
			}
		}
		if err := event.accept(p, nextKnown(events, i+1)); err != nil {
			p.state = failed
			return nil, err
		}
	}

	return &Replay{
		Rounds:          p.results,
		MaxDealerStreak: p.maxDealerStreak,
	}, nil
}

func (p *Processor) malformed(eventType, format string, args ...any) error {
	return &MalformedLogError{
		Index:     p.index,
		EventType: eventType,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// requireRound 局外收到局内事件视为牌谱损坏
func (p *Processor) requireRound(e Event) error {
	if p.state != inRound || p.round == nil {
		return p.malformed(e.EventType(), "no round is open")
	}
	return nil
}

func (p *Processor) checkSeat(e Event, seat int) error {
	if seat < 0 || seat >= p.playerCount {
		return p.malformed(e.EventType(), "seat %d out of range", seat)
	}
	return nil
}

func (p *Processor) visitRoundStart(e *RoundStart) error {
	if p.state == inRound {
		return p.malformed(e.EventType(), "round start while a round is still open")
	}
	if err := p.checkSeat(e, e.DealerSeat); err != nil {
		return err
	}
	if len(e.Hands) != p.playerCount {
		return p.malformed(e.EventType(), "dealt hands for %d seats, want %d", len(e.Hands), p.playerCount)
	}
	for seat, hand := range e.Hands {
		if n := len(hand); n != 13 && n != 14 {
			return p.malformed(e.EventType(), "seat %d dealt %d tiles", seat, n)
		}
	}

	// 连庄：与上一次开局的庄家相同
	if e.DealerSeat == p.prevDealer {
		p.dealerStreak++
		if p.dealerStreak > p.maxDealerStreak {
			p.maxDealerStreak = p.dealerStreak
		}
	} else {
		p.dealerStreak = 0
	}
	p.prevDealer = e.DealerSeat

	p.round = newRoundContext(e, p.playerCount, p.carriedSticks, p.shanten)
	p.state = inRound
	log.Debug("开局: wind=%s dealer=%d honba=%d sticks=%d", e.RoundWind, e.DealerSeat, e.RepeatCount, p.carriedSticks)
	return nil
}

func (p *Processor) visitDiscard(e *Discard, next Event) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	if err := p.checkSeat(e, e.Seat); err != nil {
		return err
	}
	for _, o := range e.Options {
		if err := p.checkSeat(e, o.Seat); err != nil {
			return err
		}
	}
	p.round.discard(e, next)
	return nil
}

func (p *Processor) visitSelfDraw(e *SelfDraw) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	if err := p.checkSeat(e, e.Seat); err != nil {
		return err
	}
	p.round.selfDraw(e)
	return nil
}

func (p *Processor) visitCall(e *Call) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	if err := p.checkSeat(e, e.Seat); err != nil {
		return err
	}
	if e.Kind == CallRon {
		return p.malformed(e.EventType(), "ron is not a call")
	}
	if from := p.round.LastDiscarder(); e.From != from || e.From == e.Seat {
		return p.malformed(e.EventType(), "seat %d calls from seat %d, last discard by %d", e.Seat, e.From, from)
	}
	p.round.call(e)
	return nil
}

func (p *Processor) visitKan(e *ConcealedOrAddedKan) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	if err := p.checkSeat(e, e.Seat); err != nil {
		return err
	}
	if e.Kind != KanConcealed && e.Kind != KanAdded {
		return p.malformed(e.EventType(), "unexpected kan kind %s", e.Kind)
	}
	p.round.kan(e)
	return nil
}

// visitAbortiveDraw 途中流局：丢弃该局，立直棒留到下一局
func (p *Processor) visitAbortiveDraw(e *AbortiveDraw) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	p.round.abort()
	p.carriedSticks = p.round.RiichiSticks()
	log.Debug("途中流局: reason=%s, 该局不计", e.Reason)
	p.closeRound()
	return nil
}

func (p *Processor) visitExhaustiveDraw(e *ExhaustiveDraw) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	status := make([]DrawStatus, p.playerCount)
	for seat := 0; seat < p.playerCount; seat++ {
		switch {
		case e.isManganSeat(seat):
			status[seat] = DrawNagashiMangan
		case seat < len(e.Players) && e.Players[seat].Tenpai:
			status[seat] = DrawTenpai
		default:
			status[seat] = DrawNoten
		}
	}
	p.carriedSticks = p.round.RiichiSticks()
	p.emit(NewDrawOutcome(status))
	return nil
}

func (p *Processor) visitWin(e *Win) error {
	if err := p.requireRound(e); err != nil {
		return err
	}
	if len(e.Wins) == 0 {
		return p.malformed(e.EventType(), "win without winners")
	}
	for _, w := range e.Wins {
		if err := p.checkSeat(e, w.Seat); err != nil {
			return err
		}
	}

	if len(e.DeltaScores) != p.playerCount {
		return p.malformed(e.EventType(), "delta scores for %d seats, want %d", len(e.DeltaScores), p.playerCount)
	}
	tsumo := e.Wins[0].Tsumo
	if tsumo && len(e.Wins) > 1 {
		return p.malformed(e.EventType(), "tsumo with %d winners", len(e.Wins))
	}
	for _, w := range e.Wins[1:] {
		if w.Tsumo {
			return p.malformed(e.EventType(), "tsumo mixed with ron")
		}
	}

	info := p.round.Info()
	var outcome Outcome
	if tsumo {
		first := e.Wins[0]
		agari := AgariRecord(first, e.DeltaScores[first.Seat], info, p.playerCount)
		outcome = NewTsumoOutcome(TsumoOutcome{
			AgariInfo:     agari,
			DealerPayment: first.PointFromDealer,
		})
	} else {
		loser := p.round.ronLoser()
		if loser < 0 {
			return p.malformed(e.EventType(), "ron without a discard to win on")
		}
		rons := make([]RonOutcome, 0, len(e.Wins))
		for _, w := range e.Wins {
			if w.Seat == loser {
				return p.malformed(e.EventType(), "seat %d wins on its own discard", w.Seat)
			}
			rons = append(rons, RonOutcome{
				AgariInfo: AgariRecord(w, e.DeltaScores[w.Seat], info, p.playerCount),
				LoserSeat: loser,
			})
		}
		outcome = NewRonOutcome(rons)
	}

	p.carriedSticks = 0
	p.emit(outcome)
	return nil
}

func (p *Processor) visitUnknown(e *UnknownEvent) error {
	log.Debug("跳过未知事件: #%d %s", p.index, e.Name)
	return nil
}

// emit 结束当前局并产出结果
func (p *Processor) emit(outcome Outcome) {
	result := RoundResult{
		Round:        p.round.Info(),
		Outcome:      outcome,
		PlayerStats:  p.round.snapshot(),
		RiichiSticks: p.round.RiichiSticks(),
		TotalTurns:   p.round.TotalTurns(),
	}
	p.results = append(p.results, result)
	log.Debug("局结束: #%d outcome=%s winners=%v", len(p.results), outcome.Kind, result.Winners())
	p.closeRound()
}

func (p *Processor) closeRound() {
	p.round = nil
	p.state = awaitingRoundStart
}

// nextKnown 下一个可识别的事件，打牌后的鸣牌/和了判断跳过未知事件
func nextKnown(events []Event, from int) Event {
	for _, e := range events[from:] {
		if _, unknown := e.(*UnknownEvent); !unknown {
			return e
		}
	}
	return nil
}
