package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"paipu/runtime/replay/engines/mahjong"
)

var ErrInvalidLog = errors.New("invalid game log document")

// GameLog 解码后的牌谱：元数据加上按顺序排列的事件
type GameLog struct {
	Meta        mahjong.GameMeta
	PlayerCount int
	Events      []mahjong.Event
}

type gameDoc struct {
	GameID      string            `json:"gameId"`
	PlayerCount int               `json:"playerCount"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	Accounts    []accountDoc      `json:"accounts"`
	FinalScores []int             `json:"finalScores"`
	Events      []json.RawMessage `json:"events"`
}

type accountDoc struct {
	AccountID int64  `json:"accountId"`
	Nickname  string `json:"nickname"`
	Seat      int    `json:"seat"`
}

// Decode 解析 JSON 牌谱，playerCount 缺省时使用 defaultPlayerCount
// 不认识的事件类型解码为 UnknownEvent，由回放时跳过
func Decode(data []byte, defaultPlayerCount int) (*GameLog, error) {
	var doc gameDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLog, err)
	}
	if doc.GameID == "" {
		return nil, fmt.Errorf("%w: missing gameId", ErrInvalidLog)
	}
	if doc.PlayerCount == 0 {
		doc.PlayerCount = defaultPlayerCount
	}

	accounts := make([]mahjong.Account, 0, len(doc.Accounts))
	for _, a := range doc.Accounts {
		accounts = append(accounts, mahjong.Account{
			AccountID: a.AccountID,
			Nickname:  a.Nickname,
			Seat:      a.Seat,
		})
	}

	events := make([]mahjong.Event, 0, len(doc.Events))
	for i, raw := range doc.Events {
		e, err := decodeEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: event #%d: %v", ErrInvalidLog, i, err)
		}
		events = append(events, e)
	}

	return &GameLog{
		Meta: mahjong.GameMeta{
			GameID:      doc.GameID,
			Accounts:    accounts,
			FinalScores: doc.FinalScores,
			StartTime:   doc.StartTime,
			EndTime:     doc.EndTime,
		},
		PlayerCount: doc.PlayerCount,
		Events:      events,
	}, nil
}

func decodeEvent(raw json.RawMessage) (mahjong.Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case "":
		return nil, errors.New("missing event type")
	case mahjong.EventRoundStart:
		var d roundStartDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event()
	case mahjong.EventDiscard:
		var d discardDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event()
	case mahjong.EventSelfDraw:
		var d selfDrawDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event()
	case mahjong.EventCall:
		var d callDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event()
	case mahjong.EventKan:
		var d kanDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event()
	case mahjong.EventAbortiveDraw:
		var d abortiveDrawDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &mahjong.AbortiveDraw{Reason: d.Reason, Seat: d.Seat}, nil
	case mahjong.EventExhaustiveDraw:
		var d exhaustiveDrawDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event(), nil
	case mahjong.EventWin:
		var d winDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d.event()
	default:
		return &mahjong.UnknownEvent{Name: head.Type}, nil
	}
}
