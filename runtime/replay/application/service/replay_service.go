package service

import (
	"context"

	"paipu/runtime/replay/codec"
	"paipu/runtime/replay/engines/mahjong"
)

type ReplayService interface {
	// ReplayLog 解码 JSON 牌谱后回放
	ReplayLog(ctx context.Context, data []byte) (*mahjong.GameResult, error)
	// ReplayGame 回放已解码的牌谱，结构错误的牌谱会被标记为无法解析，不再重试
	ReplayGame(ctx context.Context, gameLog *codec.GameLog) (*mahjong.GameResult, error)
	// FindGame 查询已回放的对局，先查本地缓存
	FindGame(ctx context.Context, gameID string) (*mahjong.GameResult, error)
}

// ReplaySummary 队列回复用的摘要
type ReplaySummary struct {
	RequestID       string                 `json:"requestId"`
	GameID          string                 `json:"gameId"`
	Success         bool                   `json:"success"`
	Message         string                 `json:"message,omitempty"`
	RoundCount      int                    `json:"roundCount"`
	MaxDealerStreak int                    `json:"maxDealerStreak"`
	Totals          []mahjong.PlayerTotals `json:"totals,omitempty"`
}

func NewReplaySummary(requestID string, result *mahjong.GameResult) *ReplaySummary {
	return &ReplaySummary{
		RequestID:       requestID,
		GameID:          result.GameID,
		Success:         true,
		RoundCount:      len(result.Rounds),
		MaxDealerStreak: result.MaxDealerStreak,
		Totals:          mahjong.SumPlayerStats(result.Rounds, len(result.Players)),
	}
}
