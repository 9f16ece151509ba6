package repository

import "context"

// ParseStatusRepository 记录无法解析的牌谱，被标记的对局不再重放
type ParseStatusRepository interface {
	MarkUnparsable(ctx context.Context, gameID, reason string) error
	// IsUnparsable 返回是否被标记以及标记时的原因
	IsUnparsable(ctx context.Context, gameID string) (bool, string, error)
}
