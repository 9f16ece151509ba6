package repository

import (
	"context"

	"paipu/core/domain/entity"
)

// GameRecordRepository 对局记录仓储接口
type GameRecordRepository interface {
	// SaveGameRecord 保存对局元数据，同一 gameId 覆盖旧记录
	SaveGameRecord(ctx context.Context, record *entity.GameRecord) error

	// FindGameRecord 找不到时返回 ErrGameRecordNotFound
	FindGameRecord(ctx context.Context, gameID string) (*entity.GameRecord, error)

	// SaveRoundRecords 替换该对局的全部局记录
	SaveRoundRecords(ctx context.Context, gameID string, rounds []*entity.RoundRecord) error

	// FindRoundRecords 按局序返回
	FindRoundRecords(ctx context.Context, gameID string) ([]*entity.RoundRecord, error)
}
