package repository

import "errors"

var (
	ErrGameRecordNotFound = errors.New("game record not found")
	ErrUnparsable         = errors.New("game log marked unparsable")
	ErrMongodb            = errors.New("mongodb error")
	ErrRedis              = errors.New("redis error")
)
