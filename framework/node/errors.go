package node

import "errors"

var (
	ErrNotConnected      = errors.New("未连接到 nats")
	ErrAlreadySubscribed = errors.New("已订阅该主题")
	ErrWorkerClosed      = errors.New("worker 已关闭")
)
