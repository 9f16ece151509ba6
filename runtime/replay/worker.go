package replay

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"paipu/common/config"
	"paipu/common/log"
	"paipu/framework/node"
	"paipu/runtime/replay/application/service"
)

// Worker 从 nats 队列消费牌谱并回放
type Worker struct {
	ID         string
	service    service.ReplayService
	natsConf   config.NatsConfig
	natsWorker *node.NatsWorker
}

func NewWorker(svc service.ReplayService, natsConf config.NatsConfig, concurrency int) *Worker {
	w := &Worker{
		ID:       uuid.NewString(),
		service:  svc,
		natsConf: natsConf,
	}
	w.natsWorker = node.NewNatsWorker(w.HandleMessage, concurrency)
	return w
}

func (w *Worker) Start() error {
	cli := node.NewNatsClient("paipu-"+w.ID, w.natsConf.Subject, w.natsConf.Queue, w.natsWorker.ReadChan())
	if err := w.natsWorker.Run(cli, w.natsConf.URL); err != nil {
		return err
	}
	log.Info("replay worker %s 已启动, subject=%s", w.ID, w.natsConf.Subject)
	return nil
}

// HandleMessage 回放一条消息中的牌谱，返回 JSON 摘要
func (w *Worker) HandleMessage(ctx context.Context, data []byte) []byte {
	requestID := uuid.NewString()

	var summary *service.ReplaySummary
	result, err := w.service.ReplayLog(ctx, data)
	if err != nil {
		log.Warn("队列牌谱回放失败: request=%s, err=%v", requestID, err)
		summary = &service.ReplaySummary{
			RequestID: requestID,
			Success:   false,
			Message:   err.Error(),
		}
	} else {
		summary = service.NewReplaySummary(requestID, result)
	}

	resp, err := json.Marshal(summary)
	if err != nil {
		log.Error("序列化回放摘要失败: request=%s, err=%v", requestID, err)
		return nil
	}
	return resp
}

func (w *Worker) Close() {
	w.natsWorker.Close()
	log.Info("replay worker %s 已关闭", w.ID)
}
