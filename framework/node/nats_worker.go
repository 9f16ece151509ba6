package node

import (
	"context"
	"sync"

	"github.com/nats-io/nats.go"

	"paipu/common/log"
)

// MessageHandler 处理一条消息，返回的数据作为回复（消息带 reply 主题时）
type MessageHandler func(ctx context.Context, data []byte) []byte

// NatsWorker 固定数量的 goroutine 消费订阅到的消息
type NatsWorker struct {
	NatsCli  Client
	readChan chan *nats.Msg
	handler  MessageHandler
	workers  int

	ctx      context.Context
	cancel   context.CancelFunc
	draining chan struct{} // 客户端关闭后关闭，worker 处理完 readChan 剩余消息就退出
	wg       sync.WaitGroup
	once     sync.Once
}

func NewNatsWorker(handler MessageHandler, workers int) *NatsWorker {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &NatsWorker{
		readChan: make(chan *nats.Msg, 1024),
		handler:  handler,
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
		draining: make(chan struct{}),
	}
}

// ReadChan 供 Client 写入
func (w *NatsWorker) ReadChan() chan *nats.Msg {
	return w.readChan
}

// Run 连接并开始消费
func (w *NatsWorker) Run(cli Client, url string) error {
	w.NatsCli = cli
	if err := cli.Run(url); err != nil {
		return err
	}
	w.Start()
	return nil
}

// Start 只启动消费 goroutine，测试里直接往 ReadChan 写消息
func (w *NatsWorker) Start() {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.readChanMessage()
	}
}

func (w *NatsWorker) readChanMessage() {
	defer w.wg.Done()
	for {
		select {
		case msg := <-w.readChan:
			w.handle(msg)
		case <-w.draining:
			for {
				select {
				case msg := <-w.readChan:
					w.handle(msg)
				default:
					return
				}
			}
		}
	}
}

func (w *NatsWorker) handle(msg *nats.Msg) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("nats 消息处理 panic: subject=%s, err=%v", msg.Subject, r)
		}
	}()

	resp := w.handler(w.ctx, msg.Data)
	if msg.Reply == "" || resp == nil || w.NatsCli == nil {
		return
	}
	if err := w.NatsCli.Reply(msg, resp); err != nil {
		log.Error("nats 回复失败: reply=%s, err=%v", msg.Reply, err)
	}
}

// Close 先断开客户端（Drain），再处理完 readChan 中已缓冲的消息，最后取消 ctx
func (w *NatsWorker) Close() {
	w.once.Do(func() {
		if w.NatsCli != nil {
			if err := w.NatsCli.Close(); err != nil {
				log.Warn("nats 关闭失败: %v", err)
			}
		}
		close(w.draining)
		w.wg.Wait()
		w.cancel()
	})
}
