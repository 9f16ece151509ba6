package node

import (
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"paipu/common/log"
)

// Client 队列客户端，订阅到的消息写入 readChan
type Client interface {
	Run(url string) error
	Reply(msg *nats.Msg, data []byte) error
	// Close 返回时不会再有新消息写入 readChan
	Close() error
}

// NatsClient 以 queue group 订阅，同组内每条消息只投递给一个节点
type NatsClient struct {
	name     string
	subject  string
	queue    string
	conn     *nats.Conn
	sub      *nats.Subscription
	readChan chan *nats.Msg

	closed    chan struct{} // 连接彻底关闭（Drain 完成）后关闭
	closeOnce sync.Once
}

const drainTimeout = 10 * time.Second

func NewNatsClient(name, subject, queue string, readChan chan *nats.Msg) *NatsClient {
	return &NatsClient{
		name:     name,
		subject:  subject,
		queue:    queue,
		readChan: readChan,
		closed:   make(chan struct{}),
	}
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

func (nc *NatsClient) Run(url string) error {
	if nc.sub != nil {
		return ErrAlreadySubscribed
	}
	log.Info("nats 正在连接, url:%s", url)
	conn, err := nats.Connect(url,
		nats.Name(nc.name),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats 连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats 已重连: %s", c.ConnectedUrl())
		}),
		nats.DrainTimeout(drainTimeout),
		nats.ClosedHandler(func(_ *nats.Conn) {
			nc.closeOnce.Do(func() { close(nc.closed) })
		}),
	)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}
	nc.conn = conn

	nc.sub, err = conn.QueueSubscribe(nc.subject, nc.queue, func(msg *nats.Msg) {
		select {
		case nc.readChan <- msg:
		case <-nc.closed:
			log.Warn("nats 连接已关闭, 丢弃消息: subject=%s", msg.Subject)
		}
	})
	if err != nil {
		log.Error("nats sub err:%v", err)
		conn.Close()
		return err
	}
	log.Info("nats 订阅成功, subject:%s, queue:%s", nc.subject, nc.queue)
	return nil
}

func (nc *NatsClient) Reply(msg *nats.Msg, data []byte) error {
	if !nc.IsConnected() {
		return ErrNotConnected
	}
	return msg.Respond(data)
}

// Close 先 Drain，等订阅里已收到的消息都交给 readChan 后再断开
// readChan 需要有人消费，否则 Drain 只能等到超时
func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	if err := nc.conn.Drain(); err != nil {
		log.Warn("nats drain 失败: %v", err)
		nc.conn.Close()
	}
	select {
	case <-nc.closed:
	case <-time.After(drainTimeout + time.Second):
		log.Warn("nats drain 超时")
		nc.conn.Close()
	}
	log.Info("nats 连接已关闭")
	return nil
}
