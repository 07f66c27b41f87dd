package queue

import (
	"context"
	"sync"
	"time"

	"pump_launch/internal/common"
	"pump_launch/internal/model"
	"pump_launch/internal/store"

	"github.com/sirupsen/logrus"
)

// 消息队列管理器
type MessageQueue struct {
	name     string                   // 队列名称
	messages chan *model.QueueMessage // 消息通道
	handlers []MessageHandler         // 消息处理器
	mutex    sync.RWMutex             // 读写锁
	wg       sync.WaitGroup           // 等待处理中的消息
	stopOnce sync.Once
}

// 消息处理器接口
type MessageHandler interface {
	HandleMessage(msg *model.QueueMessage)
}

// 创建新消息队列
func NewMessageQueue(name string, bufferSize int) *MessageQueue {
	return &MessageQueue{
		name:     name,
		messages: make(chan *model.QueueMessage, bufferSize),
		handlers: make([]MessageHandler, 0),
	}
}

// 注册消息处理器
func (q *MessageQueue) RegisterHandler(handler MessageHandler) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.handlers = append(q.handlers, handler)
}

// SendMessage 队列已满时丢弃并返回 false
func (q *MessageQueue) SendMessage(msg *model.QueueMessage) bool {
	log := common.Log.WithField("queue", q.name)
	if msg.Record != nil {
		log = log.WithField("mint", msg.Record.Mint)
	}
	select {
	case q.messages <- msg:
		log.Debug("消息已发送到队列")
		return true
	default:
		log.Warn("队列已满，消息被丢弃")
		return false
	}
}

// 启动消息处理
func (q *MessageQueue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for msg := range q.messages {
			q.mutex.RLock()
			handlers := q.handlers
			q.mutex.RUnlock()

			for _, handler := range handlers {
				q.wg.Add(1)
				go func(h MessageHandler, m *model.QueueMessage) {
					defer q.wg.Done()
					h.HandleMessage(m)
				}(handler, msg)
			}
		}
	}()

	common.Log.Infof("队列 %s 已启动", q.name)
}

// Stop 关闭队列并等待已入队消息处理完毕
func (q *MessageQueue) Stop() {
	q.stopOnce.Do(func() {
		close(q.messages)
		q.wg.Wait()
		common.Log.Infof("队列 %s 已停止", q.name)
	})
}

// StoreHandler 将发行记录写入存储，失败只记录日志
type StoreHandler struct {
	store   store.Store
	timeout time.Duration
}

func NewStoreHandler(s store.Store) *StoreHandler {
	return &StoreHandler{store: s, timeout: 10 * time.Second}
}

func (h *StoreHandler) HandleMessage(msg *model.QueueMessage) {
	if msg.Type != model.MessageTypeLaunch || msg.Record == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	log := common.Log.WithFields(logrus.Fields{"mint": msg.Record.Mint, "signature": msg.Record.Signature})
	if err := h.store.Append(ctx, msg.Record); err != nil {
		log.WithError(err).Error("保存发行记录失败")
		return
	}
	log.WithField("id", msg.Record.ID).Info("发行记录已保存")
}
