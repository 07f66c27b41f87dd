package model

import "time"

// 消息类型
type MessageType int

const (
	MessageTypeLaunch MessageType = iota // 发行记录消息
)

// 队列消息
type QueueMessage struct {
	Type      MessageType   // 消息类型
	Record    *LaunchRecord // 发行记录
	Timestamp time.Time     // 时间戳
}

// 创建发行记录消息
func NewLaunchMessage(record *LaunchRecord) *QueueMessage {
	return &QueueMessage{
		Type:      MessageTypeLaunch,
		Record:    record,
		Timestamp: time.Now(),
	}
}
