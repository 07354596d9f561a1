package message

import "fmt"

// 优先级取值范围
const (
	MinPriority = 1
	MaxPriority = 3
)

// Message 留言(demo表),name唯一
type Message struct {
	Name     string
	Message  string
	Priority int
}

// Format 渲染为 "{priority} - [name] says: message"
func (m *Message) Format() string {
	return fmt.Sprintf("{%d} - [%s] says: %s", m.Priority, m.Name, m.Message)
}

// FormatAll 批量渲染
func FormatAll(messages []*Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Format()
	}
	return out
}
