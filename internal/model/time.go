// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"fmt"
	"time"
)

// localTimeFormat 是对外接口统一使用的时间格式。
const localTimeFormat = "2006-01-02 15:04:05"

// LocalTime 是 time.Time 的别名类型，序列化为 "YYYY-MM-DD HH:MM:SS"。
// 列表接口中的时间戳统一使用该类型，避免 RFC3339 与本地格式混用。
type LocalTime time.Time

// MarshalJSON 实现 json.Marshaler 接口。
func (t LocalTime) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("%q", time.Time(t).Format(localTimeFormat))
	return []byte(formatted), nil
}
