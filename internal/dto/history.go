// Package dto 定义接口层的数据传输对象
package dto

// HistoryEntry 单条浏览历史记录
// Time 为毫秒级 Unix 时间戳
type HistoryEntry struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Time   int64    `json:"time"`
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned"`
}

// HistoryReplaceRequest 全量覆盖历史记录的请求
// History 为 JSON 数组序列化后的字符串，与浏览器本地存储的格式一致
type HistoryReplaceRequest struct {
	History string `form:"history" json:"history" binding:"required"`
}

// HistoryListResponse 历史记录列表响应
type HistoryListResponse struct {
	History []*HistoryEntry `json:"history"`
}
