package service

import (
	"strings"

	"github.com/haierkeys/collab-note-service/pkg/util"
)

// DefaultNoteTitle 无法从内容中解析出标题时的兜底标题
const DefaultNoteTitle = "Untitled"

// NoteInfo 从笔记内容中解析出的元信息
type NoteInfo struct {
	Title string
	Tags  []string
}

// ParseNoteInfo 解析笔记内容的标题和标签
// 优先读取 frontmatter 的 title/tags，其次取正文第一个一级标题
func ParseNoteInfo(content string) *NoteInfo {
	info := &NoteInfo{Title: DefaultNoteTitle, Tags: []string{}}

	meta, body, hasFrontmatter := util.ParseFrontmatter(content)
	if hasFrontmatter {
		if title, ok := meta["title"].(string); ok && title != "" {
			info.Title = title
		}
		info.Tags = parseTagsMeta(meta["tags"])
	}

	if info.Title == DefaultNoteTitle {
		if heading := firstHeading(body); heading != "" {
			info.Title = heading
		}
	}

	return info
}

// parseTagsMeta 解析 frontmatter 中的 tags 字段
// 兼容数组和逗号分隔字符串两种写法
func parseTagsMeta(raw interface{}) []string {
	tags := []string{}
	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if tag, ok := item.(string); ok && tag != "" {
				tags = append(tags, tag)
			}
		}
	case string:
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// firstHeading 提取正文中第一个 Markdown 标题的文本
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
