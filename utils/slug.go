package utils

import "strings"

// Slugify 由标题生成 URL 友好的 slug：
// 转小写，空白折叠成单个 "-"，其余非 [a-z0-9] 字符全部丢弃，首尾的 "-" 去掉。
// 对已经是 slug 的字符串再次调用结果不变。
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-':
			pendingHyphen = true
		}
	}
	return b.String()
}
