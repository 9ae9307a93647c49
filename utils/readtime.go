package utils

import "strings"

// WordsPerMinute 估算阅读时长时假定的阅读速度
const WordsPerMinute = 200

// CalculateReadTime 返回阅读正文所需的分钟数，向上取整。
// 按空白切分统计词数，非空正文至少为 1 分钟；空正文返回 0。
func CalculateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}
