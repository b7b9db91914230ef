package station

import (
	"strings"
	"unicode/utf16"
)

// FlagSubrecipientRows 找出未选择或重复的子受助方行
// 同一个值第一次出现不标记，之后的相同值才标记；无效行不占用已见集合
func FlagSubrecipientRows(rows []SubrecipientRow) []RowID {
	var flagged []RowID
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		v := strings.TrimSpace(row.Value)
		if v == "" || v == stateUnset || seen[v] {
			flagged = append(flagged, row.RowID)
			continue
		}
		seen[v] = true
	}
	return flagged
}

// FlagPortRows 找出端口号为空、超长或重复的端口行
// 联邦与非联邦端口共用一个已见集合，端口号在两类之间也不能重复。
// fedHit / nonFedHit 表示两类端口中是否有被标记的行
func FlagPortRows(fed, nonFed []PortRow) (flagged []RowID, fedHit, nonFedHit bool) {
	seen := make(map[string]bool, len(fed)+len(nonFed))

	check := func(rows []PortRow) bool {
		hit := false
		for _, row := range rows {
			id := row.Entry.PortID
			if id == "" || utf16Len(id) > MaxPortIDLength || seen[id] {
				flagged = append(flagged, row.RowID)
				hit = true
				continue
			}
			seen[id] = true
		}
		return hit
	}

	fedHit = check(fed)
	nonFedHit = check(nonFed)
	return flagged, fedHit, nonFedHit
}

// utf16Len 按 UTF-16 码元计数，与浏览器中字符串的 length 一致
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
