package idgen

// sequenceCounter 每毫秒内的序列号
//
// 不是并发安全的，只能在 Snowflake 的临界区内使用。
type sequenceCounter struct {
	value int64
}

// incrementOrWrap 根据当前与上次的毫秒读数推进序列号
//
// 同一毫秒内自增；越过 MaxSequence 时回绕到 0 并返回 rolledOver=true，
// 调用方必须等到下一毫秒才能使用该序列号。毫秒前进时重置为 0。
func (c *sequenceCounter) incrementOrWrap(current, last int64) (int64, bool) {
	if current != last {
		c.value = 0
		return 0, false
	}
	c.value = (c.value + 1) & MaxSequence
	return c.value, c.value == 0
}
