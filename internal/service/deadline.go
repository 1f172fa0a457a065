package service

import "time"

// ComputeOrderDeadline 计算発注期限（契约签订日 + N 日历天）
func ComputeOrderDeadline(signedAt time.Time, days int) time.Time {
	return signedAt.AddDate(0, 0, days)
}

// DaysUntil 计算距期限的剩余天数。
// 两侧先截断到当日零点再求差，结果与具体时刻无关；正数为剩余，0 以下为超期。
func DaysUntil(deadline, now time.Time) int {
	d := truncateToMidnight(deadline)
	n := truncateToMidnight(now)
	return int(d.Sub(n).Hours() / 24)
}

func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
