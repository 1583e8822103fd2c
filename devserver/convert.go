package devserver

import (
	"time"

	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
)

const dayLayout = "2006-01-02"

func dayString(d common.DateOnly) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dayLayout)
}

func dayValue(s string) common.DateOnly {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return common.DateOnly{}
	}
	return common.DateOnly{Time: t}
}

func pageSize(take int) int {
	if take <= 0 {
		return 50
	}
	if take > 200 {
		return 200
	}
	return take
}
