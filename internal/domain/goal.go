package domain

// UsageGoal holds the user's usage targets: a daily limit, a week-over-week
// reduction target, and the applications to pay special attention to.
type UsageGoal struct {
	DailyLimitSec         int      `json:"daily_limit_sec"`
	WeeklyReductionTarget float64  `json:"weekly_reduction_target"`
	FocusApps             []string `json:"focus_apps"`
}

// DefaultUsageGoal returns the goal applied before the user edits one:
// one hour per day, five percent weekly reduction.
func DefaultUsageGoal() UsageGoal {
	return UsageGoal{
		DailyLimitSec:         3600,
		WeeklyReductionTarget: 0.05,
	}
}
