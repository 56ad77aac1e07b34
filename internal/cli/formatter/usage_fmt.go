package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drossen/unplug/internal/domain"
)

// FormatDailyUsage renders one day's aggregate as an aligned table of
// apps, launches and time, heaviest app first.
func FormatDailyUsage(d domain.DailyUsage) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(d.Date.Format("Mon 2006-01-02")))
	b.WriteString("  ")
	b.WriteString(StyleBold.Render(Duration(d.TotalSec)))
	b.WriteString("\n")

	type row struct {
		app string
		st  domain.UsageStats
	}
	rows := make([]row, 0, len(d.Apps))
	for app, st := range d.Apps {
		rows = append(rows, row{app, st})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].st.UsageSec != rows[j].st.UsageSec {
			return rows[i].st.UsageSec > rows[j].st.UsageSec
		}
		return rows[i].app < rows[j].app
	})

	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-20s %s  %s\n",
			r.app,
			StyleDim.Render(fmt.Sprintf("%2dx", r.st.LaunchCount)),
			Duration(r.st.UsageSec),
		))
	}
	return b.String()
}

// FormatWeeklySummary renders a computed weekly rollup.
func FormatWeeklySummary(s domain.WeeklyUsageSummary) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Week of " + s.WeekStart.Format("2006-01-02")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  total        %s\n", Duration(s.TotalSec)))
	b.WriteString(fmt.Sprintf("  daily avg    %s\n", Duration(s.DailyAverageSec)))
	if s.MostUsedApp != "" {
		b.WriteString(fmt.Sprintf("  most used    %s\n", s.MostUsedApp))
	}
	b.WriteString("  vs last week " + FormatReduction(s.ReductionPct) + "\n")
	return b.String()
}

// FormatReduction renders a signed week-over-week change, green when usage
// went down.
func FormatReduction(pct float64) string {
	switch {
	case pct > 0:
		return StyleGreen.Render(fmt.Sprintf("-%.1f%%", pct))
	case pct < 0:
		return StyleRed.Render(fmt.Sprintf("+%.1f%%", -pct))
	default:
		return StyleDim.Render("n/a")
	}
}

// FormatSessionLine renders one history entry on a single line.
func FormatSessionLine(s domain.FocusSession) string {
	status := StyleRed.Render("ended early")
	if s.Completed {
		status = StyleGreen.Render("completed")
	} else if s.EndedAt == nil {
		status = StyleYellow.Render("in progress")
	}
	return fmt.Sprintf("%s  %-8s %s",
		s.StartedAt.Local().Format("2006-01-02 15:04"),
		Duration(s.DurationSec),
		status,
	)
}
