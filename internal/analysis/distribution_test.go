package analysis

import (
	"testing"
	"time"

	"github.com/lox/crimereport/internal/models"
)

func TestHourlyCounts(t *testing.T) {
	records := []models.IncidentRecord{
		recordAt(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2015, 1, 2, 0, 30, 0, 0, time.UTC)),
		recordAt(time.Date(2015, 1, 3, 23, 0, 0, 0, time.UTC)),
		nullTimestampRecord(),
	}
	dist := HourlyCounts(Normalize(records, false))

	if dist[0] != 2 {
		t.Errorf("hour 0 = %d, want 2", dist[0])
	}
	if dist[23] != 1 {
		t.Errorf("hour 23 = %d, want 1", dist[23])
	}

	total := 0
	for _, n := range dist {
		total += n
	}
	if total != 3 {
		t.Errorf("sum = %d, want 3 (null timestamp excluded)", total)
	}
}

func TestWeekdayCountsZeroFill(t *testing.T) {
	// 2015-06-01 is a Monday, 2015-06-07 a Sunday.
	records := []models.IncidentRecord{
		recordAt(time.Date(2015, 6, 1, 12, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2015, 6, 1, 14, 0, 0, 0, time.UTC)),
		recordAt(time.Date(2015, 6, 7, 12, 0, 0, 0, time.UTC)),
		nullTimestampRecord(),
	}
	table := Normalize(records, false)

	dist := WeekdayCounts(table)

	if len(dist) != 7 {
		t.Fatalf("len = %d, want 7", len(dist))
	}
	for i, name := range WeekdayOrder {
		if dist[i].Weekday != name {
			t.Errorf("dist[%d].Weekday = %s, want %s", i, dist[i].Weekday, name)
		}
	}
	if dist[0].Count != 2 {
		t.Errorf("Monday = %d, want 2", dist[0].Count)
	}
	if dist[6].Count != 1 {
		t.Errorf("Sunday = %d, want 1", dist[6].Count)
	}
	// Tuesday through Saturday are present with zero counts, not omitted.
	for i := 1; i <= 5; i++ {
		if dist[i].Count != 0 {
			t.Errorf("%s = %d, want 0", dist[i].Weekday, dist[i].Count)
		}
	}

	total := 0
	for _, w := range dist {
		total += w.Count
	}
	if got, want := total, table.WithTimestamp(); got != want {
		t.Errorf("sum = %d, want %d", got, want)
	}
}

func TestDistributionsEmptyInput(t *testing.T) {
	table := Normalize(nil, false)

	hourly := HourlyCounts(table)
	for h, n := range hourly {
		if n != 0 {
			t.Errorf("hour %d = %d, want 0", h, n)
		}
	}

	weekday := WeekdayCounts(table)
	if len(weekday) != 7 {
		t.Fatalf("len = %d, want 7", len(weekday))
	}
	for _, w := range weekday {
		if w.Count != 0 {
			t.Errorf("%s = %d, want 0", w.Weekday, w.Count)
		}
	}
}
