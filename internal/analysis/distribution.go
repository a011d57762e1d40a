package analysis

// HourlyCounts fills the canonical 24-bin hour-of-day distribution. Rows
// without a timestamp are dropped; unobserved hours stay zero.
func HourlyCounts(t *Table) HourlyDistribution {
	var dist HourlyDistribution
	for i := range t.Temporal {
		tf := &t.Temporal[i]
		if !tf.Valid {
			continue
		}
		if tf.Hour >= 0 && tf.Hour < 24 {
			dist[tf.Hour]++
		}
	}
	return dist
}

// WeekdayCounts fills the fixed Monday..Sunday distribution. Every weekday
// is present even with a zero count; downstream consumers rely on the fixed
// length and order.
func WeekdayCounts(t *Table) WeekdayDistribution {
	index := make(map[string]int, len(WeekdayOrder))
	var dist WeekdayDistribution
	for i, name := range WeekdayOrder {
		index[name] = i
		dist[i] = WeekdayCount{Weekday: name}
	}
	for i := range t.Temporal {
		tf := &t.Temporal[i]
		if !tf.Valid {
			continue
		}
		if j, ok := index[tf.Weekday]; ok {
			dist[j].Count++
		}
	}
	return dist
}
