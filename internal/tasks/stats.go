package tasks

// Stats holds bucket counts and their share of the total, in percent.
type Stats struct {
	Total int

	Pending   int
	Completed int
	Overdue   int

	PendingPct   float64
	CompletedPct float64
	OverduePct   float64
}

// Summarize computes Stats for a classified list.
func Summarize(b Buckets) Stats {
	return Percentages(len(b.Pending), len(b.Completed), len(b.Overdue))
}

// Percentages computes each count's percentage of their sum. A zero total yields zeros.
func Percentages(pending, completed, overdue int) Stats {
	s := Stats{
		Total:     pending + completed + overdue,
		Pending:   pending,
		Completed: completed,
		Overdue:   overdue,
	}
	if s.Total == 0 {
		return s
	}
	total := float64(s.Total)
	s.PendingPct = float64(pending) * 100 / total
	s.CompletedPct = float64(completed) * 100 / total
	s.OverduePct = float64(overdue) * 100 / total
	return s
}
