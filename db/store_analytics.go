package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// OverviewCounts holds the dashboard overview aggregates
type OverviewCounts struct {
	TotalUsers      int
	ApprovedDoctors int
	TotalClinics    int
	StatusBreakdown map[string]int
}

// MonthlyCount is one month bucket of a growth series
type MonthlyCount struct {
	Month string
	Count int
}

type statusCountRow struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// Overview computes the dashboard overview counters in one round per table
func (d *DataStore) Overview(ctx context.Context) (*OverviewCounts, error) {
	o := &OverviewCounts{
		StatusBreakdown: map[string]int{
			"new":        0,
			"in-process": 0,
			"pending":    0,
			"approved":   0,
			"rejected":   0,
		},
	}

	users := sq.Select("COUNT(*)").From("users")
	if err := users.RunWith(d.db).ScanContext(ctx, &o.TotalUsers); err != nil {
		return nil, err
	}
	approved := sq.Select("COUNT(*)").
		From("doctors").
		Where(sq.Eq{"status": "approved"})
	if err := approved.RunWith(d.db).ScanContext(ctx, &o.ApprovedDoctors); err != nil {
		return nil, err
	}
	clinics := sq.Select("COUNT(*)").From("clinics")
	if err := clinics.RunWith(d.db).ScanContext(ctx, &o.TotalClinics); err != nil {
		return nil, err
	}

	var rows []statusCountRow
	breakdown := sq.Select("status", "COUNT(*) AS count").
		From("doctors").
		Where(sq.Eq{"status": []string{"new", "in-process", "pending", "approved", "rejected"}}).
		GroupBy("status")
	if err := d.selectStatement(ctx, &rows, breakdown, nil); err != nil {
		return nil, err
	}
	for _, r := range rows {
		o.StatusBreakdown[r.Status] = r.Count
	}
	return o, nil
}

// MonthlyGrowth buckets the rows of the given table created within the
// last six months by month, bucketing happens in process so the same
// query serves all supported dialects
func (d *DataStore) MonthlyGrowth(ctx context.Context, table string) ([]MonthlyCount, error) {
	since := time.Now().UTC().AddDate(0, -6, 0)
	var stamps []time.Time
	q := sq.Select("created_at").
		From(table).
		Where("created_at >= ?", since).
		OrderBy("created_at")
	if err := d.selectStatement(ctx, &stamps, q, nil); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0, 7)
	for _, ts := range stamps {
		label := ts.Format("Jan")
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	result := make([]MonthlyCount, 0, len(order))
	for _, label := range order {
		result = append(result, MonthlyCount{Month: label, Count: counts[label]})
	}
	return result, nil
}

// DoctorStatusDistribution splits the doctor corps into active
// (approved) and resigned
func (d *DataStore) DoctorStatusDistribution(ctx context.Context) (map[string]int, error) {
	distribution := map[string]int{
		"active":   0,
		"resigned": 0,
	}
	var rows []statusCountRow
	q := sq.Select("status", "COUNT(*) AS count").
		From("doctors").
		Where(sq.Eq{"status": []string{"approved", "resigned"}}).
		GroupBy("status")
	if err := d.selectStatement(ctx, &rows, q, nil); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.Status == "approved" {
			distribution["active"] = r.Count
		} else {
			distribution["resigned"] = r.Count
		}
	}
	return distribution, nil
}
