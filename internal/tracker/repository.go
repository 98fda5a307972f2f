package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acagil/borsabot/internal/contracts"
)

// Repository persists daily recommendations and their later performance
// checks. SSOT: tracking data is read and written here only.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new tracker repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the tracking tables when they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS recommendations (
			id            BIGSERIAL PRIMARY KEY,
			rec_date      DATE NOT NULL,
			rank          INT NOT NULL,
			ticker        TEXT NOT NULL,
			sector        TEXT NOT NULL,
			price         DOUBLE PRECISION NOT NULL,
			final_score   DOUBLE PRECISION NOT NULL,
			rating        TEXT NOT NULL,
			confidence    TEXT NOT NULL,
			market_mood   TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (rec_date, ticker)
		);
		CREATE TABLE IF NOT EXISTS performance_checks (
			id                BIGSERIAL PRIMARY KEY,
			recommendation_id BIGINT NOT NULL REFERENCES recommendations(id),
			horizon_days      INT NOT NULL,
			check_date        DATE NOT NULL,
			check_price       DOUBLE PRECISION NOT NULL,
			return_pct        DOUBLE PRECISION NOT NULL,
			outcome           TEXT NOT NULL,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (recommendation_id, horizon_days)
		);
	`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure tracker schema: %w", err)
	}
	return nil
}

// SaveSet stores one day's recommendation set. Re-running the pipeline
// on the same day replaces that day's rows.
func (r *Repository) SaveSet(ctx context.Context, set *contracts.RecommendationSet) error {
	recDate := set.GeneratedAt.Format("2006-01-02")

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "DELETE FROM recommendations WHERE rec_date = $1", recDate)
	if err != nil {
		return fmt.Errorf("failed to delete old recommendations: %w", err)
	}

	query := `
		INSERT INTO recommendations (
			rec_date, rank, ticker, sector, price, final_score, rating, confidence, market_mood
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, rec := range set.Recommendations {
		_, err := tx.Exec(ctx, query,
			recDate, rec.Rank, rec.Ticker, rec.Sector, rec.Price,
			rec.FinalScore, string(rec.Rating), rec.Confidence, set.MarketMood,
		)
		if err != nil {
			return fmt.Errorf("failed to insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LatestSet returns the most recent persisted recommendation set, or
// nil when nothing has been stored yet.
func (r *Repository) LatestSet(ctx context.Context) (*contracts.RecommendationSet, error) {
	var latest time.Time
	err := r.pool.QueryRow(ctx, "SELECT MAX(rec_date) FROM recommendations").Scan(&latest)
	if err == pgx.ErrNoRows || latest.IsZero() {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest date: %w", err)
	}

	query := `
		SELECT rank, ticker, sector, price, final_score, rating, confidence, market_mood
		FROM recommendations
		WHERE rec_date = $1
		ORDER BY rank
	`

	rows, err := r.pool.Query(ctx, query, latest.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	set := &contracts.RecommendationSet{GeneratedAt: latest}
	for rows.Next() {
		var rec contracts.Recommendation
		var rating string
		err := rows.Scan(&rec.Rank, &rec.Ticker, &rec.Sector, &rec.Price,
			&rec.FinalScore, &rating, &rec.Confidence, &set.MarketMood)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		rec.Rating = contracts.Rating(rating)
		set.Recommendations = append(set.Recommendations, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	set.TotalSelected = len(set.Recommendations)
	return set, nil
}

// TrackedRecommendation is a stored pick awaiting a performance check.
type TrackedRecommendation struct {
	ID         int64
	Date       time.Time
	Ticker     string
	EntryPrice float64
	FinalScore float64
}

// DueForCheck returns recommendations at least horizonDays old as of
// asOf that have no check recorded for that horizon yet.
func (r *Repository) DueForCheck(ctx context.Context, asOf time.Time, horizonDays int) ([]TrackedRecommendation, error) {
	cutoff := asOf.AddDate(0, 0, -horizonDays).Format("2006-01-02")

	query := `
		SELECT rec.id, rec.rec_date, rec.ticker, rec.price, rec.final_score
		FROM recommendations rec
		WHERE rec.rec_date <= $1
		  AND NOT EXISTS (
			SELECT 1 FROM performance_checks pc
			WHERE pc.recommendation_id = rec.id AND pc.horizon_days = $2
		  )
		ORDER BY rec.rec_date, rec.rank
	`

	rows, err := r.pool.Query(ctx, query, cutoff, horizonDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query due recommendations: %w", err)
	}
	defer rows.Close()

	due := make([]TrackedRecommendation, 0)
	for rows.Next() {
		var rec TrackedRecommendation
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Ticker, &rec.EntryPrice, &rec.FinalScore); err != nil {
			return nil, fmt.Errorf("failed to scan due recommendation: %w", err)
		}
		due = append(due, rec)
	}

	return due, rows.Err()
}

// PerformanceCheck is one realized-return measurement of a stored pick.
type PerformanceCheck struct {
	RecommendationID int64
	HorizonDays      int
	CheckDate        time.Time
	CheckPrice       float64
	ReturnPct        float64
	Outcome          contracts.Outcome
}

// SaveCheck stores a performance check. Re-checking the same
// recommendation and horizon is a no-op.
func (r *Repository) SaveCheck(ctx context.Context, check PerformanceCheck) error {
	query := `
		INSERT INTO performance_checks (
			recommendation_id, horizon_days, check_date, check_price, return_pct, outcome
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (recommendation_id, horizon_days) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		check.RecommendationID, check.HorizonDays,
		check.CheckDate.Format("2006-01-02"), check.CheckPrice,
		check.ReturnPct, string(check.Outcome),
	)
	if err != nil {
		return fmt.Errorf("failed to save performance check: %w", err)
	}

	return nil
}
