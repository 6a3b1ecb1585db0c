package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch-go-Orurh/internal/apperr"
	"dispatch-go-Orurh/internal/domain"
)

const jobColumns = `
	j.id, j.order_id, j.shop_id, j.shop_order_id, j.shop_lat, j.shop_lon,
	j.status, j.assigned_courier, j.accepted_at, j.deadline,
	j.round, j.next_round_at, j.version, j.created_at, j.updated_at, j.declined,
	COALESCE((SELECT array_agg(o.courier_id ORDER BY o.seq)
	          FROM dispatch_offers o WHERE o.job_id = j.id), '{}')`

// JobRepo stores dispatch jobs in Postgres. Status changes are guarded by the
// version column; offers live in dispatch_offers keyed by (job_id, courier_id).
type JobRepo struct{ db *pgxpool.Pool }

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo { return &JobRepo{db: db} }

// Create inserts a new job.
func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO dispatch_jobs (
			id, order_id, shop_id, shop_order_id, shop_lat, shop_lon,
			status, assigned_courier, accepted_at, deadline,
			round, next_round_at, version, created_at, updated_at, declined
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		j.ID, j.OrderID, j.ShopID, j.ShopOrderID, j.ShopLocation.Lat, j.ShopLocation.Lon,
		j.Status, j.AssignedCourier, j.AcceptedAt, j.Deadline,
		j.Round, j.NextRoundAt, j.Version, j.CreatedAt, j.UpdatedAt, declinedOrEmpty(j.Declined),
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrDuplicateJob
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Get returns the job by ID, or nil if it does not exist.
func (r *JobRepo) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM dispatch_jobs j WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return j, nil
}

// FindActive returns the broadcasting or assigned job of a shop-portion, or nil.
func (r *JobRepo) FindActive(ctx context.Context, orderID, shopOrderID string) (*domain.Job, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM dispatch_jobs j
		WHERE j.order_id = $1 AND j.shop_order_id = $2
		  AND j.status IN ('broadcasting', 'assigned')`, orderID, shopOrderID)
	j, err := scanJob(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active job %s/%s: %w", orderID, shopOrderID, err)
	}
	return j, nil
}

// CompareAndSwap updates the status fields of j if nobody wrote since
// expectedVersion was read.
func (r *JobRepo) CompareAndSwap(ctx context.Context, j *domain.Job, expectedVersion int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE dispatch_jobs
		SET
			status           = $3,
			assigned_courier = $4,
			accepted_at      = $5,
			deadline         = $6,
			round            = $7,
			next_round_at    = $8,
			updated_at       = $9,
			declined         = $10,
			version          = version + 1
		WHERE id = $1 AND version = $2`,
		j.ID, expectedVersion,
		j.Status, j.AssignedCourier, j.AcceptedAt, j.Deadline,
		j.Round, j.NextRoundAt, j.UpdatedAt, declinedOrEmpty(j.Declined),
	)
	if err != nil {
		if IsCheckViolation(err) {
			return false, fmt.Errorf("update job %s: %w", j.ID, apperr.ErrIllegalTransition)
		}
		return false, fmt.Errorf("update job %s: %w", j.ID, err)
	}
	return ct.RowsAffected() == 1, nil
}

// AddOffers inserts offers for couriers not offered yet. The job row is share
// locked, so an accept committing concurrently either sees these offers or
// makes the insert a no-op.
func (r *JobRepo) AddOffers(ctx context.Context, jobID string, courierIDs []int64, at time.Time) ([]int64, error) {
	if len(courierIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO dispatch_offers (job_id, courier_id, offered_at)
		SELECT j.id, c.courier_id, $3
		FROM dispatch_jobs j
		CROSS JOIN unnest($2::bigint[]) WITH ORDINALITY AS c(courier_id, ord)
		WHERE j.id = $1 AND j.status = 'broadcasting'
		ORDER BY c.ord
		FOR SHARE OF j
		ON CONFLICT (job_id, courier_id) DO NOTHING
		RETURNING courier_id`,
		jobID, courierIDs, at,
	)
	if err != nil {
		return nil, fmt.Errorf("add offers to job %s: %w", jobID, err)
	}
	inserted, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("add offers to job %s: %w", jobID, err)
	}

	// RETURNING order is unspecified; keep the caller's order
	got := make(map[int64]struct{}, len(inserted))
	for _, id := range inserted {
		got[id] = struct{}{}
	}
	out := make([]int64, 0, len(inserted))
	for _, id := range courierIDs {
		if _, ok := got[id]; ok {
			out = append(out, id)
			delete(got, id)
		}
	}
	return out, nil
}

// ListDue returns broadcasting jobs whose current round timed out.
func (r *JobRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM dispatch_jobs j
		WHERE j.status = 'broadcasting' AND j.next_round_at <= $1
		ORDER BY j.next_round_at, j.id
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due jobs: %w", err)
	}
	return collectJobs(rows)
}

// ListActiveByCourier returns assigned jobs of the courier.
func (r *JobRepo) ListActiveByCourier(ctx context.Context, courierID int64) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM dispatch_jobs j
		WHERE j.assigned_courier = $1 AND j.status = 'assigned'
		ORDER BY j.accepted_at, j.id`, courierID)
	if err != nil {
		return nil, fmt.Errorf("list jobs of courier %d: %w", courierID, err)
	}
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.OrderID, &j.ShopID, &j.ShopOrderID, &j.ShopLocation.Lat, &j.ShopLocation.Lon,
		&j.Status, &j.AssignedCourier, &j.AcceptedAt, &j.Deadline,
		&j.Round, &j.NextRoundAt, &j.Version, &j.CreatedAt, &j.UpdatedAt, &j.Declined,
		&j.BroadcastSet,
	)
	if err != nil {
		return nil, err
	}

	j.CreatedAt = j.CreatedAt.UTC()
	j.UpdatedAt = j.UpdatedAt.UTC()
	j.AcceptedAt = utcPtr(j.AcceptedAt)
	j.Deadline = utcPtr(j.Deadline)
	j.NextRoundAt = utcPtr(j.NextRoundAt)
	return &j, nil
}

// declined is NOT NULL; a nil slice would be sent as NULL
func declinedOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
