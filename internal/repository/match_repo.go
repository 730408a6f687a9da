package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/engine"
)

// MatchRepository provides data access for materialized matches, keyed by
// canonical pair.
type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create materializes the match for the pair (x, y). The canonical-pair
// PK with DoNothing makes this safe to race: whichever writer wins, the
// loser sees created=false and must treat the match as detected, not as
// an error.
func (r *MatchRepository) Create(ctx context.Context, x, y uint64) (created bool, err error) {
	a, b := engine.CanonicalPair(x, y)
	match := db.Match{UserAID: a, UserBID: b}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&match)
	return res.RowsAffected > 0, res.Error
}

// Exists reports whether the pair (x, y) is matched.
func (r *MatchRepository) Exists(ctx context.Context, x, y uint64) (bool, error) {
	a, b := engine.CanonicalPair(x, y)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the match for the pair (x, y). Deleting a missing match
// is a no-op.
func (r *MatchRepository) Delete(ctx context.Context, x, y uint64) error {
	a, b := engine.CanonicalPair(x, y)
	return r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Delete(&db.Match{}).Error
}
