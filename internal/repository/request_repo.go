package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amoryapp/amory-backend/internal/db"
)

// RequestRepository provides data access for message requests.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(database *gorm.DB) *RequestRepository {
	return &RequestRepository{db: database}
}

// Create inserts the sender -> receiver request. Returns false when a
// request for this ordered pair already exists (the caller surfaces that
// as a duplicate-request failure).
func (r *RequestRepository) Create(ctx context.Context, senderID, receiverID uint64) (created bool, err error) {
	req := db.MessageRequest{SenderID: senderID, ReceiverID: receiverID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sender_id"}, {Name: "receiver_id"}},
			DoNothing: true,
		}).
		Create(&req)
	return res.RowsAffected > 0, res.Error
}

// Get fetches the request for the ordered pair, or nil when none exists.
func (r *RequestRepository) Get(ctx context.Context, senderID, receiverID uint64) (*db.MessageRequest, error) {
	var req db.MessageRequest
	err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetBetween fetches whichever request exists between the two users in
// either direction, or nil.
func (r *RequestRepository) GetBetween(ctx context.Context, x, y uint64) (*db.MessageRequest, error) {
	var req db.MessageRequest
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", x, y, y, x).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Accept transitions the request to accepted. Accepting twice keeps the
// original acceptance timestamp; the transition never reverts.
func (r *RequestRepository) Accept(ctx context.Context, senderID, receiverID uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db.MessageRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND accepted = ?", senderID, receiverID, false).
		Updates(map[string]interface{}{"accepted": true, "accepted_at": at}).Error
}
