package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/repository"
)

// Service implements profile reads and owner-side edits.
type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// Get returns the public view of a profile with images attached.
func (s *Service) Get(ctx context.Context, userID uint64) (View, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return NewView(user), nil
}

// Update overwrites the viewer's editable profile fields.
func (s *Service) Update(ctx context.Context, user *db.User) error {
	return s.users.UpdateProfile(ctx, user)
}

// AddImage attaches a new photo to the viewer's profile. The object key
// is generated here; the caller supplies the serving URL the upload
// produced.
func (s *Service) AddImage(ctx context.Context, userID uint64, url string) (db.UserImage, error) {
	img := db.UserImage{
		UserID:    userID,
		ObjectKey: uuid.NewString(),
		URL:       url,
	}
	if err := s.users.AddImage(ctx, &img); err != nil {
		return db.UserImage{}, err
	}
	return img, nil
}
