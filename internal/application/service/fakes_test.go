package service

import (
	"context"
	"mime/multipart"
	"os"
	"sort"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/pkg/pagination"
	"github.com/fuelsight/fuelsight-api/pkg/slip"
	"github.com/google/uuid"
)

// fakeReceiptRepo is an in-memory ReceiptRepository
type fakeReceiptRepo struct {
	receipts []entity.Receipt
}

func (f *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	for i := range receipt.Nozzles {
		receipt.Nozzles[i].ReceiptID = receipt.ID
	}
	f.receipts = append(f.receipts, *receipt)
	return nil
}

func (f *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			r := f.receipts[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error {
	for i := range f.receipts {
		if f.receipts[i].ID == receipt.ID {
			f.receipts[i] = *receipt
			return nil
		}
	}
	return nil
}

func (f *fakeReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			f.receipts = append(f.receipts[:i], f.receipts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeReceiptRepo) List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	owned := f.owned(ownerID)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].ProcessedAt.After(owned[j].ProcessedAt)
	})
	return owned, int64(len(owned)), nil
}

func (f *fakeReceiptRepo) ListAll(ctx context.Context, ownerID uuid.UUID) ([]entity.Receipt, error) {
	owned := f.owned(ownerID)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].ProcessedAt.Before(owned[j].ProcessedAt)
	})
	return owned, nil
}

func (f *fakeReceiptRepo) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.Receipt, error) {
	owned := f.owned(ownerID)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].ProcessedAt.After(owned[j].ProcessedAt)
	})
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (f *fakeReceiptRepo) owned(ownerID uuid.UUID) []entity.Receipt {
	var owned []entity.Receipt
	for _, r := range f.receipts {
		if r.OwnerID == ownerID {
			owned = append(owned, r)
		}
	}
	return owned
}

// fakeSettingsRepo is an in-memory SettingsRepository
type fakeSettingsRepo struct {
	settings map[uuid.UUID]*entity.StationSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[uuid.UUID]*entity.StationSettings{}}
}

func (f *fakeSettingsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.StationSettings, error) {
	if s, ok := f.settings[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *entity.StationSettings) error {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	copied := *settings
	f.settings[settings.UserID] = &copied
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *entity.StationSettings) error {
	copied := *settings
	f.settings[settings.UserID] = &copied
	return nil
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	return nil
}

// fakeFileStore writes real temp files so the extractor fallback can read
// the image bytes back.
type fakeFileStore struct {
	saved   []string
	removed []string
}

func (f *fakeFileStore) Save(ownerID uuid.UUID, file *multipart.FileHeader) (string, error) {
	tmp, err := os.CreateTemp("", "slip-*.png")
	if err != nil {
		return "", err
	}
	tmp.WriteString("image-bytes")
	tmp.Close()
	f.saved = append(f.saved, tmp.Name())
	return tmp.Name(), nil
}

func (f *fakeFileStore) Remove(path string) error {
	f.removed = append(f.removed, path)
	return os.Remove(path)
}

// fakeRecognizer returns canned OCR text
type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) RecognizeText(ctx context.Context, imagePath string) (string, error) {
	return f.text, f.err
}

// fakeExtractor returns a canned structured slip
type fakeExtractor struct {
	slip   *slip.Slip
	err    error
	called bool
}

func (f *fakeExtractor) ExtractSlip(ctx context.Context, imageData []byte) (*slip.Slip, error) {
	f.called = true
	return f.slip, f.err
}

func (f *fakeExtractor) Close() error { return nil }

// fakeMailer records sent alerts
type fakeMailer struct {
	alerts []string
}

func (f *fakeMailer) SendUnreadableSlipAlert(toEmail, fileName string) error {
	f.alerts = append(f.alerts, toEmail)
	return nil
}
