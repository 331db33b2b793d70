package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *entities.User) error
	getByIDFn       func(ctx context.Context, id string) (*entities.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*entities.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*entities.User, error)
	updateFn        func(ctx context.Context, user *entities.User) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

type mockJWTService struct{}

func (m *mockJWTService) GenerateTokenUser(userId string, role string) string {
	return "token-" + userId
}

func (m *mockJWTService) ValidateTokenUser(token string) (*jwtlib.Token, error) {
	return nil, errors.New("not implemented")
}

func (m *mockJWTService) GetUserIDByToken(token string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

type mockS3 struct {
	deletedKey string
}

func (m *mockS3) UploadBytes(fileName string, data []byte, contentType string, folder string, allowTypes ...string) (string, error) {
	return folder + "/" + fileName + ".png", nil
}

func (m *mockS3) DeleteFile(objectKey string) error {
	m.deletedKey = objectKey
	return nil
}

func (m *mockS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example.com/" + objectKey
}

func (m *mockS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.example.com/"
	if len(link) > len(prefix) && link[:len(prefix)] == prefix {
		return link[len(prefix):]
	}
	return ""
}

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     "chef@example.com",
		Username:  "chef",
		FirstName: "Ivan",
		LastName:  "Ivanov",
		Password:  "secret123",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var stored *entities.User
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user *entities.User) error {
			stored = user
			return nil
		},
	}
	svc := NewUserService(repo, &mockJWTService{}, &mockS3{})

	res, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if stored.Password == "secret123" {
		t.Fatal("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.Role != domain.RoleUser {
		t.Fatalf("new users must get the user role, got %q", stored.Role)
	}
	if res.Email != "chef@example.com" || res.Username != "chef" {
		t.Fatalf("unexpected projection: %+v", res)
	}
}

func TestRegister_TakenIdentifiers(t *testing.T) {
	repo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{Email: email}, nil
		},
	}
	svc := NewUserService(repo, &mockJWTService{}, &mockS3{})
	if _, err := svc.Register(context.Background(), registerRequest()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	repo = &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*entities.User, error) {
			return &entities.User{Username: username}, nil
		},
	}
	svc = NewUserService(repo, &mockJWTService{}, &mockS3{})
	if _, err := svc.Register(context.Background(), registerRequest()); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			if email == "chef@example.com" {
				return &entities.User{ID: userID, Email: email, Password: string(hashed), Role: domain.RoleUser}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewUserService(repo, &mockJWTService{}, &mockS3{})

	res, err := svc.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token != "token-"+userID.String() {
		t.Fatalf("unexpected token %q", res.Token)
	}

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("wrong password: expected ErrCredentialsInvalid, got %v", err)
	}

	// Unknown accounts answer identically to bad passwords.
	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("unknown email: expected ErrCredentialsInvalid, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	account := &entities.User{ID: userID, Password: string(hashed)}
	updated := false
	repo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id string) (*entities.User, error) {
			return account, nil
		},
		updateFn: func(ctx context.Context, user *entities.User) error {
			updated = true
			return nil
		},
	}
	svc := NewUserService(repo, &mockJWTService{}, &mockS3{})

	err = svc.SetPassword(context.Background(), domain.SetPasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pass"}, userID.String())
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if updated {
		t.Fatal("password must not change on a wrong current password")
	}

	err = svc.SetPassword(context.Background(), domain.SetPasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"}, userID.String())
	if err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}
	if !updated {
		t.Fatal("expected the account to be updated")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("new-pass")) != nil {
		t.Fatal("stored hash does not match the new password")
	}
}

func TestUpdateAvatar(t *testing.T) {
	userID := uuid.New()
	account := &entities.User{ID: userID}
	repo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id string) (*entities.User, error) {
			return account, nil
		},
	}
	svc := NewUserService(repo, &mockJWTService{}, &mockS3{})

	_, err := svc.UpdateAvatar(context.Background(), domain.UpdateAvatarRequest{Avatar: "not-a-data-uri"}, userID.String())
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for a malformed avatar, got %v", err)
	}

	res, err := svc.UpdateAvatar(context.Background(), domain.UpdateAvatarRequest{Avatar: "data:image/png;base64,aGVsbG8="}, userID.String())
	if err != nil {
		t.Fatalf("UpdateAvatar returned error: %v", err)
	}
	if res.Avatar == "" || account.AvatarURL == "" {
		t.Fatal("expected the avatar URL to be set")
	}
}

func TestDeleteAvatar(t *testing.T) {
	userID := uuid.New()
	account := &entities.User{ID: userID, AvatarURL: "https://bucket.example.com/avatars/avatar-x.png"}
	repo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id string) (*entities.User, error) {
			return account, nil
		},
	}
	s3 := &mockS3{}
	svc := NewUserService(repo, &mockJWTService{}, s3)

	if err := svc.DeleteAvatar(context.Background(), userID.String()); err != nil {
		t.Fatalf("DeleteAvatar returned error: %v", err)
	}
	if account.AvatarURL != "" {
		t.Fatal("avatar URL must be cleared")
	}
	if s3.deletedKey != "avatars/avatar-x.png" {
		t.Fatalf("expected stored object removed, got %q", s3.deletedKey)
	}
}
