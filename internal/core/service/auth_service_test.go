package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
	"github.com/bandhub/bandhub/internal/infrastructure/hasher"
)

type stubUserRepo struct {
	users       map[string]*domain.User
	nextID      int64
	existsErr   error
	insertErr   error
	inserted    int
	existsCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.existsCalls++
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubUserRepo) CountByEmail(_ context.Context, email string) (int, error) {
	if _, ok := r.users[email]; ok {
		return 1, nil
	}
	return 0, nil
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (int64, error) {
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	if _, ok := r.users[u.Email]; ok {
		return 0, domain.ErrEmailTaken
	}
	c := cloneUser(u)
	c.ID = r.nextID
	r.nextID++
	r.users[c.Email] = c
	r.inserted++
	return c.ID, nil
}

// plainHasher keeps tests fast; bcrypt itself is covered by the hasher package.
type plainHasher struct {
	hashErr   error
	verifyErr error
}

func (h plainHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h plainHasher) Verify(plain, hash string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "hashed:"+plain, nil
}

func newAuthSvc(repo *stubUserRepo, hasher ports.PasswordHasher) *AuthService {
	return NewAuthService(repo, hasher, AuthOptions{RequireFullName: true}, zerolog.Nop())
}

func validInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:      "alice",
		Password:  "secret1",
		Email:     "a@example.com",
		FirstName: "A",
		LastName:  "B",
	}
}

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	return verr.Messages
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	user, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1, got %d", user.ID)
	}
	stored := repo.users["a@example.com"]
	if stored.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear text")
	}
	if stored.FirstName != "A" || stored.LastName != "B" || stored.Name != "alice" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	in := validInput()
	in.Password = "short"
	_, err := svc.Register(context.Background(), in)

	msgs := validationMessages(t, err)
	if !reflect.DeepEqual(msgs, []string{MsgPasswordTooShort}) {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if repo.inserted != 0 {
		t.Fatalf("expected no insert, got %d", repo.inserted)
	}
}

func TestAuthService_Register_PasswordIsTrimmed(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	in := validInput()
	in.Password = "  abc  "
	_, err := svc.Register(context.Background(), in)

	msgs := validationMessages(t, err)
	if !reflect.DeepEqual(msgs, []string{MsgPasswordTooShort}) {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestAuthService_Register_PasswordLengthBoundary(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"abcdef", true},
		{"  abcdef  ", true},
		{"abcde", false},
		{" abcde ", false},
	}
	for _, tc := range cases {
		repo := newStubUserRepo()
		in := validInput()
		in.Password = tc.password
		_, err := newAuthSvc(repo, plainHasher{}).Register(context.Background(), in)
		if tc.ok && err != nil {
			t.Fatalf("password %q: unexpected error %v", tc.password, err)
		}
		if !tc.ok {
			if msgs := validationMessages(t, err); !reflect.DeepEqual(msgs, []string{MsgPasswordTooShort}) {
				t.Fatalf("password %q: unexpected messages %v", tc.password, msgs)
			}
		}
	}
}

func TestAuthService_Register_LongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, hasher.NewBcrypt(bcrypt.MinCost))

	in := validInput()
	in.Password = strings.Repeat("p", 80)
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register with 80-byte password: %v", err)
	}
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: in.Email, Password: in.Password}); err != nil {
		t.Fatalf("login with 80-byte password: %v", err)
	}
}

func TestAuthService_Register_InvalidEmailSkipsLookup(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	in := validInput()
	in.Email = "not-an-email"
	_, err := svc.Register(context.Background(), in)

	if msgs := validationMessages(t, err); !reflect.DeepEqual(msgs, []string{MsgInvalidEmail}) {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if repo.existsCalls != 0 {
		t.Fatalf("expected no store lookup for a malformed email, got %d", repo.existsCalls)
	}
}

func TestAuthService_Register_CollectsAllMessages(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "   ",
		Password: "",
		Email:    "not-an-email",
	})

	want := []string{
		MsgInvalidEmail,
		MsgNameEmpty,
		MsgPasswordTooShort,
		MsgFirstNameRequired,
		MsgLastNameRequired,
	}
	if msgs := validationMessages(t, err); !reflect.DeepEqual(msgs, want) {
		t.Fatalf("expected %v, got %v", want, msgs)
	}
}

func TestAuthService_Register_FullNameOptional(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, plainHasher{}, AuthOptions{RequireFullName: false}, zerolog.Nop())

	in := validInput()
	in.FirstName, in.LastName = "", ""
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("expected success without full name, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), validInput())
	if msgs := validationMessages(t, err); !reflect.DeepEqual(msgs, []string{MsgEmailInUse}) {
		t.Fatalf("unexpected messages: %v", msgs)
	}
	if repo.inserted != 1 {
		t.Fatalf("expected a single row, got %d", repo.inserted)
	}
}

func TestAuthService_Register_LostRaceIsDuplicate(t *testing.T) {
	repo := newStubUserRepo()
	repo.insertErr = domain.ErrEmailTaken
	svc := newAuthSvc(repo, plainHasher{})

	_, err := svc.Register(context.Background(), validInput())
	if msgs := validationMessages(t, err); !reflect.DeepEqual(msgs, []string{MsgEmailInUse}) {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestAuthService_Register_InfrastructureErrors(t *testing.T) {
	boom := errors.New("boom")

	repo := newStubUserRepo()
	repo.existsErr = boom
	if _, err := newAuthSvc(repo, plainHasher{}).Register(context.Background(), validInput()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}

	repo = newStubUserRepo()
	if _, err := newAuthSvc(repo, plainHasher{hashErr: boom}).Register(context.Background(), validInput()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped hash error, got %v", err)
	}
	if repo.inserted != 0 {
		t.Fatalf("no user must be left behind after hash failure")
	}

	repo = newStubUserRepo()
	repo.insertErr = boom
	if _, err := newAuthSvc(repo, plainHasher{}).Register(context.Background(), validInput()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestAuthService_RegisterThenLogin_RealBcrypt(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, bcryptHasher{})

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Name != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	_, _ = svc.Register(context.Background(), validInput())
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "wrong!"}); err != domain.ErrInvalidPasswd {
		t.Fatalf("expected ErrInvalidPasswd, got %v", err)
	}
}

func TestAuthService_Login_ValidationErrors(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "  "})
	want := []string{MsgUnknownEmail, MsgPasswordEmpty}
	if msgs := validationMessages(t, err); !reflect.DeepEqual(msgs, want) {
		t.Fatalf("expected %v, got %v", want, msgs)
	}
}

func TestAuthService_Login_VerifyFailure(t *testing.T) {
	repo := newStubUserRepo()
	boom := errors.New("corrupt hash")
	_, _ = newAuthSvc(repo, plainHasher{}).Register(context.Background(), validInput())

	svc := newAuthSvc(repo, plainHasher{verifyErr: boom})
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@example.com", Password: "secret1"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped verify error, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, plainHasher{})
	_, _ = svc.Register(context.Background(), validInput())

	u, err := svc.CurrentUser(context.Background(), 1)
	if err != nil || u.Email != "a@example.com" {
		t.Fatalf("unexpected result: %+v %v", u, err)
	}
	if _, err := svc.CurrentUser(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

type bcryptHasher struct{}

func (bcryptHasher) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	return string(h), err
}

func (bcryptHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return err == nil, err
}
