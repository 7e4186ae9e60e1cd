package account

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
	"github.com/BruksfildServices01/barber-sales/internal/infra/repository"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/testutil"
)

var (
	hasher = auth.NewHasher(bcrypt.MinCost)
	policy = Policy{MinPasswordLength: 6, DefaultResetPassword: "password"}
)

func bootstrap(t *testing.T) (*repository.AccountGormRepository, authz.Identity) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewAccountGormRepository(db)

	created, err := EnsureAdmin(context.Background(), repo, hasher, "admin", "admin123")
	if err != nil || !created {
		t.Fatalf("ensure admin = %v, %v", created, err)
	}
	admin, err := repo.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	return repo, authz.Identity{UserID: admin.ID, Username: admin.Username, Role: authz.RoleAdmin}
}

func identityOf(u *models.User) authz.Identity {
	return authz.Identity{
		UserID:                 u.ID,
		Username:               u.Username,
		Role:                   authz.Role(u.Role),
		BarberID:               u.BarberID,
		RequiresPasswordChange: u.RequiresPasswordChange,
	}
}

func TestEnsureAdminRunsOnce(t *testing.T) {
	repo, _ := bootstrap(t)

	created, err := EnsureAdmin(context.Background(), repo, hasher, "other", "secret")
	if err != nil || created {
		t.Fatalf("second bootstrap = %v, %v", created, err)
	}
}

func TestLogin(t *testing.T) {
	repo, _ := bootstrap(t)
	jwter := auth.NewJWTer("test-secret", "barber-sales", time.Hour)
	uc := NewLogin(repo, hasher, jwter)
	ctx := context.Background()

	for _, in := range []LoginInput{
		{Username: "admin", Password: "wrong"},
		{Username: "ghost", Password: "admin123"},
		{Username: "admin"},
	} {
		if _, err := uc.Execute(ctx, in); !httperr.IsBusiness(err, "invalid_credentials") {
			t.Fatalf("login %+v = %v", in, err)
		}
	}

	out, err := uc.Execute(ctx, LoginInput{Username: " admin ", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := jwter.Parse(out.Token)
	if err != nil || claims.UID != out.User.ID || claims.Role != models.RoleAdmin {
		t.Fatalf("claims = %+v, %v", claims, err)
	}
}

func TestCreateBarberUserAndChangePassword(t *testing.T) {
	repo, admin := bootstrap(t)
	ctx := context.Background()

	create := NewCreateBarberUser(repo, hasher, nil)
	missing := uint(77)
	if _, err := create.Execute(ctx, CreateBarberUserInput{Caller: admin, Username: "kojo", Password: "pw", BarberID: &missing}); !httperr.IsBusiness(err, "barber_not_found") {
		t.Fatalf("missing barber = %v", err)
	}

	u, err := create.Execute(ctx, CreateBarberUserInput{Caller: admin, Username: " kojo ", Password: "pw"})
	if err != nil || u.Username != "kojo" || !u.RequiresPasswordChange || u.Role != models.RoleBarber {
		t.Fatalf("create = %+v, %v", u, err)
	}

	_, err = create.Execute(ctx, CreateBarberUserInput{Caller: admin, Username: "kojo", Password: "pw"})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindConflict || !httperr.IsBusiness(err, "username_taken") {
		t.Fatalf("duplicate = %v", err)
	}

	if _, err := create.Execute(ctx, CreateBarberUserInput{Caller: identityOf(u), Username: "x", Password: "pw"}); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("barber creating users = %v", err)
	}

	change := NewChangePassword(repo, hasher, policy, nil)
	caller := identityOf(u)
	if err := change.Execute(ctx, ChangePasswordInput{Caller: caller, NewPassword: "short", ConfirmPassword: "short"}); !httperr.IsBusiness(err, "password_too_short") {
		t.Fatalf("short = %v", err)
	}
	if err := change.Execute(ctx, ChangePasswordInput{Caller: caller, NewPassword: "longenough", ConfirmPassword: "different"}); !httperr.IsBusiness(err, "password_mismatch") {
		t.Fatalf("mismatch = %v", err)
	}
	if err := change.Execute(ctx, ChangePasswordInput{Caller: caller, NewPassword: "longenough", ConfirmPassword: "longenough"}); err != nil {
		t.Fatalf("change: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil || got.RequiresPasswordChange || !hasher.Matches(got.PasswordHash, "longenough") {
		t.Fatalf("after change = %+v, %v", got, err)
	}
	if err := change.Execute(ctx, ChangePasswordInput{Caller: caller, NewPassword: "another1", ConfirmPassword: "another1"}); !httperr.IsBusiness(err, "password_change_not_required") {
		t.Fatalf("second change = %v", err)
	}
}

func TestResetAndDeleteUser(t *testing.T) {
	repo, admin := bootstrap(t)
	ctx := context.Background()

	u, err := NewCreateBarberUser(repo, hasher, nil).Execute(ctx, CreateBarberUserInput{Caller: admin, Username: "esi", Password: "first-pass"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SetPassword(ctx, u.ID, u.PasswordHash, false); err != nil {
		t.Fatalf("clear flag: %v", err)
	}

	reset := NewResetUserPassword(repo, hasher, policy, nil)
	if err := reset.Execute(ctx, ResetUserPasswordInput{Caller: admin, UserID: 999}); !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("reset missing = %v", err)
	}
	if err := reset.Execute(ctx, ResetUserPasswordInput{Caller: admin, UserID: u.ID}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ := repo.GetByID(ctx, u.ID)
	if !got.RequiresPasswordChange || !hasher.Matches(got.PasswordHash, "password") {
		t.Fatalf("after reset = %+v", got)
	}

	del := NewDeleteUser(repo, nil)
	err = del.Execute(ctx, DeleteUserInput{Caller: admin, UserID: admin.UserID})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindForbidden {
		t.Fatalf("delete admin = %v", err)
	}
	if err := del.Execute(ctx, DeleteUserInput{Caller: admin, UserID: u.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := del.Execute(ctx, DeleteUserInput{Caller: admin, UserID: u.ID}); !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("delete again = %v", err)
	}

	users, err := NewListUsers(repo).Execute(ctx, admin)
	if err != nil || len(users) != 1 {
		t.Fatalf("users = %+v, %v", users, err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	store := auth.NewMemoryRevocations()
	uc := NewLogout(store)
	caller := authz.Identity{UserID: 1, Role: authz.RoleAdmin}

	if err := uc.Execute(context.Background(), LogoutInput{Caller: caller, TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	revoked, _ := store.IsRevoked(context.Background(), "jti-1")
	if !revoked {
		t.Fatal("token not revoked")
	}

	if err := NewLogout(nil).Execute(context.Background(), LogoutInput{Caller: caller, TokenID: "jti-2"}); err != nil {
		t.Fatalf("logout without store: %v", err)
	}
}
