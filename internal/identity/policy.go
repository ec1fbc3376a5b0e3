package identity

import (
	"context"
	"time"

	"schoolbook/internal/model"
)

type Policy struct {
	Kind      Kind
	TTL       time.Duration
	find      func(ctx context.Context, store Store, username string) (Account, error)
	saveToken func(ctx context.Context, store Store, id int64, token *string) error
}

// UserPolicy covers the generic users table. Registration is public, so user
// accounts never carry the admin claim whatever their role.
func UserPolicy(ttl time.Duration) Policy {
	return Policy{
		Kind: KindUser,
		TTL:  ttl,
		find: func(ctx context.Context, store Store, username string) (Account, error) {
			user, err := store.GetUserByUsername(ctx, username)
			if err != nil {
				return Account{}, err
			}
			return Account{
				Kind:         KindUser,
				ID:           user.ID,
				Username:     user.Username,
				PasswordHash: user.PasswordHash,
				Role:         user.Role,
				IsAdmin:      false,
			}, nil
		},
		saveToken: func(ctx context.Context, store Store, id int64, token *string) error {
			return store.SetUserLoginToken(ctx, id, token)
		},
	}
}

// TeacherPolicy covers the teachers table, where admin rights come from the
// is_admin column.
func TeacherPolicy(ttl time.Duration) Policy {
	return Policy{
		Kind: KindTeacher,
		TTL:  ttl,
		find: func(ctx context.Context, store Store, username string) (Account, error) {
			teacher, err := store.GetTeacherByUsername(ctx, username)
			if err != nil {
				return Account{}, err
			}
			return Account{
				Kind:         KindTeacher,
				ID:           teacher.ID,
				Username:     teacher.Username,
				PasswordHash: teacher.PasswordHash,
				Role:         model.RoleTeacher,
				IsAdmin:      teacher.IsAdmin,
			}, nil
		},
		saveToken: func(ctx context.Context, store Store, id int64, token *string) error {
			return store.SetTeacherToken(ctx, id, token)
		},
	}
}
