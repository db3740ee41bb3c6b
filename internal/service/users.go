package service

import (
	"context"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetUsers returns every user.
func (s *Service) GetUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.api.GetRange(ctx, codec.UsersRange)
	if err != nil {
		return nil, s.translate(err, "users")
	}
	return codec.DecodeUsers(rows), nil
}

// ValidateCredentials checks a username/password pair against the Users
// sheet and reports whether it matches.
//
// The comparison is plaintext because that is what the sheet stores; a
// long-standing weakness of the data format, kept deliberately (see the
// model.User doc). On success the user's last-login cell is stamped
// best-effort: a failure there is logged and never fails the login.
func (s *Service) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	rows, err := s.api.GetRange(ctx, codec.UsersRange)
	if err != nil {
		return false, s.translate(err, "users")
	}

	users := codec.DecodeUsers(rows)
	for i, u := range users {
		if u.Username != username || u.Password != password {
			continue
		}

		s.stampLastLogin(ctx, i, username)
		return true, nil
	}

	return false, nil
}

// stampLastLogin writes the Last Login cell for the user at data index i.
func (s *Service) stampLastLogin(ctx context.Context, index int, username string) {
	cellRange := rangeForRow("Users!C:C", sheetRow(index))
	if err := s.api.UpdateRange(ctx, cellRange, [][]string{{s.timestamp()}}); err != nil {
		s.logger.Warn("failed to update last login",
			"username", username, "error", err)
		return
	}

	s.recordActivity(ctx, model.ActivityUserLogin, "User logged in", username, username, username)
}
