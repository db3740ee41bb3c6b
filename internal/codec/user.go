package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeUsers converts fetched Users rows (header included) into typed
// records.
func DecodeUsers(rows [][]string) []model.User {
	data := dataRows(rows)
	users := make([]model.User, 0, len(data))
	for _, row := range data {
		users = append(users, model.User{
			Username:  cell(row, 0),
			Password:  cell(row, 1),
			LastLogin: cell(row, 2),
		})
	}
	return users
}

// EncodeUser serializes a user as one full-width row.
func EncodeUser(u model.User) []string {
	return []string{u.Username, u.Password, u.LastLogin}
}
