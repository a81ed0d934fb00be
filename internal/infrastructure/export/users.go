// Package export streams the user directory as newline-delimited JSON.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
)

const DefaultPageSize = 100

// Lister is satisfied by *application.ListUsers.
type Lister interface {
	Execute(ctx context.Context, req application.ListUsersRequest) (*application.ListUsersResponse, error)
}

// UserExporter pages through the user list and writes one JSON object per
// line. Password hashes never leave the store: only the public view is written.
type UserExporter struct {
	Users    Lister
	PageSize int
}

func NewUserExporter(users Lister, pageSize int) *UserExporter {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &UserExporter{Users: users, PageSize: pageSize}
}

// Export writes every user to w and returns how many were written.
func (e *UserExporter) Export(ctx context.Context, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	written := 0
	for offset := 0; ; offset += e.PageSize {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		page, err := e.Users.Execute(ctx, application.ListUsersRequest{Offset: offset, Limit: e.PageSize})
		if err != nil {
			return written, fmt.Errorf("list users at offset %d: %w", offset, err)
		}
		for _, u := range page.Users {
			if err := enc.Encode(u); err != nil {
				return written, err
			}
			written++
		}
		if len(page.Users) < e.PageSize || offset+len(page.Users) >= page.Total {
			return written, nil
		}
	}
}
