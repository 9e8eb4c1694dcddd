package actions

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/executor"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

func (h *handlers) userDefinitions() []registry.Definition {
	return []registry.Definition{
		{
			Action: model.CommandAction{
				ID:          CreateUser,
				Title:       "Create User",
				Description: "Add a new user to the platform",
				Category:    model.CategoryUsers,
				Keywords:    []string{"user", "create", "add", "new"},
				Impact:      model.ImpactMedium,
				Shortcut:    "Ctrl+U",
				Fields: []model.Field{
					{Name: "name", Label: "Full Name", Type: model.FieldText, Placeholder: "Jane Doe", Required: true},
					{Name: "email", Label: "Email", Type: model.FieldEmail, Placeholder: "jane@example.com", Required: true},
					{Name: "role", Label: "Role", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "user", Label: "User"},
						{Value: "admin", Label: "Admin"},
						{Value: "head_administrator", Label: "Head Administrator"},
					}},
					{Name: "status", Label: "Status", Type: model.FieldSelect, Required: true, Options: []model.Option{
						{Value: "active", Label: "Active"},
						{Value: "inactive", Label: "Inactive"},
						{Value: "pending", Label: "Pending"},
					}},
				},
				SuccessMessage: "User created successfully!",
				FailureMessage: "Failed to create user",
			},
			Handler: h.createUser,
		},
		{
			Action: model.CommandAction{
				ID:                   SuspendUser,
				Title:                "Suspend User",
				Description:          "Temporarily disable a user account",
				Category:             model.CategoryUsers,
				Keywords:             []string{"user", "suspend", "disable", "block"},
				Impact:               model.ImpactHigh,
				RequiresConfirmation: true,
				Fields: []model.Field{
					{Name: "userId", Label: "User ID", Type: model.FieldText, Placeholder: "user-123", Required: true},
				},
				SuccessMessage: "User suspended successfully!",
				FailureMessage: "Failed to suspend user",
			},
			Handler: h.suspendUser,
		},
		{
			Action: model.CommandAction{
				ID:          BulkUserImport,
				Title:       "Bulk Import Users",
				Description: "Import multiple users at once from a CSV file",
				Category:    model.CategoryUsers,
				Keywords:    []string{"user", "import", "bulk", "csv"},
				Impact:      model.ImpactHigh,
				Fields: []model.Field{
					{Name: "file", Label: "CSV File", Type: model.FieldFile, Placeholder: "name,email,role", Required: true},
				},
				FailureMessage: "Failed to process CSV file",
			},
			Handler: h.bulkUserImport,
		},
	}
}

func (h *handlers) createUser(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	payload := map[string]string{
		"name":   strings.TrimSpace(data.Get("name")),
		"email":  strings.TrimSpace(data.Get("email")),
		"role":   orDefault(data.Get("role"), "user"),
		"status": orDefault(data.Get("status"), "active"),
	}
	var user entity
	if err := h.call(ctx, http.MethodPost, "/api/users", payload, &user); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: user}, nil
}

func (h *handlers) suspendUser(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	id := pathID(data.Get("userId"))
	user, err := h.get(ctx, "/api/users/"+id, "User not found")
	if err != nil {
		return nil, err
	}
	var updated entity
	if err := h.call(ctx, http.MethodPut, "/api/users/"+id, user.with("status", "inactive"), &updated); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: updated}, nil
}

// importRow is one user parsed from the bulk import CSV.
type importRow struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// parseUserCSV reads name,email,role rows. The first line is a header and is
// skipped. Rows without a name or email are dropped and the role defaults to user.
func parseUserCSV(text string) ([]importRow, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows []importRow
	for line := 0; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 0 {
			continue
		}
		row := importRow{Role: "user", Status: "active"}
		if len(rec) > 0 {
			row.Name = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			row.Email = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 {
			row.Role = orDefault(rec[2], "user")
		}
		if row.Name == "" || row.Email == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (h *handlers) bulkUserImport(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	rows, err := parseUserCSV(data.Get("file"))
	if err != nil {
		return nil, executor.WrapPublic("Failed to process CSV file", err)
	}

	// Only the first row per email is created; repeats are reported as failed items.
	byEmail := make(map[string]importRow, len(rows))
	emails := make([]string, 0, len(rows))
	var dups []string
	for _, row := range rows {
		if _, dup := byEmail[row.Email]; dup {
			dups = append(dups, row.Email)
			continue
		}
		byEmail[row.Email] = row
		emails = append(emails, row.Email)
	}

	out := executor.FanOut(ctx, emails, func(ctx context.Context, email string) error {
		return h.call(ctx, http.MethodPost, "/api/users", byEmail[email], nil)
	})
	for _, email := range dups {
		out.Items = append(out.Items, model.ItemResult{ItemID: email, Error: "duplicate email in CSV"})
	}
	out.Message = fmt.Sprintf("Successfully imported %d users!", model.CountSucceeded(out.Items))
	return out, nil
}
