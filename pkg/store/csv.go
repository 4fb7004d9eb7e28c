package store

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/collegegate/collegegate/pkg/core"
)

// WriteUsersCSV writes the admin export: a header row followed by one
// row per user, in the order given.
func WriteUsersCSV(w io.Writer, users []User) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "email", "role", "mobile", "whatsapp", "specialization", "student_id", "banned", "created_at"}
	if err := cw.Write(header); err != nil {
		return core.NewTransportError("csv write failed", err)
	}
	for _, u := range users {
		row := []string{
			u.ID, u.Name, u.Email, string(u.Role), u.Mobile, u.WhatsApp,
			u.Specialization, u.StudentID, strconv.FormatBool(u.Banned),
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return core.NewTransportError("csv write failed", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return core.NewTransportError("csv write failed", err)
	}
	return nil
}
