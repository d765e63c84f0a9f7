// FILE: internal/entity/audit_entity.go
package entity

import "time"

// AuditTimestampLayout renders as YYYY-MM-DD HH:MM:SS.
const AuditTimestampLayout = "2006-01-02 15:04:05"

// LoginAuditRow is appended once per successful login and never updated.
type LoginAuditRow struct {
	Username  string
	Timestamp string
}

func NewLoginAuditRow(username string, at time.Time, loc *time.Location) LoginAuditRow {
	return LoginAuditRow{
		Username:  username,
		Timestamp: at.In(loc).Format(AuditTimestampLayout),
	}
}

// Values is the spreadsheet row in column order.
func (r LoginAuditRow) Values() []interface{} {
	return []interface{}{r.Username, r.Timestamp}
}
