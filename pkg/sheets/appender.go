package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account: spreadsheet read/write and drive
// access to look documents up by name.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// Appender appends rows to one worksheet of a spreadsheet identified by its
// document name.
type Appender struct {
	sheets    *gsheets.Service
	drive     *drive.Service
	docName   string
	worksheet string

	mu            sync.Mutex
	spreadsheetID string
}

// NewAppender authenticates with a service-account JSON credential.
func NewAppender(ctx context.Context, serviceAccountJSON []byte, docName, worksheet string) (*Appender, error) {
	conf, err := google.JWTConfigFromJSON(serviceAccountJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("service account: %w", err)
	}
	client := conf.Client(ctx)

	return NewAppenderWithOptions(ctx, docName, worksheet, option.WithHTTPClient(client))
}

// NewAppenderWithOptions builds both API clients from the same options. Tests
// use it to point at a fake endpoint.
func NewAppenderWithOptions(ctx context.Context, docName, worksheet string, opts ...option.ClientOption) (*Appender, error) {
	sheetsSvc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}

	return &Appender{
		sheets:    sheetsSvc,
		drive:     driveSvc,
		docName:   docName,
		worksheet: worksheet,
	}, nil
}

// AppendRow adds one row after the last filled row of the worksheet.
func (a *Appender) AppendRow(ctx context.Context, values []interface{}) error {
	id, err := a.resolveID(ctx)
	if err != nil {
		return err
	}

	vr := &gsheets.ValueRange{Values: [][]interface{}{values}}
	_, err = a.sheets.Spreadsheets.Values.
		Append(id, quoteSheet(a.worksheet), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s/%s: %w", a.docName, a.worksheet, err)
	}
	return nil
}

// resolveID finds the spreadsheet by name once and caches the id.
func (a *Appender) resolveID(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.spreadsheetID != "" {
		return a.spreadsheetID, nil
	}

	list, err := a.drive.Files.List().
		Q(driveNameQuery(a.docName)).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("look up spreadsheet %q: %w", a.docName, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, a.docName)
	}

	a.spreadsheetID = list.Files[0].Id
	return a.spreadsheetID, nil
}

// driveNameQuery matches a non-trashed spreadsheet by exact name. Drive query
// strings escape backslashes before single quotes.
func driveNameQuery(name string) string {
	escaped := strings.ReplaceAll(name, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escaped, spreadsheetMimeType)
}

// quoteSheet turns a worksheet title into an A1 range covering the sheet.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
