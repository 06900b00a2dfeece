package sheets

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	maxRetries = 5
	maxBackoff = 60 * time.Second
)

// Client implements Store against one Google spreadsheet.
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewClient builds a Sheets client from an OAuth token source.
func NewClient(ts oauth2.TokenSource, spreadsheetID string) (*Client, error) {
	srv, err := sheetsapi.NewService(context.Background(), option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{service: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) GetRange(sheetName, a1Range string) ([][]string, error) {
	var resp *sheetsapi.ValueRange
	err := c.withBackoff(func() error {
		var err error
		resp, err = c.service.Spreadsheets.Values.Get(
			c.spreadsheetID,
			sheetName+"!"+a1Range,
		).Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return nil, remoteError("read range", err)
	}
	return toStrings(resp.Values), nil
}

func (c *Client) AppendRow(sheetName, a1Range string, row []string) error {
	err := c.withBackoff(func() error {
		_, err := c.service.Spreadsheets.Values.Append(
			c.spreadsheetID,
			sheetName+"!"+a1Range,
			&sheetsapi.ValueRange{Values: [][]interface{}{toInterfaces(row)}},
		).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").
			Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return remoteError("append row", err)
	}
	return nil
}

func (c *Client) UpdateRange(sheetName, a1Range string, values [][]string) error {
	matrix := make([][]interface{}, len(values))
	for i, row := range values {
		matrix[i] = toInterfaces(row)
	}
	err := c.withBackoff(func() error {
		_, err := c.service.Spreadsheets.Values.Update(
			c.spreadsheetID,
			sheetName+"!"+a1Range,
			&sheetsapi.ValueRange{Values: matrix},
		).ValueInputOption("USER_ENTERED").Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return remoteError("update range", err)
	}
	return nil
}

func (c *Client) DeleteRows(sheetID int64, startIndex, endIndex int64) error {
	req := &sheetsapi.Request{
		DeleteDimension: &sheetsapi.DeleteDimensionRequest{
			Range: &sheetsapi.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: startIndex,
				EndIndex:   endIndex,
			},
		},
	}
	err := c.withBackoff(func() error {
		_, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID,
			&sheetsapi.BatchUpdateSpreadsheetRequest{
				Requests: []*sheetsapi.Request{req},
			}).Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return remoteError("delete rows", err)
	}
	return nil
}

func (c *Client) SheetMetadata() ([]SheetInfo, error) {
	var ss *sheetsapi.Spreadsheet
	err := c.withBackoff(func() error {
		var err error
		ss, err = c.service.Spreadsheets.Get(c.spreadsheetID).
			Context(context.Background()).Do()
		return err
	})
	if err != nil {
		return nil, remoteError("get metadata", err)
	}
	tabs := make([]SheetInfo, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		tabs = append(tabs, SheetInfo{
			Title:   sh.Properties.Title,
			SheetID: sh.Properties.SheetId,
		})
	}
	return tabs, nil
}

// withBackoff retries fn only when Google reports rate limiting. Everything
// else is returned immediately: failed writes stay failed until a user
// retries them.
func (c *Client) withBackoff(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Printf("Rate limited by Google Sheets API, retrying in %v...", backoff)
			time.Sleep(backoff)
			continue
		}
		return err
	}
	return err
}

// remoteError keeps the remote service's message when it provides one.
func remoteError(op string, err error) error {
	if gErr, ok := err.(*googleapi.Error); ok && gErr.Message != "" {
		return fmt.Errorf("%s: %s", op, gErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
