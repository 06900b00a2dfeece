// Package adjuntos uploads document attachments to a fixed Google Drive
// folder and links them back into the document sheet.
package adjuntos

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ElberJesus09/rectorado/pkg/session"
	"github.com/ElberJesus09/rectorado/pkg/tramites"
)

const defaultMimeType = "application/pdf"

// Result describes one uploaded attachment.
type Result struct {
	FileID   string `json:"fileId"`
	FileLink string `json:"fileLink"`
}

// CellWriter is the slice of the documents adapter the uploader needs to
// store a link on a record.
type CellWriter interface {
	EditCell(index int, key, value string) error
}

// Uploader pushes files into one Drive folder.
type Uploader struct {
	service  *driveapi.Service
	session  *session.Session
	folderID string
}

// NewUploader builds a Drive client from an OAuth token source. Every upload
// lands in folderID.
func NewUploader(ts oauth2.TokenSource, sess *session.Session, folderID string) (*Uploader, error) {
	srv, err := driveapi.NewService(context.Background(), option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Uploader{service: srv, session: sess, folderID: folderID}, nil
}

// Upload stores content under name in the configured folder and returns the
// file id together with its share link. An empty mimeType falls back to PDF,
// the only attachment type the office actually files.
func (u *Uploader) Upload(name, mimeType string, content io.Reader) (Result, error) {
	if err := u.session.Check(); err != nil {
		return Result{}, err
	}
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	meta := &driveapi.File{
		Name:    name,
		Parents: []string{u.folderID},
	}
	created, err := u.service.Files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id").
		Context(context.Background()).Do()
	if err != nil {
		return Result{}, remoteError("upload file", err)
	}
	log.Debugf("Uploaded %q as Drive file %s", name, created.Id)
	return Result{FileID: created.Id, FileLink: ShareLink(created.Id)}, nil
}

// Attach uploads content and writes the resulting share link into the
// document's link column.
func (u *Uploader) Attach(docs CellWriter, index int, name, mimeType string, content io.Reader) (Result, error) {
	res, err := u.Upload(name, mimeType, content)
	if err != nil {
		return Result{}, err
	}
	if err := docs.EditCell(index, tramites.KeyEnlace, res.FileLink); err != nil {
		return Result{}, err
	}
	return res, nil
}

// ShareLink builds the anyone-with-the-link viewer URL for a Drive file.
func ShareLink(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view?usp=sharing", fileID)
}

func remoteError(op string, err error) error {
	if gErr, ok := err.(*googleapi.Error); ok && gErr.Message != "" {
		return fmt.Errorf("%s: %s", op, gErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
