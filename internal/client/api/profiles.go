package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/dmitrijs2005/fitlog/internal/common"
)

// Profiles adds photo upload to the generic profile resource.
type Profiles struct {
	*Resource[models.Profile]
}

// AddPhoto uploads a profile photo as multipart form field "photo" and
// returns the photo URL the server stored.
func (p *Profiles) AddPhoto(ctx context.Context, profileID, filename string, photo io.Reader) (string, error) {
	if profileID == "" {
		return "", common.ErrMissingID
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return "", fmt.Errorf("add photo: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return "", fmt.Errorf("add photo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("add photo: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.c.baseURL+p.item(profileID)+"/add-photo", &buf)
	if err != nil {
		return "", fmt.Errorf("add photo: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var photoURL string
	if err := p.c.roundTrip(ctx, req, &photoURL, true); err != nil {
		return "", err
	}
	return photoURL, nil
}
