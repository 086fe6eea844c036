package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"troffee-admin-console/internal/domain/auction"
	"troffee-admin-console/internal/domain/localtime"
)

// GetAuction retrieves an auction by ID
func (c *Client) GetAuction(ctx context.Context, id string) (*auction.Auction, error) {
	var a auction.Auction
	err := c.do(ctx, request{
		operation: "get_auction",
		method:    http.MethodGet,
		path:      "/auctions/" + url.PathEscape(id),
	}, &a)
	if err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = id
	}
	return &a, nil
}

// UpdateAuction sends a full multipart update of an auction
func (c *Client) UpdateAuction(ctx context.Context, id string, update auction.FullUpdate) error {
	body, contentType, err := encodeFullUpdate(update)
	if err != nil {
		return fmt.Errorf("failed to encode auction update: %w", err)
	}

	return c.do(ctx, request{
		operation:   "update_auction",
		method:      http.MethodPut,
		path:        "/auctions/" + url.PathEscape(id),
		body:        body,
		contentType: contentType,
	}, nil)
}

type endTimeBody struct {
	EndTime string `json:"endTime"`
}

// UpdateAuctionEndTime changes only the end time of an active auction
func (c *Client) UpdateAuctionEndTime(ctx context.Context, id string, endTime time.Time) error {
	payload, err := json.Marshal(endTimeBody{EndTime: localtime.FormatInstant(endTime)})
	if err != nil {
		return fmt.Errorf("failed to encode end time: %w", err)
	}

	return c.do(ctx, request{
		operation:   "update_auction_end_time",
		method:      http.MethodPut,
		path:        "/auctions/" + url.PathEscape(id) + "/endtime",
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, nil)
}

// DeleteAuction removes an auction
func (c *Client) DeleteAuction(ctx context.Context, id string) error {
	return c.do(ctx, request{
		operation: "delete_auction",
		method:    http.MethodDelete,
		path:      "/auctions/" + url.PathEscape(id),
	}, nil)
}

// encodeFullUpdate writes the form fields in the order of the edit form. Images are
// repeated "images" parts: file parts for uploads, text parts for existing references.
func encodeFullUpdate(u auction.FullUpdate) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct {
		name  string
		value string
	}{
		{"title", u.Title},
		{"category", u.Category},
		{"description", u.Description},
		{"startTime", localtime.FormatInstant(u.StartTime)},
		{"endTime", localtime.FormatInstant(u.EndTime)},
		{"startingPrice", strconv.FormatFloat(u.StartingPrice, 'f', -1, 64)},
		{"currency", u.Currency},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for _, img := range u.Images {
		if !img.IsUpload() {
			if err := w.WriteField("images", img.Ref); err != nil {
				return nil, "", err
			}
			continue
		}

		part, err := w.CreatePart(imageHeader(img))
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.WriteField("video", u.Video); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func imageHeader(img auction.Image) textproto.MIMEHeader {
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(img.Filename)))
	h.Set("Content-Type", contentType)
	return h
}
