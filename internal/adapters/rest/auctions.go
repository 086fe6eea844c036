package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"troffee-admin-console/internal/domain/auction"
	"troffee-admin-console/internal/domain/shared"

	"github.com/gorilla/mux"
)

const (
	maxUploadSize = 32 << 20
	maxFieldSize  = 64 << 10
)

// GetAuctionEdit returns the edit view of an auction
func (h *Handler) GetAuctionEdit(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	session, err := h.editor.Open(r.Context(), auctionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer session.Close()

	respondJSON(w, http.StatusOK, session.View())
}

// UpdateAuction applies a multipart edit with local wall-clock times
func (h *Handler) UpdateAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	req, err := parseEditForm(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.submit(w, r, auctionID, req)
}

// UpdateAuctionEndTime changes the end time of an auction
func (h *Handler) UpdateAuctionEndTime(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	var body struct {
		EndTime string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.EndTime == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.submit(w, r, auctionID, auction.EditRequest{EndTime: &body.EndTime})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, auctionID string, req auction.EditRequest) {
	session, err := h.editor.Open(r.Context(), auctionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer session.Close()

	if err := session.Submit(r.Context(), req); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session.View())
}

// DeleteAuction deletes an upcoming or active auction
func (h *Handler) DeleteAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	session, err := h.editor.Open(r.Context(), auctionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer session.Close()

	if err := session.Delete(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Auction deleted successfully",
	})
}

// parseEditForm reads the edit form part by part so images keep their order
func parseEditForm(w http.ResponseWriter, r *http.Request) (auction.EditRequest, error) {
	var req auction.EditRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	mr, err := r.MultipartReader()
	if err != nil {
		return req, fmt.Errorf("expected multipart form: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return req, fmt.Errorf("failed to read form: %w", err)
		}

		if err := readEditPart(&req, part); err != nil {
			part.Close()
			return req, err
		}
		part.Close()
	}

	return req, nil
}

func readEditPart(req *auction.EditRequest, part *multipart.Part) error {
	name := part.FormName()

	if name == string(auction.FieldImages) && part.FileName() != "" {
		data, err := io.ReadAll(part)
		if err != nil {
			return fmt.Errorf("failed to read image %q: %w", part.FileName(), err)
		}
		req.Images = append(req.Images, auction.Image{
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(part, maxFieldSize))
	if err != nil {
		return fmt.Errorf("failed to read field %q: %w", name, err)
	}
	value := string(raw)

	switch auction.Field(name) {
	case auction.FieldTitle:
		req.Title = &value
	case auction.FieldCategory:
		req.Category = &value
	case auction.FieldDescription:
		req.Description = &value
	case auction.FieldCurrency:
		req.Currency = &value
	case auction.FieldVideo:
		req.Video = &value
	case auction.FieldStartTime:
		req.StartTime = &value
	case auction.FieldEndTime:
		req.EndTime = &value
	case auction.FieldStartingPrice:
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", shared.ErrInvalidPrice, value)
		}
		req.StartingPrice = &price
	case auction.FieldImages:
		req.Images = append(req.Images, auction.Image{Ref: value})
	default:
		return fmt.Errorf("%w: %q is not an auction field", shared.ErrFieldNotEditable, name)
	}
	return nil
}
