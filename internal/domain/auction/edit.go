package auction

import "time"

// Image is one entry of the ordered images sequence. Either Ref points at media the
// auction already has, or Data carries a new upload.
type Image struct {
	Ref         string
	Filename    string
	ContentType string
	Data        []byte
}

// IsUpload reports whether the image is a new file rather than an existing reference
func (i Image) IsUpload() bool {
	return i.Data != nil
}

// EditRequest is a partial set of field values an operator wants to apply. Times are
// wall-clock strings in the display timezone (YYYY-MM-DDTHH:MM). A nil field is left
// untouched.
type EditRequest struct {
	Title         *string
	Category      *string
	Description   *string
	StartingPrice *float64
	Currency      *string
	Images        []Image
	Video         *string
	StartTime     *string
	EndTime       *string
}

// Fields returns the fields the request touches, in form order
func (r EditRequest) Fields() []Field {
	var fields []Field
	if r.Title != nil {
		fields = append(fields, FieldTitle)
	}
	if r.Category != nil {
		fields = append(fields, FieldCategory)
	}
	if r.Description != nil {
		fields = append(fields, FieldDescription)
	}
	if r.StartTime != nil {
		fields = append(fields, FieldStartTime)
	}
	if r.EndTime != nil {
		fields = append(fields, FieldEndTime)
	}
	if r.StartingPrice != nil {
		fields = append(fields, FieldStartingPrice)
	}
	if r.Currency != nil {
		fields = append(fields, FieldCurrency)
	}
	if r.Images != nil {
		fields = append(fields, FieldImages)
	}
	if r.Video != nil {
		fields = append(fields, FieldVideo)
	}
	return fields
}

// IsEmpty reports whether the request touches no field
func (r EditRequest) IsEmpty() bool {
	return len(r.Fields()) == 0
}

// FullUpdate is the complete payload of a full auction update, times already absolute
type FullUpdate struct {
	Title         string
	Category      string
	Description   string
	StartingPrice float64
	Currency      string
	Images        []Image
	Video         string
	StartTime     time.Time
	EndTime       time.Time
}

// NewFullUpdate seeds a full update from the current auction record, keeping existing
// images as references.
func NewFullUpdate(a *Auction) FullUpdate {
	images := make([]Image, 0, len(a.Images))
	for _, ref := range a.Images {
		images = append(images, Image{Ref: ref})
	}
	return FullUpdate{
		Title:         a.Title,
		Category:      a.Category,
		Description:   a.Description,
		StartingPrice: a.StartingPrice,
		Currency:      a.Currency,
		Images:        images,
		Video:         a.Video,
		StartTime:     a.StartDate,
		EndTime:       a.EndDate,
	}
}

// Apply copies an applied full update back onto the auction record
func (a *Auction) Apply(u FullUpdate) {
	a.Title = u.Title
	a.Category = u.Category
	a.Description = u.Description
	a.StartingPrice = u.StartingPrice
	a.Currency = u.Currency
	a.Video = u.Video
	a.StartDate = u.StartTime
	a.EndDate = u.EndTime

	refs := make([]string, 0, len(u.Images))
	for _, img := range u.Images {
		if img.IsUpload() {
			refs = append(refs, img.Filename)
			continue
		}
		refs = append(refs, img.Ref)
	}
	a.Images = refs
}
