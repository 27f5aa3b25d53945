package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Form field names shared by the admin create and edit forms.
const (
	fieldImage       = "image"
	fieldNum         = "num"
	fieldName        = "name"
	fieldPreview     = "preview"
	fieldDescription = "description"
)

// Uploads larger than this spill to temp files during parsing.
const maxUploadMemory = 8 << 20

// IngestSymbol parses a multipart submission into a NewSymbol, writing the
// uploaded image to storage when one was posted. Text fields are read before
// the file is saved, so a malformed submission leaves no file behind. A file
// part with an empty original name is the edit form's "keep current image"
// signal and produces an empty Image.
func (u Usecase) IngestSymbol(ctx context.Context, r *http.Request, k Kind) (NewSymbol, error) {
	if r.Header.Get("Content-Type") == "" {
		return NewSymbol{}, fmt.Errorf("%w: missing content type", ErrBadRequest)
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return NewSymbol{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	var s NewSymbol
	if v := r.FormValue(fieldNum); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return NewSymbol{}, fmt.Errorf("%w: num must be an integer", ErrBadRequest)
		}
		s.Num = n
	}
	s.Name = r.FormValue(fieldName)
	if k.HasDetails() {
		s.Preview = r.FormValue(fieldPreview)
		s.Description = r.FormValue(fieldDescription)
	}

	file, header, err := r.FormFile(fieldImage)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// no image part at all
	case err != nil:
		return NewSymbol{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	default:
		defer file.Close()
		if header.Filename != "" {
			name := u.fileStorageProvider.NameWithPrefix(header.Filename)
			if err := u.fileStorageProvider.Save(ctx, name, file); err != nil {
				return NewSymbol{}, fmt.Errorf("saving upload %q: %w", header.Filename, err)
			}
			s.Image = name
		}
	}

	return s, nil
}
