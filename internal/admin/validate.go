package admin

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/techfest-api/internal/models"
)

// Field error keys. The title key stays "name" because the console surfaces
// the error on the field labelled "Event Name".
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldLocation    = "location"
	FieldImage       = "image"
	FieldSoloFee     = "soloFee"
	FieldTeamFee     = "teamFee"
	FieldMaxTeamSize = "maxTeamSize"
	FieldCapacity    = "capacity"
	FieldQRCode      = "qrCode"
	FieldUPIID       = "upiId"
)

const minDescriptionLength = 20

// Validate checks the working copy against every form rule and returns the
// full error map in one pass. It never mutates the form; ref supplies "now"
// so the past-date rule is deterministic under test.
func Validate(f *Form, ref time.Time) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Title) == "" {
		errs[FieldName] = "Event name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs[FieldDescription] = "Description is required"
	} else if len(strings.TrimSpace(f.Description)) < minDescriptionLength {
		errs[FieldDescription] = "Description must be at least 20 characters"
	}

	if f.Date == "" {
		errs[FieldDate] = "Date is required"
	} else if when, err := time.ParseInLocation(models.DateLayout, f.Date, ref.Location()); err != nil {
		errs[FieldDate] = "Date is invalid"
	} else {
		// Day granularity: an event today is still valid.
		today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
		if when.Before(today) {
			errs[FieldDate] = "Date cannot be in the past"
		}
	}

	if strings.TrimSpace(f.Location) == "" {
		errs[FieldLocation] = "Location is required"
	}

	if strings.TrimSpace(f.Image) == "" {
		errs[FieldImage] = "Image URL is required"
	} else if !validURL(f.Image) {
		errs[FieldImage] = "Image URL is invalid"
	}

	if math.IsNaN(f.RegistrationFees.Solo) || f.RegistrationFees.Solo < 0 {
		errs[FieldSoloFee] = "Solo fee must be a non-negative number"
	}
	if math.IsNaN(f.RegistrationFees.Team) || f.RegistrationFees.Team < 0 {
		errs[FieldTeamFee] = "Team fee must be a non-negative number"
	}

	if f.IsTeamEvent {
		if math.IsNaN(f.TeamSize.Max) || f.TeamSize.Max < 2 || f.TeamSize.Max > 10 {
			errs[FieldMaxTeamSize] = "Team size must be between 2 and 10"
		}
	}

	if math.IsNaN(f.Capacity) || f.Capacity < 1 {
		errs[FieldCapacity] = "Capacity must be at least 1"
	}

	if PaymentFieldsRequired(f) {
		if strings.TrimSpace(f.QRCode) == "" {
			errs[FieldQRCode] = "QR code is required for paid events"
		}
		if strings.TrimSpace(f.UPIID) == "" {
			errs[FieldUPIID] = "UPI ID is required for paid events"
		}
	}
	// The QR code must parse as a URL whenever present, paid or not.
	if strings.TrimSpace(f.QRCode) != "" && !validURL(f.QRCode) {
		errs[FieldQRCode] = "QR code URL is invalid"
	}

	return errs
}

// validURL mirrors construct-and-catch: a value is a URL when it parses with
// an absolute scheme, and anything else is rejected.
func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
