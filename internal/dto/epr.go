package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/skynet-epr-api/internal/models"
)

// RatingInput holds a rating exactly as the client sent it. Numbers and
// numeric strings decode into Value; anything else leaves Numeric false so
// the service can answer with INVALID_RATING instead of a decode error.
type RatingInput struct {
	Value   float64
	Numeric bool
}

// Rating builds a numeric RatingInput, mostly for tests and internal callers.
func Rating(v float64) *RatingInput {
	return &RatingInput{Value: v, Numeric: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RatingInput) UnmarshalJSON(data []byte) error {
	*r = RatingInput{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r.Value = v
	r.Numeric = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r RatingInput) MarshalJSON() ([]byte, error) {
	if !r.Numeric {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// Int returns the rating when it is an integer in [1,5].
func (r *RatingInput) Int() (int, bool) {
	if r == nil || !r.Numeric || r.Value != math.Trunc(r.Value) {
		return 0, false
	}
	if r.Value < models.MinRating || r.Value > models.MaxRating {
		return 0, false
	}
	return int(r.Value), true
}

// CreateEPRRequest is the POST /epr payload.
type CreateEPRRequest struct {
	PersonID                 string             `json:"personId" validate:"required"`
	EvaluatorID              string             `json:"evaluatorId" validate:"required"`
	RoleType                 models.EPRRoleType `json:"roleType" validate:"required,oneof=student instructor"`
	PeriodStart              string             `json:"periodStart"`
	PeriodEnd                string             `json:"periodEnd"`
	OverallRating            *RatingInput       `json:"overallRating"`
	TechnicalSkillsRating    *RatingInput       `json:"technicalSkillsRating"`
	NonTechnicalSkillsRating *RatingInput       `json:"nonTechnicalSkillsRating"`
	Remarks                  string             `json:"remarks"`
	Status                   models.EPRStatus   `json:"status" validate:"omitempty,oneof=draft submitted archived"`

	mistyped []string
}

// UnmarshalJSON decodes leniently: a text field holding a non-string value is
// recorded in MistypedFields instead of failing the whole payload, so the
// service can report errors in its own order.
func (r *CreateEPRRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d := lenientDecoder{raw: raw}
	*r = CreateEPRRequest{
		PersonID:                 d.text("personId"),
		EvaluatorID:              d.text("evaluatorId"),
		RoleType:                 models.EPRRoleType(d.text("roleType")),
		PeriodStart:              d.text("periodStart"),
		PeriodEnd:                d.text("periodEnd"),
		OverallRating:            d.rating("overallRating"),
		TechnicalSkillsRating:    d.rating("technicalSkillsRating"),
		NonTechnicalSkillsRating: d.rating("nonTechnicalSkillsRating"),
		Remarks:                  d.text("remarks"),
		Status:                   models.EPRStatus(d.text("status")),
	}
	r.mistyped = d.mistyped
	return nil
}

// MistypedFields lists the JSON fields whose value had the wrong type, in
// struct field order.
func (r CreateEPRRequest) MistypedFields() []string {
	return r.mistyped
}

// UpdateEPRRequest is the PATCH /epr/:id payload; nil fields are left unchanged.
type UpdateEPRRequest struct {
	OverallRating            *RatingInput      `json:"overallRating"`
	TechnicalSkillsRating    *RatingInput      `json:"technicalSkillsRating"`
	NonTechnicalSkillsRating *RatingInput      `json:"nonTechnicalSkillsRating"`
	Remarks                  *string           `json:"remarks"`
	Status                   *models.EPRStatus `json:"status" validate:"omitempty,oneof=draft submitted archived"`

	mistyped []string
}

// UnmarshalJSON decodes leniently like CreateEPRRequest. Absent and null
// fields both stay nil.
func (r *UpdateEPRRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d := lenientDecoder{raw: raw}
	*r = UpdateEPRRequest{
		OverallRating:            d.rating("overallRating"),
		TechnicalSkillsRating:    d.rating("technicalSkillsRating"),
		NonTechnicalSkillsRating: d.rating("nonTechnicalSkillsRating"),
		Remarks:                  d.optionalText("remarks"),
	}
	if status := d.optionalText("status"); status != nil {
		s := models.EPRStatus(*status)
		r.Status = &s
	}
	r.mistyped = d.mistyped
	return nil
}

// MistypedFields lists the JSON fields whose value had the wrong type.
func (r UpdateEPRRequest) MistypedFields() []string {
	return r.mistyped
}

type lenientDecoder struct {
	raw      map[string]json.RawMessage
	mistyped []string
}

func (d *lenientDecoder) optionalText(field string) *string {
	v, ok := d.raw[field]
	if !ok || isNull(v) {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		d.mistyped = append(d.mistyped, field)
		return nil
	}
	return &s
}

func (d *lenientDecoder) text(field string) string {
	if s := d.optionalText(field); s != nil {
		return *s
	}
	return ""
}

func (d *lenientDecoder) rating(field string) *RatingInput {
	v, ok := d.raw[field]
	if !ok || isNull(v) {
		return nil
	}
	r := &RatingInput{}
	_ = r.UnmarshalJSON(v)
	return r
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// AssistRequest carries the ratings the remark suggestion is derived from.
type AssistRequest struct {
	OverallRating            *RatingInput `json:"overallRating"`
	TechnicalSkillsRating    *RatingInput `json:"technicalSkillsRating"`
	NonTechnicalSkillsRating *RatingInput `json:"nonTechnicalSkillsRating"`
}

// AssistResponse wraps the generated remark paragraph.
type AssistResponse struct {
	SuggestedRemarks string `json:"suggestedRemarks"`
}

// ExportFormat selects the evaluation history export encoding.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
