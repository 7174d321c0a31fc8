// Package services: services/record_form.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go-student-dashboard/logger"
	"go-student-dashboard/models"
)

// FormState is the capture form's lifecycle state.
type FormState int

const (
	Editing FormState = iota
	Submitted
)

const requiredText = "this field is required"

// FormInput holds the raw values typed into the capture form.
// Which fields matter depends on the form's record type.
type FormInput struct {
	Name          string `form:"name" validate:"required"`
	Date          string `form:"date" validate:"required"`
	Position      string `form:"position" validate:"required"`
	Category      string `form:"category" validate:"required"`
	Project       string `form:"project" validate:"required"`
	TeamSize      string `form:"teamSize" validate:"required"`
	Participation string `form:"participation" validate:"required,oneof=Individual Team"`
	TeamName      string `form:"teamName"`
	Authors       string `form:"authors" validate:"required"`
	Publication   string `form:"publication" validate:"required"`
	DOI           string `form:"doi" validate:"required"`
	Abstract      string `form:"abstract" validate:"required"`
}

// inputFields maps struct field names to form keys.
var inputFields = map[string]string{
	"Name":          "name",
	"Date":          "date",
	"Position":      "position",
	"Category":      "category",
	"Project":       "project",
	"TeamSize":      "teamSize",
	"Participation": "participation",
	"TeamName":      "teamName",
	"Authors":       "authors",
	"Publication":   "publication",
	"DOI":           "doi",
	"Abstract":      "abstract",
}

// requiredFields lists, per type, the struct fields that must be filled.
var requiredFields = map[models.RecordType][]string{
	models.TypeHackathon:   {"Name", "Date", "Position", "Category", "Project", "TeamSize"},
	models.TypeCompetition: {"Name", "Date", "Position", "Category", "Participation"},
	models.TypePaper:       {"Name", "Date", "Authors", "Publication", "DOI", "Abstract"},
}

// RequiredFields returns the form keys that must be non-empty for t,
// not counting the file, which every type requires.
func RequiredFields(t models.RecordType) []string {
	out := make([]string, 0, len(requiredFields[t]))
	for _, f := range requiredFields[t] {
		out = append(out, inputFields[f])
	}
	return out
}

var formValidate = validator.New()

// defaultIDs is shared so records from different forms never collide.
var defaultIDs = NewIDGenerator()

// ParseTeamSize reads the leading integer of s. Empty, non-numeric or
// non-positive input yields 1.
func ParseTeamSize(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '+' || s[end] == '-')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// FormDeps are the collaborators a RecordForm needs.
type FormDeps struct {
	Files    FileStore
	IDs      *IDGenerator
	Notifier Notifier
}

// RecordForm captures one achievement of a fixed type.
type RecordForm struct {
	recordType models.RecordType
	input      FormInput
	file       *FileUpload
	state      FormState

	files    FileStore
	ids      *IDGenerator
	notifier Notifier
}

// NewRecordForm creates an empty form in the Editing state.
func NewRecordForm(t models.RecordType, deps FormDeps) (*RecordForm, error) {
	if _, err := models.ParseRecordType(string(t)); err != nil {
		return nil, err
	}
	f := &RecordForm{
		recordType: t,
		files:      deps.Files,
		ids:        deps.IDs,
		notifier:   deps.Notifier,
	}
	if f.ids == nil {
		f.ids = defaultIDs
	}
	f.Reset()
	return f, nil
}

// Type is the record type fixed at construction.
func (f *RecordForm) Type() models.RecordType { return f.recordType }

// State reports Editing or Submitted.
func (f *RecordForm) State() FormState { return f.state }

// Input returns a copy of the current field values.
func (f *RecordForm) Input() FormInput { return f.input }

// File returns the selected file, if any.
func (f *RecordForm) File() *FileUpload { return f.file }

// Bind replaces all field values. An empty participation keeps the default.
func (f *RecordForm) Bind(in FormInput) {
	if in.Participation == "" {
		in.Participation = string(models.Individual)
	}
	f.input = in
}

// Set updates a single field by its form key.
func (f *RecordForm) Set(field, value string) error {
	switch field {
	case "name":
		f.input.Name = value
	case "date":
		f.input.Date = value
	case "position":
		f.input.Position = value
	case "category":
		f.input.Category = value
	case "project":
		f.input.Project = value
	case "teamSize":
		f.input.TeamSize = value
	case "participation":
		f.input.Participation = value
	case "teamName":
		f.input.TeamName = value
	case "authors":
		f.input.Authors = value
	case "publication":
		f.input.Publication = value
	case "doi":
		f.input.DOI = value
	case "abstract":
		f.input.Abstract = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}

// SelectFile sets or clears (nil) the chosen file.
func (f *RecordForm) SelectFile(u *FileUpload) { f.file = u }

// ShowTeamName reports whether the optional team name input is displayed.
func (f *RecordForm) ShowTeamName() bool {
	return f.recordType == models.TypeCompetition && f.input.Participation == string(models.Team)
}

// Validate checks the fields required by the form's type plus the file.
// An empty result means the form may be submitted.
func (f *RecordForm) Validate() []FieldError {
	var out []FieldError

	if err := formValidate.StructPartial(f.input, requiredFields[f.recordType]...); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []FieldError{{Field: "form", Error: err.Error()}}
		}
		for _, fe := range verrs {
			out = append(out, FieldError{Field: inputFields[fe.StructField()], Error: fieldMessage(fe)})
		}
	}

	switch {
	case f.file == nil || f.file.Name == "":
		out = append(out, FieldError{Field: "file", Error: requiredText})
	case !f.accepts(f.file):
		out = append(out, FieldError{Field: "file", Error: "accepted file types: " + f.recordType.Accept()})
	}
	return out
}

func (f *RecordForm) accepts(u *FileUpload) bool {
	ext := u.Ext()
	for _, a := range f.recordType.AcceptedExtensions() {
		if ext == a {
			return true
		}
	}
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredText
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// Submit validates the form, builds the record and hands it to onAdd. On
// success it notifies, resets the form and calls onClose. A blocked
// submission returns *ValidationError and calls nothing.
func (f *RecordForm) Submit(onAdd func(models.Record), onClose func()) (models.Record, error) {
	if onAdd == nil {
		return nil, errors.New("record form: no acceptor")
	}
	if fields := f.Validate(); len(fields) > 0 {
		verr := &ValidationError{Fields: fields}
		logger.Debug.Printf("RecordForm: %s submission blocked: %v", f.recordType, verr)
		return nil, verr
	}

	common := models.Common{}
	if f.file != nil {
		if f.files == nil {
			return nil, errors.New("record form: no file store configured")
		}
		ref, err := f.files.Save(f.file)
		if err != nil {
			return nil, fmt.Errorf("record form: store file: %w", err)
		}
		common.FileReference = ref
		common.FileName = f.file.Name
	}
	common.ID = f.ids.Next()

	record := f.build(common)
	f.state = Submitted
	onAdd(record)

	if f.notifier != nil {
		f.notifier.Success(fmt.Sprintf("%s added successfully!", f.recordType.Title()))
	}
	logger.Info.Printf("RecordForm: %s %d captured", f.recordType, common.ID)

	f.Reset()
	if onClose != nil {
		onClose()
	}
	return record, nil
}

// build assembles the variant for the form's type. The team name is never
// part of a record.
func (f *RecordForm) build(c models.Common) models.Record {
	in := f.input
	switch f.recordType {
	case models.TypeHackathon:
		return models.NewHackathon(c, in.Name, in.Date, in.Position, in.Category, in.Project, ParseTeamSize(in.TeamSize))
	case models.TypeCompetition:
		return models.NewCompetition(c, in.Name, in.Date, in.Position, in.Category,
			models.Participation(in.Participation), f.file != nil)
	default:
		return models.NewPaper(c, in.Name, in.Authors, in.Publication, in.Date, in.DOI, in.Abstract)
	}
}

// Cancel discards the input and calls onClose.
func (f *RecordForm) Cancel(onClose func()) {
	f.Reset()
	if onClose != nil {
		onClose()
	}
}

// Reset returns every field to its initial value and re-enters Editing.
func (f *RecordForm) Reset() {
	f.input = FormInput{Participation: string(models.Individual)}
	f.file = nil
	f.state = Editing
}
