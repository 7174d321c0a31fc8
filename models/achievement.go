// Package models defines data structures used across the application.
// File: models/achievement.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ----------------------- record type -----------------------

// RecordType discriminates the achievement variants.
type RecordType string

const (
	TypeHackathon   RecordType = "hackathon"
	TypeCompetition RecordType = "competition"
	TypePaper       RecordType = "paper"
)

// RecordTypes lists every variant in display order.
var RecordTypes = []RecordType{TypeHackathon, TypeCompetition, TypePaper}

// DefaultHackathonImage is used for every captured hackathon.
const DefaultHackathonImage = "https://images.unsplash.com/photo-1505373877841-8d25f7d46678?ixlib=rb-1.2.1&auto=format&fit=crop&w=600&q=80"

// ParseRecordType maps a request value to a RecordType.
func ParseRecordType(s string) (RecordType, error) {
	switch t := RecordType(s); t {
	case TypeHackathon, TypeCompetition, TypePaper:
		return t, nil
	}
	return "", fmt.Errorf("unknown achievement type %q", s)
}

// Title is the capitalised type name, e.g. "Hackathon".
func (t RecordType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// AcceptedExtensions lists the upload extensions allowed for the type.
func (t RecordType) AcceptedExtensions() []string {
	if t == TypePaper {
		return []string{".pdf"}
	}
	return []string{".pdf", ".jpg", ".jpeg", ".png"}
}

// Accept renders AcceptedExtensions for an input's accept attribute.
func (t RecordType) Accept() string {
	return strings.Join(t.AcceptedExtensions(), ",")
}

// FileLabel is the label shown next to the upload field.
func (t RecordType) FileLabel() string {
	switch t {
	case TypeHackathon:
		return "Project Image/PDF"
	case TypeCompetition:
		return "Certificate"
	default:
		return "Paper PDF"
	}
}

// ----------------------- participation -----------------------

// Participation is how a competition was entered.
type Participation string

const (
	Individual Participation = "Individual"
	Team       Participation = "Team"
)

// ParseParticipation accepts only the two known values.
func ParseParticipation(s string) (Participation, error) {
	switch p := Participation(s); p {
	case Individual, Team:
		return p, nil
	}
	return "", fmt.Errorf("unknown participation %q", s)
}

// ----------------------- records -----------------------

// Common holds the fields every achievement carries.
type Common struct {
	ID            int64  `json:"id"`
	FileReference string `json:"fileReference"`
	FileName      string `json:"fileName"`
}

// Record is implemented only by Hackathon, Competition and Paper.
type Record interface {
	Type() RecordType
	Meta() Common
	isRecord()
}

// Hackathon is a captured hackathon result.
type Hackathon struct {
	Common
	Name     string `json:"name"`
	Date     string `json:"date"`
	Position string `json:"position"`
	Category string `json:"category"`
	Project  string `json:"project"`
	TeamSize int    `json:"teamSize"`
	ImageURL string `json:"imageUrl"`
}

// NewHackathon builds a hackathon record. A team size below one becomes one.
func NewHackathon(c Common, name, date, position, category, project string, teamSize int) Hackathon {
	if teamSize < 1 {
		teamSize = 1
	}
	return Hackathon{
		Common:   c,
		Name:     name,
		Date:     date,
		Position: position,
		Category: category,
		Project:  project,
		TeamSize: teamSize,
		ImageURL: DefaultHackathonImage,
	}
}

func (Hackathon) Type() RecordType { return TypeHackathon }
func (h Hackathon) Meta() Common   { return h.Common }
func (Hackathon) isRecord()        {}

// MarshalJSON adds the type discriminator.
func (h Hackathon) MarshalJSON() ([]byte, error) {
	type plain Hackathon
	return json.Marshal(struct {
		Type RecordType `json:"type"`
		plain
	}{TypeHackathon, plain(h)})
}

// Competition is a captured competition result.
type Competition struct {
	Common
	Name           string        `json:"name"`
	Date           string        `json:"date"`
	Position       string        `json:"position"`
	Category       string        `json:"category"`
	Participation  Participation `json:"participation"`
	HasCertificate bool          `json:"hasCertificate"`
}

// NewCompetition builds a competition record. An unknown participation
// falls back to Individual.
func NewCompetition(c Common, name, date, position, category string, p Participation, hasCertificate bool) Competition {
	if _, err := ParseParticipation(string(p)); err != nil {
		p = Individual
	}
	return Competition{
		Common:         c,
		Name:           name,
		Date:           date,
		Position:       position,
		Category:       category,
		Participation:  p,
		HasCertificate: hasCertificate,
	}
}

func (Competition) Type() RecordType { return TypeCompetition }
func (c Competition) Meta() Common   { return c.Common }
func (Competition) isRecord()        {}

// MarshalJSON adds the type discriminator.
func (c Competition) MarshalJSON() ([]byte, error) {
	type plain Competition
	return json.Marshal(struct {
		Type RecordType `json:"type"`
		plain
	}{TypeCompetition, plain(c)})
}

// Paper is a captured publication.
type Paper struct {
	Common
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Publication string `json:"publication"`
	Date        string `json:"date"`
	DOI         string `json:"doi"`
	Abstract    string `json:"abstract"`
}

// NewPaper builds a paper record.
func NewPaper(c Common, title, authors, publication, date, doi, abstract string) Paper {
	return Paper{
		Common:      c,
		Title:       title,
		Authors:     authors,
		Publication: publication,
		Date:        date,
		DOI:         doi,
		Abstract:    abstract,
	}
}

func (Paper) Type() RecordType { return TypePaper }
func (p Paper) Meta() Common   { return p.Common }
func (Paper) isRecord()        {}

// MarshalJSON adds the type discriminator.
func (p Paper) MarshalJSON() ([]byte, error) {
	type plain Paper
	return json.Marshal(struct {
		Type RecordType `json:"type"`
		plain
	}{TypePaper, plain(p)})
}
