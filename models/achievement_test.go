// file: models/achievement_test.go
package models

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonKeys returns the sorted top level keys of the encoded record.
func jsonKeys(t *testing.T, r Record) []string {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestParseRecordType(t *testing.T) {
	for _, rt := range RecordTypes {
		got, err := ParseRecordType(string(rt))
		assert.NoError(t, err)
		assert.Equal(t, rt, got)
	}

	_, err := ParseRecordType("Hackathon")
	assert.Error(t, err, "type matching is case-sensitive")
	_, err = ParseRecordType("")
	assert.Error(t, err)
}

func TestRecordType_Labels(t *testing.T) {
	assert.Equal(t, "Hackathon", TypeHackathon.Title())
	assert.Equal(t, "Competition", TypeCompetition.Title())
	assert.Equal(t, "Paper", TypePaper.Title())

	assert.Equal(t, ".pdf", TypePaper.Accept())
	assert.Equal(t, ".pdf,.jpg,.jpeg,.png", TypeHackathon.Accept())
	assert.Equal(t, ".pdf,.jpg,.jpeg,.png", TypeCompetition.Accept())

	assert.Equal(t, "Certificate", TypeCompetition.FileLabel())
}

func TestNewHackathon_Defaults(t *testing.T) {
	h := NewHackathon(Common{ID: 1}, "HackMIT", "March 2023", "Winner", "EdTech", "Tutor", 0)

	assert.Equal(t, 1, h.TeamSize)
	assert.Equal(t, DefaultHackathonImage, h.ImageURL)
	assert.Equal(t, TypeHackathon, h.Type())
	assert.Equal(t, int64(1), h.Meta().ID)
}

func TestNewCompetition_UnknownParticipation(t *testing.T) {
	c := NewCompetition(Common{}, "ICPC", "2023", "6th", "CP", Participation("Solo"), true)

	assert.Equal(t, Individual, c.Participation)
	assert.True(t, c.HasCertificate)
}

func TestRecordJSONShape(t *testing.T) {
	common := Common{ID: 42, FileReference: "/uploads/a.pdf", FileName: "a.pdf"}

	tests := []struct {
		name   string
		record Record
		keys   []string
	}{
		{
			name:   "hackathon",
			record: NewHackathon(common, "n", "d", "p", "c", "proj", 3),
			keys: []string{"category", "date", "fileName", "fileReference", "id", "imageUrl",
				"name", "position", "project", "teamSize", "type"},
		},
		{
			name:   "competition",
			record: NewCompetition(common, "n", "d", "p", "c", Team, true),
			keys: []string{"category", "date", "fileName", "fileReference", "hasCertificate", "id",
				"name", "participation", "position", "type"},
		},
		{
			name:   "paper",
			record: NewPaper(common, "t", "a", "pub", "d", "10.1/x", "abs"),
			keys: []string{"abstract", "authors", "date", "doi", "fileName", "fileReference", "id",
				"publication", "title", "type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, jsonKeys(t, tt.record))
		})
	}
}

func TestRecordJSON_TypeTag(t *testing.T) {
	data, err := json.Marshal(NewPaper(Common{ID: 7}, "t", "a", "pub", "d", "doi", "abs"))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "paper", m["type"])
	assert.Equal(t, float64(7), m["id"])
}

func TestCredentialsFind(t *testing.T) {
	creds := Credentials{Users: []User{{Username: "student", Password: "hash"}}}

	u, ok := creds.Find("student")
	assert.True(t, ok)
	assert.Equal(t, "hash", u.Password)

	_, ok = creds.Find("nobody")
	assert.False(t, ok)
}
