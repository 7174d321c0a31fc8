// file: services/record_repository_test.go
package services_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go-student-dashboard/models"
	"go-student-dashboard/services"
)

func TestRecordRepository_AddAndList(t *testing.T) {
	repo := services.NewRecordRepository()

	h := models.NewHackathon(models.Common{ID: 1}, "n", "d", "p", "c", "proj", 2)
	p := models.NewPaper(models.Common{ID: 2}, "t", "a", "pub", "d", "doi", "abs")
	repo.Add("student", h)
	repo.Add("student", p)

	assert.Equal(t, []models.Record{p, h}, repo.List("student"), "newest first")
	assert.Equal(t, []models.Record{h}, repo.ListByType("student", models.TypeHackathon))
	assert.Empty(t, repo.ListByType("student", models.TypeCompetition))
}

func TestRecordRepository_UsersAreSeparate(t *testing.T) {
	repo := services.NewRecordRepository()
	repo.Add("alice", models.NewPaper(models.Common{ID: 1}, "t", "a", "p", "d", "doi", "abs"))

	assert.Len(t, repo.List("alice"), 1)
	assert.Empty(t, repo.List("bob"))
}

func TestRecordRepository_ListIsACopy(t *testing.T) {
	repo := services.NewRecordRepository()
	repo.Add("alice", models.NewPaper(models.Common{ID: 1}, "t", "a", "p", "d", "doi", "abs"))

	list := repo.List("alice")
	list[0] = nil

	assert.NotNil(t, repo.List("alice")[0])
}

func TestRecordRepository_IgnoresNil(t *testing.T) {
	repo := services.NewRecordRepository()
	repo.Add("alice", nil)
	assert.Empty(t, repo.List("alice"))
}

func TestRecordRepository_Reset(t *testing.T) {
	repo := services.NewRecordRepository()
	repo.Add("alice", models.NewPaper(models.Common{ID: 1}, "t", "a", "p", "d", "doi", "abs"))

	repo.Reset("alice")
	assert.Empty(t, repo.List("alice"))
}

// Test concurrent acceptors writing to the same user
func TestRecordRepository_ConcurrentAdds(t *testing.T) {
	repo := services.NewRecordRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.Add("alice", models.NewHackathon(models.Common{ID: int64(i)}, fmt.Sprint(i), "d", "p", "c", "proj", 1))
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.List("alice"), 50)
}
