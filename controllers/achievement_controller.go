// Package controllers file: controllers/achievement_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go-student-dashboard/logger"
	"go-student-dashboard/models"
	"go-student-dashboard/services"
)

// UserNotifiers hands out a live notifier for one user's open tabs.
type UserNotifiers interface {
	Notifier(user string) services.Notifier
}

// ---------------- Achievement Controller ----------------

// AchievementController lists achievements and runs the capture form.
type AchievementController struct {
	Records services.RecordRepositoryInterface
	Files   services.FileStore
	IDs     *services.IDGenerator
	Metrics services.MetricsPublisher
	Push    UserNotifiers
	Pages   *PageController
}

// NewAchievementController wires the achievement handlers. push may be nil.
func NewAchievementController(records services.RecordRepositoryInterface, files services.FileStore,
	metrics services.MetricsPublisher, push UserNotifiers, pages *PageController) *AchievementController {
	if metrics == nil {
		metrics = services.NoopPublisher{}
	}
	return &AchievementController{
		Records: records,
		Files:   files,
		IDs:     services.NewIDGenerator(),
		Metrics: metrics,
		Push:    push,
		Pages:   pages,
	}
}

// List renders the achievements page, grouped by record type.
func (ac *AchievementController) List(c *gin.Context) {
	user := currentUser(c)
	data := ac.Pages.Layout(c, "Achievements")
	data["RecordTypes"] = models.RecordTypes
	data["Hackathons"] = ac.Records.ListByType(user, models.TypeHackathon)
	data["Competitions"] = ac.Records.ListByType(user, models.TypeCompetition)
	data["Papers"] = ac.Records.ListByType(user, models.TypePaper)
	c.HTML(http.StatusOK, "achievements.html", data)
}

// APIList returns the user's records as JSON, optionally filtered by ?type=.
func (ac *AchievementController) APIList(c *gin.Context) {
	user := currentUser(c)
	records := ac.Records.List(user)
	if raw := c.Query("type"); raw != "" {
		t, err := models.ParseRecordType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		records = ac.Records.ListByType(user, t)
	}
	if records == nil {
		records = []models.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// NewForm renders an empty capture form for ?type= (hackathon by default).
func (ac *AchievementController) NewForm(c *gin.Context) {
	form, ok := ac.openForm(c, c.DefaultQuery("type", string(models.TypeHackathon)))
	if !ok {
		return
	}
	ac.renderForm(c, http.StatusOK, form, nil)
}

// Submit handles the capture form's submit and cancel buttons.
func (ac *AchievementController) Submit(c *gin.Context) {
	form, ok := ac.openForm(c, c.PostForm("type"))
	if !ok {
		return
	}
	closeForm := func() { c.Redirect(http.StatusSeeOther, "/achievements") }

	if c.PostForm("action") == "cancel" {
		form.Cancel(closeForm)
		return
	}

	var in services.FormInput
	if err := c.ShouldBind(&in); err != nil {
		logger.Warn.Printf("Submit: Failed to bind form: %v", err)
		c.String(http.StatusBadRequest, "malformed form submission")
		return
	}
	form.Bind(in)

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			logger.Error.Printf("Submit: Failed to open upload %q: %v", fh.Filename, err)
			ac.renderForm(c, http.StatusInternalServerError, form, map[string]string{"file": "upload could not be read"})
			return
		}
		defer f.Close()
		form.SelectFile(&services.FileUpload{Name: fh.Filename, Reader: f})
	} else if !errors.Is(err, http.ErrMissingFile) {
		logger.Warn.Printf("Submit: Failed to read upload: %v", err)
	}

	user := currentUser(c)
	_, err := form.Submit(func(r models.Record) {
		ac.Records.Add(user, r)
		ac.Metrics.PublishRecordCaptured(r.Type())
	}, closeForm)
	if err == nil {
		return
	}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		ac.renderForm(c, http.StatusUnprocessableEntity, form, verr.Messages())
		return
	}
	logger.Error.Printf("Submit: Failed to capture %s for %q: %v", form.Type(), user, err)
	ac.renderForm(c, http.StatusInternalServerError, form, map[string]string{"form": "Could not save the record, please try again."})
}

// openForm builds a form for raw, answering 400 for unknown types.
func (ac *AchievementController) openForm(c *gin.Context, raw string) (*services.RecordForm, bool) {
	t, err := models.ParseRecordType(raw)
	if err == nil {
		var form *services.RecordForm
		form, err = services.NewRecordForm(t, services.FormDeps{
			Files:    ac.Files,
			IDs:      ac.IDs,
			Notifier: ac.notifier(c),
		})
		if err == nil {
			return form, true
		}
	}
	logger.Warn.Printf("openForm: %v", err)
	c.String(http.StatusBadRequest, err.Error())
	return nil, false
}

// notifier shows the toast on the next page view and on any open tab.
func (ac *AchievementController) notifier(c *gin.Context) services.Notifier {
	n := services.MultiNotifier{services.NewFlashNotifier(sessions.Default(c))}
	if ac.Push != nil {
		n = append(n, ac.Push.Notifier(currentUser(c)))
	}
	return n
}

func (ac *AchievementController) renderForm(c *gin.Context, status int, form *services.RecordForm, errs map[string]string) {
	t := form.Type()
	required := make(map[string]bool)
	for _, key := range services.RequiredFields(t) {
		required[key] = true
	}

	data := ac.Pages.Layout(c, "Add "+t.Title())
	data["Type"] = string(t)
	data["TypeTitle"] = t.Title()
	data["Input"] = form.Input()
	data["Required"] = required
	data["Accept"] = t.Accept()
	data["FileLabel"] = t.FileLabel()
	data["ShowTeamName"] = form.ShowTeamName()
	data["Errors"] = errs
	c.HTML(status, "achievement_form.html", data)
}
