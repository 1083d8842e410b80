package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/form"
	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/BerylCAtieno/scheme-recommender/internal/render"
	"github.com/BerylCAtieno/scheme-recommender/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var groupLegends = map[string]string{
	models.GroupDemographics:          "Demographics",
	models.GroupSpecificRequirements:  "Specific Requirements",
	models.GroupAdditionalInformation: "Additional Information",
}

type fieldView struct {
	Key      string
	Label    string
	Kind     string
	Options  []string
	Required bool
	Value    string
}

type groupView struct {
	Legend string
	Fields []fieldView
}

type pageData struct {
	Groups  []groupView
	Pending bool
	Results *render.View
}

// fieldUpdate is the body of POST /profile/field.
type fieldUpdate struct {
	Path  []string `json:"path"`
	Name  string   `json:"name" binding:"required"`
	Value string   `json:"value"`
}

// Handler serves the form page.
type Handler struct {
	store     session.Store
	submitter *form.Submitter
	renderer  *render.Renderer
	cookie    string
	cookieTTL time.Duration
	logger    logger.Logger
}

type Options struct {
	CookieName string
	CookieTTL  time.Duration
}

func NewHandler(store session.Store, submitter *form.Submitter, renderer *render.Renderer, opts Options, log logger.Logger) *Handler {
	return &Handler{
		store:     store,
		submitter: submitter,
		renderer:  renderer,
		cookie:    opts.CookieName,
		cookieTTL: opts.CookieTTL,
		logger:    log.With(map[string]interface{}{"component": "form"}),
	}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/profile/field", h.UpdateField)
	r.POST("/submit", h.Submit)
}

// Index renders the form for the current session.
func (h *Handler) Index(c *gin.Context) {
	id := h.sessionID(c)
	ctx := c.Request.Context()

	p, err := h.store.Load(ctx, id)
	if err != nil {
		h.logger.WithError(err).Error("load session", map[string]interface{}{"session": id})
	}
	pending, err := h.store.Pending(ctx, id)
	if err != nil {
		h.logger.WithError(err).Warn("read pending flag", map[string]interface{}{"session": id})
	}

	c.HTML(http.StatusOK, "index", newPage(p, pending, nil))
}

// UpdateField applies one keyed input to the session profile.
func (h *Handler) UpdateField(c *gin.Context) {
	id := h.sessionID(c)
	ctx := c.Request.Context()

	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field update"})
		return
	}

	p, err := h.store.Load(ctx, id)
	if err != nil {
		h.logger.WithError(err).Error("load session", map[string]interface{}{"session": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}

	next, err := form.Update(p, req.Path, req.Name, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Save(ctx, id, next); err != nil {
		h.logger.WithError(err).Error("save session", map[string]interface{}{"session": id})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Submit folds the posted fields into the session profile and sends it.
func (h *Handler) Submit(c *gin.Context) {
	id := h.sessionID(c)
	ctx := c.Request.Context()

	p, err := h.store.Load(ctx, id)
	if err != nil {
		h.logger.WithError(err).Error("load session", map[string]interface{}{"session": id})
	}

	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "index", newPage(p, false, nil))
		return
	}
	for _, f := range models.ProfileFields {
		key := f.Key()
		if _, ok := c.Request.PostForm[key]; !ok {
			continue
		}
		// Keys come from the catalogue, so Update cannot fail here.
		p, _ = form.UpdateKey(p, key, c.Request.PostForm.Get(key))
	}

	if err := h.store.Save(ctx, id, p); err != nil {
		h.logger.WithError(err).Warn("save session", map[string]interface{}{"session": id})
	}

	resp, err := h.submitter.Submit(ctx, id, p)
	switch {
	case errors.Is(err, form.ErrSubmissionPending):
		h.logger.Info("submission ignored while pending", map[string]interface{}{"session": id})
		c.HTML(http.StatusConflict, "index", newPage(p, true, nil))
		return
	case err != nil:
		h.logger.WithError(err).Error("submit profile", map[string]interface{}{"session": id})
		resp = models.FetchFailed()
	default:
		if err := h.store.Delete(ctx, id); err != nil {
			h.logger.WithError(err).Warn("discard session profile", map[string]interface{}{"session": id})
		}
	}

	view := h.renderer.Render(resp)
	c.HTML(http.StatusOK, "index", newPage(p, false, &view))
}

// sessionID returns the form session for c, issuing a cookie on first use.
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(h.cookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie, id, int(h.cookieTTL.Seconds()), "/", "", false, true)
	return id
}

func newPage(p models.Profile, pending bool, results *render.View) pageData {
	var groups []groupView
	index := map[string]int{}

	for _, f := range models.ProfileFields {
		i, ok := index[f.Group]
		if !ok {
			i = len(groups)
			index[f.Group] = i
			groups = append(groups, groupView{Legend: groupLegends[f.Group]})
		}
		value, _ := form.Value(p, f.Key())
		groups[i].Fields = append(groups[i].Fields, fieldView{
			Key:      f.Key(),
			Label:    f.Label,
			Kind:     f.Kind,
			Options:  f.Options,
			Required: f.Required,
			Value:    value,
		})
	}

	return pageData{Groups: groups, Pending: pending, Results: results}
}
