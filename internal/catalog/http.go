package catalog

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/exercise-hub/internal/view"
)

// Handler はカタログ閲覧の HTTP ハンドラーです。
type Handler struct {
	catalog  *Catalog
	pageSize int
	logger   *slog.Logger
}

// NewHandler は Handler を作成します。
func NewHandler(catalog *Catalog, pageSize int, logger *slog.Logger) *Handler {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{catalog: catalog, pageSize: pageSize, logger: logger}
}

// List は GET / のハンドラーです。検索してからページ分割します。
func (h *Handler) List(c *gin.Context) {
	snap, err := h.catalog.Current()
	if err != nil {
		h.internalError(c, err)
		return
	}

	term := c.Query("search")
	page := Paginate(Search(snap.Exercises, term), h.pageSize, ParsePage(c.Query("page")))

	c.HTML(http.StatusOK, view.Catalog, view.CatalogData{
		Exercises:   cards(page.Items),
		Search:      term,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		Pages:       view.PageLinks(term, page.CurrentPage, page.TotalPages),
	})
}

// Detail は GET /:id のハンドラーです。該当なしでも 200 で空の一覧を返します。
func (h *Handler) Detail(c *gin.Context) {
	matches, err := h.catalog.FindByID(c.Param("id"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, view.Exercise, view.ExerciseData{Exercises: cards(matches)})
}

// SearchRedirect は POST /search のハンドラーです。
func (h *Handler) SearchRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/?search="+url.QueryEscape(c.PostForm("search")))
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.ErrorContext(c.Request.Context(), "catalog unavailable", "error", err, "path", c.Request.URL.Path)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func cards(exercises []Exercise) []view.ExerciseCard {
	out := make([]view.ExerciseCard, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, view.ExerciseCard{
			ID:           e.ID,
			Name:         e.Name,
			Level:        e.Level,
			Equipment:    e.Equipment,
			Muscles:      strings.Join(e.PrimaryMuscles, ", "),
			Instructions: e.Instructions.String(),
			Image:        view.ImagePath(e.FirstImage()),
		})
	}
	return out
}
