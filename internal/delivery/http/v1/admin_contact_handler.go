package v1

import (
	"errors"
	"net/http"
	"strconv"

	"clepsydra-backend/internal/delivery/http/response"
	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminContactHandler struct {
	contactUC domain.ContactUsecase
}

// SubmissionPage is the admin listing payload
type SubmissionPage struct {
	Items  []domain.StoredSubmission `json:"items"`
	Total  int64                     `json:"total"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

// NewAdminContactHandler registers read-only submission routes on an
// authenticated group.
func NewAdminContactHandler(admin *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &AdminContactHandler{contactUC: contactUC}

	submissions := admin.Group("/contact-submissions")
	{
		submissions.GET("", handler.List)
		submissions.GET("/:id", handler.Get)
	}
}

// List godoc
// @Summary      List Contact Submissions
// @Tags         admin
// @Produce      json
// @Param        service  query     string  false  "Filter by service category"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Param        offset   query     int     false  "Offset"
// @Success      200      {object}  response.Response{data=SubmissionPage}
// @Failure      401      {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/contact-submissions [get]
func (h *AdminContactHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset = max(offset, 0)

	filter := domain.ContactSubmissionFilter{
		Service: c.Query("service"),
		Limit:   limit,
		Offset:  offset,
	}
	items, total, err := h.contactUC.ListSubmissions(c.Request.Context(), filter)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if items == nil {
		items = []domain.StoredSubmission{}
	}

	response.Success(c, http.StatusOK, "Contact submissions", SubmissionPage{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Get godoc
// @Summary      Get Contact Submission
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  response.Response{data=domain.StoredSubmission}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/contact-submissions/{id} [get]
func (h *AdminContactHandler) Get(c *gin.Context) {
	submission, err := h.contactUC.GetSubmission(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			c.Error(apperror.NotFound("Submission not found"))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Contact submission", submission)
}
