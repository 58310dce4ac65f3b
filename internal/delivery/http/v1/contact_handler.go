package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"clepsydra-backend/internal/delivery/http/response"
	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	msgSubmitted   = "Contact form submitted successfully"
	msgInvalidForm = "Invalid form data"

	maxContactBodyBytes = 64 << 10
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// ContactForm documents the request body. The handler decodes into an
// untyped value so every field problem can be reported at once.
type ContactForm struct {
	FirstName string `json:"firstName" example:"Ann"`
	LastName  string `json:"lastName" example:"Lee"`
	Email     string `json:"email" example:"ann@example.com"`
	Phone     string `json:"phone,omitempty" example:"+91 9039545880"`
	Service   string `json:"service" example:"web-development"`
	Message   string `json:"message" example:"Need a site"`
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) *ContactHandler {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", limit, handler.SubmitContact)
	public.GET("/services", handler.ListServices)
	return handler
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Stores a contact form submission and emails the business and the submitter. Email delivery is best-effort.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      ContactForm  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var payload any
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		c.Error(apperror.Invalid(msgInvalidForm, []domain.FieldError{
			{Field: "body", Reason: "must be a valid JSON object"},
		}, err))
		return
	}

	stored, err := h.contactUC.Submit(c.Request.Context(), payload)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.Error(apperror.Invalid(msgInvalidForm, verr.Fields, err))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}

	response.Created(c, http.StatusOK, msgSubmitted, stored.ID)
}

// ListServices godoc
// @Summary      List Service Categories
// @Description  Values accepted by the service field of the contact form.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ServiceCategory}
// @Router       /services [get]
func (h *ContactHandler) ListServices(c *gin.Context) {
	response.Success(c, http.StatusOK, "Service categories", h.contactUC.ServiceCategories())
}
