package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactUC    domain.ContactUsecase
	awaitTimeout time.Duration
}

// NewContactHandler registers the contact routes (public, session cookie only)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC:    contactUC,
		awaitTimeout: 30 * time.Second,
	}

	public.POST("/contact", limiter, handler.SubmitContact)
	public.GET("/contact/status", handler.GetContactStatus)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Starts sending a message through the email relay. The result is observed via /contact/status, or awaited with wait=true. HTML form posts are redirected back to the page.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true   "Contact Form Data"
// @Param        wait     query     bool                   false  "Wait for the delivery result"
// @Success      200      {object}  response.Response{data=domain.ContactState}
// @Success      202      {object}  response.Response{data=domain.ContactState}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      502      {object}  response.Response{data=domain.ContactState}
// @Failure      503      {object}  response.Response{data=domain.ContactState}
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest("Please check the form fields and try again.").WithDetails(validation.FormatValidationErrors(err)))
		return
	}

	state, err := h.contactUC.Submit(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.Is(err, domain.ErrSubmissionInFlight):
			c.Error(apperror.Conflict("Your previous message is still being sent.", err))
		case errors.As(err, &verrs):
			c.Error(apperror.BadRequest("Please check the form fields and try again.").WithDetails(validation.FormatValidationErrors(err)))
		default:
			c.Error(apperror.Internal(err))
		}
		return
	}

	fromPage := c.ContentType() != binding.MIMEJSON
	if state.Status == domain.ContactPending && (fromPage || c.Query("wait") == "true") {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.awaitTimeout)
		state = h.contactUC.Await(ctx, middleware.SessionID(c))
		cancel()
	}

	// Plain form posts come from the page without script; it renders the session state
	if fromPage {
		c.Redirect(http.StatusSeeOther, "/#contact")
		return
	}

	writeContactState(c, state)
}

// GetContactStatus godoc
// @Summary      Contact Form Status
// @Description  Current contact form state for this browser session
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ContactState}
// @Router       /contact/status [get]
func (h *ContactHandler) GetContactStatus(c *gin.Context) {
	state := h.contactUC.Status(c.Request.Context(), middleware.SessionID(c))
	response.Success(c, http.StatusOK, string(state.Status), state)
}

func writeContactState(c *gin.Context, state domain.ContactState) {
	switch state.Status {
	case domain.ContactPending:
		response.Success(c, http.StatusAccepted, "Sending your message...", state)
	case domain.ContactSucceeded:
		response.Success(c, http.StatusOK, state.Message, state)
	case domain.ContactFailed:
		code := http.StatusBadGateway
		if state.Reason == domain.ReasonConfiguration {
			code = http.StatusServiceUnavailable
		}
		response.Failure(c, code, state.Message, state)
	default:
		response.Success(c, http.StatusOK, string(state.Status), state)
	}
}
