package domain

// ContactEventKind enumerates what can happen to a contact form
type ContactEventKind int

const (
	EventSubmit ContactEventKind = iota + 1
	EventConfigInvalid
	EventDelivered
	EventDeliveryFailed
	EventRevert
)

func (k ContactEventKind) String() string {
	switch k {
	case EventSubmit:
		return "submit"
	case EventConfigInvalid:
		return "config_invalid"
	case EventDelivered:
		return "delivered"
	case EventDeliveryFailed:
		return "delivery_failed"
	case EventRevert:
		return "revert"
	default:
		return "unknown"
	}
}

// ContactEvent is one input to the contact state machine.
// Form is only read by EventSubmit; Seq is ignored by it.
type ContactEvent struct {
	Kind ContactEventKind
	Form ContactForm
	Seq  uint64
}

// NewContactState returns the initial idle state
func NewContactState() ContactState {
	return ContactState{Status: ContactIdle}
}

// Apply returns the state after ev and whether ev was accepted.
// Rejected events leave the state untouched. Events other than
// EventSubmit must carry the Seq of the submission they belong to,
// so a delayed revert or delivery result from an older submission
// cannot overwrite a newer one.
func (s ContactState) Apply(ev ContactEvent) (ContactState, bool) {
	switch ev.Kind {
	case EventSubmit:
		if s.Status == ContactPending {
			return s, false
		}
		return ContactState{
			Status: ContactPending,
			Form:   ev.Form,
			Seq:    s.Seq + 1,
		}, true

	case EventConfigInvalid:
		if s.Status != ContactPending || ev.Seq != s.Seq {
			return s, false
		}
		s.Status = ContactFailed
		s.Message = MessageRelayNotConfigured
		s.Reason = ReasonConfiguration
		return s, true

	case EventDelivered:
		if s.Status != ContactPending || ev.Seq != s.Seq {
			return s, false
		}
		s.Status = ContactSucceeded
		s.Message = MessageContactSent
		s.Form = ContactForm{}
		return s, true

	case EventDeliveryFailed:
		if s.Status != ContactPending || ev.Seq != s.Seq {
			return s, false
		}
		s.Status = ContactFailed
		s.Message = MessageContactFailed
		s.Reason = ReasonDelivery
		return s, true

	case EventRevert:
		if s.Status != ContactSucceeded || ev.Seq != s.Seq {
			return s, false
		}
		s.Status = ContactIdle
		s.Message = ""
		return s, true
	}
	return s, false
}

// FormFromRequest copies the submitted fields into form values
func FormFromRequest(req *ContactRequest) ContactForm {
	return ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
}

// TemplateParamsFromRequest maps the submission onto relay template names
func TemplateParamsFromRequest(req *ContactRequest) TemplateParams {
	return TemplateParams{
		FromName:  req.Name,
		FromEmail: req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
	}
}
