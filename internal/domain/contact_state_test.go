package domain_test

import (
	"testing"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

var adaForm = domain.ContactForm{Name: "Ada", Email: "ada@x.com", Subject: "Hi", Message: "Hello"}

func submitted(t *testing.T) domain.ContactState {
	t.Helper()
	s, ok := domain.NewContactState().Apply(domain.ContactEvent{Kind: domain.EventSubmit, Form: adaForm})
	assert.True(t, ok)
	return s
}

func TestContactStateSubmit(t *testing.T) {
	s := submitted(t)
	assert.Equal(t, domain.ContactPending, s.Status)
	assert.Empty(t, s.Message)
	assert.Equal(t, adaForm, s.Form)
	assert.Equal(t, uint64(1), s.Seq)

	t.Run("Should reject a second submit while pending", func(t *testing.T) {
		next, ok := s.Apply(domain.ContactEvent{Kind: domain.EventSubmit, Form: domain.ContactForm{Name: "Other"}})
		assert.False(t, ok)
		assert.Equal(t, s, next)
	})
}

func TestContactStateDelivered(t *testing.T) {
	s := submitted(t)

	s, ok := s.Apply(domain.ContactEvent{Kind: domain.EventDelivered, Seq: 1})
	assert.True(t, ok)
	assert.Equal(t, domain.ContactSucceeded, s.Status)
	assert.Equal(t, domain.MessageContactSent, s.Message)
	assert.Equal(t, domain.ContactForm{}, s.Form)

	s, ok = s.Apply(domain.ContactEvent{Kind: domain.EventRevert, Seq: 1})
	assert.True(t, ok)
	assert.Equal(t, domain.ContactIdle, s.Status)
	assert.Empty(t, s.Message)
}

func TestContactStateFailuresKeepForm(t *testing.T) {
	cases := []struct {
		name    string
		kind    domain.ContactEventKind
		message string
		reason  domain.FailureReason
	}{
		{"delivery failure", domain.EventDeliveryFailed, domain.MessageContactFailed, domain.ReasonDelivery},
		{"configuration failure", domain.EventConfigInvalid, domain.MessageRelayNotConfigured, domain.ReasonConfiguration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := submitted(t).Apply(domain.ContactEvent{Kind: tc.kind, Seq: 1})
			assert.True(t, ok)
			assert.Equal(t, domain.ContactFailed, s.Status)
			assert.Equal(t, tc.message, s.Message)
			assert.Equal(t, tc.reason, s.Reason)
			assert.Equal(t, adaForm, s.Form)

			retry, ok := s.Apply(domain.ContactEvent{Kind: domain.EventSubmit, Form: s.Form})
			assert.True(t, ok)
			assert.Equal(t, domain.ContactPending, retry.Status)
			assert.Empty(t, retry.Reason)
			assert.Equal(t, uint64(2), retry.Seq)
		})
	}
}

func TestContactStateIgnoresStaleEvents(t *testing.T) {
	s := submitted(t)
	s, _ = s.Apply(domain.ContactEvent{Kind: domain.EventDelivered, Seq: 1})
	s, _ = s.Apply(domain.ContactEvent{Kind: domain.EventSubmit, Form: adaForm})

	t.Run("Should ignore a revert scheduled by an earlier success", func(t *testing.T) {
		next, ok := s.Apply(domain.ContactEvent{Kind: domain.EventRevert, Seq: 1})
		assert.False(t, ok)
		assert.Equal(t, domain.ContactPending, next.Status)
	})

	t.Run("Should ignore a delivery result for an earlier submission", func(t *testing.T) {
		next, ok := s.Apply(domain.ContactEvent{Kind: domain.EventDeliveryFailed, Seq: 1})
		assert.False(t, ok)
		assert.Equal(t, s, next)
	})

	t.Run("Should not revert from idle or failed", func(t *testing.T) {
		_, ok := domain.NewContactState().Apply(domain.ContactEvent{Kind: domain.EventRevert})
		assert.False(t, ok)
	})
}

func TestRelayConfigMissingKeys(t *testing.T) {
	cfg := domain.RelayConfig{ServiceID: domain.PlaceholderServiceID, TemplateID: "template_1", PublicKey: ""}
	assert.Equal(t, []string{"EMAILJS_SERVICE_ID", "EMAILJS_PUBLIC_KEY"}, cfg.MissingKeys())
	assert.False(t, cfg.IsConfigured())

	ok := domain.RelayConfig{ServiceID: "service_1", TemplateID: "template_1", PublicKey: "pk"}
	assert.True(t, ok.IsConfigured())
}
