package service

import (
	"testing"

	"github.com/portfolio/backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleMessages() []*model.Message {
	return []*model.Message{
		{ID: "1", Name: "John Smith", Email: "john@example.com", Subject: "Meeting", Body: "Can we talk on Monday?", Status: model.StatusUnread},
		{ID: "2", Name: "Ana", Email: "ana@x.com", Subject: "Invoice", Body: "Attached is the invoice.", Status: model.StatusRead},
		{ID: "3", Name: "Kenji", Email: "kenji@example.jp", Subject: "Hello", Body: "Loved the project John built", Status: model.StatusRead},
		{ID: "4", Name: "Mia", Email: "mia@example.org", Subject: "Collab", Body: "Open to work together?", Status: model.StatusUnread},
	}
}

func ids(msgs []*model.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}

func TestFilterMessages_EmptyQueryAll_ReturnsInputUnchanged(t *testing.T) {
	msgs := sampleMessages()
	got := FilterMessages(msgs, "", model.FilterAll)
	assert.Equal(t, msgs, got)
}

func TestFilterMessages_EmptyFilterTreatedAsAll(t *testing.T) {
	assert.Len(t, FilterMessages(sampleMessages(), "", ""), 4)
}

func TestFilterMessages_CaseInsensitive(t *testing.T) {
	msgs := sampleMessages()
	upper := FilterMessages(msgs, "JOHN", model.FilterAll)
	lower := FilterMessages(msgs, "john", model.FilterAll)
	assert.Equal(t, ids(lower), ids(upper))
	assert.Equal(t, []string{"1", "3"}, ids(upper))
}

func TestFilterMessages_MatchesEachField(t *testing.T) {
	msgs := sampleMessages()
	cases := map[string][]string{
		"mia":         {"4"},        // name
		"example.org": {"4"},        // email
		"meeting":     {"1"},        // subject
		"attached":    {"2"},        // body
		"example":     {"1", "3", "4"},
		"nothing":     {},
	}
	for q, want := range cases {
		assert.Equal(t, want, ids(FilterMessages(msgs, q, model.FilterAll)), "query %q", q)
	}
}

func TestFilterMessages_StatusOnly(t *testing.T) {
	msgs := sampleMessages()
	assert.Equal(t, []string{"1", "4"}, ids(FilterMessages(msgs, "", model.FilterUnread)))
	assert.Equal(t, []string{"2", "3"}, ids(FilterMessages(msgs, "", model.FilterRead)))
}

func TestFilterMessages_QueryAndStatusCombined(t *testing.T) {
	msgs := sampleMessages()
	assert.Equal(t, []string{"1"}, ids(FilterMessages(msgs, "john", model.FilterUnread)))
	assert.Equal(t, []string{"3"}, ids(FilterMessages(msgs, "john", model.FilterRead)))
}

func TestFilterMessages_InvoiceScenario(t *testing.T) {
	msgs := []*model.Message{
		{ID: "a", Subject: "Meeting", Status: model.StatusUnread},
		{ID: "b", Subject: "Invoice", Status: model.StatusRead},
	}
	got := FilterMessages(msgs, "invoice", model.FilterAll)
	assert.Equal(t, []*model.Message{msgs[1]}, got)
}

func TestFilterMessages_ResultIsSubsetSatisfyingPredicates(t *testing.T) {
	msgs := sampleMessages()
	for _, q := range []string{"", "o", "EXAMPLE", "?"} {
		for _, f := range []model.StatusFilter{model.FilterAll, model.FilterUnread, model.FilterRead} {
			got := FilterMessages(msgs, q, f)
			assert.LessOrEqual(t, len(got), len(msgs))
			for _, m := range got {
				assert.Contains(t, msgs, m)
				assert.True(t, matchesStatus(m, f))
				assert.True(t, matchesQuery(m, lowerASCII(q)))
			}
		}
	}
}

func TestFilterMessages_DoesNotMutateInput(t *testing.T) {
	msgs := sampleMessages()
	before := ids(msgs)
	_ = FilterMessages(msgs, "ana", model.FilterRead)
	assert.Equal(t, before, ids(msgs))
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
