package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"autocare_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeResponder struct {
	prompt string
	reply  *ChatReply
	err    error
}

func (f *fakeResponder) Reply(ctx context.Context, prompt string) (*ChatReply, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestChatServiceAsk(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Kasun", models.RoleCustomer)
	employee := createTestUser(t, db, "Ruwan", models.RoleEmployee)
	vehicle := createTestVehicle(t, db, customer.ID)
	createTestAppointment(t, db, customer.ID, vehicle.ID, models.AppointmentStatusUpcoming, strPtr(employee.ID), time.Now().AddDate(0, 0, 1))
	createTestProject(t, db, customer.ID, vehicle.ID, models.ProjectStatusOngoing, strPtr(employee.ID))

	t.Run("passes context and filters links", func(t *testing.T) {
		responder := &fakeResponder{reply: &ChatReply{
			Answer: "Your oil change is tomorrow.",
			Links:  []string{"/customer/my-appointments", "https://evil.example"},
		}}
		svc := NewChatService(db, responder)

		reply, err := svc.Ask(context.Background(), customer, "When is my <b>next</b> appointment?")
		assert.NoError(t, err)
		assert.Equal(t, []string{"/customer/my-appointments"}, reply.Links)

		assert.Contains(t, responder.prompt, "Customer: Kasun")
		assert.Contains(t, responder.prompt, "Oil change on")
		assert.Contains(t, responder.prompt, "technician Ruwan")
		assert.Contains(t, responder.prompt, "Body kit install")
		assert.Contains(t, responder.prompt, "Question: When is my next appointment?")
	})

	t.Run("empty question", func(t *testing.T) {
		svc := NewChatService(db, &fakeResponder{})
		_, err := svc.Ask(context.Background(), customer, "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("responder errors propagate", func(t *testing.T) {
		boom := errors.New("upstream down")
		svc := NewChatService(db, &fakeResponder{err: boom})
		_, err := svc.Ask(context.Background(), customer, "hi")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no responder", func(t *testing.T) {
		svc := NewChatService(db, nil)
		_, err := svc.Ask(context.Background(), customer, "hi")
		assert.ErrorIs(t, err, ErrChatUnavailable)
	})
}

func TestChatServiceAskWithInconsistentStats(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, "Kasun", models.RoleCustomer)
	vehicle := createTestVehicle(t, db, customer.ID)
	createTestProject(t, db, customer.ID, vehicle.ID, models.ProjectStatusOngoing, nil)

	// Every project counter reads 9, so ongoing plus completed exceeds the total
	err := db.Callback().Query().After("gorm:query").Register("test:inflate_project_counts", func(tx *gorm.DB) {
		if dest, isCount := tx.Statement.Dest.(*int64); isCount && tx.Statement.Table == "projects" {
			*dest = 9
		}
	})
	require.NoError(t, err)

	_, statsErr := ComputeCustomerStats(db, customer.ID)
	require.ErrorIs(t, statsErr, models.ErrInconsistentStats)

	responder := &fakeResponder{reply: &ChatReply{Answer: "Your project is under way."}}
	reply, err := NewChatService(db, responder).Ask(context.Background(), customer, "How is my project?")
	require.NoError(t, err)
	assert.Equal(t, "Your project is under way.", reply.Answer)
	assert.Contains(t, responder.prompt, "Question: How is my project?")
}

func TestBuildChatPromptLanguage(t *testing.T) {
	customer := &models.User{Name: "Ana", Language: "es"}
	prompt := BuildChatPrompt(customer, models.DashboardStats{}, nil, nil, "hola")
	assert.Contains(t, prompt, "Reply in Spanish.")
	assert.NotContains(t, prompt, "Upcoming appointments:")
}

func TestChatReplySchema(t *testing.T) {
	schema, err := chatReplySchema()
	assert.NoError(t, err)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	props, ok := schema["properties"].(map[string]any)
	if assert.True(t, ok) {
		assert.Contains(t, props, "answer")
		assert.Contains(t, props, "links")
	}
}
