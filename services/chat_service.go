package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"autocare_portal_go/models"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"gorm.io/gorm"
)

// MaxChatQuestionLength caps what a customer can send in one message
const MaxChatQuestionLength = 500

// ChatReply is the structured answer of the assistant
type ChatReply struct {
	Answer string   `json:"answer" jsonschema:"description=Short answer for the customer in plain text"`
	Links  []string `json:"links" jsonschema:"description=Portal paths relevant to the answer, chosen from the allowed list"`
}

// ChatResponder turns a prompt into a structured reply
type ChatResponder interface {
	Reply(ctx context.Context, prompt string) (*ChatReply, error)
}

// OpenAIResponder answers through the OpenAI Responses API with a strict JSON schema
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

func NewOpenAIResponder(apiKey, model string) *OpenAIResponder {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIResponder{client: &client, model: model}
}

func (r *OpenAIResponder) Reply(ctx context.Context, prompt string) (*ChatReply, error) {
	schemaMap, err := chatReplySchema()
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(r.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "service_center_reply",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("An answer to a customer question about their vehicle service"),
				},
			},
		},
	}

	resp, err := r.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var reply ChatReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}
	return &reply, nil
}

// chatReplySchema reflects ChatReply into the map form the Responses API expects
func chatReplySchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(&ChatReply{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}

// chatLinks are the only paths the assistant may point to
var chatLinks = []string{
	"/customer/dashboard",
	"/customer/my-appointments",
	"/customer/my-projects",
	"/customer/vehicles",
	"/customer/notifications",
}

// ChatService answers customer questions using their own dashboard data as context
type ChatService struct {
	DB        *gorm.DB
	Responder ChatResponder
}

func NewChatService(db *gorm.DB, responder ChatResponder) *ChatService {
	return &ChatService{DB: db, Responder: responder}
}

// Ask builds the customer's context and asks the responder
func (s *ChatService) Ask(ctx context.Context, customer *models.User, question string) (*ChatReply, error) {
	if s.Responder == nil {
		return nil, ErrChatUnavailable
	}
	question = SanitizeText(question, MaxChatQuestionLength)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidInput)
	}

	// Inconsistent counters are still useful context, as on the dashboard
	stats, err := ComputeCustomerStats(s.DB, customer.ID)
	if err != nil && !errors.Is(err, models.ErrInconsistentStats) {
		return nil, err
	}
	upcoming, err := ListUpcomingCustomerAppointments(s.DB, customer.ID, time.Now(), 5)
	if err != nil {
		return nil, err
	}
	projects, err := ListCustomerProjects(s.DB, customer.ID)
	if err != nil {
		return nil, err
	}

	reply, err := s.Responder.Reply(ctx, BuildChatPrompt(customer, stats, upcoming, projects, question))
	if err != nil {
		return nil, err
	}
	reply.Links = filterChatLinks(reply.Links)
	return reply, nil
}

func filterChatLinks(links []string) []string {
	allowed := make([]string, 0, len(links))
	for _, l := range links {
		for _, ok := range chatLinks {
			if l == ok {
				allowed = append(allowed, l)
				break
			}
		}
	}
	return allowed
}

// BuildChatPrompt renders the instructions plus the customer's data
func BuildChatPrompt(customer *models.User, stats models.DashboardStats, upcoming []models.Appointment, projects []models.Project, question string) string {
	var b strings.Builder

	b.WriteString("You are the assistant of the AutoCare vehicle service center.\n")
	b.WriteString("Answer the customer's question using ONLY the data below. If the data does not contain the answer, say so and suggest contacting the service center.\n")
	b.WriteString("Never invent appointments, prices or dates.\n")
	if customer.Language == "es" {
		b.WriteString("Reply in Spanish.\n")
	}
	b.WriteString("Allowed links: " + strings.Join(chatLinks, ", ") + "\n\n")

	fmt.Fprintf(&b, "Customer: %s\n", customer.Name)
	fmt.Fprintf(&b, "Vehicles: %d\n", stats.TotalVehicles)
	fmt.Fprintf(&b, "Appointments: %d total, %d upcoming, %d completed\n",
		stats.TotalAppointments, stats.UpcomingAppointments, stats.CompletedAppointments)
	fmt.Fprintf(&b, "Projects: %d total, %d ongoing, %d completed\n",
		stats.TotalProjects, stats.OngoingProjects, stats.CompletedProjects)

	if len(upcoming) > 0 {
		b.WriteString("\nUpcoming appointments:\n")
		for _, a := range upcoming {
			employee := "not assigned yet"
			if a.Employee != nil {
				employee = a.Employee.Name
			}
			fmt.Fprintf(&b, "- %s on %s %s for %s, status %s, technician %s\n",
				a.ServiceName, a.Date.Format("2006-01-02"), a.TimeRange(), a.Vehicle.DisplayName(), a.Status, employee)
		}
	}
	if len(projects) > 0 {
		b.WriteString("\nProjects:\n")
		for _, p := range projects {
			fmt.Fprintf(&b, "- %s for %s, status %s, %d%% done, estimated cost %s\n",
				p.Title, p.Vehicle.DisplayName(), p.Status, p.ProgressPercentage, p.EstimatedCost.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}
