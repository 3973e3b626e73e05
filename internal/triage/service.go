package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthflow/internal/hospital"
)

var ErrNoSymptoms = errors.New("no symptoms provided")

// Recommender supplies ranked facility recommendations for a triage level.
type Recommender interface {
	Recommend(ctx context.Context, level string, lat, lng float64) ([]hospital.RankedRecommendation, error)
}

// ReportService renders triage reports and escalates emergencies to the
// on-call channel.
type ReportService interface {
	SendOnCallAlert(ctx context.Context, audit *Audit) error
	RenderPDF(audit *Audit) ([]byte, error)
}

// BotResponse is the full reply to one triage request: the classification,
// a human-readable message and (for routed levels) facility suggestions.
type BotResponse struct {
	AuditID         uuid.UUID                       `json:"audit_id,omitempty"`
	Message         string                          `json:"message"`
	Result          *TriageResult                   `json:"result,omitempty"`
	Recommendations []hospital.RankedRecommendation `json:"recommendations,omitempty"`
}

type Service struct {
	composer    *Composer
	repo        Repository
	recommender Recommender
	reports     ReportService
	defaultLat  float64
	defaultLng  float64
	logger      *slog.Logger
}

func NewService(composer *Composer, repo Repository, recommender Recommender, reports ReportService, defaultLat, defaultLng float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		composer:    composer,
		repo:        repo,
		recommender: recommender,
		reports:     reports,
		defaultLat:  defaultLat,
		defaultLng:  defaultLng,
		logger:      logger,
	}
}

// Process runs one message through the full pipeline: greeting short-circuit,
// classification, facility lookup, audit persistence and emergency escalation.
func (s *Service) Process(ctx context.Context, req TriageRequest) (*BotResponse, error) {
	symptoms := strings.TrimSpace(req.Symptoms)
	if symptoms == "" {
		return nil, ErrNoSymptoms
	}
	req.Symptoms = symptoms

	if reply, ok := Greeting(symptoms); ok {
		audit := &Audit{
			Symptoms: symptoms,
			Meta:     map[string]any{"type": "greeting"},
		}
		s.persist(ctx, audit, symptoms, reply)
		return &BotResponse{AuditID: audit.ID, Message: reply}, nil
	}

	result := s.composer.Classify(ctx, req)

	var recs []hospital.RankedRecommendation
	if s.recommender != nil {
		found, err := s.recommender.Recommend(ctx, string(result.Level), s.defaultLat, s.defaultLng)
		if err != nil {
			s.logger.Warn("facility recommendation unavailable", "error", err, "level", result.Level)
		} else {
			recs = found
		}
	}

	audit := &Audit{
		Symptoms:         symptoms,
		Age:              req.Age,
		KnownConditions:  req.KnownConditions,
		RecommendedLevel: result.Level,
		Score:            result.Score,
		Reasons:          result.Reasons,
		SuggestedAction:  result.SuggestedAction,
		Meta:             map[string]any{"source": string(result.Source)},
	}
	if len(recs) > 0 {
		if data, err := json.Marshal(recs); err == nil {
			audit.HospitalRecommendation = data
		}
	}

	message := humanize(result, recs)
	s.persist(ctx, audit, symptoms, message)

	if result.Level == LevelEmergency && s.reports != nil {
		go func(a Audit) {
			alertCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.reports.SendOnCallAlert(alertCtx, &a); err != nil {
				s.logger.Error("failed to send on-call alert", "error", err, "audit_id", a.ID)
			}
		}(*audit)
	}

	return &BotResponse{
		AuditID:         audit.ID,
		Message:         message,
		Result:          &result,
		Recommendations: recs,
	}, nil
}

// Report renders the stored audit as a PDF document.
func (s *Service) Report(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("audit storage is not configured")
	}
	if s.reports == nil {
		return nil, fmt.Errorf("report rendering is not configured")
	}
	audit, err := s.repo.GetAudit(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reports.RenderPDF(audit)
}

// persist saves the audit and both sides of the exchange. Persistence is
// best-effort: the user still gets an answer when the database is down.
func (s *Service) persist(ctx context.Context, audit *Audit, userText, botText string) {
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveAudit(ctx, audit); err != nil {
		s.logger.Error("failed to save triage audit", "error", err)
		return
	}
	for _, m := range []*AuditMessage{
		{AuditID: audit.ID, Direction: "user", Text: userText},
		{AuditID: audit.ID, Direction: "bot", Text: botText},
	} {
		if err := s.repo.SaveMessage(ctx, m); err != nil {
			s.logger.Error("failed to save triage message", "error", err, "direction", m.Direction)
		}
	}
}

var levelPrefixes = map[Level]string{
	LevelEmergency:   "🚨 This looks like an emergency.",
	LevelUrgent:      "⚠️ Your symptoms need urgent attention.",
	LevelPrimaryCare: "Your symptoms are worth a doctor's visit.",
	LevelPharmacy:    "A pharmacist should be able to help.",
	LevelSelfCare:    "This sounds manageable at home.",
}

// humanize turns a structured result into the conversational reply.
func humanize(result TriageResult, recs []hospital.RankedRecommendation) string {
	var b strings.Builder
	if prefix, ok := levelPrefixes[result.Level]; ok {
		b.WriteString(prefix)
		b.WriteString(" ")
	}
	b.WriteString(result.SuggestedAction)

	if len(result.Reasons) > 0 {
		b.WriteString("\n\nWhy: ")
		b.WriteString(strings.Join(result.Reasons, "; "))
	}

	if len(recs) > 0 {
		b.WriteString("\n\nNearby options:")
		for i, r := range recs {
			fmt.Fprintf(&b, "\n%d. %s (%.1f km away, ~%d min wait) - %s",
				i+1, r.Facility.Name, r.DistanceKm, r.WaitMinutes, r.Label)
		}
	}
	return b.String()
}
